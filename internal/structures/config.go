package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Telegram struct {
	Token   string `yaml:"token" validate:"required"`
	AdminID string `yaml:"adminId" validate:"required"`
}

type Persistence struct {
	FilePath        string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval    time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	BackupDir       string        `yaml:"backupDir"`
	BackupInterval  time.Duration `yaml:"backupInterval"`
	BackupRetention int           `yaml:"backupRetention"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type DownloadsConfig struct {
	Dir          string `yaml:"dir" validate:"required|unixPath"`
	MaxParallel  int    `yaml:"maxParallel"`
	InactiveDays int    `yaml:"inactiveDays"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Telegram    Telegram        `yaml:"telegram"`
	Downloads   DownloadsConfig `yaml:"downloads"`
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}
