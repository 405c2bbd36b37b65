package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("telegram.token", "TELEGRAM_TOKEN")
	viper.BindEnv("telegram.adminId", "ADMIN_ID")
	viper.BindEnv("logger.level", "TGDL_LOG_LEVEL")
	viper.BindEnv("persistence.filePath", "TGDL_LEDGER_PATH")
	viper.BindEnv("persistence.saveInterval", "TGDL_SAVE_INTERVAL")
	viper.BindEnv("downloads.dir", "TGDL_DOWNLOADS_DIR")
	viper.BindEnv("downloads.maxParallel", "TGDL_MAX_PARALLEL")
	viper.BindEnv("cache.enabled", "TGDL_CACHE_ENABLED")
	viper.BindEnv("cache.size", "TGDL_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "MediaDownloaderBot"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	if conf.Downloads.MaxParallel <= 0 {
		conf.Downloads.MaxParallel = 3
	}
	if conf.Downloads.InactiveDays <= 0 {
		conf.Downloads.InactiveDays = 7
	}
	if conf.Persistence.BackupRetention <= 0 {
		conf.Persistence.BackupRetention = 5
	}

	return &conf, nil
}
