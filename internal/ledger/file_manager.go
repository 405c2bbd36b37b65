package ledger

import (
	"os"

	json "github.com/goccy/go-json"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/providers"
)

// FileManager persists the full ledger as a single JSON document. Saves go
// through a tmp file, fsync and rename, so a crash mid-write never leaves a
// truncated ledger behind.
type FileManager struct {
	logger providers.Logger
}

func NewFileManager(logger providers.Logger) *FileManager {
	return &FileManager{logger: logger}
}

func (f *FileManager) SaveToFile(fileName string, l *models.Ledger) error {
	jsonData, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// LoadFromFile reads a previously saved ledger. A missing file is not an
// error: the bot starts with an empty ledger and a zeroed total.
func (f *FileManager) LoadFromFile(fileName string) (*models.Ledger, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypeLedger, "No ledger file at %s, starting empty", fileName)
			return models.NewLedger(), nil
		}
		return nil, err
	}

	var l models.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	l.Normalize()
	return &l, nil
}
