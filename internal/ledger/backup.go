package ledger

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Abdualzizsm/telegram-bot/internal/ledger/interfaces"
	"github.com/Abdualzizsm/telegram-bot/internal/providers"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

const backupExt = ".json.zst"

// BackupManager writes zstd-compressed, timestamped copies of the ledger file
// and prunes old ones beyond the retention count.
type BackupManager struct {
	dir        string
	retention  int
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewBackupManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *BackupManager {
	return &BackupManager{
		dir:        conf.Persistence.BackupDir,
		retention:  conf.Persistence.BackupRetention,
		compressor: compressor,
		logger:     logger,
	}
}

// Backup compresses the current ledger file into the backup directory. A
// missing ledger file is a no-op.
func (b *BackupManager) Backup(ledgerPath string, now time.Time) error {
	data, err := os.ReadFile(ledgerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	compressed, err := b.compressor.Compress(data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return err
	}

	name := "ledger-" + now.UTC().Format("20060102T150405") + backupExt
	if err := os.WriteFile(filepath.Join(b.dir, name), compressed, 0o644); err != nil {
		return err
	}

	return b.prune()
}

// Restore decompresses the named backup and returns its raw JSON document.
func (b *BackupManager) Restore(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, name))
	if err != nil {
		return nil, err
	}
	return b.compressor.Decompress(data)
}

// List returns backup file names, oldest first.
func (b *BackupManager) List() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".zst" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (b *BackupManager) prune() error {
	if b.retention <= 0 {
		return nil
	}
	names, err := b.List()
	if err != nil {
		return err
	}
	for len(names) > b.retention {
		victim := names[0]
		names = names[1:]
		if err := os.Remove(filepath.Join(b.dir, victim)); err != nil {
			return err
		}
		b.logger.Debugf(providers.TypeLedger, "Pruned old backup %s", victim)
	}
	return nil
}
