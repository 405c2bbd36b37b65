package ledger

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"github.com/Abdualzizsm/telegram-bot/internal/ledger/interfaces"
	"github.com/Abdualzizsm/telegram-bot/internal/providers"
	"github.com/Abdualzizsm/telegram-bot/internal/services"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

// Scheduler runs the periodic ledger flush and backup jobs. The flush is a
// safety net on top of the save-per-mutation path in the ledger service.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.LedgerServiceInterface
	backup  *BackupManager
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval

	s.cron.AddFunc(gron.Every(interval*time.Second), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		start := time.Now()
		err := s.service.Persist()
		if err != nil {
			s.logger.Errorf(providers.TypeLedger, "Error while persisting ledger: %s", err)
			return
		}
		s.metrics.ObservePersistenceDuration(time.Since(start))
		s.logger.Debugf(providers.TypeLedger, "Persisted ledger to %s", s.config.Persistence.FilePath)
	})

	if s.config.Persistence.BackupDir != "" && s.config.Persistence.BackupInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Persistence.BackupInterval*time.Second), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			if err := s.backup.Backup(s.config.Persistence.FilePath, time.Now()); err != nil {
				s.logger.Errorf(providers.TypeLedger, "Error while backing up ledger: %s", err)
				return
			}
			s.logger.Infof(providers.TypeLedger, "Ledger backup written to %s", s.config.Persistence.BackupDir)
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.service.Restore()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeLedger, "Persisting ledger to file...")
	start := time.Now()
	err := s.service.Persist()
	if err != nil {
		s.logger.Errorf(providers.TypeLedger, "Error while persisting ledger: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.LedgerServiceInterface, backup *BackupManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		backup:  backup,
		metrics: metrics,
	}
}
