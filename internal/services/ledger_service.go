package services

import (
	"sort"
	"sync"
	"time"

	"github.com/Abdualzizsm/telegram-bot/internal/models"
	"github.com/Abdualzizsm/telegram-bot/internal/logging"
	"github.com/Abdualzizsm/telegram-bot/internal/structures"
)

// LedgerStore abstracts the flat-file persistence of the ledger.
// Implemented by ledger.FileManager.
type LedgerStore interface {
	SaveToFile(fileName string, l *models.Ledger) error
	LoadFromFile(fileName string) (*models.Ledger, error)
}

type LedgerServiceInterface interface {
	Record(ev models.Event) error
	Snapshot() *models.Ledger
	Profile(userID int64) (*models.UserProfile, bool)
	Profiles() []*models.UserProfile
	TotalDownloads() int64
	UserCount() int
	ActiveSince(window time.Duration) int
	Restore() error
	Persist() error
}

// LedgerService applies activity events to the in-memory ledger and persists
// the full document after every mutation. A single mutex serializes
// mutate-and-save, so concurrent handlers cannot interleave partial writes.
type LedgerService struct {
	mu     sync.Mutex
	led    *models.Ledger
	store  LedgerStore
	path   string
	logger logging.Logger
}

func NewLedgerService(conf *structures.Config, store LedgerStore, logger logging.Logger) LedgerServiceInterface {
	return &LedgerService{
		led:    models.NewLedger(),
		store:  store,
		path:   conf.Persistence.FilePath,
		logger: logger,
	}
}

// Record mutates the ledger according to the event and persists the result.
// Replays are not idempotent: every call increments its counters again. An
// update or persistence failure is returned to the caller; existing profile
// data is never discarded on error.
func (s *LedgerService) Record(ev models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := s.led.Users[ev.UserID]

	if ev.Identity != nil {
		if p == nil {
			p = models.NewUserProfile(ev.UserID, *ev.Identity, now)
			s.led.Users[ev.UserID] = p
			s.logger.Infof(logging.TypeLedger, "New user: %s (ID: %d)", p.DisplayName(), ev.UserID)
		}
		p.Backfill()
		p.Touch(now)
		p.TotalInteractions++
	}

	switch ev.Kind {
	case models.EventLogin:
		s.touchIndex(ev.UserID, now)
		if p != nil {
			p.Status = models.StatusActive
		}
	case models.EventDownload:
		s.led.TotalDownloads++
		if p != nil {
			p.Downloads++
			kind := models.EventDownload.String()
			p.LastInteractionType = &kind
			p.Touch(now)
		}
		s.touchIndex(ev.UserID, now)
	case models.EventYouTube:
		if p != nil {
			p.YouTubeDownloads++
		}
	case models.EventSnapchat:
		if p != nil {
			p.SnapchatDownloads++
		}
	}

	return s.persistLocked()
}

// touchIndex updates the duplicated last-active index. The per-profile field
// and the index must stay in sync on every write.
func (s *LedgerService) touchIndex(userID int64, now time.Time) {
	t := now
	s.led.LastActive[userID] = &t
}

func (s *LedgerService) persistLocked() error {
	if err := s.store.SaveToFile(s.path, s.led); err != nil {
		s.logger.Errorf(logging.TypeLedger, "Failed to persist ledger: %s", err)
		return err
	}
	return nil
}

// Snapshot returns a deep copy of the current ledger, safe to read without
// holding the service lock.
func (s *LedgerService) Snapshot() *models.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := models.NewLedger()
	out.TotalDownloads = s.led.TotalDownloads
	for id, p := range s.led.Users {
		cp := *p
		if p.JoinedAt != nil {
			t := *p.JoinedAt
			cp.JoinedAt = &t
		}
		if p.LastActive != nil {
			t := *p.LastActive
			cp.LastActive = &t
		}
		if p.LastInteractionType != nil {
			v := *p.LastInteractionType
			cp.LastInteractionType = &v
		}
		out.Users[id] = &cp
	}
	for id, t := range s.led.LastActive {
		if t != nil {
			cp := *t
			out.LastActive[id] = &cp
		}
	}
	return out
}

func (s *LedgerService) Profile(userID int64) (*models.UserProfile, bool) {
	snap := s.Snapshot()
	p, ok := snap.Users[userID]
	return p, ok
}

// Profiles returns copies of all profiles ordered by last activity, most
// recent first.
func (s *LedgerService) Profiles() []*models.UserProfile {
	snap := s.Snapshot()
	out := make([]*models.UserProfile, 0, len(snap.Users))
	for _, p := range snap.Users {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := time.Time{}, time.Time{}
		if out[i].LastActive != nil {
			ti = *out[i].LastActive
		}
		if out[j].LastActive != nil {
			tj = *out[j].LastActive
		}
		return ti.After(tj)
	})
	return out
}

func (s *LedgerService) TotalDownloads() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.led.TotalDownloads
}

func (s *LedgerService) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.led.Users)
}

func (s *LedgerService) ActiveSince(window time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.led.ActiveSince(time.Now(), window)
}

func (s *LedgerService) Restore() error {
	l, err := s.store.LoadFromFile(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.led = l
	s.mu.Unlock()
	return nil
}

func (s *LedgerService) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}
