package models

import "time"

// Ledger is the persisted envelope: every profile, a last-active index keyed
// by user id, and the grand-total download counter. The index duplicates the
// per-profile timestamp and both are kept in sync on every write.
//
// Integer map keys serialize as JSON strings, matching the on-disk format
// produced by earlier versions of the bot.
type Ledger struct {
	Users          map[int64]*UserProfile `json:"users"`
	LastActive     map[int64]*time.Time   `json:"last_active"`
	TotalDownloads int64                  `json:"total_downloads"`
}

func NewLedger() *Ledger {
	return &Ledger{
		Users:      make(map[int64]*UserProfile),
		LastActive: make(map[int64]*time.Time),
	}
}

// Normalize repairs a ledger loaded from disk: nil maps become empty, profiles
// written by an older schema are backfilled, and the last-active index is
// re-synced from the per-profile field where missing.
func (l *Ledger) Normalize() {
	if l.Users == nil {
		l.Users = make(map[int64]*UserProfile)
	}
	if l.LastActive == nil {
		l.LastActive = make(map[int64]*time.Time)
	}
	for id, p := range l.Users {
		if p == nil {
			delete(l.Users, id)
			continue
		}
		p.UserID = id
		p.Backfill()
		if _, ok := l.LastActive[id]; !ok && p.LastActive != nil {
			t := *p.LastActive
			l.LastActive[id] = &t
		}
	}
}

// ActiveSince counts profiles whose last activity falls within the window.
func (l *Ledger) ActiveSince(now time.Time, window time.Duration) int {
	count := 0
	for _, t := range l.LastActive {
		if t != nil && now.Sub(*t) < window {
			count++
		}
	}
	return count
}
