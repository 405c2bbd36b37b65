package models

import (
	"strconv"
	"strings"
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Identity is the chat-transport snapshot of a user, captured once at first
// contact and never re-synced.
type Identity struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

// UserProfile holds one user's identity snapshot and cumulative counters.
// All counters are monotonically non-decreasing.
type UserProfile struct {
	UserID              int64      `json:"user_id"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Username            string     `json:"username"`
	LanguageCode        string     `json:"language_code"`
	Downloads           int64      `json:"downloads"`
	YouTubeDownloads    int64      `json:"youtube_downloads"`
	SnapchatDownloads   int64      `json:"snapchat_downloads"`
	TotalInteractions   int64      `json:"total_interactions"`
	JoinedAt            *time.Time `json:"join_date"`
	LastActive          *time.Time `json:"last_active"`
	IsPremium           bool       `json:"is_premium"`
	Status              string     `json:"status"`
	LastInteractionType *string    `json:"last_interaction_type"`
}

func NewUserProfile(userID int64, ident Identity, now time.Time) *UserProfile {
	joined := now
	active := now
	return &UserProfile{
		UserID:       userID,
		FirstName:    ident.FirstName,
		LastName:     ident.LastName,
		Username:     ident.Username,
		LanguageCode: ident.LanguageCode,
		JoinedAt:     &joined,
		LastActive:   &active,
		Status:       StatusActive,
	}
}

// Touch updates the last-active timestamp and marks the profile active.
func (p *UserProfile) Touch(now time.Time) {
	t := now
	p.LastActive = &t
	p.Status = StatusActive
}

// Backfill fills fields that may be absent in records persisted by an older
// schema, so every profile keeps the full counter set once created.
func (p *UserProfile) Backfill() {
	if p.Status == "" {
		p.Status = StatusActive
	}
}

// RecomputeStatus derives the status flag from the inactivity threshold. The
// transition is not persisted logic; it is applied whenever profiles are
// listed.
func (p *UserProfile) RecomputeStatus(now time.Time, threshold time.Duration) string {
	last := now
	if p.LastActive != nil {
		last = *p.LastActive
	}
	if now.Sub(last) < threshold {
		p.Status = StatusActive
	} else {
		p.Status = StatusInactive
	}
	return p.Status
}

// DisplayName returns the best human-readable name for the profile.
func (p *UserProfile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	if p.Username != "" {
		return p.Username
	}
	return strconv.FormatInt(p.UserID, 10)
}
