package models

// EventKind discriminates the activity events applied to the ledger. Each
// kind has its own constructor; there is no overloaded user-or-id payload.
type EventKind int

const (
	EventLogin EventKind = iota
	EventDownload
	EventYouTube
	EventSnapchat
)

func (k EventKind) String() string {
	switch k {
	case EventLogin:
		return "login"
	case EventDownload:
		return "download"
	case EventYouTube:
		return "youtube"
	case EventSnapchat:
		return "snapchat"
	}
	return "unknown"
}

// Event is one user activity observation. Identity is only set on events
// originating from an inbound message, where the transport supplies a user
// snapshot for first-contact profile creation.
type Event struct {
	Kind     EventKind
	UserID   int64
	Identity *Identity
}

func NewLoginEvent(userID int64) Event {
	return Event{Kind: EventLogin, UserID: userID}
}

// NewContactEvent is a login event carrying the transport's identity
// snapshot. It creates the profile on first contact and counts as one
// interaction.
func NewContactEvent(userID int64, ident Identity) Event {
	return Event{Kind: EventLogin, UserID: userID, Identity: &ident}
}

func NewDownloadEvent(userID int64) Event {
	return Event{Kind: EventDownload, UserID: userID}
}

func NewYouTubeEvent(userID int64) Event {
	return Event{Kind: EventYouTube, UserID: userID}
}

func NewSnapchatEvent(userID int64) Event {
	return Event{Kind: EventSnapchat, UserID: userID}
}
