package models

// MirrorRefreshPayload asks the worker to refresh a user's reservation mirror.
type MirrorRefreshPayload struct {
	UserID string `json:"userId"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// CalendarSyncPayload asks the worker to trigger an external calendar sync.
type CalendarSyncPayload struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}
