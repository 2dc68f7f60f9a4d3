package models

// NotificationStatus is either read or unread.
type NotificationStatus string

const (
	NotificationRead   NotificationStatus = "read"
	NotificationUnread NotificationStatus = "unread"
)

// Notification is an in-app notification as returned by the backend.
// Timestamp is kept as the raw ISO string; grouping parses it leniently.
type Notification struct {
	ID        string             `bson:"id" json:"id"`
	Timestamp string             `bson:"timestamp" json:"timestamp"`
	Type      string             `bson:"type" json:"type"`
	Status    NotificationStatus `bson:"status" json:"status"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Metadata  map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Link      *NotificationLink  `bson:"-" json:"link,omitempty"`
}

// NotificationLink is the reservation or page a notification opens.
type NotificationLink struct {
	Kind string `json:"kind"` // "reservation_id" or "link_id"
	ID   string `json:"id"`
}

// Target returns the reservation or link the notification points to, if any.
func (n Notification) Target() (kind, id string) {
	for _, key := range []string{"reservation_id", "link_id"} {
		if v, ok := n.Metadata[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return key, s
			}
		}
	}
	return "", ""
}

// NotificationGroup is one labelled display bucket.
type NotificationGroup struct {
	Key   string         `json:"key"` // "today", "yesterday", "2006-01-02" or "undated"
	Label string         `json:"label"`
	Items []Notification `json:"items"`
}

// NotificationFeed is the grouped list served to clients.
type NotificationFeed struct {
	Groups      []NotificationGroup `json:"groups"`
	UnreadCount int                 `json:"unread_count"`

	// Stale is set when the backend was unreachable and the mirror was served.
	Stale bool `json:"stale,omitempty"`
}
