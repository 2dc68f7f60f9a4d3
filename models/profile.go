package models

// PublicProfile is a professional or place as shown to clients.
type PublicProfile struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id,omitempty"`
	ProviderType string   `json:"provider_type"` // "professional" or "place"
	Name         string   `json:"name"`
	Bio          string   `json:"bio,omitempty"`
	Category     string   `json:"category,omitempty"`
	City         string   `json:"city,omitempty"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
	Photos       []string `json:"photos,omitempty"`
}

// ProfileView wraps a profile lookup; Exists is false when the backend has none yet.
type ProfileView struct {
	Exists  bool           `json:"exists"`
	Profile *PublicProfile `json:"profile,omitempty"`
}

// ServiceOffering is a catalogue service offered by a provider.
type ServiceOffering struct {
	ID          string  `json:"id,omitempty"`
	ServiceID   string  `json:"service_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_minutes"`
	IsActive    bool    `json:"is_active"`
}

// CustomService is a provider-defined service outside the catalogue.
type CustomService struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_minutes"`
	Category    string  `json:"category,omitempty"`
	IsActive    bool    `json:"is_active"`
}
