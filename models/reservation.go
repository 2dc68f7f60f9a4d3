package models

// ReservationStatus is the lifecycle state the backend reports for a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusRejected  ReservationStatus = "REJECTED"
)

// StatusColors is the single colour table shared by the week strip, the month
// grid and the calendar feed.
var StatusColors = map[ReservationStatus]string{
	StatusConfirmed: "#10b981",
	StatusPending:   "#f59e0b",
	StatusCompleted: "#6b7280",
	StatusCancelled: "#ef4444",
	StatusRejected:  "#dc2626",
}

// Color returns the display colour for the status, or fallback when unknown.
func (s ReservationStatus) Color(fallback string) string {
	if c, ok := StatusColors[s]; ok {
		return c
	}
	return fallback
}

// Terminal reports whether the reservation can no longer change state.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusRejected
}

// Reservation is a booking as returned by the backend.
type Reservation struct {
	ID           string            `bson:"id" json:"id"`
	Date         string            `bson:"date" json:"date"`         // "2006-01-02"
	Time         string            `bson:"time" json:"time"`         // "15:04"
	EndTime      string            `bson:"end_time" json:"end_time"` // "15:04"
	Status       ReservationStatus `bson:"status" json:"status"`
	ProviderType string            `bson:"provider_type" json:"provider_type"`
	Notes        string            `bson:"notes,omitempty" json:"notes,omitempty"`
	ServiceName  string            `bson:"service_name,omitempty" json:"service_name,omitempty"`
	ProviderName string            `bson:"provider_name,omitempty" json:"provider_name,omitempty"`
	ClientName   string            `bson:"client_name,omitempty" json:"client_name,omitempty"`
}

// ReservationFilter narrows a reservation listing.
type ReservationFilter struct {
	From   string `form:"from" json:"from,omitempty"`
	To     string `form:"to" json:"to,omitempty"`
	Status string `form:"status" json:"status,omitempty"`
	Role   string `form:"role" json:"role,omitempty"` // "client" or "provider"
}

// CreateReservationRequest is forwarded to the backend unchanged.
type CreateReservationRequest struct {
	ProviderID   string `json:"provider_id" binding:"required"`
	ProviderType string `json:"provider_type" binding:"required"`
	ServiceID    string `json:"service_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Notes        string `json:"notes,omitempty"`
}

// RejectReservationRequest carries the optional reason shown to the client.
type RejectReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}
