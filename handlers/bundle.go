// File: beu/handlers/bundle.go
package handlers

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	Calendar      *CalendarHandler
	Notifications *NotificationHandler
	Schedule      *ScheduleHandler
	Reservations  *ReservationHandler
	Posts         *PostHandler
	Profiles      *ProfileHandler
}
