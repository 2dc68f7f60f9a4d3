package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"beu/apiclient"
	"beu/models"
	"beu/services/notification"
	"beu/services/profile"
	"beu/services/reservation"
	"beu/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser stands in for JWTAuthMiddleware.
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Set("logger", zap.NewNop())
		c.Next()
	}
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
	return out
}

// --- schedule ---

func scheduleRouter() *gin.Engine {
	h := NewScheduleHandler(schedule.NewDefaultScheduleService(nil, nil, nil, nil, zap.NewNop()))
	r := gin.New()
	r.Use(withUser("u1"))
	r.POST("/api/schedule/validate", h.ValidateHandler)
	return r
}

func TestValidateScheduleReportsFirstViolation(t *testing.T) {
	w := doRequest(scheduleRouter(), http.MethodPost, "/api/schedule/validate", gin.H{
		"schedule": []models.DaySchedule{
			{DayOfWeek: 1, IsAvailable: true, TimeSlots: []models.ScheduleTimeSlot{}},
		},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["rule"] != schedule.RuleNoSlots || body["day_name"] != "Martes" || body["day_of_week"] != float64(1) {
		t.Errorf("body = %v", body)
	}
}

func TestValidateScheduleReturnsFilteredPayload(t *testing.T) {
	w := doRequest(scheduleRouter(), http.MethodPost, "/api/schedule/validate", gin.H{
		"schedule": []models.DaySchedule{
			{DayOfWeek: 0, IsAvailable: true, TimeSlots: []models.ScheduleTimeSlot{{StartTime: "09:00", EndTime: "12:00", IsActive: true}}},
			{DayOfWeek: 1, IsAvailable: false},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Valid    bool                 `json:"valid"`
		Schedule []models.DaySchedule `json:"schedule"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Valid || len(body.Schedule) != 1 || body.Schedule[0].DayOfWeek != 0 {
		t.Errorf("body = %+v", body)
	}
}

func TestValidateScheduleBadClockIs400(t *testing.T) {
	w := doRequest(scheduleRouter(), http.MethodPost, "/api/schedule/validate", gin.H{
		"schedule": []models.DaySchedule{
			{DayOfWeek: 0, IsAvailable: true, TimeSlots: []models.ScheduleTimeSlot{{StartTime: "9am", EndTime: "12:00"}}},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestValidateScheduleDropsUnavailableDayWithBlankSlots(t *testing.T) {
	w := doRequest(scheduleRouter(), http.MethodPost, "/api/schedule/validate", gin.H{
		"schedule": []models.DaySchedule{
			{DayOfWeek: 0, IsAvailable: true, TimeSlots: []models.ScheduleTimeSlot{{StartTime: "09:00", EndTime: "17:00", IsActive: true}}},
			{DayOfWeek: 1, IsAvailable: false, TimeSlots: []models.ScheduleTimeSlot{{StartTime: "", EndTime: ""}}},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Schedule []models.DaySchedule `json:"schedule"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body.Schedule) != 1 || body.Schedule[0].DayOfWeek != 0 {
		t.Errorf("schedule = %+v", body.Schedule)
	}
}

func TestSlotRequiredMapsTo400(t *testing.T) {
	r := gin.New()
	r.POST("/edit", func(c *gin.Context) {
		respondError(c, fmt.Errorf("edit 0: %w", schedule.ErrSlotRequired), "Invalid edit")
	})
	w := doRequest(r, http.MethodPost, "/edit", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestValidateScheduleDuplicateDayIs400(t *testing.T) {
	w := doRequest(scheduleRouter(), http.MethodPost, "/api/schedule/validate", gin.H{
		"schedule": []models.DaySchedule{
			{DayOfWeek: 3, IsAvailable: false},
			{DayOfWeek: 3, IsAvailable: false},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

// --- profiles ---

type stubProfileAPI struct {
	profile.ProfileAPI
	err error
}

func (s stubProfileAPI) GetPublicProfile(ctx context.Context, id string) (*models.PublicProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.PublicProfile{ID: id, Name: "Estudio Luz"}, nil
}

func TestPublicProfileMissingIsNotAnError(t *testing.T) {
	h := NewProfileHandler(profile.NewDefaultProfileService(stubProfileAPI{err: &apiclient.APIError{StatusCode: 404}}, zap.NewNop()))
	r := gin.New()
	r.GET("/api/profiles/:id", h.PublicProfileHandler)

	w := doRequest(r, http.MethodGet, "/api/profiles/p1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decode(t, w); body["exists"] != false {
		t.Errorf("body = %v", body)
	}
}

func TestBackendServerErrorBecomesBadGateway(t *testing.T) {
	h := NewProfileHandler(profile.NewDefaultProfileService(stubProfileAPI{err: &apiclient.APIError{StatusCode: 500, Detail: "db down"}}, zap.NewNop()))
	r := gin.New()
	r.GET("/api/profiles/:id", h.PublicProfileHandler)

	w := doRequest(r, http.MethodGet, "/api/profiles/p1", nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decode(t, w); body["message"] != "db down" || body["code"] != "backend" {
		t.Errorf("body = %v", body)
	}
}

// --- notifications ---

type stubNotifications struct {
	notification.NotificationService
	err   error
	calls []string
}

func (s *stubNotifications) SetStatus(ctx context.Context, userID, id string, status models.NotificationStatus) error {
	s.calls = append(s.calls, userID+":"+id+":"+string(status))
	return s.err
}

func (s *stubNotifications) Delete(ctx context.Context, userID, id string) error {
	s.calls = append(s.calls, userID+":"+id+":delete")
	return s.err
}

func notificationRouter(svc notification.NotificationService, userID string) *gin.Engine {
	h := NewNotificationHandler(svc)
	r := gin.New()
	r.Use(withUser(userID))
	r.POST("/api/notifications/:id/read", h.MarkReadHandler)
	r.DELETE("/api/notifications/:id", h.DeleteHandler)
	return r
}

func TestMarkReadRequiresUser(t *testing.T) {
	svc := &stubNotifications{}
	w := doRequest(notificationRouter(svc, ""), http.MethodPost, "/api/notifications/n1/read", nil)
	if w.Code != http.StatusUnauthorized || len(svc.calls) != 0 {
		t.Errorf("status = %d, calls = %v", w.Code, svc.calls)
	}
}

func TestMarkReadErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"backend not found", &apiclient.APIError{StatusCode: 404}, http.StatusNotFound},
		{"bad status", notification.ErrInvalidStatus, http.StatusBadRequest},
		{"backend forbidden", &apiclient.APIError{StatusCode: 403}, http.StatusForbidden},
		{"backend down", &apiclient.APIError{StatusCode: 503}, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubNotifications{err: tc.err}
			w := doRequest(notificationRouter(svc, "u1"), http.MethodPost, "/api/notifications/n1/read", nil)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
			if len(svc.calls) != 1 || svc.calls[0] != "u1:n1:read" {
				t.Errorf("calls = %v", svc.calls)
			}
		})
	}
}

func TestDeleteNotificationNoContent(t *testing.T) {
	svc := &stubNotifications{}
	w := doRequest(notificationRouter(svc, "u1"), http.MethodDelete, "/api/notifications/n9", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d", w.Code)
	}
}

// --- calendar & reservations ---

type stubReservations struct {
	reservation.ReservationService
	feed []byte
	err  error
}

func (s *stubReservations) Feed(ctx context.Context, token string) ([]byte, error) {
	return s.feed, s.err
}

func (s *stubReservations) Confirm(ctx context.Context, id string) (*models.Reservation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Reservation{ID: id, Status: models.StatusConfirmed}, nil
}

func TestFeedServesICalendar(t *testing.T) {
	h := NewCalendarHandler(&stubReservations{feed: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")})
	r := gin.New()
	r.GET("/calendar/:token/reservations.ics", h.FeedHandler)

	w := doRequest(r, http.MethodGet, "/calendar/tok/reservations.ics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestFeedBadTokenIs401(t *testing.T) {
	h := NewCalendarHandler(&stubReservations{err: reservation.ErrInvalidToken})
	r := gin.New()
	r.GET("/calendar/:token/reservations.ics", h.FeedHandler)

	if w := doRequest(r, http.MethodGet, "/calendar/tok/reservations.ics", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
}

func TestConfirmTerminalIsConflict(t *testing.T) {
	h := NewReservationHandler(&stubReservations{err: reservation.ErrTerminal})
	r := gin.New()
	r.POST("/api/reservations/:id/confirm", h.ConfirmHandler)

	if w := doRequest(r, http.MethodPost, "/api/reservations/r1/confirm", nil); w.Code != http.StatusConflict {
		t.Errorf("status = %d", w.Code)
	}
}
