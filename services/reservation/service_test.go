package reservation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"beu/apiclient"
	"beu/config"
	"beu/models"
	"beu/services/calendar"
	"beu/utils"

	"go.uber.org/zap"
)

var thursday = time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

type mockReservationAPI struct {
	items      []models.Reservation
	listErr    error
	current    *models.Reservation
	confirmed  int
	rejected   int
	lastFilter models.ReservationFilter
}

func (m *mockReservationAPI) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	m.lastFilter = filter
	return m.items, m.listErr
}

func (m *mockReservationAPI) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	if m.current == nil {
		return nil, &apiclient.APIError{StatusCode: 404}
	}
	return m.current, nil
}

func (m *mockReservationAPI) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	return &models.Reservation{ID: "new", Date: req.Date, Time: req.Time, Status: models.StatusPending}, nil
}

func (m *mockReservationAPI) ConfirmReservation(ctx context.Context, id string) (*models.Reservation, error) {
	m.confirmed++
	return &models.Reservation{ID: id, Status: models.StatusConfirmed}, nil
}

func (m *mockReservationAPI) RejectReservation(ctx context.Context, id string, req models.RejectReservationRequest) (*models.Reservation, error) {
	m.rejected++
	return &models.Reservation{ID: id, Status: models.StatusRejected}, nil
}

func (m *mockReservationAPI) GetCalendarConnection(ctx context.Context) (*models.CalendarConnection, error) {
	return &models.CalendarConnection{Provider: "google", Connected: true}, nil
}

type memoryMirror struct {
	items    []models.Reservation
	synced   time.Time
	replaced int
}

func (m *memoryMirror) ReplaceRange(ctx context.Context, userID, from, to string, reservations []models.Reservation) error {
	m.replaced++
	m.items = reservations
	m.synced = thursday
	return nil
}

func (m *memoryMirror) ListByUser(ctx context.Context, userID, from, to string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.items {
		if r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryMirror) LastSynced(ctx context.Context, userID string) (time.Time, error) {
	return m.synced, nil
}

func (m *memoryMirror) EnsureIndexes(ctx context.Context) error { return nil }

type mockRefresher struct {
	calls []string
}

func (m *mockRefresher) EnqueueMirrorRefresh(ctx context.Context, userID, from, to string) error {
	m.calls = append(m.calls, userID+":"+from+".."+to)
	return nil
}

func newTestService(api *mockReservationAPI, mirror *memoryMirror, refresher *mockRefresher) *DefaultReservationService {
	svc := NewDefaultReservationService(api, mirror, refresher,
		calendar.Options{Location: time.UTC, Locale: calendar.MustLocale("es")},
		Config{PublicBaseURL: "https://beu.example/", MirrorMaxAge: 15 * time.Minute},
		zap.NewNop())
	svc.Now = func() time.Time { return thursday }
	return svc
}

func TestWeekStripUsesBackendAndMirrors(t *testing.T) {
	api := &mockReservationAPI{items: []models.Reservation{
		{ID: "r1", Date: "2024-03-14", Status: models.StatusConfirmed},
	}}
	mirror := &memoryMirror{}
	svc := newTestService(api, mirror, nil)

	view, err := svc.WeekStrip(context.Background(), "u1", models.WeekStripQuery{Span: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Weeks) != maxStripSpan {
		t.Errorf("weeks = %d, want span clamped to %d", len(view.Weeks), maxStripSpan)
	}
	if api.lastFilter.From != "2024-03-11" {
		t.Errorf("requested from %s", api.lastFilter.From)
	}
	if dots := view.Weeks[0].Days[3].Dots; len(dots) != 1 || dots[0] != "#10b981" {
		t.Errorf("thursday dots = %v", dots)
	}
	if mirror.replaced != 1 {
		t.Errorf("mirror replaced %d times", mirror.replaced)
	}
}

func TestWeekStripFallsBackToMirror(t *testing.T) {
	api := &mockReservationAPI{listErr: &apiclient.APIError{StatusCode: 502}}
	mirror := &memoryMirror{items: []models.Reservation{{ID: "r1", Date: "2024-03-12", Status: models.StatusPending}}}
	svc := newTestService(api, mirror, nil)

	view, err := svc.WeekStrip(context.Background(), "u1", models.WeekStripQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if dots := view.Weeks[0].Days[1].Dots; len(dots) != 1 || dots[0] != "#f59e0b" {
		t.Errorf("tuesday dots = %v", dots)
	}
}

func TestSelectDayDisabledIsNoop(t *testing.T) {
	svc := newTestService(&mockReservationAPI{}, &memoryMirror{}, nil)
	res, err := svc.SelectDay(context.Background(), "u1", models.WeekStripSelect{
		WeekStripQuery: models.WeekStripQuery{SelectedDate: "2024-03-14", DisabledWeekdays: []int{0}},
		Date:           "2024-03-17",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed || res.SelectedDate != "2024-03-14" {
		t.Errorf("result = %+v", res)
	}

	res, err = svc.SelectDay(context.Background(), "u1", models.WeekStripSelect{Date: "2024-03-15"})
	if err != nil || !res.Changed || res.SelectedDate != "2024-03-15" {
		t.Errorf("result = %+v, err = %v", res, err)
	}
}

func TestMonthGridNavigation(t *testing.T) {
	svc := newTestService(&mockReservationAPI{}, &memoryMirror{}, nil)
	view, err := svc.MonthGrid(context.Background(), "u1", models.MonthGridQuery{Year: 2024, Month: 1, Nav: -1, SelectedDate: "2024-03-14"})
	if err != nil {
		t.Fatal(err)
	}
	if view.Year != 2023 || view.Month != 12 || len(view.Cells) != 42 || view.SelectedDate != "2024-03-14" {
		t.Errorf("view = %d-%d, %d cells, selected %s", view.Year, view.Month, len(view.Cells), view.SelectedDate)
	}
	if _, err := svc.MonthGrid(context.Background(), "u1", models.MonthGridQuery{Year: 2024, Month: 13}); !errors.Is(err, calendar.ErrInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestTapMonthCloses(t *testing.T) {
	svc := newTestService(&mockReservationAPI{}, &memoryMirror{}, nil)
	res, err := svc.TapMonth(models.MonthTap{Date: "2024-04-02"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed || !res.Closed || res.SelectedDate != "2024-04-02" {
		t.Errorf("result = %+v", res)
	}
}

func TestConfirmRefusesTerminalReservations(t *testing.T) {
	for _, st := range []models.ReservationStatus{models.StatusCancelled, models.StatusRejected} {
		api := &mockReservationAPI{current: &models.Reservation{ID: "r1", Status: st}}
		svc := newTestService(api, &memoryMirror{}, nil)
		if _, err := svc.Confirm(context.Background(), "r1"); !errors.Is(err, ErrTerminal) {
			t.Errorf("%s: err = %v", st, err)
		}
		if _, err := svc.Reject(context.Background(), "r1", models.RejectReservationRequest{}); !errors.Is(err, ErrTerminal) {
			t.Errorf("%s: err = %v", st, err)
		}
		if api.confirmed+api.rejected != 0 {
			t.Errorf("%s: backend mutated a terminal reservation", st)
		}
	}

	api := &mockReservationAPI{current: &models.Reservation{ID: "r1", Status: models.StatusPending}}
	svc := newTestService(api, &memoryMirror{}, nil)
	if r, err := svc.Confirm(context.Background(), "r1"); err != nil || r.Status != models.StatusConfirmed {
		t.Errorf("confirm = %+v, %v", r, err)
	}
}

func TestCreateValidatesDateAndTime(t *testing.T) {
	svc := newTestService(&mockReservationAPI{}, &memoryMirror{}, nil)
	if _, err := svc.Create(context.Background(), models.CreateReservationRequest{Date: "14-03-2024", Time: "10:00"}); !errors.Is(err, calendar.ErrInvalidInput) {
		t.Errorf("bad date: err = %v", err)
	}
	if _, err := svc.Create(context.Background(), models.CreateReservationRequest{Date: "2024-03-14", Time: "25:00"}); err == nil {
		t.Error("bad time accepted")
	}
}

func TestListMirrorsOnlyBoundedUnfilteredRanges(t *testing.T) {
	mirror := &memoryMirror{}
	svc := newTestService(&mockReservationAPI{}, mirror, nil)
	_, _ = svc.List(context.Background(), "u1", models.ReservationFilter{From: "2024-03-01", To: "2024-03-31", Status: "PENDING"})
	_, _ = svc.List(context.Background(), "u1", models.ReservationFilter{From: "2024-03-01"})
	if mirror.replaced != 0 {
		t.Fatalf("mirror replaced %d times", mirror.replaced)
	}
	_, _ = svc.List(context.Background(), "u1", models.ReservationFilter{From: "2024-03-01", To: "2024-03-31"})
	if mirror.replaced != 1 {
		t.Errorf("mirror replaced %d times, want 1", mirror.replaced)
	}
}

func TestFeedRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	mirror := &memoryMirror{items: []models.Reservation{
		{ID: "r1", Date: "2024-03-14", Time: "10:00", EndTime: "11:30", Status: models.StatusPending, ServiceName: "Corte"},
		{ID: "r2", Date: "2024-03-15", Time: "16:00", Status: models.StatusCancelled},
	}}
	refresher := &mockRefresher{}
	svc := newTestService(&mockReservationAPI{}, mirror, refresher)

	link, err := svc.FeedLink("u1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(link.URL, "https://beu.example/calendar/") || !strings.HasSuffix(link.URL, "/reservations.ics") {
		t.Fatalf("url = %s", link.URL)
	}
	token := strings.TrimSuffix(strings.TrimPrefix(link.URL, "https://beu.example/calendar/"), "/reservations.ics")

	body, err := svc.Feed(context.Background(), token)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(body)
	for _, want := range []string{"BEGIN:VCALENDAR", "UID:r1@beu", "UID:r2@beu", "SUMMARY:Corte", "STATUS:TENTATIVE", "STATUS:CANCELLED", "SUMMARY:Reserva"} {
		if !strings.Contains(doc, want) {
			t.Errorf("feed missing %q", want)
		}
	}
	// Never synced, so a refresh is queued.
	if len(refresher.calls) != 1 {
		t.Errorf("refresh calls = %v", refresher.calls)
	}
}

func TestFeedFreshMirrorSkipsRefresh(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	refresher := &mockRefresher{}
	svc := newTestService(&mockReservationAPI{}, &memoryMirror{synced: thursday.Add(-time.Minute)}, refresher)
	token, err := utils.GenerateToken("u1", utils.FeedAudience, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Feed(context.Background(), token); err != nil {
		t.Fatal(err)
	}
	if len(refresher.calls) != 0 {
		t.Errorf("refresh queued for a fresh mirror: %v", refresher.calls)
	}
}

func TestFeedRejectsBearerTokens(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	svc := newTestService(&mockReservationAPI{}, &memoryMirror{}, nil)
	token, err := utils.GenerateToken("u1", "api", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Feed(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestEventBoundsFallback(t *testing.T) {
	svc := newTestService(&mockReservationAPI{}, &memoryMirror{}, nil)
	start, end, ok := svc.eventBounds(models.Reservation{Date: "2024-03-14", Time: "10:00:00", EndTime: "09:00"})
	if !ok || start.Hour() != 10 || end.Sub(start) != time.Hour {
		t.Errorf("bounds = %s..%s ok=%v", start, end, ok)
	}
	if _, _, ok := svc.eventBounds(models.Reservation{Date: "soon"}); ok {
		t.Error("bad date accepted")
	}
}
