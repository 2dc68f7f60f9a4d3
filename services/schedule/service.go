package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beu/apiclient"
	draftRepo "beu/database/repository/draft"
	"beu/models"
	"beu/services/calendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDraftForbidden is returned when a draft belongs to another user.
var ErrDraftForbidden = errors.New("schedule draft belongs to another user")

// AvailabilityAPI is the part of the backend client the editor needs.
type AvailabilityAPI interface {
	GetAvailability(ctx context.Context) ([]models.DaySchedule, error)
	SaveAvailability(ctx context.Context, days []models.DaySchedule) error
}

// SyncEnqueuer schedules an external calendar sync after a save.
type SyncEnqueuer interface {
	EnqueueCalendarSync(ctx context.Context, userID, reason string) error
}

// ScheduleService runs the availability editor against Redis drafts.
type ScheduleService interface {
	CreateDraft(ctx context.Context, userID string) (*models.ScheduleDraft, error)
	GetDraft(ctx context.Context, userID, id string) (*models.ScheduleDraft, error)
	ApplyEdits(ctx context.Context, userID, id string, edits []models.ScheduleEdit) (*models.ScheduleDraft, error)
	SaveDraft(ctx context.Context, userID, id string) ([]models.DaySchedule, error)
	Validate(days []models.DaySchedule) ([]models.DaySchedule, error)
}

type DefaultScheduleService struct {
	API    AvailabilityAPI
	Drafts draftRepo.DraftRepository
	Sync   SyncEnqueuer
	Locale *calendar.Locale
	Logger *zap.Logger
	Now    func() time.Time
}

func NewDefaultScheduleService(api AvailabilityAPI, drafts draftRepo.DraftRepository, sync SyncEnqueuer, locale *calendar.Locale, logger *zap.Logger) *DefaultScheduleService {
	return &DefaultScheduleService{
		API:    api,
		Drafts: drafts,
		Sync:   sync,
		Locale: locale,
		Logger: logger,
		Now:    time.Now,
	}
}

// CreateDraft opens a draft seeded from the stored availability. A user with
// no availability yet starts from an empty week.
func (s *DefaultScheduleService) CreateDraft(ctx context.Context, userID string) (*models.ScheduleDraft, error) {
	current, err := s.API.GetAvailability(ctx)
	if err != nil && !apiclient.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	draft := models.ScheduleDraft{
		ID:        uuid.New().String(),
		OwnerID:   userID,
		Days:      NewEditor(current, s.Locale).Days(),
		UpdatedAt: s.Now().Unix(),
	}
	if err := s.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.Logger.Debug("Schedule draft created", zap.String("userID", userID), zap.String("draftID", draft.ID))
	return &draft, nil
}

func (s *DefaultScheduleService) GetDraft(ctx context.Context, userID, id string) (*models.ScheduleDraft, error) {
	draft, err := s.Drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.OwnerID != userID {
		return nil, ErrDraftForbidden
	}
	return draft, nil
}

// ApplyEdits applies edits in order. Nothing is stored if any edit fails.
func (s *DefaultScheduleService) ApplyEdits(ctx context.Context, userID, id string, edits []models.ScheduleEdit) (*models.ScheduleDraft, error) {
	draft, err := s.GetDraft(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	editor := NewEditor(draft.Days, s.Locale)
	for i, edit := range edits {
		if err := editor.Apply(edit); err != nil {
			return nil, fmt.Errorf("edit %d (%s): %w", i, edit.Op, err)
		}
	}
	draft.Days = editor.Days()
	draft.UpdatedAt = s.Now().Unix()
	if err := s.Drafts.Save(ctx, *draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SaveDraft validates the draft, stores it on the backend and queues a
// calendar sync. The draft is discarded once saved.
func (s *DefaultScheduleService) SaveDraft(ctx context.Context, userID, id string) ([]models.DaySchedule, error) {
	draft, err := s.GetDraft(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	saved, err := NewEditor(draft.Days, s.Locale).Save(ctx, s.API.SaveAvailability)
	if err != nil {
		return nil, err
	}

	if err := s.Drafts.Delete(ctx, id); err != nil {
		s.Logger.Warn("Failed to discard saved schedule draft", zap.String("draftID", id), zap.Error(err))
	}
	if s.Sync != nil {
		if err := s.Sync.EnqueueCalendarSync(ctx, userID, "availability_saved"); err != nil {
			s.Logger.Error("Failed to enqueue calendar sync", zap.String("userID", userID), zap.Error(err))
		}
	}
	s.Logger.Info("Availability saved", zap.String("userID", userID), zap.Int("availableDays", len(saved)))
	return saved, nil
}

// Validate runs save-time validation on a full week without storing it.
func (s *DefaultScheduleService) Validate(days []models.DaySchedule) ([]models.DaySchedule, error) {
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek >= DaysPerWeek {
			return nil, ErrDayOutOfRange
		}
		if seen[d.DayOfWeek] {
			return nil, fmt.Errorf("day %d: %w", d.DayOfWeek, ErrDuplicateDay)
		}
		seen[d.DayOfWeek] = true
		if !d.IsAvailable {
			continue
		}
		for _, slot := range d.TimeSlots {
			if !ValidClock(slot.StartTime) || !ValidClock(slot.EndTime) {
				return nil, fmt.Errorf("%s-%s: %w", slot.StartTime, slot.EndTime, ErrInvalidTime)
			}
		}
	}
	return NewEditor(days, s.Locale).Validate()
}
