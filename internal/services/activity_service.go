package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskflow/internal/models"
	"taskflow/internal/repositories"
)

// Broadcaster forwards appended activity entries to an external feed.
type Broadcaster interface {
	Broadcast(ctx context.Context, a models.Activity) error
}

type ActivityService interface {
	ListRecent(ctx context.Context) ([]models.Activity, error)
	Append(ctx context.Context, in models.ActivityInput) (*models.Activity, error)
	Clear(ctx context.Context) (int64, error)
	// Record appends an entry on behalf of another mutation. Failures are
	// logged and swallowed.
	Record(ctx context.Context, action, taskTitle string)
}

type activityService struct {
	repo        repositories.ActivityRepository
	broadcaster Broadcaster
	log         *zap.Logger
	now         func() time.Time
}

// NewActivityService wires the activity log. broadcaster may be nil.
func NewActivityService(repo repositories.ActivityRepository, broadcaster Broadcaster, log *zap.Logger) ActivityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &activityService{
		repo:        repo,
		broadcaster: broadcaster,
		log:         log.Named("activity"),
		now:         time.Now,
	}
}

func (s *activityService) ListRecent(ctx context.Context) ([]models.Activity, error) {
	return s.repo.ListRecent(ctx, models.RecentActivityLimit)
}

func (s *activityService) Append(ctx context.Context, in models.ActivityInput) (*models.Activity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	a := &models.Activity{
		Action:    strings.TrimSpace(in.Action),
		TaskTitle: in.TaskTitle,
		Timestamp: s.now().UTC(),
	}
	if in.Timestamp != nil {
		a.Timestamp = in.Timestamp.UTC()
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.broadcast(ctx, *a)
	return a, nil
}

func (s *activityService) Clear(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("[activity][clear] removed entries", zap.Int64("count", n))
	return n, nil
}

func (s *activityService) Record(ctx context.Context, action, taskTitle string) {
	if _, err := s.Append(ctx, models.ActivityInput{Action: action, TaskTitle: taskTitle}); err != nil {
		s.log.Warn("[activity][record] failed",
			zap.String("action", action),
			zap.String("task_title", taskTitle),
			zap.Error(err),
		)
	}
}

func (s *activityService) broadcast(ctx context.Context, a models.Activity) {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Broadcast(ctx, a); err != nil {
		s.log.Warn("[activity][broadcast] failed", zap.String("action", a.Action), zap.Error(err))
	}
}
