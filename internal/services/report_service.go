package services

import (
	"context"
	"io"
	"time"

	"taskflow/internal/analytics"
	"taskflow/internal/models"
	"taskflow/internal/pdf"
	"taskflow/internal/repositories"
)

type ReportService interface {
	Dashboard(ctx context.Context, trendDays int) (*analytics.Dashboard, error)
	WritePDF(ctx context.Context, w io.Writer) error
}

type reportService struct {
	tasks      repositories.TaskRepository
	users      repositories.UserRepository
	activities repositories.ActivityRepository
	generator  pdf.Generator
	now        func() time.Time
}

func NewReportService(store *repositories.Store, generator pdf.Generator) ReportService {
	return &reportService{
		tasks:      store.Tasks,
		users:      store.Users,
		activities: store.Activities,
		generator:  generator,
		now:        time.Now,
	}
}

type snapshot struct {
	tasks      []models.Task
	users      []models.User
	activities []models.Activity
}

func (s *reportService) load(ctx context.Context) (*snapshot, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	acts, err := s.activities.ListRecent(ctx, models.RecentActivityLimit)
	if err != nil {
		return nil, err
	}
	return &snapshot{tasks: tasks, users: users, activities: acts}, nil
}

func (s *reportService) Dashboard(ctx context.Context, trendDays int) (*analytics.Dashboard, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	d := analytics.Build(snap.tasks, snap.activities, snap.users, trendDays, s.now())
	return &d, nil
}

func (s *reportService) WritePDF(ctx context.Context, w io.Writer) error {
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	d := analytics.Build(snap.tasks, snap.activities, snap.users, 7, now)
	return s.generator.GenerateReport(w, pdf.ReportData{
		GeneratedAt: now,
		Summary:     d.Summary,
		Breakdown:   d.Distribution,
		Trend:       d.Trend,
		Upcoming:    d.Upcoming,
		Focus:       d.Focus,
		Team:        d.Team,
		Tasks:       snap.tasks,
	})
}
