package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luoteng/stuinfo-backend/internal/model"
	"github.com/luoteng/stuinfo-backend/internal/repository"
)

// StudentService handles submission and retrieval of registration records.
type StudentService struct {
	repo *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(repo *repository.StudentRepository) *StudentService {
	return &StudentService{repo: repo}
}

// Submit stamps a generated id and the server-side submission time, then
// persists the record. Duplicate-key errors from the repository pass
// through unchanged for the handler to map.
func (s *StudentService) Submit(ctx context.Context, req *model.SubmitStudentRequest) (*model.StudentRecord, error) {
	rec := req.Record()
	rec.ID = uuid.New().String()
	rec.SubmitTime = time.Now().UTC()

	if err := s.repo.Insert(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns the filtered records newest-first together with the
// aggregates. "Today" is the server's local calendar day.
func (s *StudentService) List(ctx context.Context, filter model.StudentFilter) ([]model.StudentRecord, *model.StudentStats, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := s.repo.Stats(ctx, dayStart)
	if err != nil {
		return nil, nil, err
	}
	return records, stats, nil
}

// GetByID returns one record or repository.ErrStudentNotFound.
func (s *StudentService) GetByID(ctx context.Context, id string) (*model.StudentRecord, error) {
	return s.repo.GetByID(ctx, id)
}
