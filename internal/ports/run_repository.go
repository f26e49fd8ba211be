package ports

import (
	"context"

	"frota/internal/domain"
)

// RunReader reads stored runs
type RunReader interface {
	GetRun(ctx context.Context, id string) (*domain.BatchReport, error)
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
}

// RunWriter stores and deletes runs
type RunWriter interface {
	DeleteRun(ctx context.Context, id string) error
	SaveRun(ctx context.Context, report *domain.BatchReport) error
}

// RunRepository is the composite interface
type RunRepository interface {
	RunReader
	RunWriter
	Close() error
}
