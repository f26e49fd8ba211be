package ports

import (
	"context"

	"frota/internal/domain"
)

// ItemSource loads the WorkItems of one run, in input order
type ItemSource interface {
	Load(ctx context.Context) ([]domain.WorkItem, error)
}
