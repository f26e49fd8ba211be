package source

import (
	"context"
	"fmt"
	"strings"

	"frota/internal/domain"
	"frota/internal/ports"
)

// TypedSource asks the operator to type or paste identifiers, one per line
type TypedSource struct {
	client   string
	operator ports.Operator
	title    string
}

var _ ports.ItemSource = (*TypedSource)(nil)

// NewTypedSource creates a TypedSource; client is stamped on every item
func NewTypedSource(operator ports.Operator, title, client string) *TypedSource {
	return &TypedSource{client: client, operator: operator, title: title}
}

// Load implements ports.ItemSource
func (s *TypedSource) Load(ctx context.Context) ([]domain.WorkItem, error) {
	ids, err := s.operator.ReadIdentifiers(ctx, s.title)
	if err != nil {
		return nil, fmt.Errorf("failed to read identifiers: %w", err)
	}

	items := make([]domain.WorkItem, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		item := domain.NewWorkItem(len(items)+1, id)
		item.Client = s.client
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no identifiers entered", domain.ErrConfiguration)
	}
	return items, nil
}
