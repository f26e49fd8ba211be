package operator

import (
	"context"
	"fmt"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// Unattended answers every prompt without a human, for --yes runs.
// It cannot log in by hand nor read typed identifiers.
type Unattended struct{}

var _ ports.Operator = Unattended{}

func (Unattended) ConfirmStart(ctx context.Context, summary string) (bool, error) {
	logging.Logger.Info("Starting without confirmation", "plan", summary)
	return true, ctx.Err()
}

func (Unattended) ConfirmFinish(ctx context.Context, summary string) error {
	return nil
}

func (Unattended) ReadIdentifiers(ctx context.Context, title string) ([]string, error) {
	return nil, fmt.Errorf("%w: %s must come from an input file in unattended mode", domain.ErrConfiguration, title)
}

func (Unattended) WaitForLogin(ctx context.Context, client, url string) error {
	return fmt.Errorf("%w: manual login for %s is not possible in unattended mode", domain.ErrConfiguration, displayClient(client))
}
