package ports

import "context"

// Operator is the human at the keyboard.
// Every method blocks until the operator answers or ctx is cancelled.
type Operator interface {
	// ConfirmFinish is shown before the browser is released
	ConfirmFinish(ctx context.Context, summary string) error
	// ConfirmStart asks whether a run should begin
	ConfirmStart(ctx context.Context, summary string) (bool, error)
	// ReadIdentifiers collects identifiers typed or pasted by the operator
	ReadIdentifiers(ctx context.Context, title string) ([]string, error)
	// WaitForLogin blocks while the operator logs in by hand
	WaitForLogin(ctx context.Context, client, url string) error
}
