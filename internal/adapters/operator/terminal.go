// Package operator talks to the person running frota
package operator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"frota/internal/adapters/sound"
	"frota/internal/logging"
	"frota/internal/ports"
	"frota/internal/theme"
)

// ErrCancelled is returned when the operator backs out of a prompt
var ErrCancelled = errors.New("cancelled by operator")

// Terminal asks questions with huh forms on the controlling terminal
type Terminal struct {
	out   io.Writer
	sound ports.SoundPlayer
}

var _ ports.Operator = (*Terminal)(nil)

// NewTerminal creates a Terminal operator that prints notices to out and
// plays a sound whenever it starts waiting on the operator
func NewTerminal(out io.Writer, sound ports.SoundPlayer) *Terminal {
	return &Terminal{out: out, sound: sound}
}

// ConfirmStart shows the run plan and asks whether to go ahead
func (t *Terminal) ConfirmStart(ctx context.Context, summary string) (bool, error) {
	start := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Start run?").
				Description(summary).
				Affirmative("Start").
				Negative("Cancel").
				Value(&start),
		),
	)
	if err := run(ctx, form); err != nil {
		if errors.Is(err, ErrCancelled) {
			return false, nil
		}
		return false, err
	}
	logging.Logger.Info("Operator answered start prompt", "start", start)
	return start, nil
}

// ConfirmFinish keeps the browser open until the operator has read the summary
func (t *Terminal) ConfirmFinish(ctx context.Context, summary string) error {
	t.alert(sound.EventFinished)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Run finished").
				Description(summary).
				Next(true).
				NextLabel("Close browser"),
		),
	)
	err := run(ctx, form)
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	return err
}

// ReadIdentifiers opens a text area; identifiers may be separated by lines,
// commas, semicolons or tabs so a pasted spreadsheet column works as is.
func (t *Terminal) ReadIdentifiers(ctx context.Context, title string) ([]string, error) {
	var text string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description("One per line. Paste a spreadsheet column or type them.").
				CharLimit(0).
				Value(&text),
		),
	)
	if err := run(ctx, form); err != nil {
		return nil, err
	}
	ids := SplitIdentifiers(text)
	logging.Logger.Info("Identifiers entered", "count", len(ids))
	return ids, nil
}

// WaitForLogin shows a spinner until the operator confirms the login with Enter
func (t *Terminal) WaitForLogin(ctx context.Context, client, url string) error {
	t.alert(sound.EventLogin)
	fmt.Fprintln(t.out, theme.SubtitleStyle.Render(fmt.Sprintf("Manual login for %s", displayClient(client))))
	return waitForLogin(ctx, client, url)
}

// SplitIdentifiers breaks pasted text into trimmed, non-empty identifiers
func SplitIdentifiers(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';' || r == '\t'
	})
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			ids = append(ids, f)
		}
	}
	return ids
}

func (t *Terminal) alert(event string) {
	if t.sound == nil {
		return
	}
	if err := t.sound.PlaySoundForEvent(event); err != nil {
		logging.Logger.Debug("Failed to play sound", "event", event, "error", err)
	}
}

func run(ctx context.Context, form *huh.Form) error {
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

func displayClient(client string) string {
	if client == "" {
		return "the portal"
	}
	return client
}
