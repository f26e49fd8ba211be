package operator

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"frota/internal/theme"
)

// loginWaitModel spins until Enter (logged in) or Esc (give up)
type loginWaitModel struct {
	cancelled bool
	client    string
	done      bool
	spinner   spinner.Model
	url       string
}

func newLoginWaitModel(client, url string) loginWaitModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle
	return loginWaitModel{client: client, spinner: s, url: url}
}

func (m loginWaitModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m loginWaitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m loginWaitModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("\n%s Log in to %s at %s in the browser window\n\n%s\n",
		m.spinner.View(),
		theme.HighlightStyle.Render(displayClient(m.client)),
		theme.MutedStyle.Render(m.url),
		theme.LabelStyle.Render("enter: logged in • esc: give up"))
}

func waitForLogin(ctx context.Context, client, url string) error {
	p := tea.NewProgram(newLoginWaitModel(client, url), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("login prompt failed: %w", err)
	}
	if m, ok := final.(loginWaitModel); ok && m.cancelled {
		return fmt.Errorf("%w: manual login for %s", ErrCancelled, displayClient(client))
	}
	return nil
}
