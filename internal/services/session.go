package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// Locator keys the session manager reads from the portal profile
const (
	KeyLoginPassword = "login_password"
	KeyLoginSubmit   = "login_submit"
	KeyLoginUsername = "login_username"
	KeyLogoutMenu    = "logout_menu"
	KeyLogoutSignOut = "logout_sign_out"
	KeyOverlay       = "overlay"
)

// SessionController is what the batch processor needs from a session manager
type SessionController interface {
	Ensure(ctx context.Context, client string) (*domain.Session, error)
	Invalidate(ctx context.Context)
	Refresh(ctx context.Context) error
	Verify(ctx context.Context) bool
}

// SessionConfig tunes login behaviour
type SessionConfig struct {
	LoginTimeout time.Duration
	Mode         domain.LoginMode
}

// SessionManager owns the single current Session
type SessionManager struct {
	cfg         SessionConfig
	credentials ports.CredentialStore
	current     *domain.Session
	now         func() time.Time
	operator    ports.Operator
	page        ports.Page
	performer   *Performer
	portal      domain.Portal
}

// NewSessionManager validates the portal for the chosen login mode
func NewSessionManager(
	page ports.Page,
	performer *Performer,
	portal domain.Portal,
	credentials ports.CredentialStore,
	operator ports.Operator,
	cfg SessionConfig,
) (*SessionManager, error) {
	if cfg.Mode == "" {
		cfg.Mode = domain.LoginManual
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = 60 * time.Second
	}
	if cfg.Mode == domain.LoginAuto {
		if portal.LoginURL == "" {
			return nil, fmt.Errorf("%w: portal %s has no login url for automatic login", domain.ErrConfiguration, portal.Name)
		}
		if err := portal.Require(KeyLoginUsername, KeyLoginPassword, KeyLoginSubmit); err != nil {
			return nil, err
		}
		if credentials == nil {
			return nil, fmt.Errorf("%w: automatic login needs a credentials file", domain.ErrConfiguration)
		}
	}
	return &SessionManager{
		cfg:         cfg,
		credentials: credentials,
		now:         time.Now,
		operator:    operator,
		page:        page,
		performer:   performer,
		portal:      portal,
	}, nil
}

// Current returns the current session, possibly nil or invalid
func (m *SessionManager) Current() *domain.Session {
	return m.current
}

// Ensure returns a valid session for client, logging out and in when needed
func (m *SessionManager) Ensure(ctx context.Context, client string) (*domain.Session, error) {
	if m.current.Matches(client) {
		return m.current, nil
	}

	if m.current != nil && m.current.Valid {
		logging.Logger.Info("Switching client", "from", m.current.Client, "to", client)
		m.Invalidate(ctx)
	}

	logging.Logger.Info("Logging in", "client", client, "mode", m.cfg.Mode, "portal", m.portal.Name)
	var err error
	if m.cfg.Mode == domain.LoginAuto {
		if creds, ok := m.credentials.Lookup(client); ok {
			err = m.loginAuto(ctx, creds)
		} else {
			// clients missing from the credentials file are logged in by hand
			logging.Logger.Warn("No stored credentials, falling back to manual login", "client", client)
			err = m.loginManual(ctx, client)
		}
	} else {
		err = m.loginManual(ctx, client)
	}
	if err != nil {
		logging.Logger.Error("Login failed", "client", client, "error", err)
		return nil, fmt.Errorf("login for %q: %w", client, err)
	}

	m.current = domain.NewSession(client, m.now())
	logging.Logger.Info("Session established", "client", client, "session", m.current.ID)
	return m.current, nil
}

func (m *SessionManager) loginAuto(ctx context.Context, creds domain.Credentials) error {
	if err := m.page.Goto(ctx, m.portal.LoginURL); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}

	steps := []struct {
		key   string
		op    Operation
		value string
	}{
		{KeyLoginUsername, OpSetText, creds.Username},
		{KeyLoginPassword, OpSetText, creds.Password},
		{KeyLoginSubmit, OpClick, ""},
	}
	for _, s := range steps {
		res := m.performer.Perform(ctx, m.page, m.portal.Candidates(s.key), s.op, s.value, 0)
		if !res.OK() {
			return fmt.Errorf("%w: %s: %s", domain.ErrAuthenticationLost, s.key, res.Message)
		}
	}

	return m.waitForApp(ctx)
}

func (m *SessionManager) loginManual(ctx context.Context, client string) error {
	url := m.portal.LoginURL
	if url == "" {
		url = m.portal.BaseURL
	}
	if url != "" {
		if err := m.page.Goto(ctx, url); err != nil {
			return fmt.Errorf("open login page: %w", err)
		}
	}
	if err := m.operator.WaitForLogin(ctx, client, url); err != nil {
		return err
	}
	if !m.Verify(ctx) {
		return fmt.Errorf("%w: still on a login surface (%s)", domain.ErrAuthenticationLost, m.page.URL())
	}
	return nil
}

// waitForApp polls the URL until it reaches the application after login
func (m *SessionManager) waitForApp(ctx context.Context) error {
	deadline := m.now().Add(m.cfg.LoginTimeout)
	for {
		url := m.page.URL()
		if m.portal.SuccessURL != "" && strings.Contains(url, m.portal.SuccessURL) {
			return nil
		}
		if m.portal.SuccessURL == "" && m.Verify(ctx) {
			return nil
		}
		if !m.now().Before(deadline) {
			return fmt.Errorf("%w: login did not reach the application, stuck at %s", domain.ErrAuthenticationLost, url)
		}
		if err := m.performer.Sleep(ctx, m.performer.Config().PollInterval); err != nil {
			return err
		}
	}
}

// Invalidate logs out (best effort) and drops the current session
func (m *SessionManager) Invalidate(ctx context.Context) {
	if m.current == nil {
		return
	}
	if m.current.Valid && m.portal.HasLocators(KeyLogoutMenu, KeyLogoutSignOut) {
		timeout := m.performer.Config().DefaultTimeout
		menu := m.performer.Perform(ctx, m.page, m.portal.Candidates(KeyLogoutMenu), OpClick, "", timeout)
		if menu.OK() {
			signOut := m.performer.Perform(ctx, m.page, m.portal.Candidates(KeyLogoutSignOut), OpClick, "", timeout)
			if !signOut.OK() {
				logging.Logger.Warn("Logout did not complete", "client", m.current.Client, "error", signOut.Message)
			}
		} else {
			logging.Logger.Warn("Logout menu not available", "client", m.current.Client, "error", menu.Message)
		}
	}
	logging.Logger.Info("Session invalidated", "client", m.current.Client, "session", m.current.ID)
	m.current.Invalidate()
}

// Refresh reloads the page and clears the navigation flag
func (m *SessionManager) Refresh(ctx context.Context) error {
	logging.Logger.Info("Refreshing page")
	if err := m.page.Reload(ctx); err != nil {
		return fmt.Errorf("reload page: %w", err)
	}
	if overlay := m.portal.Candidates(KeyOverlay); len(overlay) > 0 {
		m.performer.Perform(ctx, m.page, overlay, OpWaitInvisible, "", 0)
	}
	if m.current != nil {
		m.current.Navigated = false
	}
	return nil
}

// Verify checks the page still looks authenticated. A failed check
// invalidates the current session without attempting a logout.
func (m *SessionManager) Verify(ctx context.Context) bool {
	ok, reason := m.authenticated(ctx)
	if !ok {
		logging.Logger.Warn("Session no longer authenticated", "reason", reason, "url", m.page.URL())
		if m.current != nil {
			m.current.Invalidate()
		}
	}
	return ok
}

func (m *SessionManager) authenticated(ctx context.Context) (bool, string) {
	url := strings.ToLower(m.page.URL())
	for _, marker := range m.portal.LoginMarkers {
		if marker != "" && strings.Contains(url, strings.ToLower(marker)) {
			return false, "login marker " + marker + " in url"
		}
	}
	if prefix := strings.ToLower(m.portal.AppPrefix); prefix != "" && !strings.HasPrefix(url, prefix) {
		return false, "url outside application"
	}
	if els, err := queryCandidates(ctx, m.page, m.portal.Candidates(KeyLoginPassword)); err == nil {
		for _, el := range els {
			if visible, err := el.Visible(ctx); err == nil && visible {
				return false, "password field visible"
			}
		}
	}
	return true, ""
}
