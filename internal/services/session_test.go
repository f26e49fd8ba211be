package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"frota/internal/domain"
	portsmocks "frota/internal/ports/mocks"
	"frota/internal/testutil/fakeweb"
)

const (
	testLoginURL = "https://fleet.example/app/login"
	testAppURL   = "https://fleet.example/app/workspace/map"
)

func testPortal() domain.Portal {
	return domain.Portal{
		AppPrefix:    "https://fleet.example/app/",
		LoginMarkers: []string{"login"},
		LoginURL:     testLoginURL,
		Name:         "fleet",
		SuccessURL:   "workspace/map",
		Locators: map[string][]domain.Locator{
			KeyLoginUsername: {domain.ByID("Username")},
			KeyLoginPassword: {domain.ByID("password-input")},
			KeyLoginSubmit:   {domain.ByID("login")},
			KeyLogoutMenu:    {domain.ByID("userDropDownMenuToggle")},
			KeyLogoutSignOut: {domain.ByID("userMenuSignOut")},
			KeyOverlay:       {domain.ByCSS("div.form-overlay.visible")},
		},
	}
}

// fakePortalPage renders a login form that leads to the app, and a user menu that logs out
func fakePortalPage() *fakeweb.Page {
	page := fakeweb.NewPage("about:blank")
	loginForm := func() {
		page.Set(domain.ByID("Username"), fakeweb.NewElement("username"))
		page.Set(domain.ByID("password-input"), fakeweb.NewElement("password"))
		submit := fakeweb.NewElement("submit")
		submit.OnClick = func() {
			page.Clear(domain.ByID("password-input"))
			page.Navigate(testAppURL)
		}
		page.Set(domain.ByID("login"), submit)
	}
	page.OnGoto = func(url string) {
		if url == testLoginURL {
			loginForm()
		}
	}
	page.Set(domain.ByID("userDropDownMenuToggle"), fakeweb.NewElement("user-menu"))
	signOut := fakeweb.NewElement("sign-out")
	signOut.OnClick = func() { page.Navigate(testLoginURL) }
	page.Set(domain.ByID("userMenuSignOut"), signOut)
	return page
}

func newTestSessionManager(t *testing.T, page *fakeweb.Page, mode domain.LoginMode) (*SessionManager, *portsmocks.MockCredentialStore, *portsmocks.MockOperator) {
	creds := portsmocks.NewMockCredentialStore(t)
	operator := portsmocks.NewMockOperator(t)
	clock := newTestClock()
	m, err := NewSessionManager(page, newTestPerformer(clock), testPortal(), creds, operator, SessionConfig{Mode: mode})
	require.NoError(t, err)
	m.now = clock.Now
	return m, creds, operator
}

func TestSessionManager_EnsureReusesSession(t *testing.T) {
	page := fakePortalPage()
	m, creds, _ := newTestSessionManager(t, page, domain.LoginAuto)
	creds.EXPECT().Lookup("ACME").Return(domain.Credentials{Username: "ops", Password: "secret"}, true).Once()

	first, err := m.Ensure(context.Background(), "ACME")
	require.NoError(t, err)
	second, err := m.Ensure(context.Background(), "ACME")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, page.Count("goto "+testLoginURL))
	assert.Equal(t, 1, page.Count("fill username:ops"))
	assert.Equal(t, 1, page.Count("fill password:secret"))
	assert.Equal(t, 0, page.Count("click sign-out"))
}

func TestSessionManager_ClientChangeLogsOutOnce(t *testing.T) {
	page := fakePortalPage()
	m, creds, _ := newTestSessionManager(t, page, domain.LoginAuto)
	creds.EXPECT().Lookup(mock.Anything).Return(domain.Credentials{Username: "ops", Password: "secret"}, true)

	acme, err := m.Ensure(context.Background(), "ACME")
	require.NoError(t, err)
	_, err = m.Ensure(context.Background(), "ACME")
	require.NoError(t, err)
	other, err := m.Ensure(context.Background(), "Other")
	require.NoError(t, err)

	assert.False(t, acme.Valid)
	assert.True(t, other.Valid)
	assert.Equal(t, "Other", m.Current().Client)
	assert.Equal(t, 1, page.Count("click sign-out"))
	assert.Equal(t, 2, page.Count("goto "+testLoginURL))
}

func TestSessionManager_MissingCredentialsFallsBackToManual(t *testing.T) {
	page := fakePortalPage()
	m, creds, operator := newTestSessionManager(t, page, domain.LoginAuto)
	creds.EXPECT().Lookup("Nobody").Return(domain.Credentials{}, false)
	operator.EXPECT().WaitForLogin(mock.Anything, "Nobody", testLoginURL).
		Run(func(ctx context.Context, client, url string) {
			page.Clear(domain.ByID("password-input"))
			page.Navigate(testAppURL)
		}).
		Return(nil)

	sess, err := m.Ensure(context.Background(), "Nobody")

	require.NoError(t, err)
	assert.Equal(t, "Nobody", sess.Client)
	for _, a := range page.Actions {
		assert.NotContains(t, a, "fill", "manual login must not type credentials")
	}
}

func TestSessionManager_MissingCredentialsOperatorDeclines(t *testing.T) {
	page := fakePortalPage()
	m, creds, operator := newTestSessionManager(t, page, domain.LoginAuto)
	creds.EXPECT().Lookup("Nobody").Return(domain.Credentials{}, false)
	operator.EXPECT().WaitForLogin(mock.Anything, "Nobody", testLoginURL).
		Return(domain.ErrAuthenticationLost)

	sess, err := m.Ensure(context.Background(), "Nobody")

	assert.Nil(t, sess)
	assert.ErrorIs(t, err, domain.ErrAuthenticationLost)
	assert.Nil(t, m.Current())
}

func TestSessionManager_LoginNeverReachesApp(t *testing.T) {
	page := fakePortalPage()
	m, creds, _ := newTestSessionManager(t, page, domain.LoginAuto)
	creds.EXPECT().Lookup("ACME").Return(domain.Credentials{Username: "ops", Password: "wrong"}, true)
	page.OnGoto = func(string) {
		page.Set(domain.ByID("Username"), fakeweb.NewElement("username"))
		page.Set(domain.ByID("password-input"), fakeweb.NewElement("password"))
		page.Set(domain.ByID("login"), fakeweb.NewElement("submit"))
	}

	_, err := m.Ensure(context.Background(), "ACME")

	assert.ErrorIs(t, err, domain.ErrAuthenticationLost)
	assert.Nil(t, m.Current())
}

func TestSessionManager_ManualLogin(t *testing.T) {
	page := fakePortalPage()
	m, _, operator := newTestSessionManager(t, page, domain.LoginManual)
	operator.EXPECT().WaitForLogin(mock.Anything, "ACME", testLoginURL).
		Run(func(ctx context.Context, client, url string) {
			page.Clear(domain.ByID("password-input"))
			page.Navigate(testAppURL)
		}).
		Return(nil)

	sess, err := m.Ensure(context.Background(), "ACME")

	require.NoError(t, err)
	assert.True(t, sess.Valid)
}

func TestSessionManager_ManualLoginStillOnLoginPage(t *testing.T) {
	page := fakePortalPage()
	m, _, operator := newTestSessionManager(t, page, domain.LoginManual)
	operator.EXPECT().WaitForLogin(mock.Anything, "ACME", testLoginURL).Return(nil)

	_, err := m.Ensure(context.Background(), "ACME")

	assert.ErrorIs(t, err, domain.ErrAuthenticationLost)
}

func TestSessionManager_Verify(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		password bool
		expected bool
	}{
		{"inside app", testAppURL, false, true},
		{"login marker", "https://fleet.example/app/login?next=map", false, false},
		{"outside app", "https://sso.example/authorize", false, false},
		{"password field", testAppURL, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := fakeweb.NewPage(tt.url)
			if tt.password {
				page.Set(domain.ByID("password-input"), fakeweb.NewElement("password"))
			}
			m, _, _ := newTestSessionManager(t, page, domain.LoginManual)
			m.current = domain.NewSession("ACME", m.now())

			assert.Equal(t, tt.expected, m.Verify(context.Background()))
			assert.Equal(t, tt.expected, m.current.Valid)
		})
	}
}

func TestSessionManager_RefreshClearsNavigation(t *testing.T) {
	page := fakeweb.NewPage(testAppURL)
	m, _, _ := newTestSessionManager(t, page, domain.LoginManual)
	m.current = domain.NewSession("ACME", m.now())
	m.current.Navigated = true

	require.NoError(t, m.Refresh(context.Background()))

	assert.False(t, m.current.Navigated)
	assert.True(t, m.current.Valid)
	assert.Equal(t, 1, page.Count("reload"))
}

func TestNewSessionManager_AutoNeedsLoginLocators(t *testing.T) {
	portal := testPortal()
	delete(portal.Locators, KeyLoginSubmit)

	_, err := NewSessionManager(fakeweb.NewPage(""), newTestPerformer(newTestClock()), portal,
		portsmocks.NewMockCredentialStore(t), portsmocks.NewMockOperator(t), SessionConfig{Mode: domain.LoginAuto})

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
