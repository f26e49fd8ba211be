package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"frota/internal/config"
	"frota/internal/domain"
	"frota/internal/ports"
	"frota/internal/ports/mocks"
	"frota/internal/services"
	"frota/internal/testutil/fakeweb"
)

func noEnv(string) (string, bool) { return "", false }

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestResolve_Defaults(t *testing.T) {
	t.Setenv("FROTA_HOME", t.TempDir())

	cfg, err := (&RunFlags{}).resolve(&config.Settings{}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, config.DriverPlaywright, cfg.driver)
	assert.Equal(t, domain.LoginManual, cfg.loginMode)
	assert.Equal(t, domain.StaleVerify, cfg.stalePolicy)
	assert.Equal(t, services.DefaultBatchConfig().BatchSize, cfg.batch.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.batch.Pacing)
	assert.False(t, cfg.browser.Headless)
	assert.NotEmpty(t, cfg.browser.UserData)
	assert.NotEmpty(t, cfg.credentials)
	assert.NotEmpty(t, cfg.reportDir)
}

func TestResolve_SettingsApplyUnderDefaults(t *testing.T) {
	t.Setenv("FROTA_HOME", t.TempDir())
	s := &config.Settings{
		BatchSize:             intPtr(10),
		DefaultTimeoutSeconds: intPtr(3),
		Driver:                config.DriverRod,
		Headless:              boolPtr(true),
		Login:                 "auto",
		PacingMs:              intPtr(0),
		PollMs:                intPtr(100),
		ProgressEvery:         intPtr(2),
		SlowMoMs:              intPtr(50),
		StalePolicy:           "fail",
	}

	cfg, err := (&RunFlags{}).resolve(s, noEnv)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.batch.BatchSize)
	assert.Equal(t, time.Duration(0), cfg.batch.Pacing)
	assert.Equal(t, 2, cfg.batch.ProgressEvery)
	assert.Equal(t, 3*time.Second, cfg.performer.DefaultTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.performer.PollInterval)
	assert.Equal(t, config.DriverRod, cfg.driver)
	assert.True(t, cfg.browser.Headless)
	assert.Equal(t, 50.0, cfg.browser.SlowMo)
	assert.Equal(t, domain.LoginAuto, cfg.loginMode)
	assert.Equal(t, domain.StaleFail, cfg.stalePolicy)
}

func TestResolve_FlagsAndEnvWinOverSettings(t *testing.T) {
	t.Setenv("FROTA_HOME", t.TempDir())
	s := &config.Settings{BatchSize: intPtr(10), Driver: config.DriverRod, Login: "auto"}

	flags := &RunFlags{BatchSize: 3, Driver: config.DriverPlaywright}
	env := func(key string) (string, bool) {
		return "manual", key == "FROTA_LOGIN"
	}

	cfg, err := flags.resolve(s, env)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.batch.BatchSize)
	assert.Equal(t, config.DriverPlaywright, cfg.driver)
	// kong already put the env value into the flag; an empty flag means the env var was blank
	assert.Equal(t, domain.LoginManual, cfg.loginMode)
}

func TestResolve_Invalid(t *testing.T) {
	t.Setenv("FROTA_HOME", t.TempDir())
	tests := []struct {
		name  string
		flags RunFlags
	}{
		{"driver", RunFlags{Driver: "selenium"}},
		{"login", RunFlags{Login: "sso"}},
		{"stale policy", RunFlags{StalePolicy: "ignore"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.resolve(&config.Settings{}, noEnv)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestLoadCredentials_OnlyForAutoLogin(t *testing.T) {
	store, err := loadCredentials(runConfig{loginMode: domain.LoginManual, credentials: "/nonexistent"})
	require.NoError(t, err)
	assert.Nil(t, store)

	path := filepath.Join(t.TempDir(), "credenciais.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clientes":[{"nome":"Acme","user":"u","senha":"p"}]}`), 0600))
	store, err = loadCredentials(runConfig{loginMode: domain.LoginAuto, credentials: path})
	require.NoError(t, err)
	creds, ok := store.Lookup("Acme")
	require.True(t, ok)
	assert.Equal(t, "u", creds.Username)
}

func TestLoadItems_TypedStampsClient(t *testing.T) {
	op := mocks.NewMockOperator(t)
	op.EXPECT().ReadIdentifiers(mock.Anything, "Chassis").Return([]string{"9BW1", "9BW2"}, nil)

	f := &RunFlags{Client: "acme"}
	items, err := f.loadItems(context.Background(), op, runRequest{title: "Chassis", workflow: domain.WorkflowDeinstall})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "acme", items[0].Client)
	assert.Equal(t, "acme", items[1].Client)
}

func TestLoadItems_RequiredColumnsNeedAFile(t *testing.T) {
	f := &RunFlags{}
	_, err := f.loadItems(context.Background(), mocks.NewMockOperator(t), runRequest{
		required: []string{domain.FieldOdometer},
		workflow: domain.WorkflowOdometer,
	})
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "odometer")
}

func TestLoadItems_FromCSVKeepsRowClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID,CLIENTE\n1,Beta\n2,\n"), 0644))

	f := &RunFlags{Input: path, Client: "acme"}
	items, err := f.loadItems(context.Background(), mocks.NewMockOperator(t), runRequest{workflow: domain.WorkflowGroupAdd})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Beta", items[0].Client)
	assert.Equal(t, "acme", items[1].Client)
}

func TestRequireClients(t *testing.T) {
	a := domain.NewWorkItem(2, "A")
	a.Client = "acme"
	b := domain.NewWorkItem(3, "B")

	assert.NoError(t, requireClients([]domain.WorkItem{a}))

	err := requireClients([]domain.WorkItem{a, b})
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), ": 3")
}

func TestRequireUnattendedLogin(t *testing.T) {
	acme := domain.NewWorkItem(2, "A")
	acme.Client = "Acme"
	beta := domain.NewWorkItem(3, "B")
	beta.Client = "Beta"
	items := []domain.WorkItem{acme, beta, acme}

	err := requireUnattendedLogin(domain.LoginManual, items, nil)
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "--login auto")

	store := mocks.NewMockCredentialStore(t)
	store.EXPECT().Lookup("Acme").Return(domain.Credentials{Username: "u", Password: "p"}, true).Once()
	store.EXPECT().Lookup("Beta").Return(domain.Credentials{}, false).Once()
	err = requireUnattendedLogin(domain.LoginAuto, items, store)
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "Beta")
	assert.NotContains(t, err.Error(), "Acme")

	all := mocks.NewMockCredentialStore(t)
	all.EXPECT().Lookup(mock.Anything).Return(domain.Credentials{Username: "u", Password: "p"}, true)
	assert.NoError(t, requireUnattendedLogin(domain.LoginAuto, items, all))
}

func TestDescribePlan(t *testing.T) {
	items := make([]domain.WorkItem, 0, 5)
	for i, c := range []string{"acme", "acme", "beta", "acme", ""} {
		it := domain.NewWorkItem(i+2, "id")
		it.Client = c
		items = append(items, it)
	}
	cfg := runConfig{batch: services.BatchConfig{BatchSize: 2}, driver: "rod", loginMode: domain.LoginManual}

	plan := describePlan(domain.GetWorkflowByName(domain.WorkflowOdometer), items, cfg)

	assert.Contains(t, plan, "5 items in 4 batches on the fleet portal")
	assert.Contains(t, plan, "Clients: (none), acme, beta")
	assert.Contains(t, plan, "Login: manual, driver: rod")
	assert.NotContains(t, plan, "saved once per batch")

	plan = describePlan(domain.GetWorkflowByName(domain.WorkflowGroupAdd), items, cfg)

	assert.Contains(t, plan, "Changes are saved once per batch of up to 2 items")
}

func TestCountAttempted(t *testing.T) {
	r := domain.NewBatchReport("r", domain.WorkflowGroupAdd, time.Now())
	require.NoError(t, r.Add(domain.Processed(domain.NewWorkItem(1, "A"), "")))
	require.NoError(t, r.Add(domain.Failed(domain.NewWorkItem(2, "B"), domain.FailureItem, "toggle", "boom")))
	require.NoError(t, r.Add(domain.Failed(domain.NewWorkItem(3, "C"), domain.FailureInterrupted, "", "run interrupted")))

	assert.Equal(t, 2, countAttempted(r))
}

func TestPrintReport(t *testing.T) {
	r := domain.NewBatchReport("r", domain.WorkflowGroupAdd, time.Now())
	require.NoError(t, r.Add(domain.Processed(domain.NewWorkItem(1, "A1"), "")))
	require.NoError(t, r.Add(domain.ItemNotFound(domain.NewWorkItem(2, "A2"), "search", "no match")))
	r.Finalize(time.Now())

	var buf bytes.Buffer
	printReport(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "group-add")
	assert.Contains(t, out, "Not found (1)")
	assert.Contains(t, out, "A2")
	assert.Contains(t, out, "50.0%")
}

func TestOpenBrowser(t *testing.T) {
	opts := ports.BrowserOptions{Headless: true, UserData: "/tmp/profile"}
	tab := fakeweb.NewPage("https://fleet.test/")

	browser := mocks.NewMockBrowser(t)
	browser.EXPECT().NewPage(mock.Anything).Return(tab, nil)
	browser.EXPECT().Close().Return(errors.New("already gone")).Once()
	launcher := mocks.NewMockBrowserLauncher(t)
	launcher.EXPECT().Launch(mock.Anything, opts).Return(browser, nil)

	page, closeBrowser, err := openBrowser(context.Background(), launcher, opts)
	require.NoError(t, err)
	assert.Same(t, tab, page)

	// close errors are only logged
	closeBrowser()
}

func TestOpenBrowser_TabFailureClosesBrowser(t *testing.T) {
	browser := mocks.NewMockBrowser(t)
	browser.EXPECT().NewPage(mock.Anything).Return(nil, errors.New("target crashed"))
	browser.EXPECT().Close().Return(nil).Once()
	launcher := mocks.NewMockBrowserLauncher(t)
	launcher.EXPECT().Launch(mock.Anything, mock.Anything).Return(browser, nil)

	_, _, err := openBrowser(context.Background(), launcher, ports.BrowserOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open a tab: target crashed")
}

func TestOpenBrowser_LaunchFailure(t *testing.T) {
	launcher := mocks.NewMockBrowserLauncher(t)
	launcher.EXPECT().Launch(mock.Anything, mock.Anything).Return(nil, errors.New("no chrome"))

	_, closeBrowser, err := openBrowser(context.Background(), launcher, ports.BrowserOptions{})

	assert.EqualError(t, err, "no chrome")
	assert.Nil(t, closeBrowser)
}

func TestLoadFrom(t *testing.T) {
	withClient := domain.NewWorkItem(2, "9BW1")
	withClient.Client = "beta"
	src := mocks.NewMockItemSource(t)
	src.EXPECT().Load(mock.Anything).Return([]domain.WorkItem{domain.NewWorkItem(1, "9BW0"), withClient}, nil)

	items, err := loadFrom(context.Background(), src, "acme")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "acme", items[0].Client)
	assert.Equal(t, "beta", items[1].Client)
}

func TestLoadFrom_Errors(t *testing.T) {
	empty := mocks.NewMockItemSource(t)
	empty.EXPECT().Load(mock.Anything).Return(nil, nil)
	_, err := loadFrom(context.Background(), empty, "")
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	broken := mocks.NewMockItemSource(t)
	broken.EXPECT().Load(mock.Anything).Return(nil, errors.New("bad sheet"))
	_, err = loadFrom(context.Background(), broken, "")
	assert.EqualError(t, err, "bad sheet")
}
