package cmd

import (
	"fmt"
	"time"

	adapterbrowser "frota/internal/adapters/browser"
	adapterreport "frota/internal/adapters/report"
	adapterstorage "frota/internal/adapters/storage"
	"frota/internal/config"
	"frota/internal/domain"
	"frota/internal/paths"
	"frota/internal/ports"
	"frota/internal/services"
)

// Container holds all dependencies shared by commands
type Container struct {
	ReportWriter ports.ReportWriter
	Runs         ports.RunRepository
}

// NewContainer creates a new Container with the run history opened
func NewContainer() (*Container, error) {
	runs, err := adapterstorage.NewSQLiteRepository(paths.GetDBPath())
	if err != nil {
		return nil, err
	}
	return &Container{
		ReportWriter: adapterreport.NewXLSXWriter(),
		Runs:         runs,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.Runs != nil {
		return c.Runs.Close()
	}
	return nil
}

// runConfig is the fully resolved configuration of one run
type runConfig struct {
	batch       services.BatchConfig
	browser     ports.BrowserOptions
	credentials string
	driver      string
	loginMode   domain.LoginMode
	performer   services.PerformerConfig
	profile     string
	quiet       bool
	reportDir   string
	reportPath  string
	stalePolicy domain.StalePolicy
	yes         bool
}

// resolve applies settings.json under the flags. Flags at their defaults and
// without an env var set are overridden by settings.
func (f *RunFlags) resolve(s *config.Settings, lookupEnv func(string) (string, bool)) (runConfig, error) {
	unset := func(env string) bool {
		_, ok := lookupEnv(env)
		return !ok
	}

	batchSize := f.BatchSize
	if batchSize == 0 && s.BatchSize != nil && unset("FROTA_BATCH_SIZE") {
		batchSize = *s.BatchSize
	}
	driver := f.Driver
	if driver == "" && unset("FROTA_DRIVER") {
		driver = s.Driver
	}
	if driver == "" {
		driver = config.DriverPlaywright
	}
	headless := f.Headless
	if !headless && s.Headless != nil && unset("FROTA_HEADLESS") {
		headless = *s.Headless
	}
	login := f.Login
	if login == "" && unset("FROTA_LOGIN") {
		login = s.Login
	}
	stale := f.StalePolicy
	if stale == "" && unset("FROTA_STALE_POLICY") {
		stale = s.StalePolicy
	}
	credentials := f.Credentials
	if credentials == "" && unset("FROTA_CREDENTIALS") {
		credentials = s.Credentials
	}
	if credentials == "" {
		credentials = paths.GetCredentialsPath()
	}
	profile := f.Profile
	if profile == "" && unset("FROTA_PROFILE") {
		profile = s.Profile
	}
	reportDir := s.ReportDir
	if reportDir == "" {
		reportDir = paths.GetReportsPath()
	}

	loginMode, err := domain.ParseLoginMode(login)
	if err != nil {
		return runConfig{}, err
	}
	stalePolicy, err := domain.ParseStalePolicy(stale)
	if err != nil {
		return runConfig{}, err
	}
	if driver != config.DriverPlaywright && driver != config.DriverRod {
		return runConfig{}, fmt.Errorf("%w: unknown driver %q", domain.ErrConfiguration, driver)
	}

	batch := services.DefaultBatchConfig()
	if batchSize > 0 {
		batch.BatchSize = batchSize
	}
	if s.PacingMs != nil {
		batch.Pacing = time.Duration(*s.PacingMs) * time.Millisecond
	}
	if s.ProgressEvery != nil {
		batch.ProgressEvery = *s.ProgressEvery
	}
	batch.SortByClient = f.SortByClient

	performer := services.DefaultPerformerConfig()
	if s.DefaultTimeoutSeconds != nil {
		performer.DefaultTimeout = time.Duration(*s.DefaultTimeoutSeconds) * time.Second
	}
	if s.PollMs != nil {
		performer.PollInterval = time.Duration(*s.PollMs) * time.Millisecond
	}

	slowMo := 0.0
	if s.SlowMoMs != nil {
		slowMo = float64(*s.SlowMoMs)
	}

	return runConfig{
		batch: batch,
		browser: ports.BrowserOptions{
			Headless: headless,
			SlowMo:   slowMo,
			UserData: paths.GetBrowserDataPath(),
		},
		credentials: paths.ExpandPath(credentials),
		driver:      driver,
		loginMode:   loginMode,
		performer:   performer,
		profile:     paths.ExpandPath(profile),
		quiet:       f.Quiet,
		reportDir:   reportDir,
		reportPath:  paths.ExpandPath(f.Report),
		stalePolicy: stalePolicy,
		yes:         f.Yes,
	}, nil
}

// newLauncher picks the browser driver
func newLauncher(cfg runConfig) (ports.BrowserLauncher, error) {
	return adapterbrowser.NewLauncher(cfg.driver, cfg.performer.DefaultTimeout)
}

// loadCredentials reads the credentials file only when logging in automatically
func loadCredentials(cfg runConfig) (ports.CredentialStore, error) {
	if cfg.loginMode != domain.LoginAuto {
		return nil, nil
	}
	store, err := config.LoadCredentials(cfg.credentials)
	if err != nil {
		return nil, err
	}
	return store, nil
}
