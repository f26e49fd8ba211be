package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	adapteroperator "frota/internal/adapters/operator"
	adaptersound "frota/internal/adapters/sound"
	"frota/internal/adapters/source"
	"frota/internal/config"
	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
	"frota/internal/services"
	"frota/internal/workflows"
)

// RunFlags are shared by every bulk command
type RunFlags struct {
	BatchSize    int    `help:"Items per batch between checkpoints (default 50)" env:"FROTA_BATCH_SIZE"`
	Client       string `help:"Client for items whose input has no CLIENTE column"`
	Column       string `help:"Identifier column, by header or 1-based index"`
	Credentials  string `help:"Credentials file for automatic login" env:"FROTA_CREDENTIALS"`
	Driver       string `help:"Browser driver: playwright or rod" env:"FROTA_DRIVER"`
	Headless     bool   `help:"Run the browser without a window" env:"FROTA_HEADLESS"`
	Input        string `help:"Input spreadsheet (.xlsx or .csv); asks for identifiers when omitted" short:"i"`
	Login        string `help:"Login mode: auto or manual" env:"FROTA_LOGIN"`
	Profile      string `help:"Portal profile TOML merged over the built-in one" env:"FROTA_PROFILE"`
	Quiet        bool   `help:"Do not play a sound when the operator is needed" short:"q"`
	Report       string `help:"Report file (.xlsx or .txt); defaults to the reports directory"`
	Sheet        string `help:"Worksheet to read (default: first)"`
	SortByClient bool   `help:"Group items of the same client together before batching"`
	StalePolicy  string `help:"Stale element after a click: verify, assume-success or fail" env:"FROTA_STALE_POLICY"`
	Yes          bool   `help:"Do not ask for confirmation; manual login is then impossible" short:"y"`
}

// runRequest describes one bulk run
type runRequest struct {
	options  workflows.Options
	required []string
	title    string
	workflow string
}

// execute validates everything, then drives the browser over all items.
// Configuration problems abort before the browser is opened.
func (f *RunFlags) execute(cli *CLI, req runRequest) error {
	info := domain.GetWorkflowByName(req.workflow)
	if info == nil {
		return fmt.Errorf("%w: unknown workflow %q", domain.ErrConfiguration, req.workflow)
	}

	cfg, err := f.resolve(cli.loadedSettings(), os.LookupEnv)
	if err != nil {
		return err
	}
	profile, err := config.LoadProfile(cfg.profile)
	if err != nil {
		return err
	}
	portal, err := profile.Portal(info.Portal)
	if err != nil {
		return err
	}
	credentials, err := loadCredentials(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	operator := newOperator(cfg)
	items, err := f.loadItems(ctx, operator, req)
	if err != nil {
		return err
	}
	if info.RequiresClient {
		if err := requireClients(items); err != nil {
			return err
		}
	}

	page := &deferredPage{}
	performer := services.NewPerformer(cfg.performer)
	rt := services.Runtime{
		Page:          page,
		Performer:     performer,
		Portal:        portal,
		ScreenshotDir: cfg.reportDir,
		StalePolicy:   cfg.stalePolicy,
	}
	opts := req.options
	opts.Now = time.Now
	workflow, err := workflows.New(req.workflow, rt, opts)
	if err != nil {
		return err
	}
	sessions, err := services.NewSessionManager(page, performer, portal, credentials, operator, services.SessionConfig{Mode: cfg.loginMode})
	if err != nil {
		return err
	}
	launcher, err := newLauncher(cfg)
	if err != nil {
		return err
	}
	if cfg.yes {
		if err := requireUnattendedLogin(cfg.loginMode, items, credentials); err != nil {
			return err
		}
	}

	start, err := operator.ConfirmStart(ctx, describePlan(info, items, cfg))
	if err != nil {
		return err
	}
	if !start {
		fmt.Println("Run cancelled.")
		return nil
	}

	tab, closeBrowser, err := openBrowser(ctx, launcher, cfg.browser)
	if err != nil {
		return err
	}
	defer closeBrowser()
	page.Page = tab

	report := domain.NewBatchReport(uuid.New().String(), req.workflow, time.Now())
	agg := services.NewReportAggregator(report, cli.Container.Runs, cli.Container.ReportWriter)
	processor := services.NewBatchProcessor(workflow, sessions, agg, cfg.batch)
	processor.OnProgress(func(p services.Progress) {
		printProgress(os.Stdout, p)
	})

	final := processor.ProcessAll(ctx, items)

	// the run is over; finishing must survive an interrupt
	done := context.WithoutCancel(ctx)
	sessions.Invalidate(done)

	printReport(os.Stdout, final)
	path := cfg.reportPath
	if path == "" {
		path = filepath.Join(cfg.reportDir, services.DefaultReportName(req.workflow, final.FinishedAt, "xlsx"))
	}
	finishErr := agg.Finish(done, path)
	if finishErr == nil {
		fmt.Printf("\nReport written to %s (run %s)\n", path, final.RunID)
	}

	if err := operator.ConfirmFinish(done, agg.Summary()); err != nil {
		logging.Logger.Warn("Finish prompt failed", "error", err)
	}
	if err := processor.Err(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("run interrupted after %d of %d items", countAttempted(final), len(items))
	}
	return finishErr
}

func (f *RunFlags) loadItems(ctx context.Context, operator ports.Operator, req runRequest) ([]domain.WorkItem, error) {
	var src ports.ItemSource
	if f.Input != "" {
		s, err := source.New(f.Input, source.Options{
			Column:   f.Column,
			Required: req.required,
			Sheet:    f.Sheet,
		})
		if err != nil {
			return nil, err
		}
		src = s
	} else {
		if len(req.required) > 0 {
			return nil, fmt.Errorf("%w: %s needs an input file with columns %s", domain.ErrConfiguration, req.workflow, strings.Join(req.required, ", "))
		}
		src = source.NewTypedSource(operator, req.title, f.Client)
	}

	return loadFrom(ctx, src, f.Client)
}

// loadFrom reads every item and gives rows without a client the default one
func loadFrom(ctx context.Context, src ports.ItemSource, client string) ([]domain.WorkItem, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items to process", domain.ErrConfiguration)
	}
	if client != "" {
		for i := range items {
			if items[i].Client == "" {
				items[i].Client = client
			}
		}
	}
	return items, nil
}

// openBrowser launches the browser with one tab. The returned func closes it.
func openBrowser(ctx context.Context, launcher ports.BrowserLauncher, opts ports.BrowserOptions) (ports.Page, func(), error) {
	browser, err := launcher.Launch(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	closeBrowser := func() {
		if err := browser.Close(); err != nil {
			logging.Logger.Warn("Failed to close browser", "error", err)
		}
	}
	tab, err := browser.NewPage(ctx)
	if err != nil {
		closeBrowser()
		return nil, nil, fmt.Errorf("failed to open a tab: %w", err)
	}
	return tab, closeBrowser, nil
}

func newOperator(cfg runConfig) ports.Operator {
	if cfg.yes {
		return adapteroperator.Unattended{}
	}
	var player ports.SoundPlayer = adaptersound.NewPlayer()
	if cfg.quiet {
		player = adaptersound.Silent{}
	}
	return adapteroperator.NewTerminal(os.Stdout, player)
}

// requireClients rejects inputs where some row has no client
func requireClients(items []domain.WorkItem) error {
	var rows []string
	for _, it := range items {
		if it.Client == "" {
			rows = append(rows, fmt.Sprint(it.Row))
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if len(rows) > 10 {
		rows = append(rows[:10], "...")
	}
	return fmt.Errorf("%w: rows without a client (use a CLIENTE column or --client): %s", domain.ErrConfiguration, strings.Join(rows, ", "))
}

// requireUnattendedLogin rejects runs that would need a person at the
// login page while nobody is there to answer
func requireUnattendedLogin(mode domain.LoginMode, items []domain.WorkItem, credentials ports.CredentialStore) error {
	if mode != domain.LoginAuto || credentials == nil {
		return fmt.Errorf("%w: --yes needs --login auto, manual login waits for the operator", domain.ErrConfiguration)
	}
	seen := make(map[string]struct{})
	var missing []string
	for _, it := range items {
		if _, ok := seen[it.Client]; ok {
			continue
		}
		seen[it.Client] = struct{}{}
		if _, ok := credentials.Lookup(it.Client); !ok {
			missing = append(missing, displayClient(it.Client))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: no stored credentials for %s and --yes rules out manual login", domain.ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

func displayClient(client string) string {
	if client == "" {
		return "(none)"
	}
	return client
}

func describePlan(info *domain.WorkflowInfo, items []domain.WorkItem, cfg runConfig) string {
	batches := services.PlanBatches(items, cfg.batch.BatchSize, cfg.batch.SortByClient)
	clients := make(map[string]struct{})
	for _, it := range items {
		clients[it.Client] = struct{}{}
	}
	names := make([]string, 0, len(clients))
	for c := range clients {
		names = append(names, displayClient(c))
	}
	sort.Strings(names)

	plan := fmt.Sprintf("%s\n%d items in %d batches on the %s portal\nClients: %s\nLogin: %s, driver: %s",
		info.Description, len(items), len(batches), info.Portal, strings.Join(names, ", "), cfg.loginMode, cfg.driver)
	if info.Checkpointed {
		plan += fmt.Sprintf("\nChanges are saved once per batch of up to %d items", cfg.batch.BatchSize)
	}
	return plan
}

func countAttempted(r *domain.BatchReport) int {
	n := 0
	for _, o := range r.Failed {
		if o.Reason == nil || o.Reason.Kind != domain.FailureInterrupted {
			n++
		}
	}
	return n + len(r.Processed) + len(r.AlreadyInTargetState) + len(r.NotFound)
}

// deferredPage lets workflows be built and validated before the browser exists
type deferredPage struct {
	ports.Page
}
