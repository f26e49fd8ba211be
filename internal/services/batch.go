package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"frota/internal/domain"
	"frota/internal/logging"
)

// BatchConfig controls batching, pacing and progress reporting
type BatchConfig struct {
	BatchSize       int
	CheckpointGrace time.Duration
	Pacing          time.Duration
	ProgressEvery   int
	SortByClient    bool
}

// DefaultBatchConfig returns the defaults used when settings do not override them
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		BatchSize:       50,
		CheckpointGrace: 30 * time.Second,
		Pacing:          500 * time.Millisecond,
		ProgressEvery:   5,
	}
}

// Progress is a snapshot emitted while a run is in flight
type Progress struct {
	Done    int
	Last    domain.ItemOutcome
	Report  *domain.BatchReport
	Total   int
	Elapsed time.Duration
}

// Batch is a run of consecutive items of one client processed between checkpoints
type Batch struct {
	Client string
	Items  []domain.WorkItem
	Number int
}

// PlanBatches groups items into consecutive same-client runs and splits each
// run into batches of at most size items. Numbering starts at 1.
func PlanBatches(items []domain.WorkItem, size int, sortByClient bool) []Batch {
	if size <= 0 {
		size = DefaultBatchConfig().BatchSize
	}
	ordered := items
	if sortByClient {
		ordered = make([]domain.WorkItem, len(items))
		copy(ordered, items)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Client < ordered[j].Client
		})
	}

	var batches []Batch
	for start := 0; start < len(ordered); {
		client := ordered[start].Client
		end := start
		for end < len(ordered) && ordered[end].Client == client && end-start < size {
			end++
		}
		batches = append(batches, Batch{
			Client: client,
			Items:  ordered[start:end],
			Number: len(batches) + 1,
		})
		start = end
	}
	return batches
}

// BatchProcessor drives one ItemWorkflow over every WorkItem of a run
type BatchProcessor struct {
	cfg        BatchConfig
	err        error
	now        func() time.Time
	onProgress func(Progress)
	report     *ReportAggregator
	sessions   SessionController
	sleep      func(ctx context.Context, d time.Duration) error
	workflow   ItemWorkflow
}

// NewBatchProcessor creates a processor recording into report
func NewBatchProcessor(
	workflow ItemWorkflow,
	sessions SessionController,
	report *ReportAggregator,
	cfg BatchConfig,
) *BatchProcessor {
	def := DefaultBatchConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = def.ProgressEvery
	}
	if cfg.CheckpointGrace <= 0 {
		cfg.CheckpointGrace = def.CheckpointGrace
	}
	return &BatchProcessor{
		cfg:      cfg,
		now:      time.Now,
		report:   report,
		sessions: sessions,
		sleep:    sleepContext,
		workflow: workflow,
	}
}

// OnProgress registers a callback for progress snapshots
func (p *BatchProcessor) OnProgress(fn func(Progress)) {
	p.onProgress = fn
}

// Err returns the configuration error that aborted the last ProcessAll, if any
func (p *BatchProcessor) Err() error {
	return p.err
}

// batchRun is the mutable state of one ProcessAll call
type batchRun struct {
	aborted     error
	deadClients map[string]string
	done        int
	started     time.Time
	total       int
}

// ProcessAll runs the workflow over items and returns the finalized report.
// Every item ends up in exactly one report bucket, including on interrupt.
func (p *BatchProcessor) ProcessAll(ctx context.Context, items []domain.WorkItem) *domain.BatchReport {
	batches := PlanBatches(items, p.cfg.BatchSize, p.cfg.SortByClient)
	run := &batchRun{
		deadClients: make(map[string]string),
		started:     p.now(),
		total:       len(items),
	}

	logging.Logger.Info("Starting run",
		"workflow", p.workflow.Name(),
		"items", len(items),
		"batches", len(batches),
		"batch_size", p.cfg.BatchSize)

	for i, b := range batches {
		if ctx.Err() != nil {
			p.failBatch(run, b, b.Items, domain.FailureInterrupted, "", "run interrupted")
			continue
		}
		if run.aborted != nil {
			p.failBatch(run, b, b.Items, domain.FailureInterrupted, "", abortMessage(run.aborted))
			continue
		}
		if reason, dead := run.deadClients[b.Client]; dead {
			p.failBatch(run, b, b.Items, domain.FailureLogin, "login", reason)
			continue
		}

		p.processBatch(ctx, run, b)

		if i < len(batches)-1 && ctx.Err() == nil && run.aborted == nil {
			if err := p.sessions.Refresh(ctx); err != nil {
				logging.Logger.Warn("Refresh between batches failed", "batch", b.Number, "error", err)
				p.sessions.Invalidate(ctx)
			}
		}
	}

	p.err = run.aborted
	report := p.report.Finalize(p.now())
	logging.Logger.Info("Run finished",
		"workflow", p.workflow.Name(),
		"attempted", report.TotalAttempted,
		"succeeded", report.TotalSucceeded,
		"checkpoint_failures", len(report.CheckpointFailures))
	return report
}

func (p *BatchProcessor) processBatch(ctx context.Context, run *batchRun, b Batch) {
	logging.Logger.Info("Starting batch", "batch", b.Number, "client", b.Client, "items", len(b.Items))

	sess, err := p.sessions.Ensure(ctx, b.Client)
	if err != nil {
		if ctx.Err() != nil {
			p.failBatch(run, b, b.Items, domain.FailureInterrupted, "login", "run interrupted")
			return
		}
		if errors.Is(err, domain.ErrConfiguration) {
			// no other client can log in either; stop instead of blaming the login
			logging.Logger.Error("Run aborted", "batch", b.Number, "client", b.Client, "error", err)
			run.aborted = err
			p.failBatch(run, b, b.Items, domain.FailureInterrupted, "login", abortMessage(err))
			return
		}
		run.deadClients[b.Client] = err.Error()
		p.failBatch(run, b, b.Items, domain.FailureLogin, "login", err.Error())
		return
	}

	if err := p.workflow.Prepare(ctx, sess); err != nil {
		kind := domain.FailureItem
		if ctx.Err() != nil {
			kind = domain.FailureInterrupted
		}
		logging.Logger.Error("Batch preparation failed", "batch", b.Number, "error", err)
		p.failBatch(run, b, b.Items, kind, "prepare", err.Error())
		if kind == domain.FailureItem && !p.sessions.Verify(ctx) {
			run.deadClients[b.Client] = "session lost while preparing batch"
		}
		return
	}

	pending := make([]domain.ItemOutcome, 0, len(b.Items))
	ran := 0
	for i, item := range b.Items {
		if ctx.Err() != nil {
			for _, out := range interrupted(b, b.Items[i:]) {
				pending = append(pending, out)
				p.progress(run, out)
			}
			break
		}
		if reason, dead := run.deadClients[b.Client]; dead {
			for _, rest := range b.Items[i:] {
				out := domain.Failed(rest, domain.FailureLogin, "login", reason).WithBatch(b.Number)
				pending = append(pending, out)
				p.progress(run, out)
			}
			break
		}

		out := p.workflow.Run(ctx, sess, item).WithBatch(b.Number)
		if ctx.Err() != nil && out.Kind == domain.OutcomeFailed && out.Reason != nil && out.Reason.Kind == domain.FailureItem {
			out = domain.Failed(item, domain.FailureInterrupted, out.Step, "run interrupted").WithBatch(b.Number)
		}
		pending = append(pending, out)
		ran++
		p.progress(run, out)

		if out.Kind == domain.OutcomeFailed && out.Reason.Kind == domain.FailureItem && !p.sessions.Verify(ctx) {
			logging.Logger.Warn("Session lost after item failure", "item", item.ID, "client", b.Client)
			run.deadClients[b.Client] = "session lost after item " + item.ID
		}

		if i < len(b.Items)-1 && p.cfg.Pacing > 0 && ctx.Err() == nil {
			_ = p.sleep(ctx, p.cfg.Pacing)
		}
	}

	if ran > 0 {
		pending = p.checkpoint(ctx, sess, b, pending)
	}
	for _, out := range pending {
		p.record(out)
	}
}

// checkpoint commits the batch. A failed checkpoint turns every outcome of
// the batch that is not already Failed into Failed(checkpoint).
func (p *BatchProcessor) checkpoint(ctx context.Context, sess *domain.Session, b Batch, pending []domain.ItemOutcome) []domain.ItemOutcome {
	cp, ok := p.workflow.(Checkpointer)
	if !ok {
		return pending
	}

	cctx := ctx
	if ctx.Err() != nil {
		// save what was done before the interrupt
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), p.cfg.CheckpointGrace)
		defer cancel()
	}

	err := cp.Checkpoint(cctx, sess)
	if err == nil {
		logging.Logger.Info("Checkpoint saved", "batch", b.Number)
		return pending
	}

	logging.Logger.Error("Checkpoint failed", "batch", b.Number, "error", err)
	if rerr := p.report.RecordCheckpointFailure(b.Number); rerr != nil {
		logging.Logger.Error("Failed to record checkpoint failure", "batch", b.Number, "error", rerr)
	}
	out := make([]domain.ItemOutcome, len(pending))
	for i, o := range pending {
		if o.Kind == domain.OutcomeFailed {
			out[i] = o
			continue
		}
		out[i] = domain.Failed(o.Item, domain.FailureCheckpoint, "checkpoint",
			fmt.Sprintf("batch %d not saved (was %s): %v", b.Number, o.Kind, err)).WithBatch(b.Number)
	}
	return out
}

func (p *BatchProcessor) failBatch(run *batchRun, b Batch, items []domain.WorkItem, kind domain.FailureKind, step, message string) {
	for _, item := range items {
		out := domain.Failed(item, kind, step, message).WithBatch(b.Number)
		p.record(out)
		p.progress(run, out)
	}
}

func (p *BatchProcessor) record(out domain.ItemOutcome) {
	if err := p.report.Record(out); err != nil {
		logging.Logger.Error("Failed to record outcome", "item", out.Item.ID, "error", err)
	}
}

// progress counts an item as done; outcomes of a batch are recorded only
// after its checkpoint, so the snapshot report lags behind Done.
func (p *BatchProcessor) progress(run *batchRun, out domain.ItemOutcome) {
	run.done++
	if run.done%p.cfg.ProgressEvery != 0 && run.done != run.total {
		return
	}
	snapshot := Progress{
		Done:    run.done,
		Elapsed: p.now().Sub(run.started),
		Last:    out,
		Report:  p.report.Report(),
		Total:   run.total,
	}
	logging.Logger.Info("Progress",
		"done", snapshot.Done,
		"total", snapshot.Total,
		"last", out.Item.ID,
		"last_outcome", out.Kind)
	if p.onProgress != nil {
		p.onProgress(snapshot)
	}
}

func abortMessage(err error) string {
	return "run aborted: " + err.Error()
}

func interrupted(b Batch, items []domain.WorkItem) []domain.ItemOutcome {
	out := make([]domain.ItemOutcome, 0, len(items))
	for _, item := range items {
		out = append(out, domain.Failed(item, domain.FailureInterrupted, "", "run interrupted").WithBatch(b.Number))
	}
	return out
}
