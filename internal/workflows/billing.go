package workflows

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"frota/internal/domain"
	"frota/internal/services"
)

// monthAbbreviations are the pt-BR month names the billing portal accepts
var monthAbbreviations = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// FormatTerminationDate renders t as "D mmm YYYY", e.g. "3 jul 2025"
func FormatTerminationDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthAbbreviations[t.Month()-1], t.Year())
}

// ParseTerminationDate validates a "D mmm YYYY" date and returns it normalized
func ParseTerminationDate(s string) (string, error) {
	parts := strings.Fields(strings.ToLower(s))
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: termination date %q must look like \"23 jul 2025\"", domain.ErrConfiguration, s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: termination date %q has an invalid day", domain.ErrConfiguration, s)
	}
	month := -1
	for i, m := range monthAbbreviations {
		if parts[1] == m {
			month = i
			break
		}
	}
	if month < 0 {
		return "", fmt.Errorf("%w: termination date %q: month must be one of %s",
			domain.ErrConfiguration, s, strings.Join(monthAbbreviations[:], ", "))
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 4 {
		return "", fmt.Errorf("%w: termination date %q has an invalid year", domain.ErrConfiguration, s)
	}
	t := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month+1 {
		return "", fmt.Errorf("%w: termination date %q does not exist", domain.ErrConfiguration, s)
	}
	return FormatTerminationDate(t), nil
}

// BillingTerminate terminates every active billing contract of an equipment
type BillingTerminate struct {
	date  string
	rt    services.Runtime
	steps *services.StepWorkflow
}

// NewBillingTerminate builds the workflow. An empty date means today.
func NewBillingTerminate(rt services.Runtime, date string, now func() time.Time) (*BillingTerminate, error) {
	if err := rt.Portal.Require(
		KeyContractRows,
		KeyContractSearch,
		KeyContractStatus,
		KeyContractTable,
		KeyContractTerminate,
		KeyTerminationConfirm,
		KeyTerminationDate,
	); err != nil {
		return nil, err
	}

	if strings.TrimSpace(date) == "" {
		if now == nil {
			now = time.Now
		}
		date = FormatTerminationDate(now())
	} else {
		normalized, err := ParseTerminationDate(date)
		if err != nil {
			return nil, err
		}
		date = normalized
	}

	w := &BillingTerminate{date: date, rt: rt}
	contracts := sweep{
		active:  rt.Portal.Label(LabelContractActive, "ACTIVE"),
		act:     w.confirm,
		control: KeyContractTerminate,
		noun:    "contracts",
		rows:    KeyContractRows,
		search:  w.search,
		status:  KeyContractStatus,
		table:   KeyContractTable,
		verb:    "terminated",
	}
	w.steps = &services.StepWorkflow{
		Workflow: domain.WorkflowBillingTerminate,
		Runtime:  rt,
		Steps: []services.Step{
			{Name: "terminate", Lookup: true, Mutating: true, Retries: 1, Run: contracts.run},
		},
	}
	return w, nil
}

// Name implements services.ItemWorkflow
func (w *BillingTerminate) Name() string { return domain.WorkflowBillingTerminate }

// Date returns the termination date typed into the portal
func (w *BillingTerminate) Date() string { return w.date }

// Prepare implements services.ItemWorkflow. Every search starts from the
// contracts page, so there is nothing to set up per batch.
func (w *BillingTerminate) Prepare(context.Context, *domain.Session) error {
	return nil
}

// Run implements services.ItemWorkflow
func (w *BillingTerminate) Run(ctx context.Context, sess *domain.Session, item domain.WorkItem) domain.ItemOutcome {
	return w.steps.Execute(ctx, sess, item)
}

func (w *BillingTerminate) search(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	if err := sc.Page.Goto(ctx, sc.Portal.Page(PageContracts)); err != nil {
		return domain.Transient(fmt.Sprintf("open contracts: %v", err))
	}
	return do(ctx, sc, KeyContractSearch, services.OpPress, sc.Item.ID)
}

func (w *BillingTerminate) confirm(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	if res := do(ctx, sc, KeyTerminationDate, services.OpSetText, w.date); !res.OK() {
		return res
	}
	return do(ctx, sc, KeyTerminationConfirm, services.OpClick, "")
}
