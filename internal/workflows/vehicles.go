package workflows

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/services"
)

var vehicleScreenKeys = []string{
	KeyVehicleResult,
	KeyVehicleSearch,
	KeyVehiclesFilter,
	KeyVehiclesFilterAll,
	KeyVehiclesMenu,
}

var odometerKeys = []string{
	KeyOdometerAdd,
	KeyOdometerClose,
	KeyOdometerDefine,
	KeyOdometerStartTime,
	KeyOdometerTab,
	KeyOdometerValue,
	KeyUnitController,
	KeyVehicleActions,
}

// openVehicles shows the "all vehicles" grid unless the session already did
func openVehicles(ctx context.Context, rt services.Runtime, sess *domain.Session) error {
	if sess != nil && sess.Navigated {
		return nil
	}
	logging.Logger.Info("Opening vehicles screen")

	if err := rt.Page.Goto(ctx, rt.Portal.Page(PageVehicles)); err != nil {
		return fmt.Errorf("open vehicles: %w", err)
	}
	waitOverlay(ctx, rt)
	err := sequence(ctx, rt, nil,
		action{KeyVehiclesMenu, services.OpClick, ""},
		action{KeyVehiclesFilter, services.OpClick, ""},
		action{KeyVehiclesFilterAll, services.OpClick, ""},
	)
	if err != nil {
		return fmt.Errorf("open vehicles: %w", err)
	}
	waitOverlay(ctx, rt)

	if sess != nil {
		sess.Navigated = true
	}
	return nil
}

// searchVehicle is a lookup step that types each term into the vehicles
// search box until one of them shows up in the grid. The winning term is
// bound as {term} for the row locators of later steps.
func searchVehicle(terms func(domain.WorkItem) []string) services.Step {
	return services.Step{
		Name:    "search",
		Lookup:  true,
		Retries: 1,
		Run: func(ctx context.Context, sc *services.StepContext) domain.ActionResult {
			tried := make([]string, 0, 2)
			for _, term := range terms(sc.Item) {
				if term == "" {
					continue
				}
				tried = append(tried, term)

				typed := withWait(ctx, sc, KeyVehicleSearch, services.OpSetText, term)
				if !typed.OK() {
					return typed
				}
				sc.Set(varTerm, term)
				found := do(ctx, sc, KeyVehicleResult, services.OpWaitVisible, "")
				if found.OK() {
					return found
				}
				if found.Status != domain.ActionNotFound {
					return found
				}
				logging.Logger.Debug("Vehicle not found by term", "item", sc.Item.ID, "term", term)
			}
			return domain.NotFound(fmt.Sprintf("no vehicle matches %s", strings.Join(tried, " or ")))
		},
	}
}

// byID searches the vehicle by identifier only
func byID(item domain.WorkItem) []string {
	return []string{item.ID}
}

// byIDThenChassis falls back to the chassis when the identifier finds nothing
func byIDThenChassis(item domain.WorkItem) []string {
	chassis := strings.TrimSpace(item.Field(domain.FieldChassis))
	if chassis == item.ID {
		chassis = ""
	}
	return []string{item.ID, chassis}
}

// NormalizeOdometer validates an odometer reading and renders it the way
// the numeric input expects. Spreadsheets often deliver "12345.0" or "12.345,6".
func NormalizeOdometer(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty odometer value")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("odometer value %q is not a number", raw)
	}
	if v < 0 {
		return "", fmt.Errorf("odometer value %q is negative", raw)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// odometerSteps opens the unit controller of the vehicle row bound to {term}
// and adds one odometer adjustment with the normalized {odometer} value
func odometerSteps() []services.Step {
	click := func(name, key string, mutating bool) services.Step {
		return services.Step{Name: name, Mutating: mutating, Run: func(ctx context.Context, sc *services.StepContext) domain.ActionResult {
			return withWait(ctx, sc, key, services.OpClick, "")
		}}
	}
	return []services.Step{
		click("actions", KeyVehicleActions, false),
		click("unit-controller", KeyUnitController, false),
		click("odometer-tab", KeyOdometerTab, false),
		click("add-adjustment", KeyOdometerAdd, true),
		{Name: "value", Mutating: true, Run: func(ctx context.Context, sc *services.StepContext) domain.ActionResult {
			return do(ctx, sc, KeyOdometerValue, services.OpSetText, sc.Var(domain.FieldOdometer))
		}},
		click("start-time", KeyOdometerStartTime, false),
		click("define", KeyOdometerDefine, true),
		click("close", KeyOdometerClose, false),
	}
}

// closeOdometer dismisses the unit controller modal after a failure
func closeOdometer(ctx context.Context, sc *services.StepContext) {
	res := sc.DoWithin(ctx, KeyOdometerClose, services.OpClick, "", rollbackTimeout)
	if !res.OK() {
		logging.Logger.Warn("Could not close odometer modal", "item", sc.Item.ID, "error", res.Message)
	}
}
