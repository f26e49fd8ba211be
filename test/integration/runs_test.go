package integration_test

import (
	"testing"
	"time"

	"frota/internal/domain"
	"frota/test/integration/harness"
)

func seededReport(t *testing.T) *domain.BatchReport {
	t.Helper()
	started := time.Date(2025, 7, 23, 9, 0, 0, 0, time.UTC)
	r := domain.NewBatchReport("4f1c2a90-0000-4000-8000-000000000001", domain.WorkflowGroupAdd, started)
	for _, o := range []domain.ItemOutcome{
		domain.Processed(domain.NewWorkItem(2, "9BW1"), ""),
		domain.AlreadyInTargetState(domain.NewWorkItem(3, "9BW2"), "toggle"),
		domain.ItemNotFound(domain.NewWorkItem(4, "9BW3"), "locate", "no match"),
	} {
		if err := r.Add(o.WithBatch(1)); err != nil {
			t.Fatal(err)
		}
	}
	r.Finalize(started.Add(2 * time.Minute))
	return r
}

func TestRunsList_Empty(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "runs", "list")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "No runs stored yet.")
}

func TestRunsList(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.SeedRun(seededReport(t))

	result := harness.RunCommand(t, env, "runs", "list")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "4f1c2a90")
	harness.AssertStdoutContains(t, result, "group-add")
	harness.AssertStdoutContains(t, result, "2m0s")
}

func TestRunsList_JSON(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.SeedRun(seededReport(t))

	result := harness.RunCommand(t, env, "runs", "list", "--format", "json")

	harness.AssertSuccess(t, result)
	var runs []map[string]any
	harness.AssertValidJSON(t, result, &runs)
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	if runs[0]["TotalAttempted"] != float64(3) {
		t.Errorf("Expected TotalAttempted 3, got %v", runs[0]["TotalAttempted"])
	}
}

func TestRunsShow(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.SeedRun(seededReport(t))

	result := harness.RunCommand(t, env, "runs", "show", "4f1c")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Not found (1)")
	harness.AssertStdoutContains(t, result, "9BW3")
}

func TestRunsShow_Export(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.SeedRun(seededReport(t))

	result := harness.RunCommand(t, env, "runs", "show", "4f1c", "--export", "out.txt")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Report written to out.txt")
}

func TestRunsShow_Unknown(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "runs", "show", "deadbeef")

	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "run not found")
}

func TestRunsDel(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.SeedRun(seededReport(t))

	result := harness.RunCommand(t, env, "runs", "del", "4f1c", "--force")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Run 4f1c2a90 deleted")

	result = harness.RunCommand(t, env, "runs", "list")
	harness.AssertStdoutContains(t, result, "No runs stored yet.")
}

func TestRunsDel_CancelledWithoutAnswer(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.SeedRun(seededReport(t))

	result := harness.RunCommand(t, env, "runs", "del", "4f1c")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Cancelled")

	result = harness.RunCommand(t, env, "runs", "list")
	harness.AssertStdoutContains(t, result, "4f1c2a90")
}
