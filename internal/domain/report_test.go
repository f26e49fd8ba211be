package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchReport_AddSortsIntoBuckets(t *testing.T) {
	r := NewBatchReport("run-1", WorkflowGroupAdd, time.Now())
	a := NewWorkItem(1, "A")
	b := NewWorkItem(2, "B")
	c := NewWorkItem(3, "C")
	d := NewWorkItem(4, "D")

	require.NoError(t, r.Add(Processed(a, "")))
	require.NoError(t, r.Add(AlreadyInTargetState(b, "toggle")))
	require.NoError(t, r.Add(ItemNotFound(c, "search", "no rows")))
	require.NoError(t, r.Add(Failed(d, FailureItem, "save", "timeout")))

	assert.Len(t, r.Processed, 1)
	assert.Len(t, r.AlreadyInTargetState, 1)
	assert.Len(t, r.NotFound, 1)
	assert.Len(t, r.Failed, 1)
	assert.Equal(t, 4, r.TotalAttempted)
	assert.Equal(t, 1, r.TotalSucceeded)
	assert.Equal(t, r.TotalAttempted, r.Count())
	assert.InDelta(t, 0.25, r.SuccessRate(), 1e-9)
}

func TestBatchReport_DuplicatesAreRecordedTwice(t *testing.T) {
	r := NewBatchReport("run-1", WorkflowGroupAdd, time.Now())
	item := NewWorkItem(1, "B1")

	require.NoError(t, r.Add(Processed(item, "")))
	require.NoError(t, r.Add(AlreadyInTargetState(NewWorkItem(2, "B1"), "toggle")))

	assert.Equal(t, 2, r.TotalAttempted)
	assert.Equal(t, "B1", r.Processed[0].Item.ID)
	assert.Equal(t, "B1", r.AlreadyInTargetState[0].Item.ID)
}

func TestBatchReport_SuccessRateEmpty(t *testing.T) {
	r := NewBatchReport("run-1", WorkflowOdometer, time.Now())
	assert.Zero(t, r.SuccessRate())
}

func TestBatchReport_FinalizedIsReadOnly(t *testing.T) {
	started := time.Now()
	r := NewBatchReport("run-1", WorkflowDeinstall, started)
	finished := started.Add(time.Minute)

	r.Finalize(finished)
	r.Finalize(finished.Add(time.Hour))

	assert.True(t, r.Finalized())
	assert.Equal(t, finished, r.FinishedAt)
	assert.ErrorIs(t, r.Add(Processed(NewWorkItem(1, "X"), "")), ErrReportFinalized)
	assert.ErrorIs(t, r.AddCheckpointFailure(1), ErrReportFinalized)
	assert.Zero(t, r.TotalAttempted)
}

func TestBatchReport_OutcomesFollowBucketOrder(t *testing.T) {
	r := NewBatchReport("run-1", WorkflowGroupAdd, time.Now())
	require.NoError(t, r.Add(Failed(NewWorkItem(1, "F"), FailureLogin, "login", "")))
	require.NoError(t, r.Add(Processed(NewWorkItem(2, "P"), "")))

	all := r.Outcomes()

	require.Len(t, all, 2)
	assert.Equal(t, "P", all[0].Item.ID)
	assert.Equal(t, "F", all[1].Item.ID)
}

func TestItemOutcome_Describe(t *testing.T) {
	item := WorkItem{ID: "9BW", Client: "ACME"}

	assert.Equal(t, "ACME/9BW", Processed(item, "").Describe())
	assert.Equal(t, "ACME/9BW (2 contracts)", Processed(item, "2 contracts").Describe())
	assert.Equal(t, "ACME/9BW (login: bad password at login)", Failed(item, FailureLogin, "login", "bad password").Describe())
	assert.Equal(t, "ACME/9BW (checkpoint)", Failed(item, FailureCheckpoint, "", "").Describe())
}

func TestWorkItem_Vars(t *testing.T) {
	item := NewWorkItem(7, "  9BW123 ")
	item.Client = "ACME"
	item.Fields = map[string]string{FieldGroup: "Frota SP"}

	vars := item.Vars()

	assert.Equal(t, "9BW123", item.ID)
	assert.Equal(t, map[string]string{"id": "9BW123", "client": "ACME", "group": "Frota SP"}, vars)
	assert.Equal(t, "Frota SP", item.Field(FieldGroup))
	assert.Empty(t, NewWorkItem(1, "x").Field(FieldGroup))
}

func TestGetWorkflowByName(t *testing.T) {
	w := GetWorkflowByName(WorkflowGroupAdd)
	require.NotNil(t, w)
	assert.True(t, w.Checkpointed)
	assert.Nil(t, GetWorkflowByName("nope"))
}
