package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota/internal/domain"
	"frota/internal/testutil/fakeweb"
)

func TestPerform_FirstMatchWinsInDeclaredOrder(t *testing.T) {
	page := fakeweb.NewPage("https://portal/app")
	page.Set(domain.ByID("second"), fakeweb.NewElement("second"))
	page.Set(domain.ByID("third"), fakeweb.NewElement("third"))
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page,
		[]domain.Locator{domain.ByID("first"), domain.ByID("second"), domain.ByID("third")},
		OpClick, "", 0)

	require.True(t, res.OK())
	assert.Equal(t, 1, res.Candidate)
	assert.Equal(t, []string{"click second"}, page.Actions)
}

func TestPerform_SkipsHiddenCandidates(t *testing.T) {
	page := fakeweb.NewPage("")
	hidden := fakeweb.NewElement("hidden")
	hidden.Hidden = true
	page.Set(domain.ByCSS("button.primary"), hidden)
	page.Set(domain.ByText("button", "Salvar", true), fakeweb.NewElement("by-text"))
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page,
		[]domain.Locator{domain.ByCSS("button.primary"), domain.ByText("button", "Salvar", true)},
		OpClick, "", 0)

	require.True(t, res.OK())
	assert.Equal(t, 1, res.Candidate)
	assert.Equal(t, 0, page.Count("click hidden"))
}

func TestPerform_NotFoundAfterTimeout(t *testing.T) {
	page := fakeweb.NewPage("")
	clock := newTestClock()
	p := newTestPerformer(clock)
	loc := domain.ByID("missing")

	res := p.Perform(context.Background(), page, []domain.Locator{loc}, OpFind, "", 500*time.Millisecond)

	assert.Equal(t, domain.ActionNotFound, res.Status)
	assert.Equal(t, -1, res.Candidate)
	assert.Nil(t, res.Element)
	assert.Equal(t, 500*time.Millisecond, clock.slept)
	assert.Equal(t, 6, page.Queries[`[id="missing"]`])
}

func TestPerform_ZeroTimeoutUsesDefault(t *testing.T) {
	clock := newTestClock()
	p := newTestPerformer(clock)

	res := p.Perform(context.Background(), fakeweb.NewPage(""), []domain.Locator{domain.ByID("x")}, OpWaitVisible, "", 0)

	assert.Equal(t, domain.ActionNotFound, res.Status)
	assert.Equal(t, time.Second, clock.slept)
}

func TestPerform_ElementAppearsWhilePolling(t *testing.T) {
	page := fakeweb.NewPage("")
	clock := newTestClock()
	sleeps := 0
	clock.onSleep = func() {
		sleeps++
		if sleeps == 3 {
			page.Set(domain.ByCSS("div.row"), fakeweb.NewElement("row"))
		}
	}
	p := newTestPerformer(clock)

	res := p.Perform(context.Background(), page, []domain.Locator{domain.ByCSS("div.row")}, OpWaitVisible, "", 0)

	require.True(t, res.OK())
	assert.Equal(t, 300*time.Millisecond, clock.slept)
	assert.NotNil(t, res.Element)
}

func TestPerform_StaleElementIsResolvedAgain(t *testing.T) {
	page := fakeweb.NewPage("")
	el := fakeweb.NewElement("save")
	el.StaleOnUse = 2
	page.Set(domain.ByID("save"), el)
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page, []domain.Locator{domain.ByID("save")}, OpClick, "", 0)

	require.True(t, res.OK())
	assert.Equal(t, 1, page.Count("click save"))
	assert.Equal(t, 3, page.Queries[`[id="save"]`])
}

func TestPerform_StaleBeyondRetriesIsTransient(t *testing.T) {
	page := fakeweb.NewPage("")
	el := fakeweb.NewElement("save")
	el.StaleOnUse = 10
	page.Set(domain.ByID("save"), el)
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page, []domain.Locator{domain.ByID("save")}, OpClick, "", 0)

	assert.Equal(t, domain.ActionTransientError, res.Status)
	assert.True(t, res.Retryable())
	assert.Equal(t, 0, page.Count("click save"))
}

func TestPerform_StaleCandidateIsWaitedForBeforeLaterOnes(t *testing.T) {
	page := fakeweb.NewPage("")
	clock := newTestClock()
	primaryLoc := domain.ByID("primary")
	primary := fakeweb.NewElement("primary")
	primary.StaleOnUse = 1
	primary.OnStale = func() { page.Clear(primaryLoc) }
	clock.onSleep = func() { page.Set(primaryLoc, primary) }
	page.Set(primaryLoc, primary)
	page.Set(domain.ByID("fallback"), fakeweb.NewElement("fallback"))
	p := newTestPerformer(clock)

	res := p.Perform(context.Background(), page, []domain.Locator{primaryLoc, domain.ByID("fallback")}, OpClick, "", 0)

	require.True(t, res.OK())
	assert.Equal(t, 0, res.Candidate)
	assert.Equal(t, 1, page.Count("click primary"))
	assert.Equal(t, 0, page.Count("click fallback"))
	assert.Equal(t, 100*time.Millisecond, clock.slept)
}

func TestPerform_StaleCandidateThatNeverReturnsIsTransient(t *testing.T) {
	page := fakeweb.NewPage("")
	primaryLoc := domain.ByID("primary")
	primary := fakeweb.NewElement("primary")
	primary.StaleOnUse = 1
	primary.OnStale = func() { page.Clear(primaryLoc) }
	page.Set(primaryLoc, primary)
	page.Set(domain.ByID("fallback"), fakeweb.NewElement("fallback"))
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page, []domain.Locator{primaryLoc, domain.ByID("fallback")}, OpClick, "", 0)

	assert.Equal(t, domain.ActionTransientError, res.Status)
	assert.Equal(t, 0, page.Count("click fallback"))
}

func TestPerform_PersistentClickErrorIsTransient(t *testing.T) {
	page := fakeweb.NewPage("")
	el := fakeweb.NewElement("save")
	el.ClickErr = errors.New("element click intercepted")
	page.Set(domain.ByID("save"), el)
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page, []domain.Locator{domain.ByID("save")}, OpClick, "", 0)

	assert.Equal(t, domain.ActionTransientError, res.Status)
	assert.Contains(t, res.Message, "intercepted")
}

func TestPerform_DisabledElementIsNotClicked(t *testing.T) {
	page := fakeweb.NewPage("")
	el := fakeweb.NewElement("save")
	el.Disabled = true
	page.Set(domain.ByID("save"), el)
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page, []domain.Locator{domain.ByID("save")}, OpClick, "", 0)

	assert.Equal(t, domain.ActionNotFound, res.Status)
	assert.Empty(t, page.Actions)
}

func TestPerform_FindIgnoresDisabled(t *testing.T) {
	page := fakeweb.NewPage("")
	el := fakeweb.NewElement("label")
	el.Disabled = true
	page.Set(domain.ByID("label"), el)
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page, []domain.Locator{domain.ByID("label")}, OpFind, "", 0)

	assert.True(t, res.OK())
}

func TestPerform_SetTextAndPress(t *testing.T) {
	page := fakeweb.NewPage("")
	input := fakeweb.NewElement("search")
	page.Set(domain.ByID("search"), input)
	p := newTestPerformer(newTestClock())

	res := p.Perform(context.Background(), page, []domain.Locator{domain.ByID("search")}, OpPress, "9BW123", 0)

	require.True(t, res.OK())
	assert.Equal(t, []string{"fill search:9BW123", "press search:Enter"}, page.Actions)

	res = p.Perform(context.Background(), page, []domain.Locator{domain.ByID("search")}, OpSetText, "other", 0)
	require.True(t, res.OK())
	assert.Equal(t, "other", input.Value)
}

func TestPerform_WaitInvisible(t *testing.T) {
	t.Run("absent counts as invisible", func(t *testing.T) {
		p := newTestPerformer(newTestClock())

		res := p.Perform(context.Background(), fakeweb.NewPage(""), []domain.Locator{domain.ByCSS("div.overlay")}, OpWaitInvisible, "", 0)

		assert.True(t, res.OK())
		assert.False(t, res.TimedOut)
	})

	t.Run("disappears while polling", func(t *testing.T) {
		page := fakeweb.NewPage("")
		overlay := fakeweb.NewElement("overlay")
		page.Set(domain.ByCSS("div.overlay"), overlay)
		clock := newTestClock()
		clock.onSleep = overlay.Hide
		p := newTestPerformer(clock)

		res := p.Perform(context.Background(), page, []domain.Locator{domain.ByCSS("div.overlay")}, OpWaitInvisible, "", 0)

		assert.True(t, res.OK())
		assert.False(t, res.TimedOut)
		assert.Equal(t, 100*time.Millisecond, clock.slept)
	})

	t.Run("timeout is treated as satisfied", func(t *testing.T) {
		page := fakeweb.NewPage("")
		page.Set(domain.ByCSS("div.overlay"), fakeweb.NewElement("overlay"))
		p := newTestPerformer(newTestClock())

		res := p.Perform(context.Background(), page, []domain.Locator{domain.ByCSS("div.overlay")}, OpWaitInvisible, "", 0)

		assert.True(t, res.OK())
		assert.True(t, res.TimedOut)
	})
}

func TestPerform_CancelledContextIsFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	page := fakeweb.NewPage("")
	page.Set(domain.ByID("x"), fakeweb.NewElement("x"))
	p := newTestPerformer(newTestClock())

	res := p.Perform(ctx, page, []domain.Locator{domain.ByID("x")}, OpClick, "", 0)

	assert.Equal(t, domain.ActionFatalError, res.Status)
	assert.Empty(t, page.Actions)
}

func TestPerform_InvalidInputIsFatal(t *testing.T) {
	p := newTestPerformer(newTestClock())
	page := fakeweb.NewPage("")

	res := p.Perform(context.Background(), page, nil, OpClick, "", 0)
	assert.Equal(t, domain.ActionFatalError, res.Status)

	res = p.Perform(context.Background(), page, []domain.Locator{domain.ByID("")}, OpClick, "", 0)
	assert.Equal(t, domain.ActionFatalError, res.Status)

	res = p.Perform(context.Background(), page, []domain.Locator{domain.ByID("x")}, Operation("hover"), "", 0)
	assert.Equal(t, domain.ActionFatalError, res.Status)
}
