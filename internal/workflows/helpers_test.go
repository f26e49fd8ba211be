package workflows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"frota/internal/config"
	"frota/internal/domain"
	"frota/internal/services"
	"frota/internal/testutil/fakeweb"
)

// testPortal maps every key to the css selector "#key"
func testPortal(name string, keys ...string) domain.Portal {
	p := domain.Portal{
		Name:     name,
		BaseURL:  "https://" + name + ".test/",
		Labels:   map[string]string{},
		Locators: make(map[string][]domain.Locator, len(keys)),
		Pages:    map[string]string{},
	}
	for _, k := range keys {
		p.Locators[k] = []domain.Locator{byKey(k)}
	}
	return p
}

func byKey(key string) domain.Locator {
	return domain.ByCSS("#" + key)
}

type fixture struct {
	clock *fakeweb.Clock
	page  *fakeweb.Page
	rt    services.Runtime
	sess  *domain.Session
}

func newFixture(t *testing.T, portal domain.Portal) *fixture {
	t.Helper()
	clock := fakeweb.NewClock()
	page := fakeweb.NewPage(portal.BaseURL)
	performer := services.NewPerformer(services.PerformerConfig{
		DefaultTimeout: time.Second,
		PollInterval:   100 * time.Millisecond,
		StaleRetries:   3,
	}).WithClock(clock.Now, clock.Sleep)

	return &fixture{
		clock: clock,
		page:  page,
		rt: services.Runtime{
			Page:        page,
			Performer:   performer,
			Portal:      portal,
			StalePolicy: domain.StaleVerify,
		},
		sess: domain.NewSession("acme", clock.Now()),
	}
}

// el registers a visible element under key and returns it
func (f *fixture) el(key string) *fakeweb.Element {
	e := fakeweb.NewElement(key)
	f.page.Set(byKey(key), e)
	return e
}

// els registers a visible element for every key
func (f *fixture) els(keys ...string) {
	for _, k := range keys {
		f.el(k)
	}
}

func item(id string, fields map[string]string) domain.WorkItem {
	w := domain.NewWorkItem(2, id)
	w.Client = "acme"
	w.Fields = fields
	return w
}

func fleetDefault(t *testing.T) domain.Portal {
	t.Helper()
	profile, err := config.DefaultProfile()
	require.NoError(t, err)
	portal, err := profile.Portal(config.PortalFleet)
	require.NoError(t, err)
	return portal
}

func ctx() context.Context {
	return context.Background()
}
