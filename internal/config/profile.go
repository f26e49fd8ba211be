package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"frota/internal/domain"
)

//go:embed profiles/default.toml
var defaultProfile []byte

// Portal names shipped in the default profile
const (
	PortalBilling       = "billing"
	PortalFleet         = "fleet"
	PortalSubscriptions = "subscriptions"
)

// LocatorSpec is one locator candidate as written in a profile
type LocatorSpec struct {
	Attribute string `toml:"attribute,omitempty"`
	Exact     bool   `toml:"exact,omitempty"`
	Kind      string `toml:"kind"`
	Path      string `toml:"path,omitempty"`
	Tag       string `toml:"tag,omitempty"`
	Value     string `toml:"value,omitempty"`
}

// PortalSpec is the TOML form of domain.Portal
type PortalSpec struct {
	AppPrefix    string                   `toml:"app_prefix,omitempty"`
	BaseURL      string                   `toml:"base_url"`
	Labels       map[string]string        `toml:"labels,omitempty"`
	LoginMarkers []string                 `toml:"login_markers,omitempty"`
	LoginURL     string                   `toml:"login_url,omitempty"`
	Locators     map[string][]LocatorSpec `toml:"locators,omitempty"`
	Pages        map[string]string        `toml:"pages,omitempty"`
	SuccessURL   string                   `toml:"success_url,omitempty"`
}

// Profile is the set of portals frota knows how to drive
type Profile struct {
	Portals map[string]PortalSpec `toml:"portals"`
}

// DefaultProfile decodes the embedded profile
func DefaultProfile() (*Profile, error) {
	p, err := decodeProfile(defaultProfile)
	if err != nil {
		return nil, fmt.Errorf("embedded profile: %w", err)
	}
	return p, nil
}

// LoadProfile returns the embedded profile with the file at path merged
// over it. An empty path yields the defaults.
func LoadProfile(path string) (*Profile, error) {
	base, err := DefaultProfile()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read profile: %v", domain.ErrConfiguration, err)
	}
	override, err := decodeProfile(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	base.Merge(override)

	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return base, nil
}

func decodeProfile(data []byte) (*Profile, error) {
	var p Profile
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: unknown keys:\n%s", domain.ErrConfiguration, strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %v", domain.ErrConfiguration, row, col, derr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	if p.Portals == nil {
		p.Portals = make(map[string]PortalSpec)
	}
	return &p, nil
}

// Merge overlays o on p. Scalars replace when set, maps merge key by key and
// a locator key in o replaces the whole candidate list.
func (p *Profile) Merge(o *Profile) {
	if p.Portals == nil {
		p.Portals = make(map[string]PortalSpec)
	}
	for name, over := range o.Portals {
		cur := p.Portals[name]
		if over.AppPrefix != "" {
			cur.AppPrefix = over.AppPrefix
		}
		if over.BaseURL != "" {
			cur.BaseURL = over.BaseURL
		}
		if over.LoginURL != "" {
			cur.LoginURL = over.LoginURL
		}
		if over.SuccessURL != "" {
			cur.SuccessURL = over.SuccessURL
		}
		if len(over.LoginMarkers) > 0 {
			cur.LoginMarkers = over.LoginMarkers
		}
		cur.Labels = mergeStrings(cur.Labels, over.Labels)
		cur.Pages = mergeStrings(cur.Pages, over.Pages)
		if len(over.Locators) > 0 {
			merged := make(map[string][]LocatorSpec, len(cur.Locators)+len(over.Locators))
			for k, v := range cur.Locators {
				merged[k] = v
			}
			for k, v := range over.Locators {
				merged[k] = v
			}
			cur.Locators = merged
		}
		p.Portals[name] = cur
	}
}

func mergeStrings(base, over map[string]string) map[string]string {
	if len(over) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Validate checks every portal has a base url and every locator compiles
func (p *Profile) Validate() error {
	for _, name := range p.Names() {
		def := p.Portals[name]
		if def.BaseURL == "" {
			return fmt.Errorf("%w: portal %s has no base_url", domain.ErrConfiguration, name)
		}
		keys := make([]string, 0, len(def.Locators))
		for k := range def.Locators {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if len(def.Locators[k]) == 0 {
				return fmt.Errorf("%w: portal %s: locator %s has no candidates", domain.ErrConfiguration, name, k)
			}
			for i, l := range def.Locators[k] {
				if _, err := l.toDomain().Compile(); err != nil {
					return fmt.Errorf("portal %s: locator %s[%d]: %w", name, k, i, err)
				}
			}
		}
	}
	return nil
}

// Names returns the portal names, sorted
func (p *Profile) Names() []string {
	names := make([]string, 0, len(p.Portals))
	for name := range p.Portals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Portal builds the domain view of one portal
func (p *Profile) Portal(name string) (domain.Portal, error) {
	def, ok := p.Portals[name]
	if !ok {
		return domain.Portal{}, fmt.Errorf("%w: profile has no portal %q", domain.ErrConfiguration, name)
	}
	locators := make(map[string][]domain.Locator, len(def.Locators))
	for k, list := range def.Locators {
		converted := make([]domain.Locator, len(list))
		for i, l := range list {
			converted[i] = l.toDomain()
		}
		locators[k] = converted
	}
	return domain.Portal{
		AppPrefix:    def.AppPrefix,
		BaseURL:      def.BaseURL,
		Labels:       def.Labels,
		LoginMarkers: def.LoginMarkers,
		LoginURL:     def.LoginURL,
		Locators:     locators,
		Name:         name,
		Pages:        def.Pages,
		SuccessURL:   def.SuccessURL,
	}, nil
}

// Encode renders the profile as TOML
func (p *Profile) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf).SetIndentTables(true)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

func (l LocatorSpec) toDomain() domain.Locator {
	return domain.Locator{
		Attribute: l.Attribute,
		Exact:     l.Exact,
		Kind:      domain.LocatorKind(l.Kind),
		Path:      l.Path,
		Tag:       l.Tag,
		Value:     l.Value,
	}
}
