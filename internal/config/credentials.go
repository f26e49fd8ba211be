package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"frota/internal/domain"
)

// credentialsFile mirrors credenciais.json
type credentialsFile struct {
	Clients []struct {
		Name     string `json:"nome"`
		Password string `json:"senha"`
		User     string `json:"user"`
	} `json:"clientes"`
}

// CredentialStore holds per-client logins read once at startup.
// Client names are matched case-insensitively.
type CredentialStore struct {
	byKey map[string]domain.Credentials
	names []string
}

// LoadCredentials reads a credentials file
func LoadCredentials(path string) (*CredentialStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials: %v", domain.ErrConfiguration, err)
	}
	return ParseCredentials(data)
}

// ParseCredentials decodes {"clientes":[{"nome":..,"user":..,"senha":..}]}
func ParseCredentials(data []byte) (*CredentialStore, error) {
	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials file: %v", domain.ErrConfiguration, err)
	}

	store := &CredentialStore{byKey: make(map[string]domain.Credentials, len(file.Clients))}
	for i, c := range file.Clients {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: credentials entry %d has no nome", domain.ErrConfiguration, i+1)
		}
		if c.User == "" || c.Password == "" {
			return nil, fmt.Errorf("%w: credentials for %q need user and senha", domain.ErrConfiguration, name)
		}
		key := strings.ToLower(name)
		if _, dup := store.byKey[key]; dup {
			return nil, fmt.Errorf("%w: duplicate credentials for %q", domain.ErrConfiguration, name)
		}
		store.byKey[key] = domain.Credentials{Username: c.User, Password: c.Password}
		store.names = append(store.names, name)
	}
	sort.Strings(store.names)
	return store, nil
}

// Clients returns the configured client names, sorted
func (s *CredentialStore) Clients() []string {
	return append([]string(nil), s.names...)
}

// Lookup finds credentials for client. An empty client resolves to the
// only configured one when there is exactly one.
func (s *CredentialStore) Lookup(client string) (domain.Credentials, bool) {
	key := strings.ToLower(strings.TrimSpace(client))
	if key == "" && len(s.names) == 1 {
		key = strings.ToLower(s.names[0])
	}
	c, ok := s.byKey[key]
	return c, ok
}
