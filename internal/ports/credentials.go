package ports

import "frota/internal/domain"

// CredentialStore resolves login details per client
type CredentialStore interface {
	Clients() []string
	Lookup(client string) (domain.Credentials, bool)
}
