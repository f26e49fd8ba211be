package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota/internal/domain"
)

const testCredentials = `{
  "clientes": [
    {"nome": "Transportes Silva", "user": "silva.ops", "senha": "s3cret"},
    {"nome": "ACME", "user": "acme", "senha": "pw"}
  ]
}`

func TestParseCredentials(t *testing.T) {
	store, err := ParseCredentials([]byte(testCredentials))
	require.NoError(t, err)

	assert.Equal(t, []string{"ACME", "Transportes Silva"}, store.Clients())

	c, ok := store.Lookup("transportes silva ")
	require.True(t, ok)
	assert.Equal(t, domain.Credentials{Username: "silva.ops", Password: "s3cret"}, c)

	_, ok = store.Lookup("Nobody")
	assert.False(t, ok)

	_, ok = store.Lookup("")
	assert.False(t, ok, "empty client is ambiguous with two entries")
}

func TestParseCredentials_SingleClientDefault(t *testing.T) {
	store, err := ParseCredentials([]byte(`{"clientes":[{"nome":"ACME","user":"a","senha":"b"}]}`))
	require.NoError(t, err)

	c, ok := store.Lookup("")

	require.True(t, ok)
	assert.Equal(t, "a", c.Username)
}

func TestParseCredentials_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `clientes`},
		{"missing name", `{"clientes":[{"user":"a","senha":"b"}]}`},
		{"missing password", `{"clientes":[{"nome":"A","user":"a"}]}`},
		{"duplicate", `{"clientes":[{"nome":"A","user":"a","senha":"b"},{"nome":"a","user":"c","senha":"d"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCredentials([]byte(tt.content))
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestLoadCredentials_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credenciais.json")
	require.NoError(t, os.WriteFile(path, []byte(testCredentials), 0600))

	store, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Len(t, store.Clients(), 2)

	_, err = LoadCredentials(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
