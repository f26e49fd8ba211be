package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_IsValidAndBound(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession("ACME", now)

	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.True(t, s.Valid)
	assert.False(t, s.Navigated)
	assert.Equal(t, now, s.CreatedAt)
	assert.True(t, s.Matches("ACME"))
	assert.False(t, s.Matches("Other"))
}

func TestSession_InvalidateClearsNavigation(t *testing.T) {
	s := NewSession("ACME", time.Now())
	s.Navigated = true

	s.Invalidate()

	assert.False(t, s.Valid)
	assert.False(t, s.Navigated)
	assert.False(t, s.Matches("ACME"))
}

func TestSession_NilIsSafe(t *testing.T) {
	var s *Session
	assert.False(t, s.Matches(""))
	assert.NotPanics(t, s.Invalidate)
}

func TestParseStalePolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected StalePolicy
		wantErr  bool
	}{
		{"", StaleVerify, false},
		{"verify", StaleVerify, false},
		{"fail", StaleFail, false},
		{"assume-success", StaleAssumeSuccess, false},
		{"optimistic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStalePolicy(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLoginMode(t *testing.T) {
	mode, err := ParseLoginMode("")
	require.NoError(t, err)
	assert.Equal(t, LoginManual, mode)

	mode, err = ParseLoginMode("auto")
	require.NoError(t, err)
	assert.Equal(t, LoginAuto, mode)

	_, err = ParseLoginMode("sso")
	assert.ErrorIs(t, err, ErrConfiguration)
}
