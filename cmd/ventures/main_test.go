package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pbaille/ventures/internal/domain"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing context", fmt.Errorf("no current user: %w", domain.ErrMissingContext), "missing context ("},
		{"submission", fmt.Errorf("save: %w", domain.ErrSubmissionFailed), "submission failed, retry"},
		{"generation", domain.ErrGenerationFailed, "pitch generation failed"},
		{"other", fmt.Errorf("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, describe(tt.err), tt.want)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b", truncate("a\nb", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "Zoë Müll...", truncate("Zoë Müller-Øberg", 11))
	assert.Equal(t, "Zoë Müller", truncate("Zoë Müller", 10))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("12345678-aaaa-bbbb"))
	assert.Equal(t, "abc", shortID("abc"))
}
