package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mauv0809/nextpick/internal/client"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRanking(t *testing.T) {
	ranking, err := parseRanking([]string{"Dune=1", "The Left Hand of Darkness = 2", "A=B=3"})
	require.NoError(t, err)
	assert.Equal(t, club.Ranking{"Dune": 1, "The Left Hand of Darkness": 2, "A=B": 3}, ranking)

	_, err = parseRanking([]string{"Dune"})
	assert.ErrorContains(t, err, "expected Title=rank")

	_, err = parseRanking([]string{"Dune=first"})
	assert.ErrorContains(t, err, "not a number")
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
	}
	for input, want := range tests {
		var out bytes.Buffer
		assert.Equal(t, want, confirm(strings.NewReader(input), &out, "Close voting anyway?"), "input %q", input)
		assert.Equal(t, "Close voting anyway? [y/N]: ", out.String())
	}
}

func TestCheckHealth(t *testing.T) {
	api := client.NewMockClient()
	var out bytes.Buffer
	require.NoError(t, checkHealth(context.Background(), api, "http://localhost:8080", &out))
	assert.Equal(t, "Server at http://localhost:8080 is healthy.\n", out.String())

	api.HealthFunc = func(ctx context.Context) error {
		return &client.TransportError{Op: "GET /health"}
	}
	out.Reset()
	err := checkHealth(context.Background(), api, "http://localhost:8080", &out)
	var te *client.TransportError
	assert.ErrorAs(t, err, &te)
	assert.Empty(t, out.String())
}

func TestYesFlagsAreIndependent(t *testing.T) {
	require.NoError(t, closeVotingCmd.Flags().Set("yes", "true"))
	defer closeVotingCmd.Flags().Set("yes", "false")

	assert.True(t, closeWithoutAsking)
	assert.False(t, resetWithoutAsking)
}
