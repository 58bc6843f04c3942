package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/poliklinik-triage/config"
	"github.com/c14220110/poliklinik-triage/internal/triage/events"
	"github.com/c14220110/poliklinik-triage/internal/triage/models"
)

type countingPublisher struct{ n int }

func (p *countingPublisher) Publish(context.Context, events.Event) error {
	p.n++
	return nil
}

func TestWire_WithoutJournal(t *testing.T) {
	pub := &countingPublisher{}
	svc, cleanup, err := wire(context.Background(), &config.Config{}, zerolog.Nop(), pub)
	require.NoError(t, err)
	defer cleanup()

	_, err = svc.RegisterPatient(context.Background(), 1, "A", 30, models.General)
	require.NoError(t, err)
	assert.Equal(t, 1, pub.n)
	assert.NotNil(t, svc.Metrics())
}

func TestCommands(t *testing.T) {
	assert.Equal(t, "serve", serveCmd().Use)
	cmd := consoleCmd()
	assert.Equal(t, "console", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("verbose"))
}
