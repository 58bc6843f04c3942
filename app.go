package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-triage/config"
	"github.com/c14220110/poliklinik-triage/internal/triage/events"
	"github.com/c14220110/poliklinik-triage/internal/triage/journal"
	"github.com/c14220110/poliklinik-triage/internal/triage/metrics"
	"github.com/c14220110/poliklinik-triage/internal/triage/services"
	"github.com/c14220110/poliklinik-triage/pkg/storage/mariadb"
)

// wire builds the triage service. Events go to pubs and, when enabled, to
// the MariaDB journal. The returned cleanup closes the database.
func wire(ctx context.Context, cfg *config.Config, log zerolog.Logger, pubs ...events.Publisher) (*services.TriageService, func(), error) {
	cleanup := func() {}
	if cfg.JournalEnabled {
		db, err := mariadb.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		j := journal.New(db)
		if err := j.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("prepare journal: %w", err)
		}
		pubs = append(pubs, j)
		cleanup = func() { _ = db.Close() }
		log.Info().Str("db_host", cfg.DBHost).Str("db_name", cfg.DBName).Msg("event journal enabled")
	}
	return services.NewTriageService(log, events.Fanout(pubs), metrics.NewRecorder()), cleanup, nil
}
