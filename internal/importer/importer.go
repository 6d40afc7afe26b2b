// Package importer reconciles score sheet CSV exports into the record store:
// it normalizes country codes, resolves clubs and tournaments, detects
// duplicate rows, and records games in sheet order.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/tonpuu/riichirank/internal/adapters/repository"
	"github.com/tonpuu/riichirank/internal/domain/dedupe"
	"github.com/tonpuu/riichirank/internal/domain/model"
	"github.com/tonpuu/riichirank/pkg/logger"
	"github.com/tonpuu/riichirank/pkg/metrics"
)

// Expected CSV columns, in order. One row is one game.
var expectedHeader = []string{
	"date", "round", "table", "tournament", "town", "country", "club",
	"p1_id", "p1_name", "p1_score",
	"p2_id", "p2_name", "p2_score",
	"p3_id", "p3_name", "p3_score",
	"p4_id", "p4_name", "p4_score",
}

// defaultTournamentWindowDays is how far apart two first days may be while
// still denoting the same tournament in the same town. Sheets frequently
// carry per-session dates for a single weekend event.
const defaultTournamentWindowDays = 6

// Importer drives one or more CSV import batches against the record store.
type Importer struct {
	store      *repository.Store
	deduper    dedupe.Deduper
	log        logger.Logger
	windowDays int
}

// Option applies a configuration option to the Importer.
type Option func(*Importer)

// WithDeduper sets the duplicate-row tracker shared across batches.
func WithDeduper(d dedupe.Deduper) Option {
	return func(im *Importer) {
		if d != nil {
			im.deduper = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(im *Importer) {
		if log != nil {
			im.log = log
		}
	}
}

// WithTournamentWindow overrides the disambiguation window in days.
func WithTournamentWindow(days int) Option {
	return func(im *Importer) {
		if days > 0 {
			im.windowDays = days
		}
	}
}

// New creates an Importer writing through the given store.
func New(store *repository.Store, opts ...Option) *Importer {
	im := &Importer{
		store:      store,
		deduper:    dedupe.NewInMemoryDeduper(),
		windowDays: defaultTournamentWindowDays,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Report summarizes one import batch.
type Report struct {
	BatchID    string `json:"batch_id"`
	Rows       int    `json:"rows"`
	Imported   int    `json:"imported"`
	Duplicates int    `json:"duplicates"`
	Rejected   int    `json:"rejected"`
}

// ImportCSV reads a score sheet export and records its games. Rows that fail
// reconciliation are counted and logged, not fatal; only a broken CSV stream
// or a failed store write aborts the batch.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (Report, error) {
	report := Report{BatchID: uuid.NewString()}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if err := checkHeader(header); err != nil {
		return report, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read row %d: %w", report.Rows+1, err)
		}
		report.Rows++

		row, err := parseRow(record)
		if err != nil {
			report.Rejected++
			metrics.RecordRejectedRow()
			if im.log != nil {
				im.log.Warn(ctx, "rejecting score sheet row",
					logger.Int("row", report.Rows),
					logger.Error(err),
				)
			}
			continue
		}

		sig := row.signature()
		if im.deduper.SeenAndRecord(ctx, sig) {
			report.Duplicates++
			metrics.RecordDuplicateRow()
			if im.log != nil {
				im.log.Warn(ctx, "dropping duplicate score sheet row",
					logger.Int("row", report.Rows),
					logger.String("signature", sig),
				)
			}
			continue
		}

		if err := im.ingest(ctx, row); err != nil {
			// The row never made it into the store; let a rerun retry it.
			im.deduper.Unrecord(ctx, sig)
			return report, fmt.Errorf("row %d: %w", report.Rows, err)
		}
		report.Imported++
		metrics.RecordImportRow()
	}

	metrics.RecordImportBatch()
	if im.log != nil {
		im.log.Info(ctx, "import batch complete",
			logger.String("batch_id", report.BatchID),
			logger.Int("rows", report.Rows),
			logger.Int("imported", report.Imported),
			logger.Int("duplicates", report.Duplicates),
			logger.Int("rejected", report.Rejected),
		)
	}
	return report, nil
}

// ingest writes one reconciled row into the store.
func (im *Importer) ingest(ctx context.Context, row gameRow) error {
	countryID := ""
	if row.country.ID != "" {
		if err := im.store.UpsertCountry(ctx, row.country); err != nil {
			return err
		}
		countryID = row.country.ID
	}

	var clubID int64
	if row.club != "" {
		id, err := im.store.UpsertClub(ctx, model.Club{
			CountryID:  countryID,
			Code:       row.club,
			TownRegion: row.town,
		})
		if err != nil {
			return err
		}
		clubID = id
	}

	var tournamentID int64
	if row.tournament != "" {
		t, ok, err := im.store.FindTournamentNear(ctx, row.town, row.date, im.windowDays)
		if err != nil {
			return err
		}
		if ok {
			tournamentID = t.ID
		} else {
			id, err := im.store.InsertTournament(ctx, model.Tournament{
				Name:      row.tournament,
				FirstDay:  row.date,
				CountryID: countryID,
				Town:      row.town,
				Rules:     "riichi",
			})
			if err != nil {
				return err
			}
			tournamentID = id
		}
	}

	game := model.Game{
		Round:        row.round,
		Table:        row.table,
		Date:         row.date,
		IsTournament: tournamentID != 0,
		TournamentID: tournamentID,
	}
	if tournamentID == 0 {
		game.ClubID = clubID
	}
	for i, seat := range row.seats {
		playerID, err := im.store.UpsertPlayer(ctx, model.Player{
			Name:       seat.name,
			RegistryID: seat.registryID,
			ClubID:     clubID,
			CountryID:  countryID,
		})
		if err != nil {
			return err
		}
		game.Seats[i] = model.Seat{Player: playerID, Score: seat.score}
	}

	_, err := im.store.InsertGame(ctx, game)
	return err
}
