package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/tonpuu/riichirank/internal/domain/model"
)

// gameRow is one reconciled score sheet row.
type gameRow struct {
	date       time.Time
	round      string
	table      string
	tournament string
	town       string
	country    model.Country // zero value when the row carries no country
	club       string
	seats      [model.SeatCount]seatCell
}

type seatCell struct {
	registryID string
	name       string
	score      int
}

// signature identifies a game row for duplicate detection. Two rows with the
// same date, table position and players are the same game regardless of which
// export they arrived in.
func (r gameRow) signature() string {
	parts := []string{r.date.Format("2006-01-02"), r.round, r.table}
	for _, s := range r.seats {
		parts = append(parts, s.registryID)
	}
	return strings.Join(parts, "|")
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrBadHeader, len(header), len(expectedHeader))
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), expectedHeader[i]) {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, col, expectedHeader[i])
		}
	}
	return nil
}

func parseRow(record []string) (gameRow, error) {
	if len(record) != len(expectedHeader) {
		return gameRow{}, fmt.Errorf("%w: got %d columns, want %d", ErrBadRow, len(record), len(expectedHeader))
	}

	date, err := dateparse.ParseAny(strings.TrimSpace(record[0]))
	if err != nil {
		return gameRow{}, fmt.Errorf("%w: date %q: %v", ErrBadRow, record[0], err)
	}

	row := gameRow{
		date:       date,
		round:      strings.TrimSpace(record[1]),
		table:      strings.TrimSpace(record[2]),
		tournament: strings.TrimSpace(record[3]),
		town:       strings.TrimSpace(record[4]),
		club:       strings.TrimSpace(record[6]),
	}

	if raw := strings.TrimSpace(record[5]); raw != "" {
		country, ok := normalizeCountry(raw)
		if !ok {
			return gameRow{}, fmt.Errorf("%w: unknown country %q", ErrBadRow, raw)
		}
		row.country = country
	}

	seen := make(map[string]struct{}, model.SeatCount)
	for i := 0; i < model.SeatCount; i++ {
		base := 7 + i*3
		id := strings.TrimSpace(record[base])
		if id == "" {
			return gameRow{}, fmt.Errorf("%w: seat %d has no player id", ErrBadRow, i+1)
		}
		if _, dup := seen[id]; dup {
			return gameRow{}, fmt.Errorf("%w: player %s listed twice", ErrBadRow, id)
		}
		seen[id] = struct{}{}

		score, err := strconv.Atoi(strings.TrimSpace(record[base+2]))
		if err != nil {
			return gameRow{}, fmt.Errorf("%w: seat %d score %q: %v", ErrBadRow, i+1, record[base+2], err)
		}
		row.seats[i] = seatCell{
			registryID: id,
			name:       strings.TrimSpace(record[base+1]),
			score:      score,
		}
	}
	return row, nil
}
