// Package repository persists the relational record store (players, games,
// tournaments) and the per-model rating output in sqlite.
package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/tonpuu/riichirank/internal/domain/model"
	"github.com/tonpuu/riichirank/internal/domain/rating"
)

//go:embed schema.sql
var schemaFS embed.FS

const dateLayout = "2006-01-02"

// Store wraps the sqlite database. A single Store is safe for concurrent
// readers; writers are serialized by sqlite itself.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_fk=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// UpsertCountry inserts or refreshes a country record keyed by alpha-2 code.
func (s *Store) UpsertCountry(ctx context.Context, c model.Country) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO country (id, alpha3, name_english) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET alpha3 = excluded.alpha3,
			name_english = excluded.name_english
	`, c.ID, c.Alpha3, c.Name)
	if err != nil {
		return fmt.Errorf("upsert country %s: %w", c.ID, err)
	}
	return nil
}

// UpsertClub inserts or refreshes a club keyed by its code and returns its id.
func (s *Store) UpsertClub(ctx context.Context, c model.Club) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO club (country_id, code, town_region) VALUES (?, ?, ?)
		ON CONFLICT (code) DO UPDATE SET country_id = excluded.country_id,
			town_region = excluded.town_region
		RETURNING id
	`, nullString(c.CountryID), c.Code, c.TownRegion).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert club %s: %w", c.Code, err)
	}
	return id, nil
}

// InsertTournament records a new tournament and returns its id.
func (s *Store) InsertTournament(ctx context.Context, t model.Tournament) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tournament (name, first_day, country_id, town, rules)
		VALUES (?, ?, ?, ?, ?)
	`, t.Name, t.FirstDay.Format(dateLayout), nullString(t.CountryID), t.Town, t.Rules)
	if err != nil {
		return 0, fmt.Errorf("insert tournament %s: %w", t.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert tournament %s: %w", t.Name, err)
	}
	return id, nil
}

// FindTournamentNear looks up a tournament in the same town whose first day
// falls within windowDays of day. Used by the importer to decide whether a
// row belongs to an already-known tournament.
func (s *Store) FindTournamentNear(ctx context.Context, town string, day time.Time, windowDays int) (model.Tournament, bool, error) {
	lo := day.AddDate(0, 0, -windowDays).Format(dateLayout)
	hi := day.AddDate(0, 0, windowDays).Format(dateLayout)
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, first_day, COALESCE(country_id, ''), town, rules
		FROM tournament
		WHERE town = ? AND first_day BETWEEN ? AND ?
		ORDER BY first_day LIMIT 1
	`, town, lo, hi)

	var t model.Tournament
	err := row.Scan(&t.ID, &t.Name, &t.FirstDay, &t.CountryID, &t.Town, &t.Rules)
	if err == sql.ErrNoRows {
		return model.Tournament{}, false, nil
	}
	if err != nil {
		return model.Tournament{}, false, fmt.Errorf("find tournament near %s/%s: %w", town, day.Format(dateLayout), err)
	}
	return t, true, nil
}

// UpsertPlayer inserts or refreshes a player keyed by the external registry
// id and returns the internal id used by games and ratings.
func (s *Store) UpsertPlayer(ctx context.Context, p model.Player) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO player (name, registry_id, ema_id, club_id, country_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (registry_id) DO UPDATE SET name = excluded.name,
			ema_id = COALESCE(excluded.ema_id, player.ema_id),
			club_id = COALESCE(excluded.club_id, player.club_id),
			country_id = COALESCE(excluded.country_id, player.country_id)
		RETURNING id
	`, p.Name, p.RegistryID, nullString(p.EMAID), nullInt(p.ClubID), nullString(p.CountryID)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert player %s: %w", p.RegistryID, err)
	}
	return id, nil
}

// InsertGame records a game and its four seat scores in one transaction.
func (s *Store) InsertGame(ctx context.Context, g model.Game) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx, `
		INSERT INTO game (round, table_label, date, is_tournament, tournament_id, club_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, g.Round, g.Table, g.Date.Format(dateLayout), g.IsTournament,
		nullInt(g.TournamentID), nullInt(g.ClubID))
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	for seat, seatRec := range g.Seats {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO player_game (player_id, game_id, seat, score)
			VALUES (?, ?, ?, ?)
		`, seatRec.Player, id, seat+1, seatRec.Score)
		if err != nil {
			return 0, fmt.Errorf("insert game %d seat %d: %w", id, seat+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}
	return id, nil
}

// ListGames returns the full game history in chronological insertion order,
// the order the rating engine consumes it in.
func (s *Store) ListGames(ctx context.Context) ([]model.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.round, g.table_label, g.date, g.is_tournament,
			COALESCE(g.tournament_id, 0), COALESCE(g.club_id, 0),
			pg.seat, pg.player_id, pg.score
		FROM game g
		JOIN player_game pg ON pg.game_id = g.id
		ORDER BY g.date, g.id, pg.seat
	`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	var cur *model.Game
	for rows.Next() {
		var (
			g      model.Game
			seat   int
			player int64
			score  int
		)
		if err := rows.Scan(&g.ID, &g.Round, &g.Table, &g.Date, &g.IsTournament,
			&g.TournamentID, &g.ClubID, &seat, &player, &score); err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		if cur == nil || cur.ID != g.ID {
			games = append(games, g)
			cur = &games[len(games)-1]
		}
		if seat < 1 || seat > model.SeatCount {
			return nil, fmt.Errorf("list games: game %d has seat %d", g.ID, seat)
		}
		cur.Seats[seat-1] = model.Seat{Player: player, Score: score}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// ReplaceRatings overwrites the stored leaderboard for one model. Reruns of
// the engine are full recomputes, so persistence is a full overwrite too.
func (s *Store) ReplaceRatings(ctx context.Context, m rating.Model, entries []rating.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace ratings %s: %w", m, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM rating WHERE model = ?`, m.String()); err != nil {
		return fmt.Errorf("replace ratings %s: %w", m, err)
	}
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rating (player_id, model, score, rank) VALUES (?, ?, ?, ?)
		`, e.Player, m.String(), e.Score, e.Rank)
		if err != nil {
			return fmt.Errorf("replace ratings %s player %d: %w", m, e.Player, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace ratings %s: %w", m, err)
	}
	return nil
}

// LeaderboardRow is one stored leaderboard entry joined with player identity.
type LeaderboardRow struct {
	Rank     int
	PlayerID int64
	Name     string
	Score    float64
}

// Leaderboard returns the stored top-n rows for a model ordered by rank.
func (s *Store) Leaderboard(ctx context.Context, m rating.Model, n int) ([]LeaderboardRow, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.rank, r.player_id, p.name, r.score
		FROM rating r
		JOIN player p ON p.id = r.player_id
		WHERE r.model = ?
		ORDER BY r.rank
		LIMIT ?
	`, m.String(), n)
	if err != nil {
		return nil, fmt.Errorf("leaderboard %s: %w", m, err)
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.Rank, &row.PlayerID, &row.Name, &row.Score); err != nil {
			return nil, fmt.Errorf("leaderboard %s: %w", m, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard %s: %w", m, err)
	}
	return out, nil
}

// PlayerRank returns a single player's stored rank and score under a model.
func (s *Store) PlayerRank(ctx context.Context, m rating.Model, playerID int64) (LeaderboardRow, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.rank, r.player_id, p.name, r.score
		FROM rating r
		JOIN player p ON p.id = r.player_id
		WHERE r.model = ? AND r.player_id = ?
	`, m.String(), playerID)

	var out LeaderboardRow
	err := row.Scan(&out.Rank, &out.PlayerID, &out.Name, &out.Score)
	if err == sql.ErrNoRows {
		return LeaderboardRow{}, ErrNotFound
	}
	if err != nil {
		return LeaderboardRow{}, fmt.Errorf("player rank %s/%d: %w", m, playerID, err)
	}
	return out, nil
}

// CountPlayers returns the number of registered players.
func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM player`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

// CountGames returns the number of recorded games.
func (s *Store) CountGames(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
