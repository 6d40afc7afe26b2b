// Package model contains the relational record types passed between layers.
package model

import (
	"fmt"
	"time"
)

// SeatCount is the number of players at a riichi table.
const SeatCount = 4

// Country is an ISO 3166 country record.
type Country struct {
	ID     string // alpha-2 code, primary key
	Alpha3 string
	Name   string // English name
}

// Club is a registered mahjong club.
type Club struct {
	ID         int64
	CountryID  string
	Code       string
	TownRegion string
}

// Tournament groups games played under one event.
type Tournament struct {
	ID        int64
	Name      string
	FirstDay  time.Time
	CountryID string
	Town      string
	Rules     string
}

// Player is a registered player. RegistryID is the stable external key
// assigned by the tournament registry; EMAID is optional.
type Player struct {
	ID         int64
	Name       string
	RegistryID string
	EMAID      string
	ClubID     int64  // 0 when unknown
	CountryID  string // empty when unknown
}

// Seat is one player's final score in a game, in seating order (east first).
type Seat struct {
	Player int64
	Score  int
}

// Game is a single fully-played hanchan: four seats with final scores.
// Games are immutable once recorded.
type Game struct {
	ID           int64
	Round        string
	Table        string
	Date         time.Time
	IsTournament bool
	TournamentID int64 // 0 for club games
	ClubID       int64 // 0 for tournament games
	Seats        [SeatCount]Seat
}

// Players returns the participant identities in seating order.
func (g Game) Players() [SeatCount]int64 {
	var ids [SeatCount]int64
	for i, s := range g.Seats {
		ids[i] = s.Player
	}
	return ids
}

// Scores returns the final scores in seating order.
func (g Game) Scores() [SeatCount]int {
	var scores [SeatCount]int
	for i, s := range g.Seats {
		scores[i] = s.Score
	}
	return scores
}

// Validate checks the structural invariant every recorded game must hold:
// exactly four seats occupied by four distinct players.
func (g Game) Validate() error {
	seen := make(map[int64]struct{}, SeatCount)
	for i, s := range g.Seats {
		if s.Player == 0 {
			return fmt.Errorf("seat %d has no player", i+1)
		}
		if _, dup := seen[s.Player]; dup {
			return fmt.Errorf("player %d occupies more than one seat", s.Player)
		}
		seen[s.Player] = struct{}{}
	}
	return nil
}
