package rating_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tonpuu/riichirank/internal/domain/model"
	"github.com/tonpuu/riichirank/internal/domain/rating"
)

func game(id int64, players [4]int64, scores [4]int) model.Game {
	g := model.Game{
		ID:    id,
		Round: fmt.Sprintf("R%d", id),
		Table: "1",
		Date:  time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	for i := range players {
		g.Seats[i] = model.Seat{Player: players[i], Score: scores[i]}
	}
	return g
}

func runOne(t *testing.T, m rating.Model, g model.Game) *rating.Store {
	t.Helper()
	engine, err := rating.NewEngine(m)
	So(err, ShouldBeNil)
	store, err := engine.Run(context.Background(), []model.Game{g})
	So(err, ShouldBeNil)
	return store
}

func TestUpdateLaws_StrictRanking(t *testing.T) {
	Convey("Given four fresh players and one strictly ranked game", t, func() {
		players := [4]int64{1, 2, 3, 4}
		g := game(1, players, [4]int{90, 70, 50, 30})

		for _, m := range rating.Models() {
			Convey("When rated under "+m.String(), func() {
				store := runOne(t, m, g)

				Convey("Then post-game means follow the placements", func() {
					var mus [4]float64
					for i, id := range players {
						b, ok := store.Get(id)
						So(ok, ShouldBeTrue)
						mus[i] = b.Mu
					}
					So(mus[0], ShouldBeGreaterThan, mus[1])
					So(mus[1], ShouldBeGreaterThan, mus[2])
					So(mus[2], ShouldBeGreaterThan, mus[3])
				})

				Convey("And the winner gained while the loser lost", func() {
					first, _ := store.Get(1)
					last, _ := store.Get(4)
					So(first.Mu, ShouldBeGreaterThan, rating.DefaultMu)
					So(last.Mu, ShouldBeLessThan, rating.DefaultMu)
				})

				Convey("And the leaderboard assigns ranks 1-4 without ties", func() {
					board := rating.Build(store)
					So(board, ShouldHaveLength, 4)
					for i, e := range board {
						So(e.Rank, ShouldEqual, i+1)
					}
					So(board[0].Player, ShouldEqual, 1)
					So(board[3].Player, ShouldEqual, 4)
				})
			})
		}
	})
}

func TestUpdateLaws_FourWayTie(t *testing.T) {
	Convey("Given four fresh players and a four-way tie", t, func() {
		players := [4]int64{1, 2, 3, 4}
		g := game(1, players, [4]int{50, 50, 50, 50})

		for _, m := range rating.Models() {
			Convey("When rated under "+m.String(), func() {
				store := runOne(t, m, g)

				Convey("Then all four beliefs are identical", func() {
					first, _ := store.Get(1)
					for _, id := range players[1:] {
						b, _ := store.Get(id)
						So(b.Mu, ShouldAlmostEqual, first.Mu)
						So(b.Sigma, ShouldAlmostEqual, first.Sigma)
					}
				})

				Convey("And means are unchanged while uncertainty shrank", func() {
					for _, id := range players {
						b, _ := store.Get(id)
						So(b.Mu, ShouldAlmostEqual, rating.DefaultMu)
						So(b.Sigma, ShouldBeLessThan, rating.DefaultSigma)
						So(b.Sigma, ShouldBeGreaterThan, 0)
					}
				})
			})
		}
	})
}

func TestUpdateLaws_TieInvariance(t *testing.T) {
	Convey("Given a game with two tied players of equal belief", t, func() {
		g := game(1, [4]int64{1, 2, 3, 4}, [4]int{80, 60, 60, 20})
		swapped := game(1, [4]int64{1, 3, 2, 4}, [4]int{80, 60, 60, 20})

		for _, m := range rating.Models() {
			Convey("When rated under "+m.String(), func() {
				store := runOne(t, m, g)

				Convey("Then the tied players receive identical updates", func() {
					b2, _ := store.Get(2)
					b3, _ := store.Get(3)
					So(b2.Mu, ShouldAlmostEqual, b3.Mu)
					So(b2.Sigma, ShouldAlmostEqual, b3.Sigma)
				})

				Convey("And listing them in the other order changes nothing", func() {
					other := runOne(t, m, swapped)
					for _, id := range []int64{1, 2, 3, 4} {
						want, _ := store.Get(id)
						got, _ := other.Get(id)
						So(got.Mu, ShouldAlmostEqual, want.Mu)
						So(got.Sigma, ShouldAlmostEqual, want.Sigma)
					}
				})
			})
		}
	})
}

func TestUpdateLaws_UncertaintyMonotonicity(t *testing.T) {
	Convey("Given a growing game history", t, func() {
		players := [4]int64{1, 2, 3, 4}
		var history []model.Game
		scores := [][4]int{
			{45000, 30000, 15000, 10000},
			{12000, 38000, 26000, 24000},
			{25000, 25000, 25000, 25000},
			{31000, 8000, 41000, 20000},
			{22000, 22000, 35000, 21000},
		}
		for i, s := range scores {
			history = append(history, game(int64(i+1), players, s))
		}

		for _, m := range rating.Models() {
			Convey("When rated under "+m.String(), func() {
				Convey("Then uncertainty never grows across prefixes", func() {
					prev := map[int64]float64{}
					for _, id := range players {
						prev[id] = rating.DefaultSigma
					}
					for n := 1; n <= len(history); n++ {
						engine, err := rating.NewEngine(m)
						So(err, ShouldBeNil)
						store, err := engine.Run(context.Background(), history[:n])
						So(err, ShouldBeNil)
						for _, id := range players {
							b, _ := store.Get(id)
							So(b.Sigma, ShouldBeLessThanOrEqualTo, prev[id])
							So(b.Sigma, ShouldBeGreaterThan, 0)
							prev[id] = b.Sigma
						}
					}
				})
			})
		}
	})
}

func TestUpdateLaws_ExtremeSkillGapStaysFinite(t *testing.T) {
	Convey("Given a long lopsided history", t, func() {
		players := [4]int64{1, 2, 3, 4}
		var history []model.Game
		for i := 0; i < 500; i++ {
			history = append(history, game(int64(i+1), players, [4]int{48000, 24000, 18000, 10000}))
		}

		for _, m := range rating.Models() {
			Convey("When rated under "+m.String(), func() {
				engine, err := rating.NewEngine(m)
				So(err, ShouldBeNil)
				store, err := engine.Run(context.Background(), history)

				Convey("Then every belief stays finite with positive uncertainty", func() {
					So(err, ShouldBeNil)
					for _, id := range players {
						b, _ := store.Get(id)
						So(b.Sigma, ShouldBeGreaterThan, 0)
						So(b.Sigma, ShouldBeLessThan, rating.DefaultSigma)
					}
				})
			})
		}
	})
}
