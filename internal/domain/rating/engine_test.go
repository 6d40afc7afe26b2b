package rating_test

import (
	"context"
	"reflect"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tonpuu/riichirank/internal/domain/model"
	"github.com/tonpuu/riichirank/internal/domain/rating"
)

func TestEngine_UnknownModel(t *testing.T) {
	Convey("Given an unsupported model value", t, func() {
		_, err := rating.NewEngine(rating.Model(99))

		Convey("Then engine construction fails with the model sentinel", func() {
			So(err, ShouldNotBeNil)
			So(err, ShouldWrap, rating.ErrUnknownModel)
		})
	})

	Convey("Given model names from config or API input", t, func() {
		Convey("Then known spellings resolve", func() {
			m, err := rating.ParseModel("Plackett-Luce")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, rating.PlackettLuce)

			m, err = rating.ParseModel("bt")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, rating.BradleyTerry)

			m, err = rating.ParseModel("thurstone_mosteller")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, rating.ThurstoneMosteller)
		})

		Convey("And unknown names fail", func() {
			_, err := rating.ParseModel("elo")
			So(err, ShouldWrap, rating.ErrUnknownModel)
		})
	})
}

func TestEngine_ConsistentWinnerClimbs(t *testing.T) {
	Convey("Given a history where player 1 always finishes first", t, func() {
		players := [4]int64{1, 2, 3, 4}
		var history []model.Game
		for i := 0; i < 100; i++ {
			scores := [4]int{52000, 26000, 14000, 8000}
			// Rotate the losers' placements so only the winner is constant.
			if i%2 == 1 {
				scores = [4]int{52000, 8000, 26000, 14000}
			}
			history = append(history, game(int64(i+1), players, scores))
		}

		for _, m := range rating.Models() {
			Convey("When intermediate leaderboards are built under "+m.String(), func() {
				prev := -1e18
				strictIncreases := 0
				for n := 1; n <= len(history); n++ {
					engine, err := rating.NewEngine(m)
					So(err, ShouldBeNil)
					store, err := engine.Run(context.Background(), history[:n])
					So(err, ShouldBeNil)
					b, ok := store.Get(1)
					So(ok, ShouldBeTrue)
					score := b.Ordinal()
					So(score, ShouldBeGreaterThanOrEqualTo, prev)
					if score > prev {
						strictIncreases++
					}
					prev = score
				}

				Convey("Then the winner's score keeps climbing", func() {
					So(strictIncreases, ShouldBeGreaterThan, 0)
				})
			})
		}
	})
}

func TestEngine_MalformedGamePolicy(t *testing.T) {
	Convey("Given a history containing a three-player game", t, func() {
		good := game(1, [4]int64{1, 2, 3, 4}, [4]int{40000, 30000, 20000, 10000})
		bad := game(2, [4]int64{5, 6, 7, 0}, [4]int{40000, 30000, 20000, 10000})
		dup := game(3, [4]int64{1, 1, 2, 3}, [4]int{40000, 30000, 20000, 10000})
		history := []model.Game{good, bad, dup}

		Convey("When run under the lenient policy", func() {
			engine, err := rating.NewEngine(rating.BradleyTerry, rating.WithLenient(true))
			So(err, ShouldBeNil)
			store, err := engine.Run(context.Background(), history)

			Convey("Then the pass succeeds and the bad games leave no trace", func() {
				So(err, ShouldBeNil)
				So(store.Len(), ShouldEqual, 4)
				_, ok := store.Get(5)
				So(ok, ShouldBeFalse)
				_, ok = store.Get(7)
				So(ok, ShouldBeFalse)
			})

			Convey("And players referenced by a skipped game keep their values", func() {
				So(err, ShouldBeNil)
				clean, err := rating.NewEngine(rating.BradleyTerry)
				So(err, ShouldBeNil)
				want, err := clean.Run(context.Background(), []model.Game{good})
				So(err, ShouldBeNil)
				for _, id := range []int64{1, 2, 3} {
					got, _ := store.Get(id)
					expected, _ := want.Get(id)
					So(got, ShouldResemble, expected)
				}
			})
		})

		Convey("When run under the strict policy", func() {
			engine, err := rating.NewEngine(rating.BradleyTerry)
			So(err, ShouldBeNil)
			store, err := engine.Run(context.Background(), history)

			Convey("Then the run reports the malformed game and yields nothing", func() {
				So(err, ShouldWrap, rating.ErrMalformedGame)
				So(err.Error(), ShouldContainSubstring, "game 1")
				So(store, ShouldBeNil)
			})
		})
	})
}

func TestEngine_CancellationKeepsPrefix(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine, err := rating.NewEngine(rating.PlackettLuce)
		So(err, ShouldBeNil)
		history := []model.Game{game(1, [4]int64{1, 2, 3, 4}, [4]int{4, 3, 2, 1})}
		store, err := engine.Run(ctx, history)

		Convey("Then the run stops before touching any game", func() {
			So(err, ShouldWrap, context.Canceled)
			So(store, ShouldNotBeNil)
			So(store.Len(), ShouldEqual, 0)
		})
	})
}

func TestBuildAll_DeterminismAndIndependence(t *testing.T) {
	Convey("Given a mixed game history", t, func() {
		var history []model.Game
		rosters := [][4]int64{
			{1, 2, 3, 4}, {2, 3, 4, 5}, {1, 3, 5, 7}, {2, 4, 6, 8}, {5, 6, 7, 8},
		}
		scoreSets := [][4]int{
			{45000, 25000, 20000, 10000},
			{30000, 30000, 25000, 15000},
			{26000, 26000, 26000, 22000},
			{52000, 24000, 14000, 10000},
			{25000, 25000, 25000, 25000},
		}
		for i := range rosters {
			history = append(history, game(int64(i+1), rosters[i], scoreSets[i]))
		}

		Convey("When buildAll runs twice", func() {
			first, err := rating.BuildAll(context.Background(), history)
			So(err, ShouldBeNil)
			second, err := rating.BuildAll(context.Background(), history)
			So(err, ShouldBeNil)

			Convey("Then the leaderboards are identical", func() {
				So(reflect.DeepEqual(first, second), ShouldBeTrue)
			})
		})

		Convey("When compared against three independent runs", func() {
			all, err := rating.BuildAll(context.Background(), history)
			So(err, ShouldBeNil)

			Convey("Then each board matches its standalone pass", func() {
				for _, m := range rating.Models() {
					engine, err := rating.NewEngine(m)
					So(err, ShouldBeNil)
					store, err := engine.Run(context.Background(), history)
					So(err, ShouldBeNil)
					So(all[m], ShouldResemble, rating.Build(store))
				}
			})
		})

		Convey("When a board is built", func() {
			all, err := rating.BuildAll(context.Background(), history)
			So(err, ShouldBeNil)

			Convey("Then ranks are 1-based, ordered by score, ties by player id", func() {
				for _, m := range rating.Models() {
					board := all[m]
					So(board, ShouldHaveLength, 8)
					for i, e := range board {
						So(e.Rank, ShouldEqual, i+1)
						if i > 0 {
							So(e.Score, ShouldBeLessThanOrEqualTo, board[i-1].Score)
							if e.Score == board[i-1].Score {
								So(e.Player, ShouldBeGreaterThan, board[i-1].Player)
							}
						}
					}
				}
			})
		})
	})
}
