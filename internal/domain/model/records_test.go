package model_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tonpuu/riichirank/internal/domain/model"
)

func TestGameValidate(t *testing.T) {
	Convey("Given a recorded game", t, func() {
		g := model.Game{
			ID:   1,
			Date: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		}
		for i := 0; i < model.SeatCount; i++ {
			g.Seats[i] = model.Seat{Player: int64(i + 1), Score: 25000}
		}

		Convey("When all four seats hold distinct players", func() {
			So(g.Validate(), ShouldBeNil)
		})

		Convey("When a seat is empty", func() {
			g.Seats[2].Player = 0
			err := g.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "seat 3")
		})

		Convey("When a player sits twice", func() {
			g.Seats[3].Player = g.Seats[0].Player
			err := g.Validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "more than one seat")
		})
	})
}

func TestGameAccessors(t *testing.T) {
	Convey("Given a game with known seats", t, func() {
		g := model.Game{}
		for i := 0; i < model.SeatCount; i++ {
			g.Seats[i] = model.Seat{Player: int64(10 + i), Score: 40000 - i*10000}
		}

		Convey("Then Players and Scores preserve seating order", func() {
			So(g.Players(), ShouldEqual, [model.SeatCount]int64{10, 11, 12, 13})
			So(g.Scores(), ShouldEqual, [model.SeatCount]int{40000, 30000, 20000, 10000})
		})
	})
}
