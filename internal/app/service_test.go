package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tonpuu/riichirank/internal/adapters/repository"
	service "github.com/tonpuu/riichirank/internal/app"
	"github.com/tonpuu/riichirank/internal/domain/rating"
	"github.com/tonpuu/riichirank/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const sheetHeader = "date,round,table,tournament,town,country,club," +
	"p1_id,p1_name,p1_score,p2_id,p2_name,p2_score," +
	"p3_id,p3_name,p3_score,p4_id,p4_name,p4_score"

var sheetRows = []string{
	"2024-05-10,R1,1,,Utrecht,NL,UMC,NL-1,Anna,42000,NL-2,Bram,28000,NL-3,Cees,18000,NL-4,Daan,12000",
	"2024-05-10,R2,1,,Utrecht,NL,UMC,NL-1,Anna,38000,NL-3,Cees,30000,NL-2,Bram,20000,NL-4,Daan,12000",
	"2024-05-17,R1,1,,Utrecht,NL,UMC,NL-1,Anna,45000,NL-4,Daan,25000,NL-2,Bram,20000,NL-3,Cees,10000",
}

func newService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	store, err := repository.Open(context.Background(), filepath.Join(t.TempDir(), "svc.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return service.New(store, opts...)
}

func csvBody(rows ...string) *strings.Reader {
	return strings.NewReader(sheetHeader + "\n" + strings.Join(rows, "\n") + "\n")
}

func TestService_ImportRecomputeRead(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service over an empty store", t, func() {
		svc := newService(t)

		Convey("When a score sheet is imported", func() {
			report, err := svc.ImportCSV(ctx, csvBody(sheetRows...))
			So(err, ShouldBeNil)
			So(report.Imported, ShouldEqual, 3)

			Convey("Then every model serves a leaderboard", func() {
				for _, m := range rating.Models() {
					rows, err := svc.Leaderboard(ctx, m.String(), 10)
					So(err, ShouldBeNil)
					So(rows, ShouldHaveLength, 4)

					Convey("And the consistent winner tops the "+m.String()+" board", func() {
						So(rows[0].Name, ShouldEqual, "Anna")
						So(rows[0].Rank, ShouldEqual, 1)
					})
				}
			})

			Convey("And a player's rank is queryable", func() {
				board, err := svc.Leaderboard(ctx, "pl", 1)
				So(err, ShouldBeNil)
				row, err := svc.PlayerRank(ctx, "pl", board[0].PlayerID)
				So(err, ShouldBeNil)
				So(row.Rank, ShouldEqual, 1)
			})

			Convey("And stats reflect the imported history", func() {
				stats := svc.Stats(ctx)
				So(stats["games"], ShouldEqual, 3)
				So(stats["players"], ShouldEqual, 4)
				So(stats, ShouldContainKey, "last_recompute")
			})
		})

		Convey("When an unknown model is requested", func() {
			_, err := svc.Leaderboard(ctx, "elo", 10)
			So(err, ShouldWrap, rating.ErrUnknownModel)

			_, err = svc.PlayerRank(ctx, "elo", 1)
			So(err, ShouldWrap, rating.ErrUnknownModel)
		})

		Convey("When an unrated player's rank is requested", func() {
			_, err := svc.ImportCSV(ctx, csvBody(sheetRows[0]))
			So(err, ShouldBeNil)
			_, err = svc.PlayerRank(ctx, "pl", 9999)
			So(err, ShouldWrap, repository.ErrNotFound)
		})
	})

	Convey("Given a capped leaderboard limit", t, func() {
		svc := newService(t, service.WithMaxLeaderboardLimit(2))
		_, err := svc.ImportCSV(ctx, csvBody(sheetRows...))
		So(err, ShouldBeNil)

		Convey("When more rows than the cap are requested", func() {
			rows, err := svc.Leaderboard(ctx, "pl", 100)

			Convey("Then the result is clamped", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given an import with only duplicate rows", t, func() {
		svc := newService(t)
		_, err := svc.ImportCSV(ctx, csvBody(sheetRows[0]))
		So(err, ShouldBeNil)
		before := svc.Stats(ctx)

		report, err := svc.ImportCSV(ctx, csvBody(sheetRows[0]))

		Convey("Then nothing changes", func() {
			So(err, ShouldBeNil)
			So(report.Imported, ShouldEqual, 0)
			So(report.Duplicates, ShouldEqual, 1)
			So(svc.Stats(ctx)["games"], ShouldEqual, before["games"])
		})
	})
}
