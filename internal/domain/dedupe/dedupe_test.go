package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tonpuu/riichirank/internal/domain/dedupe"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When a signature is recorded", func() {
			So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)

			Convey("Then it is seen on the second pass", func() {
				So(d.SeenAndRecord(ctx, "a"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And other signatures are unaffected", func() {
				So(d.SeenAndRecord(ctx, "b"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a signature is unrecorded after a failed write", func() {
			So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			d.Unrecord(ctx, "a")

			Convey("Then the row can be retried", func() {
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		for i := 0; i < 3; i++ {
			So(d.SeenAndRecord(ctx, fmt.Sprintf("sig-%d", i)), ShouldBeFalse)
		}

		Convey("When capacity is exceeded", func() {
			So(d.SeenAndRecord(ctx, "sig-3"), ShouldBeFalse)

			Convey("Then the oldest signature is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "sig-0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "sig-3"), ShouldBeTrue)
			})
		})
	})
}
