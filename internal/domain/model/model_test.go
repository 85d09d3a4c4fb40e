package model_test

import (
	"testing"
	"time"

	model "github.com/okian/duel/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewRatingList(t *testing.T) {
	Convey("Given a set of names", t, func() {
		names := []string{"alpha", "beta", "gamma"}

		Convey("When building a rating list", func() {
			list := model.NewRatingList(names, 1500)

			Convey("Then every item starts at the initial rating with zero comparisons", func() {
				So(list, ShouldHaveLength, 3)
				for _, name := range names {
					item := list[name]
					So(item.Name, ShouldEqual, name)
					So(item.Rating, ShouldEqual, 1500.0)
					So(item.Comparisons, ShouldEqual, 0)
				}
			})
		})

		Convey("When the names contain duplicates", func() {
			list := model.NewRatingList([]string{"alpha", "alpha", "beta"}, 1500)

			Convey("Then duplicates collapse to one entry", func() {
				So(list, ShouldHaveLength, 2)
			})
		})
	})
}

func TestRatingList_ApplyRevert(t *testing.T) {
	Convey("Given a rating list and a comparison", t, func() {
		list := model.NewRatingList([]string{"alpha", "beta"}, 1500)
		cmp := model.Comparison{
			ID:           "c1",
			Winner:       "alpha",
			Loser:        "beta",
			Outcome:      model.OutcomeWin,
			WinnerBefore: 1500,
			LoserBefore:  1500,
			WinnerAfter:  1516,
			LoserAfter:   1484,
			At:           time.Now().UTC(),
		}

		Convey("When the comparison is applied", func() {
			list.Apply(cmp)

			Convey("Then the after-ratings and counts are written", func() {
				So(list["alpha"].Rating, ShouldEqual, 1516.0)
				So(list["beta"].Rating, ShouldEqual, 1484.0)
				So(list["alpha"].Comparisons, ShouldEqual, 1)
				So(list["beta"].Comparisons, ShouldEqual, 1)
			})

			Convey("And when it is reverted", func() {
				list.Revert(cmp)

				Convey("Then the list is exactly as before", func() {
					So(list["alpha"].Rating, ShouldEqual, 1500.0)
					So(list["beta"].Rating, ShouldEqual, 1500.0)
					So(list["alpha"].Comparisons, ShouldEqual, 0)
					So(list["beta"].Comparisons, ShouldEqual, 0)
				})
			})
		})
	})
}

func TestRatingList_Clone(t *testing.T) {
	Convey("Given a rating list", t, func() {
		list := model.NewRatingList([]string{"alpha", "beta"}, 1500)

		Convey("When cloned and the clone is mutated", func() {
			clone := list.Clone()
			item := clone["alpha"]
			item.Rating = 1700
			clone["alpha"] = item

			Convey("Then the original is unaffected", func() {
				So(list["alpha"].Rating, ShouldEqual, 1500.0)
				So(clone["alpha"].Rating, ShouldEqual, 1700.0)
			})
		})
	})
}

func TestComparison_SamePair(t *testing.T) {
	Convey("Given a recorded comparison", t, func() {
		cmp := model.Comparison{Winner: "alpha", Loser: "beta"}

		Convey("Then it matches the pair in either order", func() {
			So(cmp.SamePair(model.Pair{Left: "alpha", Right: "beta"}), ShouldBeTrue)
			So(cmp.SamePair(model.Pair{Left: "beta", Right: "alpha"}), ShouldBeTrue)
		})

		Convey("Then it rejects any other pair", func() {
			So(cmp.SamePair(model.Pair{Left: "alpha", Right: "gamma"}), ShouldBeFalse)
			So(cmp.SamePair(model.Pair{Left: "gamma", Right: "delta"}), ShouldBeFalse)
		})
	})
}
