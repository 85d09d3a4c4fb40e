package simulate

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJudge(t *testing.T) {
	Convey("Given a noiseless judge over a hidden ordering", t, func() {
		ordering := hiddenOrdering(5)
		rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test source
		j := newJudge(ordering, rng, 0, 0)

		Convey("Then the stronger item always wins", func() {
			winner, loser, outcome := j.decide("item-003", "item-001")
			So(winner, ShouldEqual, "item-001")
			So(loser, ShouldEqual, "item-003")
			So(outcome, ShouldEqual, "win")
		})

		Convey("Then pair order does not matter", func() {
			winner, _, _ := j.decide("item-001", "item-003")
			So(winner, ShouldEqual, "item-001")
		})
	})

	Convey("Given a judge that always ties", t, func() {
		ordering := hiddenOrdering(5)
		rng := rand.New(rand.NewSource(1)) //nolint:gosec // deterministic test source
		j := newJudge(ordering, rng, 0, 1)

		Convey("Then every decision is a tie in presentation order", func() {
			winner, loser, outcome := j.decide("item-004", "item-002")
			So(outcome, ShouldEqual, "tie")
			So(winner, ShouldEqual, "item-004")
			So(loser, ShouldEqual, "item-002")
		})
	})
}

func TestAgreement(t *testing.T) {
	Convey("Given a hidden ordering", t, func() {
		ordering := []string{"a", "b", "c", "d"}

		Convey("When the rankings match it exactly", func() {
			rankings := []rankingEntry{
				{Rank: 1, Name: "a"}, {Rank: 2, Name: "b"},
				{Rank: 3, Name: "c"}, {Rank: 4, Name: "d"},
			}
			So(agreement(ordering, rankings), ShouldEqual, 1.0)
		})

		Convey("When the rankings are fully reversed", func() {
			rankings := []rankingEntry{
				{Rank: 1, Name: "d"}, {Rank: 2, Name: "c"},
				{Rank: 3, Name: "b"}, {Rank: 4, Name: "a"},
			}
			So(agreement(ordering, rankings), ShouldEqual, 0.0)
		})

		Convey("When one adjacent pair is swapped", func() {
			rankings := []rankingEntry{
				{Rank: 1, Name: "b"}, {Rank: 2, Name: "a"},
				{Rank: 3, Name: "c"}, {Rank: 4, Name: "d"},
			}
			So(agreement(ordering, rankings), ShouldAlmostEqual, 5.0/6.0, 1e-9)
		})

		Convey("When there are no rankings", func() {
			So(agreement(ordering, nil), ShouldEqual, 0.0)
		})
	})
}

func TestHiddenOrdering(t *testing.T) {
	Convey("Given a requested size", t, func() {
		names := hiddenOrdering(3)
		So(names, ShouldResemble, []string{"item-001", "item-002", "item-003"})
	})
}
