package history_test

import (
	"errors"
	"fmt"
	"testing"

	history "github.com/okian/duel/internal/domain/history"
	"github.com/okian/duel/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func comparison(id string) model.Comparison {
	return model.Comparison{ID: id, Winner: "alpha", Loser: "beta", Outcome: model.OutcomeWin}
}

func TestLog_RecordAndStep(t *testing.T) {
	Convey("Given an empty log", t, func() {
		l := history.New()

		Convey("Then stepping back fails with ErrAtStart", func() {
			_, err := l.StepBack()
			So(errors.Is(err, history.ErrAtStart), ShouldBeTrue)
		})

		Convey("Then stepping forward fails with ErrAtEnd", func() {
			_, err := l.StepForward()
			So(errors.Is(err, history.ErrAtEnd), ShouldBeTrue)
		})

		Convey("Then the tail is empty", func() {
			_, ok := l.Tail()
			So(ok, ShouldBeFalse)
		})

		Convey("When three comparisons are recorded", func() {
			l.Record(comparison("c1"))
			l.Record(comparison("c2"))
			l.Record(comparison("c3"))

			Convey("Then the cursor sits past the last record", func() {
				So(l.Len(), ShouldEqual, 3)
				So(l.Cursor(), ShouldEqual, 3)
				So(l.Redoable(), ShouldEqual, 0)
			})

			Convey("Then the tail is the most recent record", func() {
				tail, ok := l.Tail()
				So(ok, ShouldBeTrue)
				So(tail.ID, ShouldEqual, "c3")
			})

			Convey("And stepping back returns records newest first", func() {
				c, err := l.StepBack()
				So(err, ShouldBeNil)
				So(c.ID, ShouldEqual, "c3")

				c, err = l.StepBack()
				So(err, ShouldBeNil)
				So(c.ID, ShouldEqual, "c2")
				So(l.Redoable(), ShouldEqual, 2)

				Convey("And stepping forward replays them in order", func() {
					c, err := l.StepForward()
					So(err, ShouldBeNil)
					So(c.ID, ShouldEqual, "c2")

					c, err = l.StepForward()
					So(err, ShouldBeNil)
					So(c.ID, ShouldEqual, "c3")

					_, err = l.StepForward()
					So(errors.Is(err, history.ErrAtEnd), ShouldBeTrue)
				})
			})
		})
	})
}

func TestLog_RecordTruncatesUndone(t *testing.T) {
	Convey("Given a log with undone records", t, func() {
		l := history.New()
		l.Record(comparison("c1"))
		l.Record(comparison("c2"))
		l.Record(comparison("c3"))
		_, _ = l.StepBack()
		_, _ = l.StepBack()
		So(l.Redoable(), ShouldEqual, 2)

		Convey("When a new comparison is recorded", func() {
			l.Record(comparison("c4"))

			Convey("Then the undone records are discarded", func() {
				So(l.Len(), ShouldEqual, 2)
				So(l.Cursor(), ShouldEqual, 2)
				So(l.Redoable(), ShouldEqual, 0)

				tail, ok := l.Tail()
				So(ok, ShouldBeTrue)
				So(tail.ID, ShouldEqual, "c4")
			})

			Convey("And stepping back skips the discarded future", func() {
				c, err := l.StepBack()
				So(err, ShouldBeNil)
				So(c.ID, ShouldEqual, "c4")

				c, err = l.StepBack()
				So(err, ShouldBeNil)
				So(c.ID, ShouldEqual, "c1")
			})
		})
	})
}

func TestLog_Limit(t *testing.T) {
	Convey("Given a log bounded to three records", t, func() {
		l := history.New(history.WithLimit(3))

		Convey("When five comparisons are recorded", func() {
			for i := 1; i <= 5; i++ {
				l.Record(comparison(fmt.Sprintf("c%d", i)))
			}

			Convey("Then only the newest three remain", func() {
				So(l.Len(), ShouldEqual, 3)
				So(l.Cursor(), ShouldEqual, 3)

				c, err := l.StepBack()
				So(err, ShouldBeNil)
				So(c.ID, ShouldEqual, "c5")

				_, _ = l.StepBack()
				c, err = l.StepBack()
				So(err, ShouldBeNil)
				So(c.ID, ShouldEqual, "c3")

				_, err = l.StepBack()
				So(errors.Is(err, history.ErrAtStart), ShouldBeTrue)
			})
		})
	})
}
