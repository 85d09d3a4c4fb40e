package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	app "github.com/okian/duel/internal/app"
	"github.com/okian/duel/internal/domain/history"
	"github.com/okian/duel/internal/domain/model"
	"github.com/okian/duel/internal/domain/selector"
	"github.com/okian/duel/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestService(t *testing.T, opts ...app.Option) *app.Service {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}
	base := []app.Option{
		app.WithDataDir(t.TempDir()),
		app.WithSelector(selector.New(
			selector.WithRand(rand.New(rand.NewSource(1))), //nolint:gosec // deterministic test source
			selector.WithJitter(0),
		)),
	}
	return app.New(append(base, opts...)...)
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given an unstarted service", t, func() {
		ctx := context.Background()
		svc := newTestService(t)

		Convey("Then operations fail with ErrNotStarted", func() {
			_, err := svc.NextPair(ctx, "movies")
			So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)

			_, err = svc.Lists(ctx)
			So(errors.Is(err, app.ErrNotStarted), ShouldBeTrue)

			So(errors.Is(svc.CreateList(ctx, "movies", []string{"a"}), app.ErrNotStarted), ShouldBeTrue)
		})

		Convey("When started", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("Then stats report the started state", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["activeSessions"], ShouldEqual, 0)
			})
		})
	})
}

func TestService_ChooseFlow(t *testing.T) {
	Convey("Given a started service with a three-item list", t, func() {
		ctx := context.Background()
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		So(svc.CreateList(ctx, "movies", []string{"alien", "solaris", "stalker"}), ShouldBeNil)

		Convey("When a choice is recorded between equals", func() {
			cmp, err := svc.Choose(ctx, "movies", "alien", "solaris")

			Convey("Then ratings move half of K in each direction", func() {
				So(err, ShouldBeNil)
				So(cmp.WinnerAfter, ShouldEqual, 1516.0)
				So(cmp.LoserAfter, ShouldEqual, 1484.0)
				So(cmp.WinnerBefore, ShouldEqual, 1500.0)
				So(cmp.Outcome, ShouldEqual, model.OutcomeWin)
				So(cmp.ID, ShouldNotBeEmpty)
			})

			Convey("Then the rankings reflect the outcome", func() {
				entries, err := svc.Rankings(ctx, "movies", 0)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].Name, ShouldEqual, "alien")
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[0].Rating, ShouldEqual, 1516.0)
				So(entries[2].Name, ShouldEqual, "solaris")
			})

			Convey("And the state survives a service restart", func() {
				entriesBefore, err := svc.Rankings(ctx, "movies", 0)
				So(err, ShouldBeNil)
				svc.Stop()
				So(svc.Start(ctx), ShouldBeNil)

				entriesAfter, err := svc.Rankings(ctx, "movies", 0)
				So(err, ShouldBeNil)
				So(entriesAfter, ShouldResemble, entriesBefore)
			})
		})

		Convey("When a tie is recorded between unequal items", func() {
			_, err := svc.Choose(ctx, "movies", "alien", "solaris")
			So(err, ShouldBeNil)
			cmp, err := svc.Tie(ctx, "movies", "alien", "solaris")

			Convey("Then the ratings pull toward each other", func() {
				So(err, ShouldBeNil)
				So(cmp.Outcome, ShouldEqual, model.OutcomeTie)
				So(cmp.WinnerAfter, ShouldBeLessThan, cmp.WinnerBefore)
				So(cmp.LoserAfter, ShouldBeGreaterThan, cmp.LoserBefore)
			})
		})

		Convey("When the choice is invalid", func() {
			Convey("With an item against itself", func() {
				_, err := svc.Choose(ctx, "movies", "alien", "alien")
				So(errors.Is(err, app.ErrInvalidChoice), ShouldBeTrue)
			})

			Convey("With an unknown item", func() {
				_, err := svc.Choose(ctx, "movies", "alien", "tarkovsky")
				So(errors.Is(err, app.ErrInvalidChoice), ShouldBeTrue)
			})

			Convey("Then no state was mutated", func() {
				_, _ = svc.Choose(ctx, "movies", "alien", "alien")
				entries, err := svc.Rankings(ctx, "movies", 0)
				So(err, ShouldBeNil)
				for _, e := range entries {
					So(e.Rating, ShouldEqual, 1500.0)
					So(e.Comparisons, ShouldEqual, 0)
				}
			})
		})
	})
}

func TestService_UndoRedo(t *testing.T) {
	Convey("Given a service with two recorded comparisons", t, func() {
		ctx := context.Background()
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		So(svc.CreateList(ctx, "movies", []string{"alien", "solaris", "stalker"}), ShouldBeNil)

		first, err := svc.Choose(ctx, "movies", "alien", "solaris")
		So(err, ShouldBeNil)
		second, err := svc.Choose(ctx, "movies", "stalker", "alien")
		So(err, ShouldBeNil)

		Convey("When the latest comparison is undone", func() {
			undone, err := svc.Undo(ctx, "movies")

			Convey("Then it is the most recent record", func() {
				So(err, ShouldBeNil)
				So(undone.ID, ShouldEqual, second.ID)
			})

			Convey("Then the ratings are back to the first comparison's state", func() {
				entries, err := svc.Rankings(ctx, "movies", 0)
				So(err, ShouldBeNil)
				byName := map[string]float64{}
				for _, e := range entries {
					byName[e.Name] = e.Rating
				}
				So(byName["alien"], ShouldEqual, first.WinnerAfter)
				So(byName["solaris"], ShouldEqual, first.LoserAfter)
				So(byName["stalker"], ShouldEqual, 1500.0)
			})

			Convey("And redo reproduces the exact same record", func() {
				redone, err := svc.Redo(ctx, "movies")
				So(err, ShouldBeNil)
				So(redone.ID, ShouldEqual, second.ID)
				So(redone.WinnerAfter, ShouldEqual, second.WinnerAfter)

				Convey("And a further redo hits the end of history", func() {
					_, err := svc.Redo(ctx, "movies")
					So(errors.Is(err, history.ErrAtEnd), ShouldBeTrue)
				})
			})

			Convey("And a new choice discards the redoable record", func() {
				_, err := svc.Choose(ctx, "movies", "solaris", "stalker")
				So(err, ShouldBeNil)

				_, err = svc.Redo(ctx, "movies")
				So(errors.Is(err, history.ErrAtEnd), ShouldBeTrue)
			})
		})

		Convey("When undoing past the beginning", func() {
			_, err := svc.Undo(ctx, "movies")
			So(err, ShouldBeNil)
			_, err = svc.Undo(ctx, "movies")
			So(err, ShouldBeNil)

			_, err = svc.Undo(ctx, "movies")

			Convey("Then it fails with ErrAtStart and ratings are pristine", func() {
				So(errors.Is(err, history.ErrAtStart), ShouldBeTrue)
				entries, err := svc.Rankings(ctx, "movies", 0)
				So(err, ShouldBeNil)
				for _, e := range entries {
					So(e.Rating, ShouldEqual, 1500.0)
					So(e.Comparisons, ShouldEqual, 0)
				}
			})
		})
	})
}

func TestService_Rankings(t *testing.T) {
	Convey("Given a service with recorded outcomes", t, func() {
		ctx := context.Background()
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		So(svc.CreateList(ctx, "movies", []string{"alien", "solaris", "stalker", "ikiru"}), ShouldBeNil)

		_, err := svc.Choose(ctx, "movies", "alien", "solaris")
		So(err, ShouldBeNil)
		_, err = svc.Choose(ctx, "movies", "stalker", "ikiru")
		So(err, ShouldBeNil)

		Convey("When ranking all items", func() {
			entries, err := svc.Rankings(ctx, "movies", 0)
			So(err, ShouldBeNil)

			Convey("Then equal ratings share a rank with names as tiebreak", func() {
				So(entries, ShouldHaveLength, 4)
				So(entries[0].Name, ShouldEqual, "alien")
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Name, ShouldEqual, "stalker")
				So(entries[1].Rank, ShouldEqual, 1)
				So(entries[2].Name, ShouldEqual, "ikiru")
				So(entries[2].Rank, ShouldEqual, 2)
				So(entries[3].Name, ShouldEqual, "solaris")
				So(entries[3].Rank, ShouldEqual, 2)
			})
		})

		Convey("When ranking with a limit", func() {
			entries, err := svc.Rankings(ctx, "movies", 2)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
		})
	})
}

func TestService_Lists(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When no lists exist", func() {
			ids, err := svc.Lists(ctx)
			So(err, ShouldBeNil)
			So(ids, ShouldBeEmpty)
		})

		Convey("When lists are created", func() {
			So(svc.CreateList(ctx, "movies", []string{"alien"}), ShouldBeNil)
			So(svc.CreateList(ctx, "books", []string{"dune", "ubik"}), ShouldBeNil)

			ids, err := svc.Lists(ctx)
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"books", "movies"})
		})

		Convey("When a list is recreated with different membership", func() {
			So(svc.CreateList(ctx, "movies", []string{"alien", "solaris"}), ShouldBeNil)
			_, err := svc.Choose(ctx, "movies", "alien", "solaris")
			So(err, ShouldBeNil)

			So(svc.CreateList(ctx, "movies", []string{"alien", "ikiru"}), ShouldBeNil)

			Convey("Then the next operation sees the new membership", func() {
				entries, err := svc.Rankings(ctx, "movies", 0)
				So(err, ShouldBeNil)
				names := make([]string, 0, len(entries))
				for _, e := range entries {
					names = append(names, e.Name)
				}
				So(names, ShouldContain, "ikiru")
				So(names, ShouldNotContain, "solaris")
			})
		})
	})
}

func TestService_NextPair(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := newTestService(t)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When the list has a single item", func() {
			So(svc.CreateList(ctx, "lonely", []string{"only"}), ShouldBeNil)
			_, err := svc.NextPair(ctx, "lonely")
			So(errors.Is(err, selector.ErrInsufficientItems), ShouldBeTrue)
		})

		Convey("When the list has enough items", func() {
			So(svc.CreateList(ctx, "movies", []string{"alien", "solaris", "stalker"}), ShouldBeNil)
			pair, err := svc.NextPair(ctx, "movies")
			So(err, ShouldBeNil)
			So(pair.Left, ShouldNotEqual, pair.Right)

			Convey("And the served pair can be chosen directly", func() {
				cmp, err := svc.Choose(ctx, "movies", pair.Left, pair.Right)
				So(err, ShouldBeNil)
				So(cmp.SamePair(pair), ShouldBeTrue)
			})
		})
	})
}
