package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
			})
		})

		Convey("When empty values are supplied", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "duel")
				So(manager.subsystem, ShouldEqual, "ranker")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with a custom registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then all metrics register without collision", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThanOrEqualTo, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("suite"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)
			So(manager, ShouldNotBeNil)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording through the package helpers", func() {
			RecordComparison("win")
			RecordComparison("tie")
			RecordUndo()
			RecordRedo()
			UpdateActiveSessions(2)
			UpdateListItems("movies", 10)
			RecordSaveLatency(1.5)
			RecordSelectorLatency(0.2)
			RecordHTTPRequest("pair", "GET", "200")
			RecordHTTPRequestDuration("pair", "GET", "200", 3.5)
			RecordErrorByComponent("store", "save_failed")

			Convey("Then the custom registry exposes the metric families", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["duel_ranker_comparisons_recorded_total"], ShouldBeTrue)
				So(names["duel_ranker_undos_total"], ShouldBeTrue)
				So(names["duel_ranker_redos_total"], ShouldBeTrue)
				So(names["duel_ranker_active_sessions"], ShouldBeTrue)
				So(names["duel_ranker_list_items"], ShouldBeTrue)
				So(names["duel_ranker_save_latency_milliseconds"], ShouldBeTrue)
				So(names["duel_ranker_http_requests_total"], ShouldBeTrue)
				So(names["duel_ranker_errors_total"], ShouldBeTrue)
			})
		})
	})
}
