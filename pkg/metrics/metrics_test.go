package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors are registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.heroesCreated.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_heroes_created_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When options receive empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "heroes")
				So(manager.subsystem, ShouldEqual, "frontend")
				So(manager.histogramBuckets, ShouldResemble, DefaultLatencyBuckets)
			})
		})
	})
}

func TestDefaultLatencyBuckets(t *testing.T) {
	Convey("Given a manager with default buckets", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("Then the buckets are ascending and sized for milliseconds", func() {
			b := manager.histogramBuckets
			So(b[0], ShouldEqual, 1)
			So(b[len(b)-1], ShouldEqual, 10000)
			for i := 1; i < len(b); i++ {
				So(b[i], ShouldBeGreaterThan, b[i-1])
			}
		})

		Convey("When a typical 120ms upstream call is observed", func() {
			manager.upstreamLatency.WithLabelValues("list").Observe(120)
			families, err := registry.Gather()
			So(err, ShouldBeNil)

			Convey("Then it lands in a middle bucket, not the overflow", func() {
				var below, total uint64
				for _, f := range families {
					if !strings.HasSuffix(f.GetName(), "upstream_latency_milliseconds") {
						continue
					}
					h := f.GetMetric()[0].GetHistogram()
					total = h.GetSampleCount()
					for _, bucket := range h.GetBucket() {
						if bucket.GetUpperBound() == 250 {
							below = bucket.GetCumulativeCount()
						}
					}
				}
				So(total, ShouldEqual, 1)
				So(below, ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording view and hero metrics", func() {
			before := testutil.ToFloat64(globalManager.heroesCreated)
			RecordHeroCreated()
			RecordViewMounted()
			RecordViewEvicted()
			UpdateActiveViews(3)
			RecordValidationRejection("fields_required")

			Convey("Then the collectors reflect the calls", func() {
				So(testutil.ToFloat64(globalManager.heroesCreated), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.viewsActive), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.validationRejections.WithLabelValues("fields_required")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording upstream and HTTP metrics", func() {
			So(func() {
				RecordUpstreamCall("create", OutcomeStatus, 12)
				RecordHTTPRequest("views", "GET", "200")
				RecordHTTPRequestDuration("views", "GET", "200", 3)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("views", "GET", "not_found")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)

			Convey("Then the custom registry exposes them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				joined := strings.Join(names, ",")
				So(joined, ShouldContainSubstring, "heroes_frontend_upstream_requests_total")
				So(joined, ShouldContainSubstring, "heroes_frontend_http_requests_total")
			})
		})
	})
}
