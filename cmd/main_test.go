package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/heroes/internal/config"
	"github.com/okian/heroes/pkg/logger"
	"github.com/okian/heroes/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("HEROES_ADDR", ":9090")
			_ = os.Setenv("HEROES_MAX_VIEWS", "50")
			_ = os.Setenv("HEROES_GUARD_SUBMIT", "true")
			defer func() {
				_ = os.Unsetenv("HEROES_ADDR")
				_ = os.Unsetenv("HEROES_MAX_VIEWS")
				_ = os.Unsetenv("HEROES_GUARD_SUBMIT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.MaxViews, convey.ShouldEqual, 50)
				convey.So(cfg.GuardSubmit, convey.ShouldBeTrue)

				convey.Convey("And the service should carry it", func() {
					svc := newService(cfg, logger.Get())
					stats := svc.GetStats()
					convey.So(stats["maxViews"], convey.ShouldEqual, 50)
					convey.So(stats["guardSubmit"], convey.ShouldEqual, true)
				})
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		svc := newService(config.New(), logger.Get())

		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics updates", func() {
			convey.Convey("Then they should run without panicking", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given the full handler against a fake superheroes API", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"1","name":"Supergirl","superpower":"flight","humilityScore":9}]`))
		}))
		defer upstream.Close()

		cfg := config.New()
		cfg.APIBaseURL = upstream.URL

		ctx := context.Background()
		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		handler := newHandler(ctx, svc, logger.Get())
		serve := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then every surface should be routed", func() {
			home := serve("/")
			convey.So(home.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(home.Body.String(), convey.ShouldContainSubstring, "Supergirl")

			convey.So(serve("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(serve("/stats").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(serve("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(serve("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(serve("/api/views/unknown").Code, convey.ShouldEqual, http.StatusNotFound)
			convey.So(serve("/nope").Code, convey.ShouldEqual, http.StatusNotFound)
		})

		convey.Convey("Then a mounted view is counted", func() {
			serve("/")
			convey.So(svc.GetStats()["activeViews"], convey.ShouldEqual, 1)
		})
	})
}

