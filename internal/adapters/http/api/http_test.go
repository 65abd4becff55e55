package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/okian/fog/internal/adapters/http/api"
	service "github.com/okian/fog/internal/app"
	"github.com/okian/fog/internal/domain/model"
	"github.com/okian/fog/internal/domain/types"
	"github.com/okian/fog/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const prefix = "/mock/fog"

type legacyBody struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type modernBody struct {
	Data         json.RawMessage `json:"data"`
	ErrorCode    int             `json:"error_code"`
	ErrorMessage string          `json:"error_message"`
}

func newRouter(t *testing.T, opts ...api.Option) http.Handler {
	t.Helper()
	svc := service.New(
		service.WithLogger(logger.Nop()),
		service.WithClock(func() time.Time { return time.Date(2024, time.May, 4, 12, 0, 0, 0, time.UTC) }),
		service.WithLocation(time.UTC),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	opts = append([]api.Option{
		api.WithLogger(logger.Nop()),
		api.WithLatency(0),
		api.WithRateLimit(0),
	}, opts...)
	return api.NewServer(svc, opts...).Handler(context.Background())
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func legacy(w *httptest.ResponseRecorder) legacyBody {
	var b legacyBody
	So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)
	return b
}

func modern(w *httptest.ResponseRecorder) modernBody {
	var b modernBody
	So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)
	return b
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered router", t, func() {
		h := newRouter(t)

		Convey("Then health should answer JSON", func() {
			w := do(h, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Then stats should report the seeded counts", func() {
			w := do(h, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats types.Stats
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats.Cities, ShouldEqual, 5)
			So(stats.Locations, ShouldEqual, 5)
		})

		Convey("Then metrics should be exposed in Prometheus text format", func() {
			_ = do(h, http.MethodGet, prefix+"/city/list", "")
			w := do(h, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "fog_mock_http_requests_total")
		})

		Convey("Then unknown routes should 404", func() {
			w := do(h, http.MethodGet, prefix+"/nothing", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then a request id should be minted when absent", func() {
			w := do(h, http.MethodGet, "/healthz", "")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("Then a caller request id should be echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})
	})

	Convey("Given a custom prefix", t, func() {
		h := newRouter(t, api.WithPrefix("/api"))

		Convey("Then routes should move under it", func() {
			So(do(h, http.MethodGet, "/api/city/list", "").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodGet, prefix+"/city/list", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCityRoutes(t *testing.T) {
	Convey("Given the seeded mock", t, func() {
		h := newRouter(t)

		Convey("When listing cities with the legacy route", func() {
			w := do(h, http.MethodGet, prefix+"/city/list?page=1&page_size=2", "")
			b := legacy(w)
			var page types.Page[model.City]
			So(json.Unmarshal(b.Data, &page), ShouldBeNil)

			Convey("Then the legacy envelope should hold list and total", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(b.Code, ShouldEqual, 0)
				So(len(page.List), ShouldEqual, 2)
				So(page.Total, ShouldEqual, 5)
			})
		})

		Convey("When paging past the end", func() {
			b := legacy(do(h, http.MethodGet, prefix+"/city/list?page=4&page_size=2", ""))

			Convey("Then the list should be an empty array", func() {
				So(string(b.Data), ShouldContainSubstring, `"list":[]`)
				So(string(b.Data), ShouldContainSubstring, `"total":5`)
			})
		})

		Convey("When the page number is huge", func() {
			b := legacy(do(h, http.MethodGet, prefix+"/city/list?page=4611686018427387905&page_size=4", ""))

			Convey("Then the list should be empty rather than wrap to the first page", func() {
				So(string(b.Data), ShouldContainSubstring, `"list":[]`)
				So(string(b.Data), ShouldContainSubstring, `"total":5`)
			})
		})

		Convey("When paging parameters are garbage", func() {
			b := legacy(do(h, http.MethodGet, prefix+"/city/list?page=x&page_size=-4", ""))
			var page types.Page[model.City]
			So(json.Unmarshal(b.Data, &page), ShouldBeNil)

			Convey("Then the defaults should apply", func() {
				So(len(page.List), ShouldEqual, 5)
			})
		})

		Convey("When listing cities with the modern route and a keyword", func() {
			w := do(h, http.MethodGet, prefix+"/cities?keyword=%E4%BA%AC", "")
			b := modern(w)
			var list []model.City
			So(json.Unmarshal(b.Data, &list), ShouldBeNil)

			Convey("Then the modern envelope should hold a bare array", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(b.ErrorCode, ShouldEqual, 0)
				So(b.ErrorMessage, ShouldEqual, "")
				So(len(list), ShouldEqual, 2)
				So(list[0].Name, ShouldEqual, "北京")
			})
		})

		Convey("When filtering by country", func() {
			b := modern(do(h, http.MethodGet, prefix+"/cities?country=tokyo", ""))
			var list []model.City
			So(json.Unmarshal(b.Data, &list), ShouldBeNil)
			So(len(list), ShouldEqual, 1)
			So(list[0].ID, ShouldEqual, 3)
		})

		Convey("When reading the simple list", func() {
			b := legacy(do(h, http.MethodGet, prefix+"/city/simple_list", ""))
			var list types.SimpleList
			So(json.Unmarshal(b.Data, &list), ShouldBeNil)
			So(len(list.List), ShouldEqual, 5)
			So(list.List[1], ShouldResemble, types.SimpleCity{ID: 2, Name: "上海"})
		})

		Convey("When creating a city", func() {
			w := do(h, http.MethodPost, prefix+"/cities", `{"name":"成都","english_name":"chengdu","first_visit_date":null}`)
			b := legacy(w)
			var c model.City
			So(json.Unmarshal(b.Data, &c), ShouldBeNil)

			Convey("Then the record should come back with defaults", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(c.ID, ShouldEqual, 6)
				So(c.Bounds, ShouldEqual, "[]")
				So(c.Desc, ShouldEqual, "")
				So(c.FirstVisitDate, ShouldBeNil)
				So(c.CreateTime, ShouldEqual, "2024-05-04 12:00:00")
			})
		})

		Convey("When creating a city without a name", func() {
			w := do(h, http.MethodPost, prefix+"/cities", `{"english_name":"nowhere"}`)
			b := legacy(w)

			Convey("Then it should be a 400 in the legacy envelope", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(b.Code, ShouldEqual, http.StatusBadRequest)
				So(b.Message, ShouldContainSubstring, "name")
				So(string(b.Data), ShouldEqual, "null")
			})
		})

		Convey("When creating a city with bad bounds", func() {
			w := do(h, http.MethodPost, prefix+"/cities", `{"name":"x","bounds":"[1,2]"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(legacy(w).Message, ShouldContainSubstring, "bounds")
		})

		Convey("When the body is not JSON", func() {
			w := do(h, http.MethodPost, prefix+"/cities", `{"name":`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When updating a city", func() {
			w := do(h, http.MethodPut, prefix+"/cities/2", `{"name":"沪","english_name":"shanghai","bounds":"[1,2,3,4]"}`)
			b := legacy(w)
			var c model.City
			So(json.Unmarshal(b.Data, &c), ShouldBeNil)

			Convey("Then the fields should be replaced and create_time kept", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(c.Name, ShouldEqual, "沪")
				So(c.Bounds, ShouldEqual, "[1,2,3,4]")
				So(c.CreateTime, ShouldEqual, "2023-01-02 10:00:00")
				So(c.UpdateTime, ShouldEqual, "2024-05-04 12:00:00")
			})
		})

		Convey("When updating an unknown city", func() {
			w := do(h, http.MethodPut, prefix+"/cities/99", `{"name":"x"}`)
			b := legacy(w)

			Convey("Then it should be a 404 rather than an empty record", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(b.Code, ShouldEqual, http.StatusNotFound)
				So(b.Message, ShouldEqual, "record not found")
			})
		})

		Convey("When updating with a non-numeric id", func() {
			w := do(h, http.MethodPut, prefix+"/cities/abc", `{"name":"x"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When deleting a city by query", func() {
			w := do(h, http.MethodDelete, prefix+"/cities?id=1", "")
			b := legacy(w)
			list := legacy(do(h, http.MethodGet, prefix+"/city/list", ""))

			Convey("Then it should answer null and drop the record", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(string(b.Data), ShouldEqual, "null")
				So(string(list.Data), ShouldContainSubstring, `"total":4`)
			})
		})

		Convey("When deleting an unknown city by path", func() {
			w := do(h, http.MethodDelete, prefix+"/cities/99", "")

			Convey("Then it should still succeed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(legacy(w).Code, ShouldEqual, 0)
			})
		})

		Convey("When deleting without an id", func() {
			w := do(h, http.MethodDelete, prefix+"/cities", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestLocationRoutes(t *testing.T) {
	Convey("Given the seeded mock", t, func() {
		h := newRouter(t)

		Convey("When listing by city_id", func() {
			b := legacy(do(h, http.MethodGet, prefix+"/location/list?city_id=4", ""))
			var page types.Page[model.Location]
			So(json.Unmarshal(b.Data, &page), ShouldBeNil)

			Convey("Then only that city's locations should be listed", func() {
				So(page.Total, ShouldEqual, 1)
				So(page.List[0].Name, ShouldEqual, "自由女神像")
			})
		})

		Convey("When city_id is not an integer", func() {
			w := do(h, http.MethodGet, prefix+"/location/list?city_id=abc", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When listing through the positions alias", func() {
			w := do(h, http.MethodGet, prefix+"/positions?keyword=%E5%A1%94", "")
			b := modern(w)
			var page types.Page[model.Location]
			So(json.Unmarshal(b.Data, &page), ShouldBeNil)

			Convey("Then the modern envelope should carry the page", func() {
				So(b.ErrorCode, ShouldEqual, 0)
				So(page.Total, ShouldEqual, 1)
				So(page.List[0].ID, ShouldEqual, 3)
			})
		})

		Convey("When adding a location for a missing city", func() {
			w := do(h, http.MethodPost, prefix+"/location/add", `{"name":"荒野","city_id":999,"latitude":1,"longitude":2}`)
			var l model.Location
			So(json.Unmarshal(legacy(w).Data, &l), ShouldBeNil)

			Convey("Then it should succeed with an empty city_name", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(l.ID, ShouldEqual, 6)
				So(l.CityName, ShouldEqual, "")
				So(l.Images, ShouldNotBeNil)
			})
		})

		Convey("When adding a location with an impossible latitude", func() {
			w := do(h, http.MethodPost, prefix+"/location/add", `{"name":"x","city_id":1,"latitude":91,"longitude":0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(legacy(w).Message, ShouldContainSubstring, "latitude")
		})

		Convey("When updating a location through the body", func() {
			w := do(h, http.MethodPost, prefix+"/location/update",
				`{"id":1,"name":"北京站","city_id":2,"latitude":39.9,"longitude":116.4,"images":["a.jpg"]}`)
			var l model.Location
			So(json.Unmarshal(legacy(w).Data, &l), ShouldBeNil)

			Convey("Then city_name should follow the new city", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(l.CityName, ShouldEqual, "上海")
				So(l.Images, ShouldResemble, []string{"a.jpg"})
				So(l.CreateTime, ShouldEqual, "2023-05-01 10:00:00")
			})
		})

		Convey("When updating through the body without an id", func() {
			w := do(h, http.MethodPost, prefix+"/location/update", `{"name":"x"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When updating an unknown location by path", func() {
			w := do(h, http.MethodPut, prefix+"/positions/404", `{"name":"x"}`)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(legacy(w).Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When deleting through the body without an id", func() {
			w := do(h, http.MethodPost, prefix+"/location/del", `{}`)
			b := legacy(do(h, http.MethodGet, prefix+"/location/list", ""))

			Convey("Then it should be rejected and nothing removed", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(legacy(w).Message, ShouldContainSubstring, "id must be a positive integer")
				So(string(b.Data), ShouldContainSubstring, `"total":5`)
			})
		})

		Convey("When deleting through the body and through the path", func() {
			w1 := do(h, http.MethodPost, prefix+"/location/del", `{"id":1}`)
			w2 := do(h, http.MethodDelete, prefix+"/positions/delete/2", "")
			w3 := do(h, http.MethodPost, prefix+"/location/del", `{"id":1}`)
			b := legacy(do(h, http.MethodGet, prefix+"/location/list", ""))

			Convey("Then both should succeed and a repeat should be a no-op", func() {
				So(w1.Code, ShouldEqual, http.StatusOK)
				So(w2.Code, ShouldEqual, http.StatusOK)
				So(w3.Code, ShouldEqual, http.StatusOK)
				So(string(b.Data), ShouldContainSubstring, `"total":3`)
			})
		})
	})
}

func TestLatency(t *testing.T) {
	Convey("Given a router with a response latency", t, func() {
		h := newRouter(t, api.WithLatency(30*time.Millisecond))

		Convey("When calling an admin route", func() {
			start := time.Now()
			w := do(h, http.MethodGet, prefix+"/city/simple_list", "")

			Convey("Then the response should be held back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 30*time.Millisecond)
			})
		})

		Convey("When the caller gives up first", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			req := httptest.NewRequest(http.MethodPost, prefix+"/cities", strings.NewReader(`{"name":"never"}`)).WithContext(ctx)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then nothing should be created", func() {
				b := legacy(do(h, http.MethodGet, prefix+"/city/list", ""))
				So(string(b.Data), ShouldContainSubstring, `"total":5`)
			})

			Convey("And the request should be recorded as abandoned", func() {
				So(w.Code, ShouldEqual, 499)
				m := do(h, http.MethodGet, "/metrics", "")
				So(m.Body.String(), ShouldContainSubstring, `status_code="499"`)
			})
		})

		Convey("When calling an operational route", func() {
			start := time.Now()
			_ = do(h, http.MethodGet, "/healthz", "")

			Convey("Then it should not be delayed", func() {
				So(time.Since(start), ShouldBeLessThan, 30*time.Millisecond)
			})
		})
	})
}

func TestRateLimit(t *testing.T) {
	Convey("Given a router allowing one request per second", t, func() {
		h := newRouter(t, api.WithRateLimit(1))

		Convey("Then a burst should be throttled", func() {
			first := do(h, http.MethodGet, "/healthz", "")
			second := do(h, http.MethodGet, "/healthz", "")
			So(first.Code, ShouldEqual, http.StatusOK)
			So(second.Code, ShouldEqual, http.StatusTooManyRequests)
		})
	})
}

func TestRegisterOnSubrouter(t *testing.T) {
	Convey("Given routes registered on a caller-owned chi router", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		r := chi.NewRouter()
		api.NewServer(svc, api.WithLogger(logger.Nop()), api.WithLatency(0)).Register(context.Background(), r)

		Convey("Then CORS preflight should be answered", func() {
			req := httptest.NewRequest(http.MethodOptions, prefix+"/cities", nil)
			req.Header.Set("Origin", "http://localhost:4000")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
		})
	})
}
