package fogapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/fog/pkg/fogapi"
	. "github.com/smartystreets/goconvey/convey"
)

type recorded struct {
	method string
	uri    string
	body   string
	ctype  string
}

func stubServer(t *testing.T, status int, payload string, got *recorded) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		*got = recorded{method: r.Method, uri: r.URL.RequestURI(), body: string(raw), ctype: r.Header.Get("Content-Type")}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Do(t *testing.T) {
	ctx := context.Background()

	Convey("Given a backend answering the legacy envelope", t, func() {
		var got recorded
		srv := stubServer(t, http.StatusOK, `{"code":0,"data":{"id":6,"name":"成都","bounds":"[]"}}`, &got)
		c, err := fogapi.New(srv.URL, fogapi.WithBasePath("/mock/"), fogapi.WithHeader("X-Request-ID", "r1"))
		So(err, ShouldBeNil)

		Convey("When saving a city", func() {
			var city fogapi.City
			err := c.Do(ctx, fogapi.SaveCity(fogapi.CityForm{Name: "成都"}), &city)

			Convey("Then the payload should be decoded from data", func() {
				So(err, ShouldBeNil)
				So(city.ID, ShouldEqual, 6)
				So(city.Name, ShouldEqual, "成都")
			})

			Convey("And the request should carry the base path and JSON body", func() {
				So(got.method, ShouldEqual, http.MethodPost)
				So(got.uri, ShouldEqual, "/mock/fog/cities")
				So(got.ctype, ShouldEqual, "application/json")
				So(got.body, ShouldContainSubstring, `"name":"成都"`)
			})
		})
	})

	Convey("Given a backend answering the modern envelope", t, func() {
		var got recorded
		srv := stubServer(t, http.StatusOK, `{"data":[{"id":1,"name":"北京"}],"error_code":0,"error_message":""}`, &got)
		c, _ := fogapi.New(srv.URL)

		Convey("When listing cities", func() {
			var cities []fogapi.City
			err := c.Do(ctx, fogapi.ListCities(fogapi.CityListParams{Page: 1, PageSize: 10}), &cities)

			Convey("Then the array payload should be decoded", func() {
				So(err, ShouldBeNil)
				So(len(cities), ShouldEqual, 1)
				So(got.uri, ShouldEqual, "/fog/cities?page=1&page_size=10")
			})
		})
	})

	Convey("Given a backend returning a modern error code with 200", t, func() {
		var got recorded
		srv := stubServer(t, http.StatusOK, `{"data":null,"error_code":1003,"error_message":"no such status"}`, &got)
		c, _ := fogapi.New(srv.URL)

		Convey("Then Do should return an APIError", func() {
			err := c.Do(ctx, fogapi.ListFwss(""), nil)
			var apiErr *fogapi.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(errors.Is(err, fogapi.ErrUnexpectedStatus), ShouldBeTrue)
			So(apiErr.Code, ShouldEqual, 1003)
			So(apiErr.Message, ShouldEqual, "no such status")
			So(got.uri, ShouldEqual, "/fog/fwss/list?status=ALL")
		})
	})

	Convey("Given a backend returning a legacy 404", t, func() {
		var got recorded
		srv := stubServer(t, http.StatusNotFound, `{"code":404,"data":null,"message":"record not found"}`, &got)
		c, _ := fogapi.New(srv.URL)

		Convey("Then the status and message should surface", func() {
			err := c.Do(ctx, fogapi.UpdateCity(9, fogapi.CityForm{Name: "x"}), nil)
			var apiErr *fogapi.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Status, ShouldEqual, http.StatusNotFound)
			So(apiErr.Message, ShouldEqual, "record not found")
		})
	})

	Convey("Given a backend returning HTML on failure", t, func() {
		var got recorded
		srv := stubServer(t, http.StatusBadGateway, `<html>bad gateway</html>`, &got)
		c, _ := fogapi.New(srv.URL)

		Convey("Then the HTTP status text should be the message", func() {
			err := c.Do(ctx, fogapi.DeleteCity(1), nil)
			var apiErr *fogapi.APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Status, ShouldEqual, http.StatusBadGateway)
			So(apiErr.Message, ShouldEqual, "Bad Gateway")
		})
	})

	Convey("Given a backend returning a null payload", t, func() {
		var got recorded
		srv := stubServer(t, http.StatusOK, `{"code":0,"data":null}`, &got)
		c, _ := fogapi.New(srv.URL)

		Convey("Then decoding into a value should leave it untouched", func() {
			city := fogapi.City{ID: 42}
			So(c.Do(ctx, fogapi.DeleteCity(1), &city), ShouldBeNil)
			So(city.ID, ShouldEqual, 42)
		})
	})

	Convey("Given invalid base URLs", t, func() {
		_, err := fogapi.New("localhost:9080")
		So(err, ShouldNotBeNil)
		_, err = fogapi.New("://nope")
		So(err, ShouldNotBeNil)
	})

	Convey("Given a cancelled context", t, func() {
		var got recorded
		srv := stubServer(t, http.StatusOK, `{"code":0,"data":null}`, &got)
		c, _ := fogapi.New(srv.URL)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		Convey("Then Do should fail with the context error", func() {
			err := c.Do(cctx, fogapi.DeleteCity(1), nil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
