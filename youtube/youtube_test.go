package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const twoItems = `{"items":[
 {"id":{"videoId":"a1"},"snippet":{"title":"First","channelTitle":"Chan A",
  "thumbnails":{"default":{"url":"http://d/a1"},"medium":{"url":"http://m/a1"}}}},
 {"id":{"videoId":"b2"},"snippet":{"title":"Second","channelTitle":"Chan B",
  "thumbnails":{"default":{"url":"http://d/b2"}}}}
]}`

func stub(status int, body string, hits *int32, query *string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if query != nil {
			*query = r.URL.RawQuery
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	Convey("Given a search endpoint", t, func() {
		var hits int32
		var query string

		Convey("A missing key fails without a request", func() {
			srv := stub(http.StatusOK, twoItems, &hits, nil)
			defer srv.Close()

			c := &Client{Endpoint: srv.URL}
			results, err := c.Search(ctx, "anything")
			So(results, ShouldBeNil)
			So(errors.Is(err, ErrMissingKey), ShouldBeTrue)
			So(atomic.LoadInt32(&hits), ShouldEqual, 0)
		})

		Convey("A successful answer keeps the API order", func() {
			srv := stub(http.StatusOK, twoItems, &hits, &query)
			defer srv.Close()

			c := &Client{Key: "k", Endpoint: srv.URL}
			results, err := c.Search(ctx, "lo fi")
			So(err, ShouldBeNil)
			So(len(results), ShouldEqual, 2)
			So(results[0].ID, ShouldEqual, "a1")
			So(results[1].ID, ShouldEqual, "b2")
			So(results[0].Channel, ShouldEqual, "Chan A")

			Convey("And sends the documented parameters", func() {
				So(query, ShouldContainSubstring, "part=snippet")
				So(query, ShouldContainSubstring, "type=video")
				So(query, ShouldContainSubstring, "maxResults=12")
				So(query, ShouldContainSubstring, "q=lo+fi")
				So(query, ShouldContainSubstring, "key=k")
			})

			Convey("And falls back to the default thumbnail", func() {
				So(results[0].Thumbnail, ShouldEqual, "http://m/a1")
				So(results[1].Thumbnail, ShouldEqual, "http://d/b2")
			})

			Convey("And builds watch URLs", func() {
				So(results[1].URL(), ShouldEqual, "https://www.youtube.com/watch?v=b2")
			})
		})

		Convey("A non-2xx answer carries status and body", func() {
			srv := stub(http.StatusForbidden, "quotaExceeded\n", &hits, nil)
			defer srv.Close()

			c := &Client{Key: "k", Endpoint: srv.URL}
			_, err := c.Search(ctx, "x")

			var reqErr *RequestError
			So(errors.As(err, &reqErr), ShouldBeTrue)
			So(reqErr.StatusCode, ShouldEqual, 403)
			So(reqErr.Body, ShouldEqual, "quotaExceeded")
			So(err.Error(), ShouldEqual, "API error 403: quotaExceeded")
		})

		Convey("An empty item list is reported", func() {
			srv := stub(http.StatusOK, `{"items":[]}`, &hits, nil)
			defer srv.Close()

			c := &Client{Key: "k", Endpoint: srv.URL}
			_, err := c.Search(ctx, "x")
			So(errors.Is(err, ErrNoResults), ShouldBeTrue)
		})

		Convey("A malformed body is a transport failure", func() {
			srv := stub(http.StatusOK, `{"items":`, &hits, nil)
			defer srv.Close()

			c := &Client{Key: "k", Endpoint: srv.URL}
			_, err := c.Search(ctx, "x")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrNoResults), ShouldBeFalse)
		})
	})
}
