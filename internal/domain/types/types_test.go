package types_test

import (
	"testing"

	"github.com/goccy/go-json"
	types "github.com/okian/fog/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPageShape(t *testing.T) {
	Convey("Given an empty page", t, func() {
		page := types.Page[types.SimpleCity]{List: []types.SimpleCity{}, Total: 5}

		Convey("Then it should encode list and total the way the admin UI reads them", func() {
			raw, err := json.Marshal(page)
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"list":[],"total":5}`)
		})
	})

	Convey("Given a simple city list", t, func() {
		list := types.SimpleList{List: []types.SimpleCity{{ID: 1, Name: "北京"}}}

		Convey("Then it should encode id and name only", func() {
			raw, err := json.Marshal(list)
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"list":[{"id":1,"name":"北京"}]}`)
		})
	})
}
