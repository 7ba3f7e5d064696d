package numeric_test

import (
	"math"
	"testing"

	"github.com/okian/brokerscore/internal/domain/numeric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given values of mixed representation", t, func() {
		Convey("When the value is already numeric", func() {
			So(numeric.Parse(7.5, 0), ShouldEqual, 7.5)
			So(numeric.Parse(3, 0), ShouldEqual, 3)
			So(numeric.Parse(int64(-2), 0), ShouldEqual, -2)
			So(numeric.Parse(uint8(9), 0), ShouldEqual, 9)
			So(numeric.Parse(float32(0.5), 0), ShouldEqual, 0.5)
		})

		Convey("When the value is decorated text", func() {
			So(numeric.Parse("85%", 0), ShouldEqual, 85)
			So(numeric.Parse("R$ 12,5", 0), ShouldEqual, 12.5)
			So(numeric.Parse(" 7 pontos ", 0), ShouldEqual, 7)
			So(numeric.Parse("-3,25", 0), ShouldEqual, -3.25)
			So(numeric.Parse(".5", 0), ShouldEqual, 0.5)
		})

		Convey("When only the first comma is a decimal separator", func() {
			So(numeric.Parse("1.234,56", 0), ShouldEqual, 1.234)
			So(numeric.Parse("1,2,3", 0), ShouldEqual, 1.2)
		})

		Convey("When the value cannot be parsed", func() {
			So(numeric.Parse("abc", 4), ShouldEqual, 4)
			So(numeric.Parse("-", 1), ShouldEqual, 1)
			So(numeric.Parse("N/A", 0), ShouldEqual, 0)
			So(numeric.Parse(true, 2), ShouldEqual, 2)
			So(numeric.Parse(math.NaN(), 6), ShouldEqual, 6)
			So(numeric.Parse(math.Inf(1), 6), ShouldEqual, 6)
			So(numeric.Parse(struct{}{}, 3), ShouldEqual, 3)
		})

		Convey("When the value is absent", func() {
			So(numeric.Parse(nil, 5), ShouldEqual, 5)
			So(numeric.Parse("   ", 5), ShouldEqual, 5)
		})
	})
}

func TestInspect(t *testing.T) {
	Convey("Given Inspect", t, func() {
		Convey("Then absence and malformation are distinguishable", func() {
			_, o := numeric.Inspect(nil, 0)
			So(o, ShouldEqual, numeric.OutcomeAbsent)

			_, o = numeric.Inspect("", 0)
			So(o, ShouldEqual, numeric.OutcomeAbsent)

			_, o = numeric.Inspect("n/a", 0)
			So(o, ShouldEqual, numeric.OutcomeMalformed)

			v, o := numeric.Inspect("6,0", 0)
			So(o, ShouldEqual, numeric.OutcomeParsed)
			So(v, ShouldEqual, 6)
			So(o.String(), ShouldEqual, "parsed")
		})

		Convey("Then no input panics", func() {
			inputs := []any{nil, "", "--", "..", ",", "1e5", "💥", []int{1}, map[string]int{}, -0.0, uint64(math.MaxUint64)}
			for _, in := range inputs {
				So(func() { numeric.Parse(in, 0) }, ShouldNotPanic)
			}
		})
	})
}
