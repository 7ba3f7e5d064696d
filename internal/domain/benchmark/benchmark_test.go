package benchmark_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/brokerscore/internal/domain/benchmark"
	"github.com/okian/brokerscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	Convey("Given the built-in snapshot", t, func() {
		s := benchmark.Default()

		Convey("Then it is valid and versioned", func() {
			So(s.Validate(), ShouldBeNil)
			So(s.Version, ShouldEqual, benchmark.DefaultVersion)
			So(s.Source, ShouldEqual, benchmark.SourceStatic)
		})

		Convey("Then market categories add up to the market total", func() {
			So(s.Market.Categories.Sum(), ShouldAlmostEqual, s.Market.Total, 1e-9)
			So(s.Quartiles, ShouldResemble, benchmark.Quartiles{Q1: 25, Q2: 40, Q3: 58})
			So(s.Outliers, ShouldResemble, []float64{1, 5, 79, 81})
		})
	})
}

func TestStatic(t *testing.T) {
	Convey("Given a static provider", t, func() {
		p := benchmark.Static(benchmark.Default())

		Convey("When a caller mutates the returned snapshot", func() {
			got := p.Get()
			got.Outliers[0] = 99
			got.Market.Total = 0

			Convey("Then later reads are unaffected", func() {
				again := p.Get()
				So(again.Outliers[0], ShouldEqual, 1)
				So(again.Market.Total, ShouldEqual, 39.6)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given broken snapshots", t, func() {
		s := benchmark.Default()
		s.Quartiles.Q1 = 70
		So(errors.Is(s.Validate(), benchmark.ErrInvalidSnapshot), ShouldBeTrue)

		s = benchmark.Default()
		s.Market.Categories.FollowUp = 16
		So(errors.Is(s.Validate(), benchmark.ErrInvalidSnapshot), ShouldBeTrue)

		s = benchmark.Default()
		s.Version = ""
		So(errors.Is(s.Validate(), benchmark.ErrInvalidSnapshot), ShouldBeTrue)

		s = benchmark.Default()
		s.Outliers = []float64{81, 1}
		So(errors.Is(s.Validate(), benchmark.ErrInvalidSnapshot), ShouldBeTrue)
	})
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "benchmark.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a YAML snapshot", t, func() {
		path := writeFile(t, `
version: "2025-q1"
market:
  total: 42.5
  categories:
    response_time: 14
  first_response_average: "00:20:00"
quartiles:
  q1: 30
  q2: 45
  q3: 60
outliers: [2, 90]
max_total: 90
min_total: 2
`)

		Convey("When it is loaded", func() {
			p, err := benchmark.LoadFile(ctx, path)

			Convey("Then file values override the built-in snapshot", func() {
				So(err, ShouldBeNil)
				s := p.Get()
				So(s.Version, ShouldEqual, "2025-q1")
				So(s.Source, ShouldEqual, benchmark.SourceFile)
				So(s.Market.Total, ShouldEqual, 42.5)
				So(s.Market.Categories.ResponseTime, ShouldEqual, 14)
				So(s.Market.Categories.ServiceQuality, ShouldEqual, 10.1)
				So(s.Market.FirstResponseAverage, ShouldEqual, "00:20:00")
				So(s.Quartiles.Q3, ShouldEqual, 60)
				So(s.Outliers, ShouldResemble, []float64{2, 90})
			})
		})
	})

	Convey("Given an invalid snapshot file", t, func() {
		path := writeFile(t, "quartiles:\n  q1: 80\n  q2: 40\n  q3: 10\n")
		_, err := benchmark.LoadFile(ctx, path)
		So(errors.Is(err, benchmark.ErrInvalidSnapshot), ShouldBeTrue)
	})

	Convey("Given a missing file", t, func() {
		_, err := benchmark.LoadFile(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
		So(errors.Is(err, benchmark.ErrLoadSnapshot), ShouldBeTrue)
	})
}

func population(totals ...float64) []model.Evaluation {
	out := make([]model.Evaluation, len(totals))
	for i, total := range totals {
		out[i] = model.Evaluation{
			ID:                    i + 1,
			Name:                  string(rune('A' + i)),
			TotalScore:            total,
			Categories:            model.Categories{ResponseTime: total / 4},
			FirstResponseDuration: "00:10:00",
			BrokerHandoffDuration: "N/A",
			FollowUps:             2,
			ItemsPresented:        3,
		}
	}
	return out
}

func TestFromPopulation(t *testing.T) {
	Convey("Given ten evaluations", t, func() {
		evals := population(10, 20, 30, 40, 50, 60, 70, 80, 90, 100)
		s, err := benchmark.FromPopulation(evals)

		Convey("Then the snapshot is valid", func() {
			So(err, ShouldBeNil)
			So(s.Validate(), ShouldBeNil)
			So(s.Source, ShouldEqual, benchmark.SourcePopulation)
			So(s.Size, ShouldEqual, 10)
		})

		Convey("Then quartiles interpolate linearly", func() {
			So(s.Quartiles.Q1, ShouldAlmostEqual, 32.5, 1e-9)
			So(s.Quartiles.Q2, ShouldAlmostEqual, 55, 1e-9)
			So(s.Quartiles.Q3, ShouldAlmostEqual, 77.5, 1e-9)
			So(s.Outliers, ShouldBeEmpty)
			So(s.MinTotal, ShouldEqual, 10)
			So(s.MaxTotal, ShouldEqual, 100)
		})

		Convey("Then the market and top quintile are averaged", func() {
			So(s.Market.Total, ShouldEqual, 55)
			So(s.TopQuintile.Total, ShouldEqual, 95)
			So(s.TopQuintile.Categories.ResponseTime, ShouldEqual, 23.8)
			So(s.Market.FirstResponseAverage, ShouldEqual, "00:10:00")
			So(s.Market.BrokerHandoffAverage, ShouldEqual, "N/A")
			So(s.Market.MeanFollowUps, ShouldEqual, 2)
			So(s.Market.MeanItemsSent, ShouldEqual, 3)
		})

		Convey("Then the version is a stable fingerprint", func() {
			again, _ := benchmark.FromPopulation(population(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))
			So(again.Version, ShouldEqual, s.Version)
			other, _ := benchmark.FromPopulation(population(10, 20))
			So(other.Version, ShouldNotEqual, s.Version)
		})
	})

	Convey("Given a population with extremes", t, func() {
		s, err := benchmark.FromPopulation(population(40, 42, 44, 45, 46, 48, 1, 99))
		So(err, ShouldBeNil)
		So(s.Outliers, ShouldResemble, []float64{1, 99})
	})

	Convey("Given a single evaluation", t, func() {
		s, err := benchmark.FromPopulation(population(64))
		So(err, ShouldBeNil)
		So(s.Quartiles, ShouldResemble, benchmark.Quartiles{Q1: 64, Q2: 64, Q3: 64})
		So(s.TopQuintile.Total, ShouldEqual, 64)
	})

	Convey("Given no evaluations", t, func() {
		_, err := benchmark.FromPopulation(nil)
		So(errors.Is(err, model.ErrEmptyDataset), ShouldBeTrue)
	})
}
