package ranking_test

import (
	"testing"

	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func evals(totals ...float64) []model.Evaluation {
	out := make([]model.Evaluation, len(totals))
	for i, t := range totals {
		out[i] = model.Evaluation{ID: i + 1, Name: string(rune('A' + i)), TotalScore: t}
	}
	return out
}

func TestRank(t *testing.T) {
	Convey("Given a population [90, 80, 70]", t, func() {
		pop := evals(90, 80, 70)

		Convey("Then ranks are 1, 2, 3", func() {
			for i, e := range pop {
				r, ok := ranking.Rank(e, pop)
				So(ok, ShouldBeTrue)
				So(r, ShouldEqual, i+1)
			}
		})

		Convey("Then the input is not reordered", func() {
			rev := evals(70, 90)
			s := ranking.Sorted(rev)
			So(s[0].TotalScore, ShouldEqual, 90)
			So(rev[0].TotalScore, ShouldEqual, 70)
		})
	})

	Convey("Given tied totals", t, func() {
		pop := evals(50, 80, 50, 50)

		Convey("Then ties keep input order", func() {
			r1, _ := ranking.Rank(pop[0], pop)
			r3, _ := ranking.Rank(pop[2], pop)
			r4, _ := ranking.Rank(pop[3], pop)
			So(r1, ShouldEqual, 2)
			So(r3, ShouldEqual, 3)
			So(r4, ShouldEqual, 4)
		})
	})

	Convey("Given totals that differ only by float noise", t, func() {
		a, b := 0.1, 0.2
		pop := evals(0.3, a+b, 80)

		Convey("Then they tie and keep input order", func() {
			So(ranking.Key(pop[0].TotalScore), ShouldEqual, ranking.Key(pop[1].TotalScore))
			r1, _ := ranking.Rank(pop[0], pop)
			r2, _ := ranking.Rank(pop[1], pop)
			So(r1, ShouldEqual, 2)
			So(r2, ShouldEqual, 3)
		})
	})

	Convey("Given a target outside the population", t, func() {
		pop := evals(90, 80)
		_, ok := ranking.Rank(model.Evaluation{ID: 99, TotalScore: 95}, pop)
		So(ok, ShouldBeFalse)
	})

	Convey("Given a population of one", t, func() {
		pop := evals(12)
		r, ok := ranking.Rank(pop[0], pop)
		So(ok, ShouldBeTrue)
		So(r, ShouldEqual, 1)
	})
}

func TestEstimate(t *testing.T) {
	Convey("Given the degraded estimate", t, func() {
		So(ranking.Estimate(100, 72), ShouldEqual, 1)
		So(ranking.Estimate(85, 72), ShouldEqual, 10)
		So(ranking.Estimate(40, 72), ShouldEqual, 40)
		So(ranking.Estimate(0, 72), ShouldEqual, 67)
		So(ranking.Estimate(0, 10), ShouldEqual, 10)
		So(ranking.Estimate(50, 0), ShouldEqual, 1)
	})
}

func TestLocate(t *testing.T) {
	Convey("Given a population", t, func() {
		pop := evals(90, 80, 70)

		Convey("When the target is a member", func() {
			p := ranking.Locate(pop[1], pop, 0)
			So(p.Rank, ShouldEqual, 2)
			So(p.Of, ShouldEqual, 3)
			So(p.Estimated, ShouldBeFalse)
		})

		Convey("When the target is not a member", func() {
			p := ranking.Locate(model.Evaluation{ID: 9, TotalScore: 85}, pop, 0)
			So(p.Estimated, ShouldBeTrue)
			So(p.Rank, ShouldEqual, 3)
		})

		Convey("When there is no population", func() {
			p := ranking.Locate(model.Evaluation{ID: 9, TotalScore: 85}, nil, 72)
			So(p.Estimated, ShouldBeTrue)
			So(p.Of, ShouldEqual, 72)
			So(p.Rank, ShouldEqual, 10)
		})
	})
}

func TestRankAll(t *testing.T) {
	Convey("Given an unsorted population", t, func() {
		pop := evals(70, 90, 80, 90)
		got := ranking.RankAll(pop)

		Convey("Then ranks come back in input order", func() {
			So(got, ShouldHaveLength, 4)
			So(got[0].Rank, ShouldEqual, 4)
			So(got[1].Rank, ShouldEqual, 1)
			So(got[2].Rank, ShouldEqual, 3)
			So(got[3].Rank, ShouldEqual, 2)
			for _, p := range got {
				So(p.Of, ShouldEqual, 4)
			}
		})
	})
}
