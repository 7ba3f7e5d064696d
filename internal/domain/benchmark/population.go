package benchmark

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/brokerscore/internal/domain/duration"
	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/ranking"
)

// quintile is the share of the population counted as the top group.
const quintile = 5

// outlierFence scales the interquartile range for outlier detection.
const outlierFence = 1.5

// FromPopulation computes a snapshot from normalized evaluations. The top
// quintile is the best ceil(n/5) by total, ties resolved by input order.
func FromPopulation(evals []model.Evaluation) (Statistics, error) {
	if len(evals) == 0 {
		return Statistics{}, fmt.Errorf("benchmark: %w", model.ErrEmptyDataset)
	}

	sorted := ranking.Sorted(evals)
	top := sorted[:(len(sorted)+quintile-1)/quintile]

	totals := make([]float64, len(evals))
	for i, e := range evals {
		totals[i] = e.TotalScore
	}
	sort.Float64s(totals)

	q := Quartiles{
		Q1: quantile(totals, 0.25),
		Q2: quantile(totals, 0.50),
		Q3: quantile(totals, 0.75),
	}
	iqr := q.Q3 - q.Q1
	lo, hi := q.Q1-outlierFence*iqr, q.Q3+outlierFence*iqr
	outliers := []float64{}
	for _, t := range totals {
		if t < lo || t > hi {
			outliers = append(outliers, t)
		}
	}

	return Statistics{
		Version:     model.Fingerprint(evals),
		Source:      SourcePopulation,
		Size:        len(evals),
		Market:      average(evals),
		TopQuintile: average(top),
		Quartiles:   q,
		Outliers:    outliers,
		MinTotal:    totals[0],
		MaxTotal:    totals[len(totals)-1],
	}, nil
}

// quantile interpolates linearly between closest ranks of an ascending slice.
func quantile(asc []float64, p float64) float64 {
	if len(asc) == 1 {
		return asc[0]
	}
	pos := p * float64(len(asc)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return asc[lo] + (asc[hi]-asc[lo])*(pos-float64(lo))
}

func average(evals []model.Evaluation) Profile {
	var (
		p                Profile
		firstSum, hSum   int64
		firstN, hN       int64
		followUps, items float64
	)
	for _, e := range evals {
		p.Total += e.TotalScore
		p.Categories = addCategories(p.Categories, e.Categories)
		p.Scores = addScores(p.Scores, e.Scores)
		if s, ok := duration.Parse(e.FirstResponseDuration); ok {
			firstSum += s
			firstN++
		}
		if s, ok := duration.Parse(e.BrokerHandoffDuration); ok {
			hSum += s
			hN++
		}
		followUps += e.FollowUps
		items += e.ItemsPresented
	}

	n := float64(len(evals))
	p.Total = round1(p.Total / n)
	p.Categories = scaleCategories(p.Categories, n)
	p.Scores = scaleScores(p.Scores, n)
	p.FirstResponseAverage = meanDuration(firstSum, firstN)
	p.BrokerHandoffAverage = meanDuration(hSum, hN)
	p.MeanFollowUps = round1(followUps / n)
	p.MeanItemsSent = round1(items / n)
	return p
}

func meanDuration(sum, n int64) string {
	if n == 0 {
		return duration.NotAvailable
	}
	return duration.Format(int64(math.Round(float64(sum) / float64(n))))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func addCategories(a, b model.Categories) model.Categories {
	return model.Categories{
		ResponseTime:        a.ResponseTime + b.ResponseTime,
		ServiceQuality:      a.ServiceQuality + b.ServiceQuality,
		ListingPresentation: a.ListingPresentation + b.ListingPresentation,
		FollowUp:            a.FollowUp + b.FollowUp,
		ClientExperience:    a.ClientExperience + b.ClientExperience,
	}
}

func scaleCategories(c model.Categories, n float64) model.Categories {
	return model.Categories{
		ResponseTime:        round1(c.ResponseTime / n),
		ServiceQuality:      round1(c.ServiceQuality / n),
		ListingPresentation: round1(c.ListingPresentation / n),
		FollowUp:            round1(c.FollowUp / n),
		ClientExperience:    round1(c.ClientExperience / n),
	}
}

func addScores(a, b model.SubScores) model.SubScores {
	return model.SubScores{
		FirstResponse:       a.FirstResponse + b.FirstResponse,
		BrokerHandoff:       a.BrokerHandoff + b.BrokerHandoff,
		AverageSpeed:        a.AverageSpeed + b.AverageSpeed,
		Personalization:     a.Personalization + b.Personalization,
		Professionalism:     a.Professionalism + b.Professionalism,
		ClientQualification: a.ClientQualification + b.ClientQualification,
		Explanations:        a.Explanations + b.Explanations,
		QuantitySent:        a.QuantitySent + b.QuantitySent,
		CriteriaAdherence:   a.CriteriaAdherence + b.CriteriaAdherence,
		MaterialQuality:     a.MaterialQuality + b.MaterialQuality,
		Persistence:         a.Persistence + b.Persistence,
		FollowUpQuality:     a.FollowUpQuality + b.FollowUpQuality,
		Adaptability:        a.Adaptability + b.Adaptability,
		ObjectionHandling:   a.ObjectionHandling + b.ObjectionHandling,
		OverallEfficiency:   a.OverallEfficiency + b.OverallEfficiency,
	}
}

func scaleScores(s model.SubScores, n float64) model.SubScores {
	return model.SubScores{
		FirstResponse:       round1(s.FirstResponse / n),
		BrokerHandoff:       round1(s.BrokerHandoff / n),
		AverageSpeed:        round1(s.AverageSpeed / n),
		Personalization:     round1(s.Personalization / n),
		Professionalism:     round1(s.Professionalism / n),
		ClientQualification: round1(s.ClientQualification / n),
		Explanations:        round1(s.Explanations / n),
		QuantitySent:        round1(s.QuantitySent / n),
		CriteriaAdherence:   round1(s.CriteriaAdherence / n),
		MaterialQuality:     round1(s.MaterialQuality / n),
		Persistence:         round1(s.Persistence / n),
		FollowUpQuality:     round1(s.FollowUpQuality / n),
		Adaptability:        round1(s.Adaptability / n),
		ObjectionHandling:   round1(s.ObjectionHandling / n),
		OverallEfficiency:   round1(s.OverallEfficiency / n),
	}
}
