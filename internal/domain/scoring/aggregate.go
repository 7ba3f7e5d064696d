package scoring

import (
	"math"
	"sort"

	"github.com/okian/brokerscore/internal/domain/model"
)

// Category keys.
const (
	CategoryResponseTime        = "response_time"
	CategoryServiceQuality      = "service_quality"
	CategoryListingPresentation = "listing_presentation"
	CategoryFollowUp            = "follow_up"
	CategoryClientExperience    = "client_experience"
)

// MaxTotal is the sum of all category maxima.
const MaxTotal = 100

// Category maxima.
const (
	MaxResponseTime        = 25
	MaxServiceQuality      = 25
	MaxListingPresentation = 20
	MaxFollowUp            = 15
	MaxClientExperience    = 15
)

// SubScoreMax holds the declared maximum of every sub-criterion.
var SubScoreMax = model.SubScores{
	FirstResponse: 10,
	BrokerHandoff: 8,
	AverageSpeed:  7,

	Personalization:     7,
	Professionalism:     6,
	ClientQualification: 6,
	Explanations:        6,

	QuantitySent:      5,
	CriteriaAdherence: 10,
	MaterialQuality:   5,

	Persistence:     7,
	FollowUpQuality: 8,

	Adaptability:      5,
	ObjectionHandling: 5,
	OverallEfficiency: 5,
}

// CategoryMax holds the category maxima in model form.
var CategoryMax = model.Categories{
	ResponseTime:        MaxResponseTime,
	ServiceQuality:      MaxServiceQuality,
	ListingPresentation: MaxListingPresentation,
	FollowUp:            MaxFollowUp,
	ClientExperience:    MaxClientExperience,
}

// Breakdown is the single aggregation result for one evaluation.
type Breakdown struct {
	Scores     model.SubScores
	Categories model.Categories
	Total      float64
}

// Aggregate clamps every sub-score to [0, max], sums each category, clamps
// the category to its maximum and the total to MaxTotal. This is the only
// place category totals are computed.
func Aggregate(s model.SubScores) Breakdown {
	m := SubScoreMax
	c := model.SubScores{
		FirstResponse: clamp(s.FirstResponse, m.FirstResponse),
		BrokerHandoff: clamp(s.BrokerHandoff, m.BrokerHandoff),
		AverageSpeed:  clamp(s.AverageSpeed, m.AverageSpeed),

		Personalization:     clamp(s.Personalization, m.Personalization),
		Professionalism:     clamp(s.Professionalism, m.Professionalism),
		ClientQualification: clamp(s.ClientQualification, m.ClientQualification),
		Explanations:        clamp(s.Explanations, m.Explanations),

		QuantitySent:      clamp(s.QuantitySent, m.QuantitySent),
		CriteriaAdherence: clamp(s.CriteriaAdherence, m.CriteriaAdherence),
		MaterialQuality:   clamp(s.MaterialQuality, m.MaterialQuality),

		Persistence:     clamp(s.Persistence, m.Persistence),
		FollowUpQuality: clamp(s.FollowUpQuality, m.FollowUpQuality),

		Adaptability:      clamp(s.Adaptability, m.Adaptability),
		ObjectionHandling: clamp(s.ObjectionHandling, m.ObjectionHandling),
		OverallEfficiency: clamp(s.OverallEfficiency, m.OverallEfficiency),
	}

	cats := model.Categories{
		ResponseTime:        clamp(c.FirstResponse+c.BrokerHandoff+c.AverageSpeed, MaxResponseTime),
		ServiceQuality:      clamp(c.Personalization+c.Professionalism+c.ClientQualification+c.Explanations, MaxServiceQuality),
		ListingPresentation: clamp(c.QuantitySent+c.CriteriaAdherence+c.MaterialQuality, MaxListingPresentation),
		FollowUp:            clamp(c.Persistence+c.FollowUpQuality, MaxFollowUp),
		ClientExperience:    clamp(c.Adaptability+c.ObjectionHandling+c.OverallEfficiency, MaxClientExperience),
	}

	return Breakdown{
		Scores:     c,
		Categories: cats,
		Total:      clamp(cats.Sum(), MaxTotal),
	}
}

func clamp(v, upper float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(upper, v))
}

// Share is one category's total relative to its maximum.
type Share struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Max      float64 `json:"max"`
	Percent  float64 `json:"percent"`
}

// Shares lists the categories in fixed order with their percentage of max.
func Shares(c model.Categories) []Share {
	rows := []Share{
		{Category: CategoryResponseTime, Score: c.ResponseTime, Max: MaxResponseTime},
		{Category: CategoryServiceQuality, Score: c.ServiceQuality, Max: MaxServiceQuality},
		{Category: CategoryListingPresentation, Score: c.ListingPresentation, Max: MaxListingPresentation},
		{Category: CategoryFollowUp, Score: c.FollowUp, Max: MaxFollowUp},
		{Category: CategoryClientExperience, Score: c.ClientExperience, Max: MaxClientExperience},
	}
	for i := range rows {
		rows[i].Percent = rows[i].Score / rows[i].Max * 100
	}
	return rows
}

// Summary names the strongest and weakest categories by share of max.
type Summary struct {
	Strongest []Share `json:"strongest"`
	Weakest   []Share `json:"weakest"`
}

// Summarize picks the top and bottom n categories. Ties keep category order.
func Summarize(c model.Categories, n int) Summary {
	shares := Shares(c)
	if n <= 0 {
		return Summary{}
	}
	if n > len(shares) {
		n = len(shares)
	}

	asc := append([]Share(nil), shares...)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Percent < asc[j].Percent })
	desc := append([]Share(nil), shares...)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Percent > desc[j].Percent })

	return Summary{Strongest: desc[:n], Weakest: asc[:n]}
}
