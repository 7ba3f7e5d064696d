// Package model contains domain models passed between layers.
package model

import "sort"

// RawRecord is one source row: unordered column name to scalar value
// (string, number, or nil). Rows are read, never mutated.
type RawRecord map[string]any

// Keys returns the record's column names in lexical order so lookups that
// scan columns are deterministic.
func (r RawRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ItemsSent values as they appear in the source sheets.
const (
	ItemsSentYes = "Sim"
	ItemsSentNo  = "Não"
)

// SubScores holds the fifteen sub-criterion points of an evaluation.
type SubScores struct {
	// Response time
	FirstResponse float64 `json:"first_response" yaml:"first_response" koanf:"first_response"`
	BrokerHandoff float64 `json:"broker_handoff" yaml:"broker_handoff" koanf:"broker_handoff"`
	AverageSpeed  float64 `json:"average_speed" yaml:"average_speed" koanf:"average_speed"`

	// Service quality
	Personalization     float64 `json:"personalization" yaml:"personalization" koanf:"personalization"`
	Professionalism     float64 `json:"professionalism" yaml:"professionalism" koanf:"professionalism"`
	ClientQualification float64 `json:"client_qualification" yaml:"client_qualification" koanf:"client_qualification"`
	Explanations        float64 `json:"explanations" yaml:"explanations" koanf:"explanations"`

	// Listing presentation
	QuantitySent      float64 `json:"quantity_sent" yaml:"quantity_sent" koanf:"quantity_sent"`
	CriteriaAdherence float64 `json:"criteria_adherence" yaml:"criteria_adherence" koanf:"criteria_adherence"`
	MaterialQuality   float64 `json:"material_quality" yaml:"material_quality" koanf:"material_quality"`

	// Follow-up
	Persistence     float64 `json:"persistence" yaml:"persistence" koanf:"persistence"`
	FollowUpQuality float64 `json:"follow_up_quality" yaml:"follow_up_quality" koanf:"follow_up_quality"`

	// Client experience
	Adaptability      float64 `json:"adaptability" yaml:"adaptability" koanf:"adaptability"`
	ObjectionHandling float64 `json:"objection_handling" yaml:"objection_handling" koanf:"objection_handling"`
	OverallEfficiency float64 `json:"overall_efficiency" yaml:"overall_efficiency" koanf:"overall_efficiency"`
}

// Categories holds the five category totals.
type Categories struct {
	ResponseTime        float64 `json:"response_time" yaml:"response_time" koanf:"response_time"`
	ServiceQuality      float64 `json:"service_quality" yaml:"service_quality" koanf:"service_quality"`
	ListingPresentation float64 `json:"listing_presentation" yaml:"listing_presentation" koanf:"listing_presentation"`
	FollowUp            float64 `json:"follow_up" yaml:"follow_up" koanf:"follow_up"`
	ClientExperience    float64 `json:"client_experience" yaml:"client_experience" koanf:"client_experience"`
}

// Sum adds the five totals.
func (c Categories) Sum() float64 {
	return c.ResponseTime + c.ServiceQuality + c.ListingPresentation + c.FollowUp + c.ClientExperience
}

// Evaluation is the canonical, scored view of one mystery-shopper row.
//
// ID is a synthetic key assigned in ingestion order (1-based). It is not
// stable across reloads: reordering the source rows renumbers evaluations.
type Evaluation struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	LogoURL         string `json:"logo_url,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`

	// "HH:MM:SS" or "N/A".
	FirstResponseDuration string `json:"first_response_duration"`
	BrokerHandoffDuration string `json:"broker_handoff_duration"`

	Scores     SubScores  `json:"scores"`
	Categories Categories `json:"categories"`
	TotalScore float64    `json:"total_score"`

	// DeclaredTotal is the total written in the sheet, if any. It never feeds
	// TotalScore.
	DeclaredTotal float64 `json:"declared_total,omitempty"`

	ItemsPresented float64 `json:"items_presented"`
	FollowUps      float64 `json:"follow_ups"`
	ItemsSent      string  `json:"items_sent"`
}

// SentItems reports whether the items-sent flag is affirmative.
func (e Evaluation) SentItems() bool { return e.ItemsSent == ItemsSentYes }
