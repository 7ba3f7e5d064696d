package scoring

import (
	"fmt"
	"strings"
)

// Tier is one inclusive upper bound and the points awarded at or below it.
type Tier struct {
	UpTo   float64
	Points float64
}

// Rule is a threshold table: tiers in strictly ascending bound order plus a
// catch-all for values above every bound.
type Rule struct {
	Name  string
	Tiers []Tier
	Else  float64
}

// Points walks the tiers in order and returns the points of the first bound
// v does not exceed, or Else.
func (r Rule) Points(v float64) float64 {
	for _, t := range r.Tiers {
		if v <= t.UpTo {
			return t.Points
		}
	}
	return r.Else
}

// Max returns the highest points the rule can award.
func (r Rule) Max() float64 {
	m := r.Else
	for _, t := range r.Tiers {
		if t.Points > m {
			m = t.Points
		}
	}
	return m
}

// Validate checks that bounds are strictly ascending.
func (r Rule) Validate() error {
	for i := 1; i < len(r.Tiers); i++ {
		if r.Tiers[i].UpTo <= r.Tiers[i-1].UpTo {
			return fmt.Errorf("%w: rule %q bound %v not above %v", ErrInvalidRule, r.Name, r.Tiers[i].UpTo, r.Tiers[i-1].UpTo)
		}
	}
	return nil
}

// Table groups the timed rules that must be applied together.
type Table struct {
	Name          string
	FirstResponse Rule
	BrokerHandoff Rule
}

// Table names accepted by TableByName.
const (
	TableNameA = "A"
	TableNameB = "B"
)

// TableA is applied at ingestion time and is the default.
var TableA = Table{
	Name: TableNameA,
	FirstResponse: Rule{
		Name: "first_response",
		Tiers: []Tier{
			{UpTo: 300, Points: 10},
			{UpTo: 600, Points: 8},
			{UpTo: 900, Points: 6},
			{UpTo: 1800, Points: 4},
			{UpTo: 3600, Points: 2},
		},
		Else: 0,
	},
	BrokerHandoff: Rule{
		Name: "broker_handoff",
		Tiers: []Tier{
			{UpTo: 600, Points: 8},
			{UpTo: 1800, Points: 6},
			{UpTo: 3600, Points: 4},
			{UpTo: 7200, Points: 2},
		},
		Else: 0,
	},
}

// TableB is the response-time view's table: wider bands and a 1-point floor
// for any recorded latency.
var TableB = Table{
	Name: TableNameB,
	FirstResponse: Rule{
		Name: "first_response",
		Tiers: []Tier{
			{UpTo: 300, Points: 10},
			{UpTo: 1800, Points: 8},
			{UpTo: 7200, Points: 6},
			{UpTo: 43200, Points: 3},
		},
		Else: 1,
	},
	BrokerHandoff: Rule{
		Name: "broker_handoff",
		Tiers: []Tier{
			{UpTo: 600, Points: 8},
			{UpTo: 1800, Points: 6},
			{UpTo: 3600, Points: 5},
			{UpTo: 10800, Points: 3},
			{UpTo: 43200, Points: 2},
		},
		Else: 1,
	},
}

// TableByName returns TableA or TableB (case-insensitive).
func TableByName(name string) (Table, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", TableNameA:
		return TableA, nil
	case TableNameB:
		return TableB, nil
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
}

// ItemsPresentedRule scores the number of listings sent: 0, 1-2, 3-4, 5+.
var ItemsPresentedRule = Rule{
	Name: "items_presented",
	Tiers: []Tier{
		{UpTo: 0, Points: 0},
		{UpTo: 2, Points: 2},
		{UpTo: 4, Points: 4},
	},
	Else: 5,
}

// FollowUpCountRule scores the number of follow-ups performed.
var FollowUpCountRule = Rule{
	Name: "follow_up_count",
	Tiers: []Tier{
		{UpTo: 0, Points: 0},
		{UpTo: 1, Points: 2},
		{UpTo: 2, Points: 4},
		{UpTo: 3, Points: 6},
	},
	Else: 7,
}
