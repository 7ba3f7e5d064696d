// Package scoring turns measured latencies and counts into sub-criterion
// points and aggregates them into capped category totals.
package scoring

import (
	"math"
)

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithTable selects the timed rule table.
func WithTable(t Table) Option {
	return func(c *Classifier) {
		if t.Name != "" {
			c.table = t
		}
	}
}

// WithItemsPresentedRule overrides the listings-sent table.
func WithItemsPresentedRule(r Rule) Option {
	return func(c *Classifier) {
		if len(r.Tiers) > 0 {
			c.itemsPresented = r
		}
	}
}

// WithFollowUpCountRule overrides the follow-up count table.
func WithFollowUpCountRule(r Rule) Option {
	return func(c *Classifier) {
		if len(r.Tiers) > 0 {
			c.followUps = r
		}
	}
}

// Classifier maps measurements to points with table-driven rules. It is
// immutable after construction and safe for concurrent use.
type Classifier struct {
	table          Table
	itemsPresented Rule
	followUps      Rule
}

// NewClassifier creates a Classifier using TableA unless overridden.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		table:          TableA,
		itemsPresented: ItemsPresentedRule,
		followUps:      FollowUpCountRule,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the timed table in use.
func (c *Classifier) Table() Table { return c.table }

// FirstResponse scores a first-response latency. An unmeasured latency
// (ok=false) scores 0 under every table.
func (c *Classifier) FirstResponse(seconds int64, ok bool) float64 {
	if !ok || seconds < 0 {
		return 0
	}
	return c.table.FirstResponse.Points(float64(seconds))
}

// BrokerHandoff scores the latency until a broker took over the lead.
func (c *Classifier) BrokerHandoff(seconds int64, ok bool) float64 {
	if !ok || seconds < 0 {
		return 0
	}
	return c.table.BrokerHandoff.Points(float64(seconds))
}

// ItemsPresented scores how many listings were sent. Nothing counts when the
// shopper recorded that no listings were sent and gave no count.
func (c *Classifier) ItemsPresented(count float64, sent bool) float64 {
	if count <= 0 && !sent {
		return 0
	}
	return c.itemsPresented.Points(sanitize(count))
}

// FollowUps scores the number of follow-up contacts.
func (c *Classifier) FollowUps(count float64) float64 {
	return c.followUps.Points(sanitize(count))
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
