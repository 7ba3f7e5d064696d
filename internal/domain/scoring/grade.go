package scoring

import (
	"github.com/okian/brokerscore/internal/domain/duration"
	"github.com/okian/brokerscore/internal/domain/model"
)

// Grade is a qualitative latency band.
type Grade string

// Latency grades, best first.
const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeRegular   Grade = "regular"
	GradePoor      Grade = "poor"
	GradeCritical  Grade = "critical"
	GradeUnknown   Grade = "unknown"
)

// Metric names accepted by GradeLatency.
const (
	MetricFirstResponse = "first_response"
	MetricBrokerHandoff = "broker_handoff"
)

// gradeBounds are inclusive upper bounds in seconds for excellent, good,
// regular and poor. Anything slower is critical.
var gradeBounds = map[string][4]int64{
	MetricFirstResponse: {300, 900, 1800, 3600},
	MetricBrokerHandoff: {900, 1800, 3600, 7200},
}

var defaultGradeBounds = [4]int64{600, 1200, 2400, 4800}

// GradeLatency bands a latency for the given metric. Unknown metrics use a
// generic scale.
func GradeLatency(metric string, seconds int64, ok bool) Grade {
	if !ok || seconds < 0 {
		return GradeUnknown
	}
	b, found := gradeBounds[metric]
	if !found {
		b = defaultGradeBounds
	}
	switch {
	case seconds <= b[0]:
		return GradeExcellent
	case seconds <= b[1]:
		return GradeGood
	case seconds <= b[2]:
		return GradeRegular
	case seconds <= b[3]:
		return GradePoor
	default:
		return GradeCritical
	}
}

// LatencyGrades bands both recorded latencies of one evaluation.
type LatencyGrades struct {
	FirstResponse Grade `json:"first_response"`
	BrokerHandoff Grade `json:"broker_handoff"`
}

// GradeEvaluation grades the evaluation's recorded durations; "N/A" grades
// as unknown.
func GradeEvaluation(e model.Evaluation) LatencyGrades {
	fr, frOK := duration.Parse(e.FirstResponseDuration)
	bh, bhOK := duration.Parse(e.BrokerHandoffDuration)
	return LatencyGrades{
		FirstResponse: GradeLatency(MetricFirstResponse, fr, frOK),
		BrokerHandoff: GradeLatency(MetricBrokerHandoff, bh, bhOK),
	}
}
