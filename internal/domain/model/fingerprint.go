package model

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// datasetNamespace scopes dataset fingerprints.
var datasetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("brokerscore/dataset"))

// Fingerprint derives a deterministic UUID from the identity and scores of a
// normalized dataset. Identical input yields the identical id on every run.
func Fingerprint(evals []Evaluation) string {
	var b strings.Builder
	for _, e := range evals {
		b.WriteString(strconv.Itoa(e.ID))
		b.WriteByte('|')
		b.WriteString(e.Name)
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(e.TotalScore, 'g', -1, 64))
		b.WriteByte('\n')
	}
	return uuid.NewSHA1(datasetNamespace, []byte(b.String())).String()
}
