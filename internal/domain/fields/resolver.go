// Package fields maps inconsistently named source columns onto canonical
// fields using ordered alias lists.
package fields

import (
	"strings"
	"unicode"

	"github.com/okian/brokerscore/internal/domain/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tier identifies the strategy that produced a match.
type Tier int

const (
	TierNone Tier = iota
	// TierExact is a byte-exact key match, tried alias by alias.
	TierExact
	// TierCaseless is a case-insensitive whole-key match.
	TierCaseless
	// TierSubstring is a case-insensitive match of the alias inside a key.
	TierSubstring
	// TierAccentFolded repeats the caseless and substring tiers with
	// diacritics stripped. Only consulted when all other tiers fail.
	TierAccentFolded
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierCaseless:
		return "caseless"
	case TierSubstring:
		return "substring"
	case TierAccentFolded:
		return "accent_folded"
	default:
		return "none"
	}
}

// Match is a resolved column.
type Match struct {
	Key   string
	Value any
	Tier  Tier
}

// DefaultMinAliasLength keeps two-letter abbreviations such as "PR" from
// substring-matching columns like "Profissionalismo".
const DefaultMinAliasLength = 3

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithMinAliasLength keeps aliases shorter than n out of substring matching.
// Short aliases such as "TR" would otherwise match unrelated columns.
func WithMinAliasLength(n int) Option {
	return func(r *Resolver) {
		if n >= 0 {
			r.minAliasLength = n
		}
	}
}

// WithAccentFolding enables the accent-folded fallback tier.
func WithAccentFolding(enabled bool) Option {
	return func(r *Resolver) {
		r.foldAccents = enabled
	}
}

// Resolver looks up canonical fields in raw records. It holds no per-call
// state and is safe for concurrent use.
type Resolver struct {
	minAliasLength int
	foldAccents    bool
}

// NewResolver creates a Resolver with the DefaultMinAliasLength guard and no
// accent folding. WithMinAliasLength(0) disables the guard.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{minAliasLength: DefaultMinAliasLength}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the value of the first alias that matches row.
func (r *Resolver) Resolve(row model.RawRecord, aliases []string) (any, bool) {
	m, ok := r.Lookup(row, aliases)
	if !ok {
		return nil, false
	}
	return m.Value, true
}

// Lookup resolves aliases against row, first match wins:
//  1. exact key, in alias order;
//  2. case-insensitive whole key, in alias order;
//  3. case-insensitive substring of a key, in alias order then key order;
//  4. (optional) 2 and 3 again with accents removed.
//
// Keys are scanned in lexical order. Nil values count as absent.
func (r *Resolver) Lookup(row model.RawRecord, aliases []string) (Match, bool) {
	if len(row) == 0 || len(aliases) == 0 {
		return Match{}, false
	}

	for _, alias := range aliases {
		if v, ok := row[alias]; ok && v != nil {
			return Match{Key: alias, Value: v, Tier: TierExact}, true
		}
	}

	keys := row.Keys()
	fold := cases.Fold()
	foldedKeys := make([]string, len(keys))
	for i, k := range keys {
		foldedKeys[i] = fold.String(k)
	}
	foldedAliases := make([]string, len(aliases))
	for i, a := range aliases {
		foldedAliases[i] = fold.String(a)
	}

	if m, ok := r.scan(row, keys, foldedKeys, aliases, foldedAliases, TierCaseless, TierSubstring); ok {
		return m, true
	}

	if !r.foldAccents {
		return Match{}, false
	}
	for i := range foldedKeys {
		foldedKeys[i] = stripAccents(foldedKeys[i])
	}
	for i := range foldedAliases {
		foldedAliases[i] = stripAccents(foldedAliases[i])
	}
	return r.scan(row, keys, foldedKeys, aliases, foldedAliases, TierAccentFolded, TierAccentFolded)
}

func (r *Resolver) scan(row model.RawRecord, keys, foldedKeys, aliases, foldedAliases []string, whole, sub Tier) (Match, bool) {
	for _, fa := range foldedAliases {
		for i, fk := range foldedKeys {
			if fk == fa {
				if v := row[keys[i]]; v != nil {
					return Match{Key: keys[i], Value: v, Tier: whole}, true
				}
			}
		}
	}
	for j, fa := range foldedAliases {
		if fa == "" || len([]rune(aliases[j])) < r.minAliasLength {
			continue
		}
		for i, fk := range foldedKeys {
			if strings.Contains(fk, fa) {
				if v := row[keys[i]]; v != nil {
					return Match{Key: keys[i], Value: v, Tier: sub}, true
				}
			}
		}
	}
	return Match{}, false
}

// stripAccents removes combining marks: "Imobiliária" -> "Imobiliaria".
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
