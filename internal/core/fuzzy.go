package core

import (
	"slices"
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match ranks, best first. A candidate must reach RankMatches to survive
// the fuzzy filter.
const (
	RankNoMatch            = 0.0
	RankMatches            = 1.0
	RankAcronym            = 2.0
	RankContains           = 3.0
	RankWordStartsWith     = 4.0
	RankStartsWith         = 5.0
	RankEqual              = 6.0
	RankCaseSensitiveEqual = 7.0
)

// Fuzzy keeps rows whose value approximately matches the filter and orders
// them best match first. Ties are broken by Jaro-Winkler similarity, then
// by input order.
var Fuzzy Predicate = fuzzyPredicate{}

type fuzzyPredicate struct{}

type rankedRow struct {
	row   Row
	rank  float64
	score float64
}

func (fuzzyPredicate) Apply(rows []Row, field Field, value any) []Row {
	query, _ := value.(string)
	if query == "" {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out
	}

	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false

	ranked := make([]rankedRow, 0, len(rows))
	for _, r := range rows {
		v, ok := r.Value(field)
		if !ok {
			continue
		}
		candidate := FormatValue(v)
		rank := MatchRank(candidate, query)
		if rank < RankMatches {
			continue
		}
		ranked = append(ranked, rankedRow{
			row:   r,
			rank:  rank,
			score: strutil.Similarity(foldDiacritics(candidate), foldDiacritics(query), jw),
		})
	}

	slices.SortStableFunc(ranked, func(a, b rankedRow) int {
		switch {
		case a.rank > b.rank:
			return -1
		case a.rank < b.rank:
			return 1
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	out := make([]Row, len(ranked))
	for i, rr := range ranked {
		out[i] = rr.row
	}
	return out
}

func (fuzzyPredicate) AutoClear(value any) bool {
	return clearEmptyString(value)
}

// MatchRank scores how well candidate matches query.
func MatchRank(candidate, query string) float64 {
	candidate = foldDiacritics(candidate)
	query = foldDiacritics(query)

	if len(query) > len(candidate) {
		return RankNoMatch
	}
	if candidate == query {
		return RankCaseSensitiveEqual
	}

	c := strings.ToLower(candidate)
	q := strings.ToLower(query)

	switch {
	case c == q:
		return RankEqual
	case strings.HasPrefix(c, q):
		return RankStartsWith
	case strings.Contains(c, " "+q):
		return RankWordStartsWith
	case strings.Contains(c, q):
		return RankContains
	case len([]rune(q)) == 1:
		return RankNoMatch
	case strings.Contains(acronym(c), q):
		return RankAcronym
	}

	return closeness(c, q)
}

// closeness scores an in-order subsequence match. The result lies in
// [RankMatches, RankAcronym) or is RankNoMatch.
func closeness(candidate, query string) float64 {
	cr := []rune(candidate)
	qr := []rune(query)

	first, pos := -1, 0
	for _, ch := range qr {
		found := -1
		for i := pos; i < len(cr); i++ {
			if cr[i] == ch {
				found = i
				break
			}
		}
		if found < 0 {
			return RankNoMatch
		}
		if first < 0 {
			first = found
		}
		pos = found + 1
	}

	spread := float64(pos - first)
	inOrder := float64(len(qr)) / float64(len(cr))
	return RankMatches + inOrder*(1/spread)*0.999
}

// acronym returns the first letter of every word, splitting on spaces and hyphens.
func acronym(s string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' }) {
		for _, r := range word {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// foldDiacritics strips combining marks so "café" matches "cafe".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
