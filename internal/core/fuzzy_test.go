package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRank(t *testing.T) {
	tests := []struct {
		candidate string
		query     string
		want      float64
	}{
		{"product 1", "product 1", RankCaseSensitiveEqual},
		{"Product 1", "product 1", RankEqual},
		{"product 1", "prod", RankStartsWith},
		{"red product", "prod", RankWordStartsWith},
		{"reproduce", "prod", RankContains},
		{"north-west product", "nwp", RankAcronym},
		{"product 1", "zz", RankNoMatch},
		{"ab", "abc", RankNoMatch},
		{"product 1", "x", RankNoMatch},
		{"café", "cafe", RankCaseSensitiveEqual},
	}

	for _, tt := range tests {
		t.Run(tt.candidate+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchRank(tt.candidate, tt.query))
		})
	}
}

func TestMatchRank_Subsequence(t *testing.T) {
	rank := MatchRank("product 3", "pdt3")
	assert.GreaterOrEqual(t, rank, RankMatches)
	assert.Less(t, rank, RankAcronym)

	tight := MatchRank("product", "pro")
	loose := MatchRank("pxrxoxduct", "pro")
	assert.Greater(t, tight, loose)
}

func TestFuzzy_Apply(t *testing.T) {
	rows := productRows()

	got := Fuzzy.Apply(rows, FieldName, "product 2")
	assert.Equal(t, []int{2}, ids(got))

	got = Fuzzy.Apply(rows, FieldName, "p 3")
	assert.Equal(t, []int{3}, ids(got))

	// Equal rank and similarity keep input order.
	got = Fuzzy.Apply(rows, FieldName, "prd")
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(got))
}

func TestFuzzy_RanksBestFirst(t *testing.T) {
	rows := []Row{
		NewRow(1, "reproduce", 1, ""),
		NewRow(2, "prod", 1, ""),
		NewRow(3, "product", 1, ""),
		NewRow(4, "widget", 1, ""),
	}

	got := Fuzzy.Apply(rows, FieldName, "prod")
	assert.Equal(t, []int{2, 3, 1}, ids(got))
}

func TestFuzzy_AutoClear(t *testing.T) {
	assert.True(t, Fuzzy.AutoClear(""))
	assert.True(t, Fuzzy.AutoClear(3.0))
	assert.False(t, Fuzzy.AutoClear("p"))
}
