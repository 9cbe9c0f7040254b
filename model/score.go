package model

import (
	"strconv"
	"strings"
)

// scoreSubstring identifies score fields by key name.
//
// Design decision: This is deliberately a literal substring check rather
// than a typed schema property. The analysis engine names its numeric
// rating fields "* Score", and the export layer must classify fields the
// same way it always has — a hypothetical "Scoreboard" field would be
// miscategorized, and we preserve that behavior.
const scoreSubstring = "Score"

// IsScoreField reports whether the field key names a score.
// Score fields are eligible for tiered coloring and averaging.
func IsScoreField(key string) bool {
	return strings.Contains(key, scoreSubstring)
}

// ParseScore parses a score value. It accepts only non-empty strings of
// ASCII digits; signs, spaces, decimals, and placeholders like "-" or
// "N/A" are all rejected. Invalid values report ok=false and are never
// coerced to zero.
func ParseScore(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Tier is the score coloring band used by the styled report's
// conditional formatting.
type Tier int

const (
	// TierNone means the value is not a valid score and gets no styling.
	TierNone Tier = iota

	// TierRed marks scores below 60.
	TierRed

	// TierYellow marks scores from 60 through 79.
	TierYellow

	// TierGreen marks scores of 80 and above.
	TierGreen
)

// String returns a human-readable representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierRed:
		return "red"
	case TierYellow:
		return "yellow"
	case TierGreen:
		return "green"
	default:
		return "none"
	}
}

// TierForScore returns the coloring band for a parsed score.
// Boundaries are inclusive: 80 is green and 60 is yellow.
func TierForScore(score int) Tier {
	switch {
	case score >= 80:
		return TierGreen
	case score >= 60:
		return TierYellow
	default:
		return TierRed
	}
}

// TierForValue classifies a raw field value. Values that are not purely
// digit strings map to TierNone regardless of the field's name.
func TierForValue(value string) Tier {
	score, ok := ParseScore(value)
	if !ok {
		return TierNone
	}
	return TierForScore(score)
}

// ScoreAverage is the arithmetic mean of one score field across a result
// set, computed over valid numeric values only.
type ScoreAverage struct {
	// Field is the score field key.
	Field string `json:"field"`

	// Mean is the average over Count valid values.
	Mean float64 `json:"mean"`

	// Count is the number of results that held a valid numeric value.
	Count int `json:"count"`
}

// ScoreFields filters keys down to those naming score fields,
// preserving order.
func ScoreFields(keys []string) []string {
	var fields []string
	for _, k := range keys {
		if IsScoreField(k) {
			fields = append(fields, k)
		}
	}
	return fields
}

// AverageScores computes the mean of each score field over results, in
// field order. Missing and non-numeric values are ignored; fields with
// no valid value at all are omitted from the output entirely.
func AverageScores(results []*Result, fields []string) []ScoreAverage {
	var averages []ScoreAverage
	for _, field := range fields {
		sum := 0
		count := 0
		for _, r := range results {
			value, ok := r.Lookup(field)
			if !ok {
				continue
			}
			score, ok := ParseScore(value)
			if !ok {
				continue
			}
			sum += score
			count++
		}
		if count == 0 {
			continue
		}
		averages = append(averages, ScoreAverage{
			Field: field,
			Mean:  float64(sum) / float64(count),
			Count: count,
		})
	}
	return averages
}
