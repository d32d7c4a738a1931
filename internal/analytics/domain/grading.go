package domain

import (
	"strings"
	"unicode"

	"github.com/smallbiznis/dentalpay/pkg/stats"
)

const (
	LabelBottom  = "Bottom"
	Label10To25  = "10th–25th"
	Label25To50  = "25th–50th"
	Label50To75  = "50th–75th"
	Label75To90  = "75th–90th"
	LabelTop     = "Top"
	GradeAPlus   = "A+"
	GradeA       = "A"
	GradeB       = "B"
	GradeC       = "C"
	GradeD       = "D"
	gradeAPlusAt = 1.2
	gradeAAt     = 1.0
	gradeBAt     = 0.9
	gradeCAt     = 0.75
)

var stopWords = map[string]struct{}{
	"and": {}, "or": {}, "of": {}, "in": {}, "on": {}, "the": {}, "a": {}, "an": {},
}

// NormalizeSpecialtyName turns a URL slug such as "oral-and-maxillofacial-surgery" into
// the stored display name "Oral and Maxillofacial Surgery". Stop words stay lower case
// except in first position.
func NormalizeSpecialtyName(raw string) string {
	tokens := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
	for i, token := range tokens {
		if _, stop := stopWords[token]; stop && i > 0 {
			continue
		}
		tokens[i] = capitalize(token)
	}
	return strings.Join(tokens, " ")
}

func capitalize(token string) string {
	runes := []rune(token)
	if len(runes) == 0 {
		return token
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ClassifyPercentile places amount in the band; each threshold is an inclusive upper bound.
func ClassifyPercentile(amount float64, band stats.PercentileBand) string {
	switch {
	case amount <= band.P10:
		return LabelBottom
	case amount <= band.P25:
		return Label10To25
	case amount <= band.P50:
		return Label25To50
	case amount <= band.P75:
		return Label50To75
	case amount <= band.P90:
		return Label75To90
	default:
		return LabelTop
	}
}

// Grade scores a candidate-to-market ratio.
func Grade(ratio float64) string {
	switch {
	case ratio >= gradeAPlusAt:
		return GradeAPlus
	case ratio >= gradeAAt:
		return GradeA
	case ratio >= gradeBAt:
		return GradeB
	case ratio >= gradeCAt:
		return GradeC
	default:
		return GradeD
	}
}
