// ABOUTME: Pulls numeric estimates such as "200 grams" out of model answers.
// ABOUTME: Recognises grams, millilitres and calories, converting kilograms and litres.
package ai

import (
	"regexp"
	"strconv"
	"strings"
)

type unitPattern struct {
	re    *regexp.Regexp
	scale float64
}

const number = `(\d[\d,]*(?:\.\d+)?)\s*`

var unitPatterns = map[string][]unitPattern{
	"g": {
		{regexp.MustCompile(`(?i)` + number + `(?:grams?|gr|g)\b`), 1},
		{regexp.MustCompile(`(?i)` + number + `(?:kilo(?:gram)?s?|kgs?)\b`), 1000},
	},
	"ml": {
		{regexp.MustCompile(`(?i)` + number + `(?:millilit(?:er|re)s?|ml)\b`), 1},
		{regexp.MustCompile(`(?i)` + number + `(?:lit(?:er|re)s?|l)\b`), 1000},
	},
	"calories": {
		{regexp.MustCompile(`(?i)` + number + `(?:calories|calorie|kcal|cal)\b`), 1},
	},
}

// ExtractQuantity returns the first amount in text measured in the given
// unit ("g", "ml" or "calories"), rounded to an integer. Kilograms and
// litres count as 1000 g and 1000 ml.
func ExtractQuantity(text, unit string) (int, bool) {
	patterns, ok := unitPatterns[normalizeUnit(unit)]
	if !ok {
		return 0, false
	}

	start, value, scale := -1, "", 0.0
	for _, p := range patterns {
		loc := p.re.FindStringSubmatchIndex(text)
		if loc == nil || (start >= 0 && loc[0] >= start) {
			continue
		}
		start, value, scale = loc[0], text[loc[2]:loc[3]], p.scale
	}
	if start < 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return int(v*scale + 0.5), true
}

func normalizeUnit(unit string) string {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gram", "grams", "solid":
		return "g"
	case "ml", "millilitres", "milliliters", "liquid":
		return "ml"
	case "cal", "kcal", "calorie", "calories":
		return "calories"
	default:
		return unit
	}
}
