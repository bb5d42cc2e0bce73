package metadata

import (
	"regexp"
	"strings"
)

// Scoring weights for ScoreDescription. They sum to 100.
const (
	scoreLengthMax    = 25
	scoreDensityMax   = 25
	scoreCTAMax       = 20
	scoreTimestampMax = 15
	scoreHashtagMax   = 15
)

// ctaPhrases are the call-to-action phrases the score rewards.
var ctaPhrases = []string{"subscribe", "enroll", "join", "download", "comment"}

var timestampRE = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)

// ScoreDescription computes the 0-100 SEO score for a generated
// description. The length band is scored against the hook paragraph (the
// search-result snippet); the remaining signals are scored against the
// whole description.
func ScoreDescription(desc, primaryKeyword string) int {
	score := 0

	hook := desc
	if i := strings.Index(desc, "\n\n"); i >= 0 {
		hook = desc[:i]
	}
	score += lengthBandScore(len(hook))
	score += densityScore(desc, primaryKeyword)

	lower := strings.ToLower(desc)
	for _, phrase := range ctaPhrases {
		if strings.Contains(lower, phrase) {
			score += scoreCTAMax
			break
		}
	}
	if timestampRE.MatchString(desc) {
		score += scoreTimestampMax
	}
	if strings.Contains(desc, "#") {
		score += scoreHashtagMax
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// lengthBandScore rewards hook lengths in the 120-160 character band that
// fits a search snippet without truncation.
func lengthBandScore(n int) int {
	switch {
	case n >= 120 && n <= 160:
		return scoreLengthMax
	case (n >= 90 && n < 120) || (n > 160 && n <= 220):
		return 15
	default:
		return 5
	}
}

// densityScore rewards a primary-keyword density between 2% and 5% of the
// description's words.
func densityScore(desc, primary string) int {
	words := strings.Fields(desc)
	if len(words) == 0 || primary == "" {
		return 0
	}

	occurrences := strings.Count(strings.ToLower(desc), strings.ToLower(primary))
	// Each occurrence counts its word length toward density.
	keywordWords := occurrences * len(strings.Fields(primary))
	density := 100 * float64(keywordWords) / float64(len(words))

	switch {
	case density >= 2 && density <= 5:
		return scoreDensityMax
	case (density >= 1 && density < 2) || (density > 5 && density <= 8):
		return 15
	default:
		return 5
	}
}
