package metadata

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"pmpcal/calendar"
)

// MaxTitleLength is the longest title that stays fully visible in
// YouTube search results. OptimizeForSEO enforces it.
const MaxTitleLength = 60

// titleFormulas holds the per-type template lists. Multiple formulas exist
// for variety; selection is deterministic (see formulaIndex).
var titleFormulas = map[calendar.SlotType][]string{
	calendar.TypeOverview: {
		"{keyword} Week {week}: {topic}",
		"Week {week} Study Plan: {topic}",
		"{topic} | {keyword} Week {week} Overview",
	},
	calendar.TypeDailyStudy: {
		"{topic} | {keyword} Week {week} Day {day}",
		"{topic} Explained in {duration} Minutes",
		"Master {topic} for the {keyword}",
	},
	calendar.TypePractice: {
		"{keyword} Practice Questions: {topic}",
		"Can You Pass? {topic}",
		"{topic} | Week {week} Question Drill",
	},
	calendar.TypeReview: {
		"Week {week} Review: {topic}",
		"{topic} | Key Takeaways from Week {week}",
	},
}

// powerWords are title words known to lift click-through.
var powerWords = []string{
	"master", "complete", "essential", "proven", "ultimate",
	"secrets", "easy", "guide", "pass", "free",
}

var (
	yearRE  = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	digitRE = regexp.MustCompile(`\d`)
)

// TitleVars carries the values substituted into title formulas. Zero
// values leave the corresponding {placeholder} literal in the output.
type TitleVars struct {
	Week            int
	Day             int
	Topic           string
	Domain          calendar.Domain
	DurationMinutes int
}

// TitleGenerator produces slot titles from fixed per-type formulas and
// optimizes them for search. The clock is injectable so tests can pin the
// year appended by OptimizeForSEO.
type TitleGenerator struct {
	PrimaryKeyword string
	now            func() time.Time
}

// NewTitleGenerator returns a generator using the given primary keyword
// and the wall clock.
func NewTitleGenerator(primaryKeyword string) *TitleGenerator {
	if primaryKeyword == "" {
		primaryKeyword = "PMP Exam"
	}
	return &TitleGenerator{PrimaryKeyword: primaryKeyword, now: time.Now}
}

// WithClock replaces the generator's clock. Intended for tests.
func (g *TitleGenerator) WithClock(now func() time.Time) *TitleGenerator {
	g.now = now
	return g
}

// formulaIndex selects a formula deterministically: the first three weeks
// stick to the simplest formula, later slots rotate through the list.
func formulaIndex(week, day, n int) int {
	if n <= 1 || week <= 3 {
		return 0
	}
	return (week*calendar.DaysPerWeek + day) % n
}

// Generate builds a raw title for the slot type from its formula list.
func (g *TitleGenerator) Generate(t calendar.SlotType, vars TitleVars) string {
	formulas := titleFormulas[t]
	if len(formulas) == 0 {
		return vars.Topic
	}

	formula := formulas[formulaIndex(vars.Week, vars.Day, len(formulas))]
	return substitute(formula, map[string]string{
		"keyword":  g.PrimaryKeyword,
		"topic":    vars.Topic,
		"week":     nonZero(vars.Week),
		"day":      nonZero(vars.Day),
		"domain":   string(vars.Domain),
		"duration": nonZero(vars.DurationMinutes),
	})
}

// OptimizeForSEO ensures the primary keyword appears, appends the current
// year when no year is present, and truncates to MaxTitleLength runes at
// the nearest preceding word boundary. Never returns more than
// MaxTitleLength runes.
func (g *TitleGenerator) OptimizeForSEO(title string) string {
	if !strings.Contains(strings.ToLower(title), strings.ToLower(g.PrimaryKeyword)) {
		title = g.PrimaryKeyword + ": " + title
	}
	if !yearRE.MatchString(title) {
		title = fmt.Sprintf("%s %d", title, g.now().Year())
	}
	return truncateAtWord(title, MaxTitleLength)
}

// EstimateCTR scores a title's expected click-through rate in [0, 0.15].
// Deterministic given the title string.
func EstimateCTR(title string) float64 {
	ctr := 0.05
	lower := strings.ToLower(title)
	for _, w := range powerWords {
		if strings.Contains(lower, w) {
			ctr += 0.01
		}
	}
	if digitRE.MatchString(title) {
		ctr += 0.015
	}
	if yearRE.MatchString(title) {
		ctr += 0.01
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		ctr -= 0.02
	}
	if ctr < 0 {
		ctr = 0
	}
	if ctr > 0.15 {
		ctr = 0.15
	}
	return ctr
}

// substitute replaces {key} tokens with their values. Keys with empty
// values are left as literal placeholders rather than erased.
func substitute(template string, vals map[string]string) string {
	out := template
	for key, val := range vals {
		if val == "" {
			continue
		}
		out = strings.ReplaceAll(out, "{"+key+"}", val)
	}
	return out
}

// nonZero formats a positive int, or returns "" to keep the placeholder.
func nonZero(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

// truncateAtWord cuts s to at most max runes, backing up to the previous
// word boundary and appending an ellipsis when a cut was made.
func truncateAtWord(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	cut := max - 1 // leave room for the ellipsis rune
	boundary := cut
	for boundary > 0 && runes[boundary] != ' ' {
		boundary--
	}
	if boundary > 0 {
		cut = boundary
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "…"
}
