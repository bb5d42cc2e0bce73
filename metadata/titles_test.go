package metadata

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"pmpcal/calendar"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := NewTitleGenerator("PMP Exam").WithClock(fixedClock)
	vars := TitleVars{Week: 7, Day: 3, Topic: "Managing Schedule and Cost Part 2", DurationMinutes: 20}

	first := g.Generate(calendar.TypeDailyStudy, vars)
	for i := 0; i < 5; i++ {
		if got := g.Generate(calendar.TypeDailyStudy, vars); got != first {
			t.Fatalf("Generate not deterministic: %q vs %q", got, first)
		}
	}
}

func TestGenerateEarlyWeeksUseFirstFormula(t *testing.T) {
	g := NewTitleGenerator("PMP Exam")
	for week := 1; week <= 3; week++ {
		got := g.Generate(calendar.TypeOverview, TitleVars{Week: week, Day: 1, Topic: "Foundations"})
		want := substitute(titleFormulas[calendar.TypeOverview][0], map[string]string{
			"keyword": "PMP Exam", "topic": "Foundations", "week": nonZero(week), "day": "1",
		})
		if got != want {
			t.Errorf("week %d: got %q, want first formula %q", week, got, want)
		}
	}
}

func TestGenerateKeepsMissingPlaceholders(t *testing.T) {
	g := NewTitleGenerator("PMP Exam")
	got := g.Generate(calendar.TypeOverview, TitleVars{Week: 1, Day: 1})
	if !strings.Contains(got, "{topic}") {
		t.Errorf("missing topic should leave literal placeholder, got %q", got)
	}
}

func TestOptimizeForSEONeverExceeds60(t *testing.T) {
	g := NewTitleGenerator("PMP Exam").WithClock(fixedClock)
	titles := []string{
		"",
		"Short",
		"PMP Exam Week 1: Foundations",
		strings.Repeat("Very Long Title Words ", 10),
		"NoSpacesAtAll" + strings.Repeat("x", 100),
		"Master Project Integration Management for the PMP Exam in 2026 and beyond",
	}

	for _, title := range titles {
		got := g.OptimizeForSEO(title)
		if n := utf8.RuneCountInString(got); n > MaxTitleLength {
			t.Errorf("OptimizeForSEO(%q) = %q (%d runes), want <= %d", title, got, n, MaxTitleLength)
		}
	}
}

func TestOptimizeForSEOAddsKeywordAndYear(t *testing.T) {
	g := NewTitleGenerator("PMP").WithClock(fixedClock)

	got := g.OptimizeForSEO("Study Plan Overview")
	if !strings.Contains(got, "PMP") {
		t.Errorf("primary keyword missing from %q", got)
	}
	if !strings.Contains(got, "2026") {
		t.Errorf("year missing from %q", got)
	}

	// An existing year is kept, not duplicated.
	got = g.OptimizeForSEO("PMP Study Plan 2025")
	if strings.Count(got, "202") != 1 {
		t.Errorf("year handling wrong in %q", got)
	}
}

func TestOptimizeForSEOTruncatesAtWordBoundary(t *testing.T) {
	g := NewTitleGenerator("PMP").WithClock(fixedClock)
	got := g.OptimizeForSEO("PMP 2026 Complete Guide to Project Schedule Network Diagrams Explained")
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated title should end with ellipsis: %q", got)
	}
	trimmed := strings.TrimSuffix(got, "…")
	if strings.HasSuffix(trimmed, " ") {
		t.Errorf("truncation left trailing space: %q", got)
	}
}

func TestEstimateCTRBounds(t *testing.T) {
	titles := []string{
		"",
		"plain title with nothing special",
		"Master the Ultimate Complete Proven Essential Guide 2026 with Secrets to Pass Free and Easy",
		strings.Repeat("word ", 30),
		"PMP Week 5 Practice Questions 2026",
	}

	for _, title := range titles {
		ctr := EstimateCTR(title)
		if ctr < 0 || ctr > 0.15 {
			t.Errorf("EstimateCTR(%q) = %v, want in [0, 0.15]", title, ctr)
		}
	}
}

func TestEstimateCTRSignals(t *testing.T) {
	base := EstimateCTR("plain title with nothing special")
	withNumber := EstimateCTR("plain title with 7 things special")
	if withNumber <= base {
		t.Errorf("number should raise CTR: %v <= %v", withNumber, base)
	}

	long := EstimateCTR(strings.Repeat("plain ", 20))
	if long >= base {
		t.Errorf("overlong title should lower CTR: %v >= %v", long, base)
	}
}
