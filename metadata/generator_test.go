package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pmpcal/calendar"
)

func loadedGenerator(t *testing.T) *Generator {
	t.Helper()
	g := NewGenerator(Options{
		StartDate:  time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		UploadHour: 15,
	})
	if err := g.LoadConfigurations("", "", ""); err != nil {
		t.Fatalf("LoadConfigurations: %v", err)
	}
	g.Titles().WithClock(fixedClock)
	return g
}

func slotFor(t *testing.T, week, day int) calendar.Slot {
	t.Helper()
	for _, s := range calendar.ExpandSlots() {
		if s.Week == week && s.Day == day {
			return s
		}
	}
	t.Fatalf("no slot for week %d day %d", week, day)
	return calendar.Slot{}
}

func TestGenerateBeforeLoadFails(t *testing.T) {
	g := NewGenerator(Options{})
	_, err := g.GenerateVideoMetadata(slotFor(t, 1, 1))
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
	if _, err := g.Plans(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Plans err = %v, want ErrNotInitialized", err)
	}
}

func TestWeek1Day1Scenario(t *testing.T) {
	g := loadedGenerator(t)
	slot := slotFor(t, 1, 1)

	m, err := g.GenerateVideoMetadata(slot)
	if err != nil {
		t.Fatalf("GenerateVideoMetadata: %v", err)
	}

	if m.Basic.Type != calendar.TypeOverview {
		t.Errorf("type = %s, want overview", m.Basic.Type)
	}
	if !strings.Contains(m.Basic.Title, "Week 1") {
		t.Errorf("title %q should contain \"Week 1\"", m.Basic.Title)
	}

	week1, _ := calendar.WeekForNumber(1)
	if m.Basic.ThumbnailColor != week1.Color {
		t.Errorf("thumbnail color = %s, want %s", m.Basic.ThumbnailColor, week1.Color)
	}

	wantIDs := map[string]bool{"main": false, "wg-building-team": false}
	for _, p := range m.Playlists {
		if _, ok := wantIDs[p.ID]; ok {
			wantIDs[p.ID] = true
		}
	}
	for id, found := range wantIDs {
		if !found {
			t.Errorf("missing playlist membership %q", id)
		}
	}
}

func TestTagCapAndDedup(t *testing.T) {
	g := loadedGenerator(t)
	for _, slot := range calendar.ExpandSlots() {
		m, err := g.GenerateVideoMetadata(slot)
		if err != nil {
			t.Fatalf("slot %s: %v", slot.ID, err)
		}
		if len(m.Keywords) > MaxTags {
			t.Errorf("slot %s: %d tags, want <= %d", slot.ID, len(m.Keywords), MaxTags)
		}
		seen := make(map[string]bool)
		for _, tag := range m.Keywords {
			key := strings.ToLower(tag)
			if seen[key] {
				t.Errorf("slot %s: duplicate tag %q", slot.ID, tag)
			}
			seen[key] = true
		}
	}
}

func TestSEOScoreBounds(t *testing.T) {
	g := loadedGenerator(t)
	for _, slot := range calendar.ExpandSlots() {
		m, err := g.GenerateVideoMetadata(slot)
		if err != nil {
			t.Fatalf("slot %s: %v", slot.ID, err)
		}
		if m.SEO.Score < 0 || m.SEO.Score > 100 {
			t.Errorf("slot %s: score %d out of [0,100]", slot.ID, m.SEO.Score)
		}
		if m.SEO.EstimatedCTR < 0 || m.SEO.EstimatedCTR > 0.15 {
			t.Errorf("slot %s: ctr %v out of [0,0.15]", slot.ID, m.SEO.EstimatedCTR)
		}
	}
}

func TestDescriptionSections(t *testing.T) {
	g := loadedGenerator(t)
	m, err := g.GenerateVideoMetadata(slotFor(t, 4, 6))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Timestamps:", "0:00", "ECO tasks covered", "Resources:", "#PMP",
	} {
		if !strings.Contains(m.Description, want) {
			t.Errorf("description missing %q", want)
		}
	}
}

func TestUploadScheduleProgression(t *testing.T) {
	g := loadedGenerator(t)

	first, err := g.GenerateVideoMetadata(slotFor(t, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, time.September, 7, 15, 0, 0, 0, time.UTC)
	if !first.Upload.ScheduledAt.Equal(want) {
		t.Errorf("day 1 scheduled at %v, want %v", first.Upload.ScheduledAt, want)
	}

	last, err := g.GenerateVideoMetadata(slotFor(t, 13, 7))
	if err != nil {
		t.Fatal(err)
	}
	if got := last.Upload.ScheduledAt.Sub(first.Upload.ScheduledAt); got != 90*24*time.Hour {
		t.Errorf("slot 91 is %v after slot 1, want 90 days", got)
	}
}

func TestFilenameConvention(t *testing.T) {
	m := &VideoMetadata{Basic: BasicInfo{Week: 1, Day: 3, DayNumber: 3, Type: calendar.TypeDailyStudy}}
	if got := m.Filename(); got != "day-03-daily-study" {
		t.Errorf("Filename = %q, want day-03-daily-study", got)
	}

	m.Basic.DayNumber = 0
	if got := m.Filename(); got != "week-01-3-daily-study" {
		t.Errorf("fallback Filename = %q, want week-01-3-daily-study", got)
	}
}

func TestGenerateRejectsMalformedSlot(t *testing.T) {
	g := loadedGenerator(t)

	bad := calendar.Slot{ID: "w99_d1", Week: 99, Day: 1, Type: calendar.TypeOverview}
	_, err := g.GenerateVideoMetadata(bad)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
	if genErr.SlotID != "w99_d1" {
		t.Errorf("SlotID = %q", genErr.SlotID)
	}

	mismatched := slotFor(t, 1, 1)
	mismatched.Type = calendar.TypeReview
	if _, err := g.GenerateVideoMetadata(mismatched); err == nil {
		t.Error("type/day mismatch should fail")
	}
}

func TestLoadConfigurationsRejectsMalformedKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")
	if err := os.WriteFile(path, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(Options{})
	if err := g.LoadConfigurations("", path, ""); err == nil {
		t.Fatal("expected configuration error")
	}
	if g.Loaded() {
		t.Error("generator should stay unloaded after failed load")
	}
}

func TestKeywordDatabaseOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")
	body := `{"primary": "CAPM Exam", "base": ["CAPM", "entry level PM"]}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(Options{})
	if err := g.LoadConfigurations("", path, ""); err != nil {
		t.Fatalf("LoadConfigurations: %v", err)
	}
	g.Titles().WithClock(fixedClock)

	m, err := g.GenerateVideoMetadata(slotFor(t, 2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if m.SEO.PrimaryKeyword != "CAPM Exam" {
		t.Errorf("primary keyword = %q, want CAPM Exam", m.SEO.PrimaryKeyword)
	}
	if m.Keywords[0] != "CAPM" {
		t.Errorf("first tag = %q, want CAPM (base category leads)", m.Keywords[0])
	}
}
