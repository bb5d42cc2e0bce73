// Package metadata derives full video metadata (title, description, tags,
// SEO score, playlist memberships, upload slot) from calendar slots.
package metadata

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pmpcal/calendar"
)

// ErrNotInitialized is returned when metadata generation is attempted
// before LoadConfigurations has completed.
var ErrNotInitialized = errors.New("metadata: generator not initialized, call LoadConfigurations first")

// GenerationError wraps a per-slot generation failure with the slot that
// caused it.
type GenerationError struct {
	SlotID string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("metadata: generate %s: %v", e.SlotID, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// BasicInfo is the flat per-video block of a VideoMetadata.
type BasicInfo struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Week            int               `json:"week"`
	Day             int               `json:"day"`
	DayNumber       int               `json:"day_number"`
	Type            calendar.SlotType `json:"type"`
	Topic           string            `json:"topic"`
	DurationMinutes int               `json:"duration_minutes"`
	WorkGroup       string            `json:"work_group"`
	Domain          calendar.Domain   `json:"domain"`
	ThumbnailColor  calendar.Color    `json:"thumbnail_color"`
}

// SEOInfo carries the derived search-optimization signals.
type SEOInfo struct {
	Score          int     `json:"seo_score"`
	EstimatedCTR   float64 `json:"estimated_ctr"`
	PrimaryKeyword string  `json:"primary_keyword"`
}

// PlaylistMembership places a video in one playlist at a position.
type PlaylistMembership struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// UploadSchedule is the computed publish slot for a video.
type UploadSchedule struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// VideoMetadata is the full generated record for one slot. It is created
// fresh on every batch run and never mutated after creation; only its JSON
// serialization is persisted.
type VideoMetadata struct {
	Basic       BasicInfo            `json:"basic"`
	Description string               `json:"description"`
	Keywords    []string             `json:"keywords"`
	SEO         SEOInfo              `json:"seo"`
	Playlists   []PlaylistMembership `json:"playlists"`
	Upload      UploadSchedule       `json:"upload_schedule"`
}

// Filename returns the output file basename for this video:
// "day-NN-type" when the global day number is known, otherwise
// "week-NN-day-type".
func (m *VideoMetadata) Filename() string {
	if m.Basic.DayNumber > 0 {
		return fmt.Sprintf("day-%02d-%s", m.Basic.DayNumber, m.Basic.Type)
	}
	return fmt.Sprintf("week-%02d-%d-%s", m.Basic.Week, m.Basic.Day, m.Basic.Type)
}

// Options configures a Generator.
type Options struct {
	// PrimaryKeyword overrides the keyword database's primary keyword.
	PrimaryKeyword string
	// StartDate is the publish date of day 1 (week 1, day 1).
	StartDate time.Time
	// UploadHour is the UTC hour of day every video goes live.
	UploadHour int
}

// Generator derives VideoMetadata from calendar slots. All configuration
// files are read once by LoadConfigurations; generation itself performs no
// I/O.
type Generator struct {
	titles    *TitleGenerator
	keywords  *KeywordDatabase
	channel   *Channel
	overrides *calendar.Overrides

	startDate  time.Time
	uploadHour int
	loaded     bool
}

// NewGenerator creates an unloaded Generator. LoadConfigurations must be
// called before any Generate call.
func NewGenerator(opts Options) *Generator {
	start := opts.StartDate
	if start.IsZero() {
		start = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	}
	return &Generator{
		startDate:  start,
		uploadHour: opts.UploadHour,
		titles:     NewTitleGenerator(opts.PrimaryKeyword),
	}
}

// LoadConfigurations reads the calendar override, keyword database, and
// channel branding files. Missing files fall back to built-in defaults;
// malformed files are configuration errors and leave the generator
// unloaded. Empty paths skip the corresponding file.
func (g *Generator) LoadConfigurations(calendarPath, keywordsPath, channelPath string) error {
	var err error

	if calendarPath != "" {
		if g.overrides, err = calendar.LoadOverrides(calendarPath); err != nil {
			return err
		}
	}

	if keywordsPath != "" {
		g.keywords, err = LoadKeywordDatabase(keywordsPath)
	} else {
		g.keywords = DefaultKeywordDatabase()
	}
	if err != nil {
		return err
	}

	if channelPath != "" {
		g.channel, err = LoadChannel(channelPath)
	} else {
		g.channel = DefaultChannel()
	}
	if err != nil {
		return err
	}

	if g.titles.PrimaryKeyword == "" || g.titles.PrimaryKeyword == "PMP Exam" {
		if g.keywords.Primary != "" {
			g.titles.PrimaryKeyword = g.keywords.Primary
		}
	}

	g.loaded = true
	return nil
}

// Loaded reports whether LoadConfigurations has completed.
func (g *Generator) Loaded() bool { return g.loaded }

// Titles exposes the title generator, mainly so tests can pin its clock.
func (g *Generator) Titles() *TitleGenerator { return g.titles }

// Plans returns the calendar expansion with any loaded overrides applied.
func (g *Generator) Plans() ([]calendar.WeekPlan, error) {
	if !g.loaded {
		return nil, ErrNotInitialized
	}
	return calendar.ExpandWith(g.overrides), nil
}

// GenerateVideoMetadata produces the full metadata record for one slot.
// It performs no I/O and fails only on slots that violate the calendar
// shape.
func (g *Generator) GenerateVideoMetadata(slot calendar.Slot) (*VideoMetadata, error) {
	if !g.loaded {
		return nil, ErrNotInitialized
	}
	if err := validateSlot(slot); err != nil {
		return nil, &GenerationError{SlotID: slot.ID, Err: err}
	}

	title := g.titles.OptimizeForSEO(g.titles.Generate(slot.Type, TitleVars{
		Week:            slot.Week,
		Day:             slot.Day,
		Topic:           slot.Topic,
		Domain:          slot.Domain,
		DurationMinutes: slot.DurationMinutes,
	}))

	desc := BuildDescription(slot, g.channel, g.titles.PrimaryKeyword, g.keywords.TasksForWeek(slot.Week))

	return &VideoMetadata{
		Basic: BasicInfo{
			ID:              slot.ID,
			Title:           title,
			Week:            slot.Week,
			Day:             slot.Day,
			DayNumber:       slot.DayNumber,
			Type:            slot.Type,
			Topic:           slot.Topic,
			DurationMinutes: slot.DurationMinutes,
			WorkGroup:       slot.WorkGroup,
			Domain:          slot.Domain,
			ThumbnailColor:  slot.Color,
		},
		Description: desc,
		Keywords:    g.keywords.TagsForSlot(slot),
		SEO: SEOInfo{
			Score:          ScoreDescription(desc, g.titles.PrimaryKeyword),
			EstimatedCTR:   EstimateCTR(title),
			PrimaryKeyword: g.titles.PrimaryKeyword,
		},
		Playlists: g.playlistsFor(slot),
		Upload:    UploadSchedule{ScheduledAt: g.scheduleFor(slot)},
	}, nil
}

// validateSlot rejects slots outside the 13x7 calendar shape.
func validateSlot(slot calendar.Slot) error {
	if slot.Week < 1 || slot.Week > calendar.NumWeeks {
		return fmt.Errorf("week %d out of range 1..%d", slot.Week, calendar.NumWeeks)
	}
	if slot.Day < 1 || slot.Day > calendar.DaysPerWeek {
		return fmt.Errorf("day %d out of range 1..%d", slot.Day, calendar.DaysPerWeek)
	}
	wantType, ok := calendar.TypeForDay(slot.Day)
	if !ok || slot.Type != wantType {
		return fmt.Errorf("type %q does not match day %d", slot.Type, slot.Day)
	}
	return nil
}

// playlistsFor assigns the four playlist memberships every slot gets:
// main (chronological), work-group, domain, and content-type.
func (g *Generator) playlistsFor(slot calendar.Slot) []PlaylistMembership {
	memberships := []PlaylistMembership{
		{ID: "main", Name: g.channel.MainPlaylistName, Order: slot.DayNumber},
	}

	if wg, ok := calendar.WorkGroupForWeek(slot.Week); ok {
		memberships = append(memberships, PlaylistMembership{
			ID:    "wg-" + slug(wg.Name),
			Name:  wg.Name,
			Order: (slot.Week-wg.FirstWeek)*calendar.DaysPerWeek + slot.Day,
		})
	}

	memberships = append(memberships,
		PlaylistMembership{
			ID:    "domain-" + slug(string(slot.Domain)),
			Name:  string(slot.Domain) + " Domain",
			Order: slot.DayNumber,
		},
		PlaylistMembership{
			ID:    "type-" + string(slot.Type),
			Name:  typePlaylistName(slot.Type),
			Order: slot.DayNumber,
		},
	)
	return memberships
}

// scheduleFor computes the publish time: start date plus the slot's
// zero-based global day offset, at the configured UTC hour.
func (g *Generator) scheduleFor(slot calendar.Slot) time.Time {
	day := g.startDate.AddDate(0, 0, slot.DayNumber-1)
	return time.Date(day.Year(), day.Month(), day.Day(), g.uploadHour, 0, 0, 0, time.UTC)
}

func typePlaylistName(t calendar.SlotType) string {
	switch t {
	case calendar.TypeOverview:
		return "Weekly Overviews"
	case calendar.TypeDailyStudy:
		return "Daily Study Sessions"
	case calendar.TypePractice:
		return "Practice Questions"
	case calendar.TypeReview:
		return "Weekly Reviews"
	}
	return string(t)
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
