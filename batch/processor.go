// Package batch iterates the full calendar, generates metadata per slot,
// and aggregates the results into a single run report.
package batch

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pmpcal/calendar"
	"pmpcal/metadata"
)

// Criteria filters the calendar expansion. Zero values match everything;
// filtering never reorders slots.
type Criteria struct {
	// Week limits processing to one week, 1..13. 0 = all weeks.
	Week int
	// Type limits processing to one slot type. Empty = all types.
	Type calendar.SlotType
	// Domain limits processing to one domain. Empty = all domains.
	Domain calendar.Domain
	// DayFrom/DayTo limit the day-of-week range, inclusive. 0 = unbounded.
	DayFrom int
	DayTo   int
}

func (c Criteria) matches(slot calendar.Slot) bool {
	if c.Week != 0 && slot.Week != c.Week {
		return false
	}
	if c.Type != "" && slot.Type != c.Type {
		return false
	}
	if c.Domain != "" && slot.Domain != c.Domain {
		return false
	}
	if c.DayFrom != 0 && slot.Day < c.DayFrom {
		return false
	}
	if c.DayTo != 0 && slot.Day > c.DayTo {
		return false
	}
	return true
}

// MetadataSource produces the calendar expansion and per-slot metadata.
// *metadata.Generator is the production implementation.
type MetadataSource interface {
	Plans() ([]calendar.WeekPlan, error)
	GenerateVideoMetadata(calendar.Slot) (*metadata.VideoMetadata, error)
}

// Processor runs the metadata pipeline over the calendar. One processor
// serves one run at a time; results are not shared across runs.
type Processor struct {
	gen    MetadataSource
	logger *zap.Logger
}

// NewProcessor creates a processor around a loaded generator. A nil
// logger disables logging.
func NewProcessor(gen MetadataSource, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{gen: gen, logger: logger}
}

// ProcessAll generates metadata for every slot of the 13-week calendar
// and aggregates summaries and consolidated playlists.
func (p *Processor) ProcessAll(ctx context.Context) (*Result, error) {
	return p.process(ctx, Criteria{})
}

// Process generates metadata for the slots matching the criteria and
// aggregates summaries and playlists over the matched set. A zero
// Criteria processes the whole calendar.
func (p *Processor) Process(ctx context.Context, c Criteria) (*Result, error) {
	return p.process(ctx, c)
}

// ProcessByCriteria generates metadata for the slots matching the
// criteria, in week-ascending then day-ascending order. It is a pure
// filter over the full expansion: filtering never changes the relative
// order of surviving slots.
func (p *Processor) ProcessByCriteria(ctx context.Context, c Criteria) ([]*metadata.VideoMetadata, []SlotFailure, error) {
	result, err := p.process(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return result.Videos, result.Failures, nil
}

// process is the single nested week/day loop shared by the entry points.
// Slots are handled strictly one at a time; a per-slot failure is
// recorded and skipped without aborting the batch.
func (p *Processor) process(ctx context.Context, c Criteria) (*Result, error) {
	plans, err := p.gen.Plans()
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Summary:     newSummary(),
	}

	for _, plan := range plans {
		for _, slot := range plan.Slots {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !c.matches(slot) {
				continue
			}

			m, err := p.gen.GenerateVideoMetadata(slot)
			if err != nil {
				p.logger.Warn("slot skipped",
					zap.String("slot", slot.ID),
					zap.String("topic", slot.Topic),
					zap.Error(err))
				result.Failures = append(result.Failures, SlotFailure{
					SlotID: slot.ID,
					Week:   slot.Week,
					Day:    slot.Day,
					Error:  err.Error(),
				})
				continue
			}

			result.Videos = append(result.Videos, m)
			result.Summary.add(m)
		}
	}

	// Playlist consolidation is a second pass over the completed list,
	// never interleaved with generation.
	result.Playlists = consolidatePlaylists(result.Videos)

	p.logger.Info("batch complete",
		zap.String("run_id", result.RunID),
		zap.Int("videos", result.Summary.TotalVideos),
		zap.Int("failures", len(result.Failures)))
	return result, nil
}

// consolidatePlaylists groups videos by their already-computed playlist
// memberships and sorts each playlist's members by order. Every
// membership appears exactly once.
func consolidatePlaylists(videos []*metadata.VideoMetadata) map[string]*PlaylistGroup {
	groups := make(map[string]*PlaylistGroup)
	for _, v := range videos {
		for _, pl := range v.Playlists {
			group, ok := groups[pl.ID]
			if !ok {
				group = &PlaylistGroup{ID: pl.ID, Name: pl.Name}
				groups[pl.ID] = group
			}
			group.Entries = append(group.Entries, PlaylistEntry{
				VideoID: v.Basic.ID,
				Title:   v.Basic.Title,
				Order:   pl.Order,
			})
		}
	}

	for _, group := range groups {
		sort.Slice(group.Entries, func(i, j int) bool {
			return group.Entries[i].Order < group.Entries[j].Order
		})
	}
	return groups
}
