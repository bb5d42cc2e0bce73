package batch

import (
	"time"

	"pmpcal/calendar"
	"pmpcal/metadata"
)

// Summary holds the simple counters aggregated over one run.
type Summary struct {
	TotalVideos int                       `json:"total_videos"`
	ByType      map[calendar.SlotType]int `json:"by_type"`
	ByDomain    map[calendar.Domain]int   `json:"by_domain"`
	ByWeek      map[int]int               `json:"by_week"`
}

func newSummary() Summary {
	return Summary{
		ByType:   make(map[calendar.SlotType]int),
		ByDomain: make(map[calendar.Domain]int),
		ByWeek:   make(map[int]int),
	}
}

func (s *Summary) add(m *metadata.VideoMetadata) {
	s.TotalVideos++
	s.ByType[m.Basic.Type]++
	s.ByDomain[m.Basic.Domain]++
	s.ByWeek[m.Basic.Week]++
}

// PlaylistEntry is one video's position inside a consolidated playlist.
type PlaylistEntry struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Order   int    `json:"order"`
}

// PlaylistGroup is one consolidated playlist with its ordered members.
type PlaylistGroup struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Entries []PlaylistEntry `json:"entries"`
}

// SlotFailure records a per-slot generation failure. Failed slots are
// skipped, not retried; siblings are unaffected.
type SlotFailure struct {
	SlotID string `json:"slot_id"`
	Week   int    `json:"week"`
	Day    int    `json:"day"`
	Error  string `json:"error"`
}

// Result aggregates everything produced by one batch run. It is owned by
// the processor for the duration of the run and never shared across runs.
type Result struct {
	RunID       string                    `json:"run_id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Videos      []*metadata.VideoMetadata `json:"videos"`
	Summary     Summary                   `json:"summary"`
	Playlists   map[string]*PlaylistGroup `json:"consolidated_playlists"`
	Failures    []SlotFailure             `json:"failures,omitempty"`
}
