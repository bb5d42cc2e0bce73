package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pmpcal/calendar"
)

// MaxTags is YouTube's practical tag-count cap, enforced at generation and
// re-validated by the upload exporter.
const MaxTags = 15

// ECOTask is one Examination Content Outline task attached to a week. The
// code is an opaque tag from the exam blueprint, not interpreted.
type ECOTask struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// KeywordDatabase is the keyword input file: a primary keyword, base
// keywords, and per-content-type / per-domain lists, plus the ECO tasks
// covered by each week.
type KeywordDatabase struct {
	Primary  string                       `json:"primary"`
	Base     []string                     `json:"base"`
	ByType   map[calendar.SlotType][]string `json:"by_type"`
	ByDomain map[calendar.Domain][]string   `json:"by_domain"`
	// ECOTasks maps week numbers (as JSON object keys, "1".."13") to the
	// tasks covered that week.
	ECOTasks map[string][]ECOTask `json:"eco_tasks"`
}

// DefaultKeywordDatabase returns the built-in keyword tables used when no
// keyword file is supplied.
func DefaultKeywordDatabase() *KeywordDatabase {
	return &KeywordDatabase{
		Primary: "PMP Exam",
		Base:    []string{"PMP", "PMP exam prep", "project management", "PMP certification", "PMBOK"},
		ByType: map[calendar.SlotType][]string{
			calendar.TypeOverview:   {"study plan", "weekly overview", "PMP study schedule"},
			calendar.TypeDailyStudy: {"PMP study session", "exam concepts", "PMP training"},
			calendar.TypePractice:   {"PMP practice questions", "exam questions", "PMP quiz"},
			calendar.TypeReview:     {"PMP review", "exam recap", "key takeaways"},
		},
		ByDomain: map[calendar.Domain][]string{
			calendar.DomainPeople:       {"leadership", "team management", "conflict resolution"},
			calendar.DomainProcess:      {"project lifecycle", "planning", "risk management"},
			calendar.DomainBusiness:     {"business environment", "organizational strategy", "compliance"},
			calendar.DomainMixed:        {"exam review", "mixed domains"},
			calendar.DomainIntroduction: {"getting started", "exam overview"},
		},
		ECOTasks: map[string][]ECOTask{
			"1":  {{Code: "1.1", Name: "Manage conflict"}, {Code: "1.2", Name: "Lead a team"}},
			"2":  {{Code: "1.2", Name: "Lead a team"}, {Code: "1.3", Name: "Support team performance"}},
			"3":  {{Code: "1.4", Name: "Empower team members and stakeholders"}, {Code: "1.6", Name: "Build a team"}},
			"4":  {{Code: "2.1", Name: "Execute project with urgency"}, {Code: "2.2", Name: "Manage communications"}},
			"5":  {{Code: "2.4", Name: "Engage stakeholders"}, {Code: "2.9", Name: "Integrate project planning activities"}},
			"6":  {{Code: "2.1", Name: "Execute project with urgency"}, {Code: "2.6", Name: "Plan and manage schedule"}},
			"7":  {{Code: "2.5", Name: "Plan and manage budget and resources"}, {Code: "2.6", Name: "Plan and manage schedule"}},
			"8":  {{Code: "2.7", Name: "Plan and manage quality"}, {Code: "2.8", Name: "Plan and manage scope"}},
			"9":  {{Code: "2.10", Name: "Manage project changes"}, {Code: "2.12", Name: "Manage project artifacts"}},
			"10": {{Code: "2.3", Name: "Assess and manage risks"}, {Code: "2.15", Name: "Manage project issues"}},
			"11": {{Code: "3.1", Name: "Plan and manage project compliance"}, {Code: "3.2", Name: "Evaluate and deliver project benefits"}},
			"12": {{Code: "3.3", Name: "Evaluate external business environment changes"}, {Code: "1.1", Name: "Manage conflict"}},
			"13": {{Code: "3.4", Name: "Support organizational change"}, {Code: "2.16", Name: "Ensure knowledge transfer"}},
		},
	}
}

// LoadKeywordDatabase reads the keyword JSON file. A missing file falls
// back to the built-in defaults; a malformed file is a configuration
// error.
func LoadKeywordDatabase(path string) (*KeywordDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultKeywordDatabase(), nil
		}
		return nil, fmt.Errorf("read keyword database: %w", err)
	}

	db := DefaultKeywordDatabase()
	if err := json.Unmarshal(data, db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if db.Primary == "" {
		db.Primary = "PMP Exam"
	}
	return db, nil
}

// TasksForWeek returns the ECO tasks covered by the given week.
func (db *KeywordDatabase) TasksForWeek(week int) []ECOTask {
	return db.ECOTasks[strconv.Itoa(week)]
}

// TagsForSlot merges the five keyword categories in fixed order (base,
// content-type, domain, weekly theme, ECO-task-derived), deduplicates
// case-insensitively preserving first occurrence, and caps the result at
// MaxTags. Category order is what makes the output reproducible; this is
// concatenation-then-slice, not a ranked selection.
func (db *KeywordDatabase) TagsForSlot(slot calendar.Slot) []string {
	merged := make([]string, 0, 4*MaxTags)
	merged = append(merged, db.Base...)
	merged = append(merged, db.ByType[slot.Type]...)
	merged = append(merged, db.ByDomain[slot.Domain]...)
	merged = append(merged, slot.Theme, slot.WorkGroup)
	for _, task := range db.TasksForWeek(slot.Week) {
		merged = append(merged, task.Name)
	}

	seen := make(map[string]bool, len(merged))
	tags := make([]string, 0, MaxTags)
	for _, tag := range merged {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}
