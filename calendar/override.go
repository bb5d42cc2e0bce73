package calendar

import (
	"encoding/json"
	"fmt"
	"os"
)

// WeekOverride adjusts one built-in week definition. Zero-valued fields
// leave the built-in value in place.
type WeekOverride struct {
	Week   int    `json:"week"`
	Theme  string `json:"theme,omitempty"`
	Domain Domain `json:"domain,omitempty"`
	Color  Color  `json:"color,omitempty"`
	// Topics replaces the derived per-day topics; keys are days "1".."7".
	Topics map[string]string `json:"topics,omitempty"`
}

// Overrides is the content-calendar input file: optional per-week
// adjustments merged over the built-in table.
type Overrides struct {
	Weeks []WeekOverride `json:"weeks"`
}

// LoadOverrides reads a content-calendar JSON file. A missing file is not
// an error and yields nil overrides; a malformed file is a configuration
// error.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read calendar overrides: %w", err)
	}

	var ov Overrides
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, w := range ov.Weeks {
		if w.Week < 1 || w.Week > NumWeeks {
			return nil, fmt.Errorf("calendar overrides: week %d out of range 1..%d", w.Week, NumWeeks)
		}
	}
	return &ov, nil
}

// ExpandWith expands the calendar with overrides merged over the built-in
// week table. A nil override set behaves exactly like Expand.
func ExpandWith(ov *Overrides) []WeekPlan {
	plans := Expand()
	if ov == nil {
		return plans
	}

	byWeek := make(map[int]WeekOverride, len(ov.Weeks))
	for _, w := range ov.Weeks {
		byWeek[w.Week] = w
	}

	for i := range plans {
		w, ok := byWeek[plans[i].Definition.Week]
		if !ok {
			continue
		}
		def := &plans[i].Definition
		if w.Theme != "" {
			def.Theme = w.Theme
		}
		if w.Domain != "" {
			def.Domain = w.Domain
		}
		if w.Color != "" {
			def.Color = w.Color
		}
		for j := range plans[i].Slots {
			s := &plans[i].Slots[j]
			s.Theme = def.Theme
			s.Domain = def.Domain
			s.Color = def.Color
			if topic, ok := w.Topics[fmt.Sprintf("%d", s.Day)]; ok && topic != "" {
				s.Topic = topic
			} else if w.Theme != "" {
				s.Topic = slotTopic(*def, s.Day, s.Type)
			}
		}
	}
	return plans
}
