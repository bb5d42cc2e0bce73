// Package calendar defines the static 13-week PMP study-plan calendar and
// its deterministic expansion into 91 video slots.
package calendar

import "fmt"

// Domain is a top-level certification exam content area.
type Domain string

// Exam domains plus the catch-all values used for non-domain weeks.
const (
	DomainPeople       Domain = "People"
	DomainProcess      Domain = "Process"
	DomainBusiness     Domain = "Business Environment"
	DomainMixed        Domain = "Mixed"
	DomainIntroduction Domain = "Introduction"
)

// Color is a thumbnail color family assigned per week.
type Color string

const (
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
)

// SlotType classifies a video slot by its day within the week.
type SlotType string

const (
	TypeOverview   SlotType = "overview"
	TypeDailyStudy SlotType = "daily-study"
	TypePractice   SlotType = "practice"
	TypeReview     SlotType = "review"
)

// Calendar shape constants.
const (
	NumWeeks    = 13
	DaysPerWeek = 7
	NumSlots    = NumWeeks * DaysPerWeek
)

// WeekDefinition describes one week of the study plan. Instances are
// read-only after construction; every week 1..13 maps to exactly one.
type WeekDefinition struct {
	Week      int    `json:"week"`
	WorkGroup string `json:"work_group"`
	Domain    Domain `json:"domain"`
	Color     Color  `json:"color"`
	Theme     string `json:"theme"`
}

// WorkGroup is a named range of consecutive weeks sharing a thematic focus.
// The configured ranges partition weeks 1..13 with no gaps or overlaps.
type WorkGroup struct {
	Name      string `json:"name"`
	FirstWeek int    `json:"first_week"`
	LastWeek  int    `json:"last_week"`
}

// Slot is one of the 91 fixed (week, day) video positions.
type Slot struct {
	// ID is the stable slot identifier, formatted "w%02d_d%d".
	ID string `json:"id"`
	// Week is the calendar week, 1..13.
	Week int `json:"week"`
	// Day is the day within the week, 1..7.
	Day int `json:"day"`
	// DayNumber is the global chronological position, 1..91.
	DayNumber int `json:"day_number"`
	// Type is derived purely from Day.
	Type SlotType `json:"type"`
	// Topic is the slot's subject line, derived from the week theme.
	Topic string `json:"topic"`
	// DurationMinutes is the planned video length for this slot type.
	DurationMinutes int `json:"duration_minutes"`

	// Inherited from the week definition.
	WorkGroup string `json:"work_group"`
	Domain    Domain `json:"domain"`
	Color     Color  `json:"color"`
	Theme     string `json:"theme"`
}

// WeekPlan pairs a week definition with its seven expanded slots.
type WeekPlan struct {
	Definition WeekDefinition `json:"definition"`
	Slots      []Slot         `json:"slots"`
}

// workGroups lists the configured week ranges in scan order.
var workGroups = []WorkGroup{
	{Name: "Building Team", FirstWeek: 1, LastWeek: 3},
	{Name: "Starting Project", FirstWeek: 4, LastWeek: 5},
	{Name: "Doing the Work", FirstWeek: 6, LastWeek: 8},
	{Name: "Keeping on Track", FirstWeek: 9, LastWeek: 10},
	{Name: "Business Focus", FirstWeek: 11, LastWeek: 11},
	{Name: "Final Prep", FirstWeek: 12, LastWeek: 13},
}

// weekTable is the built-in week definition table. WorkGroup fields are
// filled from workGroups at init so the two tables cannot drift.
var weekTable = []WeekDefinition{
	{Week: 1, Domain: DomainIntroduction, Color: ColorGreen, Theme: "PMP Exam Foundations"},
	{Week: 2, Domain: DomainPeople, Color: ColorGreen, Theme: "Building High-Performing Teams"},
	{Week: 3, Domain: DomainPeople, Color: ColorGreen, Theme: "Leading and Supporting the Team"},
	{Week: 4, Domain: DomainProcess, Color: ColorBlue, Theme: "Starting the Project Right"},
	{Week: 5, Domain: DomainProcess, Color: ColorBlue, Theme: "Planning and Integration"},
	{Week: 6, Domain: DomainProcess, Color: ColorOrange, Theme: "Executing the Project Work"},
	{Week: 7, Domain: DomainProcess, Color: ColorOrange, Theme: "Managing Schedule and Cost"},
	{Week: 8, Domain: DomainProcess, Color: ColorOrange, Theme: "Quality and Delivery"},
	{Week: 9, Domain: DomainProcess, Color: ColorPurple, Theme: "Monitoring and Controlling"},
	{Week: 10, Domain: DomainProcess, Color: ColorPurple, Theme: "Risk and Issue Management"},
	{Week: 11, Domain: DomainBusiness, Color: ColorBlue, Theme: "Business Environment and Strategy"},
	{Week: 12, Domain: DomainMixed, Color: ColorGreen, Theme: "Cross-Domain Review"},
	{Week: 13, Domain: DomainMixed, Color: ColorPurple, Theme: "Final Exam Preparation"},
}

// slotDurations is the planned length per slot type, in minutes.
var slotDurations = map[SlotType]int{
	TypeOverview:   15,
	TypeDailyStudy: 20,
	TypePractice:   30,
	TypeReview:     25,
}

func init() {
	for i := range weekTable {
		if wg, ok := WorkGroupForWeek(weekTable[i].Week); ok {
			weekTable[i].WorkGroup = wg.Name
		}
	}
}

// WorkGroups returns the configured work groups in scan order.
func WorkGroups() []WorkGroup {
	out := make([]WorkGroup, len(workGroups))
	copy(out, workGroups)
	return out
}

// WorkGroupForWeek returns the first configured work group whose range
// contains week. The boolean is false when no range matches; callers must
// handle the miss rather than receive a placeholder group.
func WorkGroupForWeek(week int) (WorkGroup, bool) {
	for _, wg := range workGroups {
		if week >= wg.FirstWeek && week <= wg.LastWeek {
			return wg, true
		}
	}
	return WorkGroup{}, false
}

// WeekForNumber returns the definition for the given week number.
func WeekForNumber(week int) (WeekDefinition, bool) {
	if week < 1 || week > NumWeeks {
		return WeekDefinition{}, false
	}
	return weekTable[week-1], true
}

// TypeForDay maps a day 1..7 to its slot type. Day 1 is the week overview,
// days 2-5 are daily study sessions, day 6 is practice, day 7 is review.
func TypeForDay(day int) (SlotType, bool) {
	switch {
	case day == 1:
		return TypeOverview, true
	case day >= 2 && day <= 5:
		return TypeDailyStudy, true
	case day == 6:
		return TypePractice, true
	case day == 7:
		return TypeReview, true
	}
	return "", false
}

// DurationForType returns the planned duration in minutes for a slot type.
func DurationForType(t SlotType) int {
	return slotDurations[t]
}

// SlotID formats the stable slot identifier for a (week, day) pair.
func SlotID(week, day int) string {
	return fmt.Sprintf("w%02d_d%d", week, day)
}

// slotTopic derives the subject line for one slot from its week theme.
func slotTopic(def WeekDefinition, day int, t SlotType) string {
	switch t {
	case TypeOverview:
		return def.Theme
	case TypePractice:
		return def.Theme + " Practice Questions"
	case TypeReview:
		return def.Theme + " Review"
	default:
		// Daily-study days 2-5 become sessions 1-4.
		return fmt.Sprintf("%s Part %d", def.Theme, day-1)
	}
}

// Expand deterministically expands the week table into 13*7 = 91 slots,
// ordered week ascending then day ascending. It performs no I/O and has no
// failure mode.
func Expand() []WeekPlan {
	plans := make([]WeekPlan, 0, NumWeeks)
	for _, def := range weekTable {
		plan := WeekPlan{Definition: def, Slots: make([]Slot, 0, DaysPerWeek)}
		for day := 1; day <= DaysPerWeek; day++ {
			t, _ := TypeForDay(day)
			plan.Slots = append(plan.Slots, Slot{
				ID:              SlotID(def.Week, day),
				Week:            def.Week,
				Day:             day,
				DayNumber:       (def.Week-1)*DaysPerWeek + day,
				Type:            t,
				Topic:           slotTopic(def, day, t),
				DurationMinutes: slotDurations[t],
				WorkGroup:       def.WorkGroup,
				Domain:          def.Domain,
				Color:           def.Color,
				Theme:           def.Theme,
			})
		}
		plans = append(plans, plan)
	}
	return plans
}

// ExpandSlots flattens Expand into a single ordered slot list.
func ExpandSlots() []Slot {
	slots := make([]Slot, 0, NumSlots)
	for _, plan := range Expand() {
		slots = append(slots, plan.Slots...)
	}
	return slots
}
