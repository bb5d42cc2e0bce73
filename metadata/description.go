package metadata

import (
	"fmt"
	"strings"

	"pmpcal/calendar"
)

// hookLine builds the opening paragraph of a description. This is the
// snippet YouTube shows in search results, so it carries the primary
// keyword and the week/day framing.
func hookLine(slot calendar.Slot, primary string) string {
	switch slot.Type {
	case calendar.TypeOverview:
		return fmt.Sprintf("Week %d of your %s study plan starts here: %s. This overview maps out every session this week so you know exactly what to study and when.",
			slot.Week, primary, slot.Theme)
	case calendar.TypePractice:
		return fmt.Sprintf("Test yourself on %s with today's %s practice questions for week %d. Work each question before the walkthrough and track your score.",
			slot.Theme, primary, slot.Week)
	case calendar.TypeReview:
		return fmt.Sprintf("Week %d wrap-up: the key %s takeaways from %s in one focused review session before you move on.",
			slot.Week, primary, slot.Theme)
	default:
		return fmt.Sprintf("Day %d of week %d in your %s study plan: %s. A focused %d-minute session you can finish before work.",
			slot.Day, slot.Week, primary, slot.Topic, slot.DurationMinutes)
	}
}

// objectives lists the learning objectives section for a slot.
func objectives(slot calendar.Slot) []string {
	switch slot.Type {
	case calendar.TypeOverview:
		return []string{
			fmt.Sprintf("Understand what week %d (%s) covers", slot.Week, slot.Theme),
			"Plan your daily study sessions for the week",
			fmt.Sprintf("Connect this week to the %s domain", slot.Domain),
		}
	case calendar.TypePractice:
		return []string{
			fmt.Sprintf("Apply %s concepts to exam-style questions", slot.Theme),
			"Practice eliminating distractor answers",
			"Identify weak areas to revisit before the review",
		}
	case calendar.TypeReview:
		return []string{
			fmt.Sprintf("Consolidate the core ideas from %s", slot.Theme),
			"Recall the ECO tasks covered this week",
			fmt.Sprintf("Prepare for week %d", slot.Week+1),
		}
	default:
		return []string{
			fmt.Sprintf("Master %s", slot.Topic),
			"Learn how the exam tests this concept",
			"Add key terms to your study notes",
		}
	}
}

// timestampSkeleton is the chapter placeholder block creators fill in
// after editing. The 0:00 line is required for YouTube to pick chapters up.
func timestampSkeleton(slot calendar.Slot) string {
	var b strings.Builder
	b.WriteString("⏱️ Timestamps:\n")
	b.WriteString("0:00 Introduction\n")
	switch slot.Type {
	case calendar.TypeOverview:
		b.WriteString("1:30 This Week at a Glance\n")
		b.WriteString("5:00 Daily Session Breakdown\n")
		b.WriteString("10:00 How to Use the Study Plan\n")
	case calendar.TypePractice:
		b.WriteString("1:00 Question Set\n")
		b.WriteString("12:00 Answer Walkthrough\n")
		b.WriteString("25:00 Scoring and Next Steps\n")
	case calendar.TypeReview:
		b.WriteString("1:00 Key Takeaways\n")
		b.WriteString("10:00 Common Mistakes\n")
		b.WriteString("18:00 Preview of Next Week\n")
	default:
		b.WriteString("1:00 Core Concept\n")
		b.WriteString("8:00 Exam Application\n")
		b.WriteString("15:00 Recap and Homework\n")
	}
	return b.String()
}

// BuildDescription concatenates the fixed description sections: hook,
// learning objectives, ECO task list, timestamp skeleton, resource links,
// and hashtags. Pure string building over the slot's fields.
func BuildDescription(slot calendar.Slot, ch *Channel, primary string, tasks []ECOTask) string {
	var b strings.Builder

	b.WriteString(hookLine(slot, primary))
	b.WriteString("\n\n")

	b.WriteString("🎯 In this video you will:\n")
	for _, obj := range objectives(slot) {
		fmt.Fprintf(&b, "• %s\n", obj)
	}
	b.WriteString("\n")

	if len(tasks) > 0 {
		b.WriteString("📋 ECO tasks covered this week:\n")
		for _, task := range tasks {
			fmt.Fprintf(&b, "• Task %s — %s\n", task.Code, task.Name)
		}
		b.WriteString("\n")
	}

	b.WriteString(timestampSkeleton(slot))
	b.WriteString("\n")

	b.WriteString("🔗 Resources:\n")
	fmt.Fprintf(&b, "Full course: %s\n", ch.CourseURL)
	fmt.Fprintf(&b, "Study community: %s\n", ch.CommunityURL)
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n\n", ch.CallToAction)
	b.WriteString(strings.Join(ch.Hashtags, " "))
	b.WriteString("\n")

	return b.String()
}
