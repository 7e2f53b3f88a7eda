package assistant

import (
	"fmt"
	"strings"

	"wastetracker/internal/model"
	"wastetracker/internal/stats"
)

const systemPrompt = `You are a food waste expert assistant.
You have access to the user's food waste tracking data.
Give helpful, concise answers about reducing food waste, understanding waste patterns and adopting sustainable practices.`

// buildPrompt prefixes the question with statistics over entries and the
// recent entries, newest first.
func buildPrompt(message string, entries, recent []model.WasteEntry) string {
	var b strings.Builder
	if len(entries) > 0 {
		s := stats.Summarize(entries)
		b.WriteString("Current Food Waste Statistics:\n")
		fmt.Fprintf(&b, "- Total Waste: %.2f kg\n", s.TotalKg)
		fmt.Fprintf(&b, "- Average Daily Waste: %.2f kg\n", s.AvgDailyKg)
		fmt.Fprintf(&b, "- Most Wasted Category: %s\n", s.MostWastedCategory)

		if len(recent) > 0 {
			b.WriteString("\nMost Recent Entries:\n")
			for _, e := range recent {
				fmt.Fprintf(&b, "- %s (%s): %g %s on %s\n", e.FoodItem, e.Category, e.Quantity, e.Unit, e.Date)
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User question: %s", message)
	return b.String()
}
