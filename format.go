package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	originStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0B15A"))
	classStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB2E5"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

const emblemMark = "⚡"

// unitsByCost returns the team units sorted by cost, keeping team order on ties.
func unitsByCost(units []Unit) []Unit {
	out := slices.Clone(units)
	slices.SortStableFunc(out, func(a, b Unit) int { return cmp.Compare(a.Cost, b.Cost) })
	return out
}

func formatTraits(traits []ActiveTrait, style lipgloss.Style) string {
	parts := make([]string, 0, len(traits))
	for _, t := range traits {
		s := fmt.Sprintf("%s %d", t.Name, t.Count)
		if t.FromBonus > 0 {
			s += emblemMark
		}
		parts = append(parts, style.Render(s))
	}
	return strings.Join(parts, ", ")
}

// FormatTeam renders one ranked team.
func FormatTeam(rank int, r *TeamResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  score %d  cost %dg  units %d  (tanks %d / carries %d)\n",
		headerStyle.Render(fmt.Sprintf("#%d", rank)), r.Score, r.TotalCost, r.Size, r.TankCount, r.CarryCount)

	names := make([]string, 0, len(r.Units))
	for _, u := range unitsByCost(r.Units) {
		s := fmt.Sprintf("%s(%d)", u.Name, u.Cost)
		if u.UnlockCondition != "" {
			s += "*"
		}
		names = append(names, s)
	}
	fmt.Fprintf(&b, "  units:   %s\n", strings.Join(names, " "))
	if o := r.Origins(); len(o) > 0 {
		fmt.Fprintf(&b, "  origins: %s\n", formatTraits(o, originStyle))
	}
	if c := r.Classes(); len(c) > 0 {
		fmt.Fprintf(&b, "  classes: %s\n", formatTraits(c, classStyle))
	}
	return b.String()
}

// FormatResults renders at most limit teams in the order given, followed by
// a note when more teams were found. limit <= 0 shows everything.
func FormatResults(results []TeamResult, limit int) string {
	if len(results) == 0 {
		return "No valid teams found with the selected criteria. Try adjusting your preferences.\n"
	}
	shown := results
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	var b strings.Builder
	for i := range shown {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTeam(i+1, &shown[i]))
	}
	if len(results) > len(shown) {
		fmt.Fprintf(&b, "\n%s\n", mutedStyle.Render(fmt.Sprintf("Showing top %d of %d results", len(shown), len(results))))
	}
	return b.String()
}
