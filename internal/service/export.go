package service

import (
	"fmt"
	"strings"
)

// PlanText renders the plan as plain text for saving or printing
func PlanText(data *PlanData) string {
	var b strings.Builder
	o := data.Overview

	b.WriteString("FIGHT CAMP PLAN\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	fmt.Fprintf(&b, "Fight date:        %s (%s)\n", o.FightDate, o.FightIn)
	fmt.Fprintf(&b, "Days remaining:    %d\n", o.DaysRemaining)
	fmt.Fprintf(&b, "Camp length:       %d weeks (%d for fat loss)\n", o.CampWeeks, o.LossWeeks)
	fmt.Fprintf(&b, "Current weight:    %s\n", o.CurrentWeight)
	fmt.Fprintf(&b, "Target weight:     %s\n", o.TargetWeight)
	fmt.Fprintf(&b, "Water cut:         %s\n", o.WaterCut)
	fmt.Fprintf(&b, "Fight-week start:  %s\n", o.FightWeekStart)
	fmt.Fprintf(&b, "Fat loss goal:     %s (avg %s/week)\n", o.FatLossGoal, o.AvgWeeklyLoss)
	fmt.Fprintf(&b, "Training load:     %s\n", o.Training)
	fmt.Fprintf(&b, "Distribution:      %s\n", o.Distribution)
	fmt.Fprintf(&b, "Camp price:        £%d\n", o.PriceGBP)

	b.WriteString("\nWEEKLY TARGETS (daily)\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "%-8s %8s %9s %11s %8s %6s %6s\n",
		"", data.WeightLabel, "Loss", "Calories", "Protein", "Fat", "Carbs")
	for _, w := range data.Weeks {
		marker := ""
		switch {
		case w.Checklist:
			marker = " *fight week, follow the checklist"
		case w.FightWeek:
			marker = " *fight week"
		case w.Clamped:
			marker = " !BMR"
		}
		fmt.Fprintf(&b, "%-8s %8s %9s %11s %8s %6s %6s%s\n",
			w.Label, w.Weight, w.Loss, w.Calories, w.Protein, w.Fat, w.Carbs, marker)
	}
	fmt.Fprintf(&b, "Fibre %s/day, salt %s/day every week\n", data.DailyFibre, data.DailySalt)

	b.WriteString("\nFIGHT WEEK\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, d := range data.FightWeek {
		label := d.Label
		if d.Today {
			label += " (today)"
		}
		fmt.Fprintf(&b, "%s\n", label)
		fmt.Fprintf(&b, "  Carbs: %s\n  Fibre: %s\n  Salt:  %s\n  Water: %s\n", d.Carbs, d.Fibre, d.Salt, d.Water)
		fmt.Fprintf(&b, "  Why:   %s\n", d.Why)
	}

	writeList(&b, "AFTER WEIGH-IN", data.Rehydration)
	writeList(&b, "SUPPLEMENTS", data.Supplements)
	writeList(&b, "WARNINGS", data.Warnings)

	if data.Disclaimer != "" {
		fmt.Fprintf(&b, "\n%s\n", data.Disclaimer)
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
