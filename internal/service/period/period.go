package period

import (
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
	"github.com/KasumiMercury/primind-focus-assistant/internal/service/coach"
)

const (
	// RiskHorizon is how far ahead an unstarted item counts as at risk.
	RiskHorizon = 48 * time.Hour

	UnassignedAlignment = "Unassigned"
)

type AlignmentCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Report struct {
	HighPriority   []string         `json:"high_priority"`
	StrategicWins  []string         `json:"strategic_wins"`
	RiskWatch      []string         `json:"risk_watch"`
	AlignmentCheck []AlignmentCount `json:"alignment_check"`
}

// Build buckets items in input order. No section is re-sorted.
func Build(items []domain.Item, now time.Time, formatter *coach.Formatter) Report {
	report := Report{
		HighPriority:   []string{},
		StrategicWins:  []string{},
		RiskWatch:      []string{},
		AlignmentCheck: []AlignmentCount{},
	}

	horizon := now.Add(RiskHorizon)
	alignmentIndex := make(map[string]int)

	for _, item := range items {
		line := formatter.FormatItemLine(item)

		if item.Priority == domain.PriorityHigh {
			report.HighPriority = append(report.HighPriority, line)
		} else {
			report.StrategicWins = append(report.StrategicWins, line)
		}

		if item.Status == domain.StatusNotStarted {
			if instant, ok := item.PrimaryInstant(); ok && instant.Before(horizon) {
				report.RiskWatch = append(report.RiskWatch, line)
			}
		}

		label := item.Alignment
		if label == "" {
			label = UnassignedAlignment
		}
		if idx, seen := alignmentIndex[label]; seen {
			report.AlignmentCheck[idx].Count++
		} else {
			alignmentIndex[label] = len(report.AlignmentCheck)
			report.AlignmentCheck = append(report.AlignmentCheck, AlignmentCount{Label: label, Count: 1})
		}
	}

	return report
}
