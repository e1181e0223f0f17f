package productivity

import (
	"fmt"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

const uncategorized = "Uncategorized"

type Counts struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Counts
}

type WeekStat struct {
	Week string `json:"week"`
	Counts
}

type Report struct {
	Window         domain.TimeWindow `json:"window"`
	Total          int               `json:"total"`
	Done           int               `json:"done"`
	Untimed        int               `json:"untimed"`
	CompletionRate float64           `json:"completion_rate"`
	Categories     []CategoryStat    `json:"categories"`
	Weeks          []WeekStat        `json:"weeks"`
}

// Build summarizes completion over window. Timed items outside the window
// are skipped. Untimed items count toward totals and categories but belong
// to no week.
func Build(items []domain.Item, window domain.TimeWindow, loc *time.Location) Report {
	if loc == nil {
		loc = time.UTC
	}

	report := Report{
		Window:     window,
		Categories: []CategoryStat{},
		Weeks:      []WeekStat{},
	}

	categoryIndex := make(map[string]int)
	weeks := make(map[string]*Counts)

	for _, item := range items {
		instant, timed := item.PrimaryInstant()
		if timed && !window.Contains(instant) {
			continue
		}

		done := item.Status == domain.StatusDone

		report.Total++
		if done {
			report.Done++
		}
		if !timed {
			report.Untimed++
		}

		category := item.Category
		if category == "" {
			category = uncategorized
		}
		idx, seen := categoryIndex[category]
		if !seen {
			idx = len(report.Categories)
			categoryIndex[category] = idx
			report.Categories = append(report.Categories, CategoryStat{Category: category})
		}
		report.Categories[idx].add(done)

		if timed {
			key := WeekKey(instant.In(loc))
			c, ok := weeks[key]
			if !ok {
				c = &Counts{}
				weeks[key] = c
			}
			c.add(done)
		}
	}

	if report.Total > 0 {
		report.CompletionRate = float64(report.Done) / float64(report.Total)
	}

	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		report.Weeks = append(report.Weeks, WeekStat{Week: k, Counts: *weeks[k]})
	}

	return report
}

func (c *Counts) add(done bool) {
	c.Total++
	if done {
		c.Done++
	}
}

// WeekKey formats the ISO week of t as 2006-W02.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
