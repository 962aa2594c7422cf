// Package analytics computes food waste reports from disposed inventory.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

// Reporting periods.
const (
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodCustom = "custom"
)

// DateLayout is the calendar-date format for custom period bounds.
const DateLayout = "2006-01-02"

// WastedItem aggregates disposals of the same item name.
type WastedItem struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// Report is the waste analysis for one period. Items count toward a period by
// when they were added (TotalItemsAdded) or when they were disposed (all other
// figures). ItemsThrown includes disposals with an unknown reason, but only
// expired and thrown-away costs count as waste.
type Report struct {
	Period           string             `json:"period"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          time.Time          `json:"end_date"`
	TotalItemsAdded  int                `json:"total_items_added"`
	ItemsUsed        int                `json:"items_used"`
	ItemsExpired     int                `json:"items_expired"`
	ItemsThrown      int                `json:"items_thrown"`
	EstimatedSavings float64            `json:"estimated_savings"`
	EstimatedWaste   float64            `json:"estimated_waste"`
	WasteByCategory  map[string]float64 `json:"waste_by_category"`
	TopWastedItems   []WastedItem       `json:"top_wasted_items"`
	WastePercentage  float64            `json:"waste_percentage"`
	EfficiencyScore  int                `json:"efficiency_score"`

	// HasData distinguishes a genuinely perfect score from one computed over
	// a period with no disposals at all.
	HasData bool `json:"has_data"`
}

// CategoryShare is one slice of the waste-by-category breakdown.
type CategoryShare struct {
	Category   string  `json:"category"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Calculate builds the waste report for the given period. For PeriodCustom
// both bounds must be calendar dates; the end date is included in full.
// Unknown periods fall back to the current month.
func Calculate(items []model.Item, period, customStart, customEnd string, now time.Time) (*Report, error) {
	var start, end time.Time

	switch period {
	case PeriodWeek:
		start, end = weekBounds(now)
	case PeriodCustom:
		var err error
		start, err = time.ParseInLocation(DateLayout, customStart, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", customStart, err)
		}
		end, err = time.ParseInLocation(DateLayout, customEnd, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", customEnd, err)
		}
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		if end.Before(start) {
			return nil, fmt.Errorf("end date %q before start date %q", customEnd, customStart)
		}
	default:
		period = PeriodMonth
		start, end = monthBounds(now)
	}

	report := reportFor(items, start, end)
	report.Period = period
	return report, nil
}

// History returns one monthly report per month, oldest first, ending with the
// month containing now.
func History(items []model.Item, months int, now time.Time) []*Report {
	reports := make([]*Report, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		start, end := monthBounds(month)
		report := reportFor(items, start, end)
		report.Period = PeriodMonth
		reports = append(reports, report)
	}
	return reports
}

// Breakdown splits the report's wasted cost by category, largest first.
// Returns nil when nothing was wasted.
func Breakdown(report *Report) []CategoryShare {
	var total float64
	for _, value := range report.WasteByCategory {
		total += value
	}
	if total == 0 {
		return nil
	}

	shares := make([]CategoryShare, 0, len(report.WasteByCategory))
	for category, value := range report.WasteByCategory {
		shares = append(shares, CategoryShare{
			Category:   category,
			Value:      value,
			Percentage: value / total * 100,
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Value != shares[j].Value {
			return shares[i].Value > shares[j].Value
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

func reportFor(items []model.Item, start, end time.Time) *Report {
	report := &Report{
		StartDate:       start,
		EndDate:         end,
		WasteByCategory: make(map[string]float64),
	}

	within := func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}

	wasted := make(map[string]*WastedItem)
	for _, item := range items {
		if within(item.CreatedAt) {
			report.TotalItemsAdded++
		}
		if item.GoneAt == nil || !within(*item.GoneAt) {
			continue
		}

		switch item.DisposalReason {
		case model.DisposalUsed:
			report.ItemsUsed++
			report.EstimatedSavings += item.ApproximateCost
		case model.DisposalExpired:
			report.ItemsExpired++
		case model.DisposalThrownAway, model.DisposalUnknown:
			report.ItemsThrown++
		}

		// Unknown disposals count as thrown above but carry no cost here.
		if item.DisposalReason == model.DisposalExpired || item.DisposalReason == model.DisposalThrownAway {
			report.EstimatedWaste += item.ApproximateCost

			category := item.Category
			if category == "" {
				category = "Uncategorized"
			}
			report.WasteByCategory[category] += item.ApproximateCost

			entry := wasted[item.Name]
			if entry == nil {
				entry = &WastedItem{Name: item.Name}
				wasted[item.Name] = entry
			}
			entry.Count++
			entry.Value += item.ApproximateCost
		}
	}

	top := make([]WastedItem, 0, len(wasted))
	for _, entry := range wasted {
		top = append(top, *entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Value != top[j].Value {
			return top[i].Value > top[j].Value
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > 5 {
		top = top[:5]
	}
	report.TopWastedItems = top

	totalDisposed := report.ItemsUsed + report.ItemsExpired + report.ItemsThrown
	report.HasData = totalDisposed > 0
	if totalDisposed > 0 {
		report.WastePercentage = float64(report.ItemsExpired+report.ItemsThrown) / float64(totalDisposed) * 100
		wasteScore := math.Max(0, 60-report.WastePercentage*0.6)
		usageScore := float64(report.ItemsUsed) / float64(totalDisposed) * 40
		report.EfficiencyScore = int(math.Round(wasteScore + usageScore))
	} else {
		report.EfficiencyScore = 100
	}

	return report
}

// weekBounds returns the Sunday-to-Saturday week containing now.
func weekBounds(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

func monthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
