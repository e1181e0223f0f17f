package window

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

const localLayout = "2006-01-02T15:04:05"

var (
	usDatePattern  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	clockPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// CivilDate is a calendar date without a zone.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Calculator computes UTC windows for civil dates in a fixed zone.
type Calculator struct {
	loc *time.Location
}

func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	return &Calculator{loc: loc}
}

func (c *Calculator) Location() *time.Location {
	return c.loc
}

// TodayWindow returns the local day containing ref, 00:00:00 through
// 23:59:59, expressed in UTC. The zone offset is measured once at ref and
// applied to both bounds, so on a DST transition day the window is offset
// by the transition amount.
func (c *Calculator) TodayWindow(ref time.Time) (domain.TimeWindow, CivilDate) {
	date, offset := c.civilDate(ref)

	start := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC).Add(-offset)
	end := time.Date(date.Year, date.Month, date.Day, 23, 59, 59, 0, time.UTC).Add(-offset)

	return domain.NewTimeWindow(start, end), date
}

// Next7DaysWindow runs from ref to 23:59:59 local time seven days after
// ref's civil date.
func (c *Calculator) Next7DaysWindow(ref time.Time) domain.TimeWindow {
	date, offset := c.civilDate(ref)

	end := time.Date(date.Year, date.Month, date.Day+7, 23, 59, 59, 0, time.UTC).Add(-offset)

	return domain.NewTimeWindow(ref, end)
}

func (c *Calculator) civilDate(ref time.Time) (CivilDate, time.Duration) {
	local := ref.In(c.loc)
	_, offsetSeconds := local.Zone()
	y, m, d := local.Date()

	return CivilDate{Year: y, Month: m, Day: d}, time.Duration(offsetSeconds) * time.Second
}

// ParseFlexibleLocalDateTime accepts MM/DD/YYYY or YYYY-MM-DD and an
// optional 24-hour HH:MM, and returns YYYY-MM-DDTHH:MM:SS with no zone.
func ParseFlexibleLocalDateTime(dateText, timeText string) (string, error) {
	date, err := parseDate(strings.TrimSpace(dateText))
	if err != nil {
		return "", err
	}

	hour, minute := 0, 0
	if clock := strings.TrimSpace(timeText); clock != "" {
		match := clockPattern.FindStringSubmatch(clock)
		if match == nil {
			return "", fmt.Errorf("%w: time %q is not HH:MM", domain.ErrFormat, timeText)
		}
		hour, _ = strconv.Atoi(match[1])
		minute, _ = strconv.Atoi(match[2])
		if hour > 23 || minute > 59 {
			return "", fmt.Errorf("%w: time %q is out of range", domain.ErrFormat, timeText)
		}
	}

	return fmt.Sprintf("%sT%02d:%02d:00", date, hour, minute), nil
}

func parseDate(text string) (CivilDate, error) {
	var year, month, day int

	switch {
	case usDatePattern.MatchString(text):
		match := usDatePattern.FindStringSubmatch(text)
		month, _ = strconv.Atoi(match[1])
		day, _ = strconv.Atoi(match[2])
		year, _ = strconv.Atoi(match[3])
	case isoDatePattern.MatchString(text):
		match := isoDatePattern.FindStringSubmatch(text)
		year, _ = strconv.Atoi(match[1])
		month, _ = strconv.Atoi(match[2])
		day, _ = strconv.Atoi(match[3])
	default:
		return CivilDate{}, fmt.Errorf("%w: date %q is not MM/DD/YYYY or YYYY-MM-DD", domain.ErrFormat, text)
	}

	// time.Date normalizes overflow, so a round trip rejects 02/30 and friends.
	normalized := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if normalized.Year() != year || int(normalized.Month()) != month || normalized.Day() != day {
		return CivilDate{}, fmt.Errorf("%w: date %q does not exist", domain.ErrFormat, text)
	}

	return CivilDate{Year: year, Month: time.Month(month), Day: day}, nil
}

// ResolveLocal attaches the calculator's zone to a YYYY-MM-DDTHH:MM:SS value.
func (c *Calculator) ResolveLocal(localText string) (time.Time, error) {
	t, err := time.ParseInLocation(localLayout, localText, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", domain.ErrFormat, localText, err)
	}
	return t, nil
}

// ParseLocal combines ParseFlexibleLocalDateTime and ResolveLocal.
func (c *Calculator) ParseLocal(dateText, timeText string) (time.Time, error) {
	composite, err := ParseFlexibleLocalDateTime(dateText, timeText)
	if err != nil {
		return time.Time{}, err
	}
	return c.ResolveLocal(composite)
}

// PeriodWindow covers startDate 00:00:00 through endDate 23:59:59 local
// time. Each bound uses the zone offset in effect on its own date.
func (c *Calculator) PeriodWindow(startDate, endDate string) (domain.TimeWindow, error) {
	start, err := c.ParseLocal(startDate, "")
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("start: %w", err)
	}

	end, err := c.ParseLocal(endDate, "23:59")
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("end: %w", err)
	}
	end = end.Add(59 * time.Second)

	if end.Before(start) {
		return domain.TimeWindow{}, fmt.Errorf("%w: end %q is before start %q", domain.ErrFormat, endDate, startDate)
	}

	return domain.NewTimeWindow(start, end), nil
}
