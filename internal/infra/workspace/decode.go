package workspace

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

const dateOnlyLayout = "2006-01-02"

var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// decodeRecord converts a page into a typed record once at ingestion.
// Unknown property types decode as empty.
func decodeRecord(p page, defaultLoc *time.Location) domain.Record {
	props := make(map[string]domain.Property, len(p.Properties))

	for name, v := range p.Properties {
		props[name] = decodeProperty(name, v, defaultLoc)
	}

	return domain.Record{ID: p.ID, Properties: props}
}

func decodeProperty(name string, v propertyValue, defaultLoc *time.Location) domain.Property {
	switch v.Type {
	case "title":
		return domain.TitleProperty{Text: plainText(v.Title)}
	case "rich_text":
		return domain.TitleProperty{Text: plainText(v.RichText)}
	case "select":
		if v.Select == nil {
			return domain.EmptyProperty{}
		}
		return domain.SelectProperty{Label: v.Select.Name}
	case "status":
		if v.Status == nil {
			return domain.EmptyProperty{}
		}
		return domain.StatusProperty{Label: v.Status.Name}
	case "relation":
		ids := make([]string, 0, len(v.Relation))
		for _, r := range v.Relation {
			ids = append(ids, r.ID)
		}
		return domain.RelationProperty{IDs: ids}
	case "date":
		if v.Date == nil || v.Date.Start == "" {
			return domain.EmptyProperty{}
		}
		r, err := decodeDateRange(*v.Date, defaultLoc)
		if err != nil {
			slog.Warn("dropping unreadable date property",
				slog.String("property", name),
				slog.String("error", err.Error()),
			)
			return domain.EmptyProperty{}
		}
		return domain.DateProperty{Range: r}
	default:
		return domain.EmptyProperty{}
	}
}

func plainText(parts []richText) string {
	var b strings.Builder
	for _, p := range parts {
		switch {
		case p.PlainText != "":
			b.WriteString(p.PlainText)
		case p.Text != nil:
			b.WriteString(p.Text.Content)
		}
	}
	return b.String()
}

func decodeDateRange(v dateValue, defaultLoc *time.Location) (*domain.DateRange, error) {
	loc := defaultLoc
	zone := ""
	if v.TimeZone != nil && *v.TimeZone != "" {
		zoneLoc, err := time.LoadLocation(*v.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("%w: time zone %q", domain.ErrFormat, *v.TimeZone)
		}
		loc = zoneLoc
		zone = *v.TimeZone
	}

	start, hasTime, err := parseDate(v.Start, loc)
	if err != nil {
		return nil, err
	}

	r := &domain.DateRange{
		Start:    start,
		TimeZone: zone,
		HasTime:  hasTime,
	}

	if v.End != nil && *v.End != "" {
		end, _, err := parseDate(*v.End, loc)
		if err != nil {
			return nil, err
		}
		r.End = &end
	}

	return r, nil
}

// parseDate reads date-only values as civil midnight in loc, offset
// timestamps as is, and offset-less timestamps as wall time in loc.
func parseDate(s string, loc *time.Location) (time.Time, bool, error) {
	if len(s) == len(dateOnlyLayout) {
		t, err := time.ParseInLocation(dateOnlyLayout, s, loc)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("%w: %q", domain.ErrFormat, s)
		}
		return t, false, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true, nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true, nil
		}
	}

	return time.Time{}, false, fmt.Errorf("%w: %q", domain.ErrFormat, s)
}
