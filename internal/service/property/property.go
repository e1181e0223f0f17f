package property

import (
	"strings"

	"github.com/KasumiMercury/primind-focus-assistant/internal/domain"
)

// Date returns the date range stored under key, or nil when the key is
// missing, empty, or holds another kind.
func Date(rec domain.Record, key string) *domain.DateRange {
	if p, ok := rec.Properties[key].(domain.DateProperty); ok {
		return p.Range
	}
	return nil
}

// Choice returns the selected option label of a select property.
func Choice(rec domain.Record, key string) string {
	if p, ok := rec.Properties[key].(domain.SelectProperty); ok {
		return p.Label
	}
	return ""
}

// StatusLabel returns the label of a status property. Workspaces that model
// status as a plain select are read the same way.
func StatusLabel(rec domain.Record, key string) string {
	switch p := rec.Properties[key].(type) {
	case domain.StatusProperty:
		return p.Label
	case domain.SelectProperty:
		return p.Label
	default:
		return ""
	}
}

// Relation returns the linked record ids. It never returns nil.
func Relation(rec domain.Record, key string) []string {
	p, ok := rec.Properties[key].(domain.RelationProperty)
	if !ok || len(p.IDs) == 0 {
		return []string{}
	}
	ids := make([]string, len(p.IDs))
	copy(ids, p.IDs)
	return ids
}

// Title returns the plain text of a title or rich text property.
func Title(rec domain.Record, key string) string {
	if p, ok := rec.Properties[key].(domain.TitleProperty); ok {
		return p.Text
	}
	return ""
}

// Names maps item fields to property names in the workspace database.
type Names struct {
	Name      string
	Status    string
	Category  string
	Priority  string
	Alignment string
	Do        string
	Due       string
	Related   string
}

type Reader struct {
	names Names
}

func NewReader(names Names) *Reader {
	return &Reader{names: names}
}

// Item builds the read-only item view of a record.
func (r *Reader) Item(rec domain.Record) domain.Item {
	name := strings.TrimSpace(Title(rec, r.names.Name))
	if name == "" {
		name = domain.UntitledName
	}

	return domain.Item{
		ID:         rec.ID,
		Name:       name,
		Status:     domain.ParseStatus(StatusLabel(rec, r.names.Status)),
		Category:   Choice(rec, r.names.Category),
		Priority:   domain.ParsePriority(Choice(rec, r.names.Priority)),
		Alignment:  Choice(rec, r.names.Alignment),
		DoWindow:   Date(rec, r.names.Do),
		DueWindow:  Date(rec, r.names.Due),
		RelatedIDs: Relation(rec, r.names.Related),
	}
}

func (r *Reader) Items(recs []domain.Record) []domain.Item {
	items := make([]domain.Item, 0, len(recs))
	for _, rec := range recs {
		items = append(items, r.Item(rec))
	}
	return items
}
