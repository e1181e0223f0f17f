package domain

// PropertyKind discriminates the variants of a workspace property.
type PropertyKind string

const (
	KindEmpty    PropertyKind = "empty"
	KindDate     PropertyKind = "date"
	KindSelect   PropertyKind = "select"
	KindStatus   PropertyKind = "status"
	KindRelation PropertyKind = "relation"
	KindTitle    PropertyKind = "title"
)

// Property is one decoded workspace property. The concrete types below are
// the only implementations.
type Property interface {
	Kind() PropertyKind
}

type EmptyProperty struct{}

type DateProperty struct {
	Range *DateRange
}

type SelectProperty struct {
	Label string
}

type StatusProperty struct {
	Label string
}

type RelationProperty struct {
	IDs []string
}

// TitleProperty covers title and rich text properties.
type TitleProperty struct {
	Text string
}

func (EmptyProperty) Kind() PropertyKind    { return KindEmpty }
func (DateProperty) Kind() PropertyKind     { return KindDate }
func (SelectProperty) Kind() PropertyKind   { return KindSelect }
func (StatusProperty) Kind() PropertyKind   { return KindStatus }
func (RelationProperty) Kind() PropertyKind { return KindRelation }
func (TitleProperty) Kind() PropertyKind    { return KindTitle }

// Record is a workspace page decoded once at ingestion, keyed by the
// human-readable property name.
type Record struct {
	ID         string
	Properties map[string]Property
}
