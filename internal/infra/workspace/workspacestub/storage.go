package workspacestub

import (
	"fmt"
	"sync"
)

// propertyKinds lists the value keys a property may carry. The first one
// present decides the property type when a write omits it.
var propertyKinds = []string{"title", "rich_text", "select", "status", "date", "relation"}

type Page struct {
	ID         string
	Properties map[string]map[string]any
}

// Storage is an in-memory database of pages kept in insertion order.
type Storage struct {
	mu         sync.RWMutex
	databaseID string
	pages      []*Page
	index      map[string]int
	seq        int
}

func NewStorage(databaseID string) *Storage {
	return &Storage{
		databaseID: databaseID,
		index:      make(map[string]int),
	}
}

func (s *Storage) DatabaseID() string {
	return s.databaseID
}

func (s *Storage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = nil
	s.index = make(map[string]int)
	s.seq = 0
}

// AddPage stores a page. An empty id is assigned from a sequence.
func (s *Storage) AddPage(id string, properties map[string]map[string]any) *Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.seq++
		id = fmt.Sprintf("page-%04d", s.seq)
	}

	p := &Page{ID: id, Properties: make(map[string]map[string]any, len(properties))}
	for name, value := range properties {
		p.Properties[name] = normalize(value)
	}

	if i, ok := s.index[id]; ok {
		s.pages[i] = p
		return p
	}
	s.index[id] = len(s.pages)
	s.pages = append(s.pages, p)
	return p
}

// UpdatePage merges properties into an existing page.
func (s *Storage) UpdatePage(id string, properties map[string]map[string]any) (*Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil, false
	}

	p := s.pages[i]
	for name, value := range properties {
		p.Properties[name] = normalize(value)
	}
	return p, true
}

func (s *Storage) Page(id string) (*Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.pages[i], true
}

// List returns up to limit pages starting at offset, and whether more follow.
func (s *Storage) List(offset, limit int) ([]*Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset >= len(s.pages) {
		return []*Page{}, false
	}

	end := offset + limit
	if end > len(s.pages) {
		end = len(s.pages)
	}

	out := make([]*Page, end-offset)
	copy(out, s.pages[offset:end])
	return out, end < len(s.pages)
}

func normalize(value map[string]any) map[string]any {
	out := make(map[string]any, len(value)+1)
	for k, v := range value {
		out[k] = v
	}

	if _, ok := out["type"]; ok {
		return out
	}
	for _, kind := range propertyKinds {
		if _, ok := out[kind]; ok {
			out["type"] = kind
			break
		}
	}
	return out
}
