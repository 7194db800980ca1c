package stoplist

import (
	"sort"
	"strings"
)

// Manager holds a set of words excluded from some processing step, such as
// spelling correction or frequency-list generation.
type Manager struct {
	stops map[string]Reason
}

// Reason records where an entry came from.
type Reason struct {
	Source string // file or overlay that contributed the word
	Note   string
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			stops[s] = Reason{}
		}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	if m == nil {
		return false
	}
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Add adds a token to the stoplist with a reason
func (m *Manager) Add(token string, reason Reason) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	m.stops[token] = reason
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Reason returns why a token was listed.
func (m *Manager) Reason(token string) (Reason, bool) {
	if m == nil {
		return Reason{}, false
	}
	r, ok := m.stops[strings.ToLower(token)]
	return r, ok
}

// Len returns the number of listed tokens.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.stops)
}

// All returns all stopwords, sorted
func (m *Manager) All() []string {
	if m == nil {
		return nil
	}
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Filter returns the words that are not on the list, preserving order.
func (m *Manager) Filter(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !m.IsStop(w) {
			out = append(out, w)
		}
	}
	return out
}
