package models

import (
	"encoding/json"
	"strings"
)

// KeywordSet is an insertion-ordered set of strings. It backs the session journal,
// the collected items and the keyword lists attached to scenes.
//
// Membership is unique and iteration follows first-seen order, so the same set renders
// the same way every time. Entries are trimmed; blank entries are ignored.
type KeywordSet struct {
	items []string
	index map[string]struct{}
}

// NewKeywordSet builds a set from values, dropping duplicates and blanks.
func NewKeywordSet(values ...string) KeywordSet {
	s := KeywordSet{}
	s.Add(values...)
	return s
}

// Add inserts values that are not yet present and reports how many were added.
func (s *KeywordSet) Add(values ...string) int {
	added := 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if s.index == nil {
			s.index = make(map[string]struct{}, len(values))
		}
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = struct{}{}
		s.items = append(s.items, v)
		added++
	}
	return added
}

// Remove deletes v from the set and reports whether it was present.
func (s *KeywordSet) Remove(v string) bool {
	v = strings.TrimSpace(v)
	if _, ok := s.index[v]; !ok {
		return false
	}
	delete(s.index, v)
	for i, item := range s.items {
		if item == v {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

func (s KeywordSet) Contains(v string) bool {
	_, ok := s.index[strings.TrimSpace(v)]
	return ok
}

func (s KeywordSet) Len() int {
	return len(s.items)
}

func (s KeywordSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Values returns a copy of the members in insertion order. Never nil.
func (s KeywordSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Clone returns an independent copy of the set.
func (s KeywordSet) Clone() KeywordSet {
	return NewKeywordSet(s.items...)
}

// Union returns the members of s followed by the members of other that s lacks.
// Neither operand is modified.
func (s KeywordSet) Union(other KeywordSet) KeywordSet {
	out := s.Clone()
	out.Add(other.items...)
	return out
}

// Difference returns the members of s that other does not contain, in s order.
func (s KeywordSet) Difference(other KeywordSet) KeywordSet {
	out := KeywordSet{}
	for _, v := range s.items {
		if !other.Contains(v) {
			out.Add(v)
		}
	}
	return out
}

// Equal compares membership only; order is ignored.
func (s KeywordSet) Equal(other KeywordSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, v := range s.items {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

func (s KeywordSet) String() string {
	return strings.Join(s.items, ", ")
}

func (s KeywordSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *KeywordSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewKeywordSet(values...)
	return nil
}
