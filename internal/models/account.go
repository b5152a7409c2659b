package models

import (
	"time"
)

// Account represents the archive owner's account record
type Account struct {
	ID          string
	Username    string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// Profile represents the archive owner's profile record
type Profile struct {
	Bio      string
	Location string
	Website  string
}

// FollowEdge represents a directed follow relationship as of export time
type FollowEdge struct {
	AccountID string
	UserLink  string
}

// IDSet is a set of account identifiers with set semantics:
// no duplicates, order irrelevant.
type IDSet map[string]struct{}

// NewIDSet builds a set from a list of identifiers
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// EdgeSet builds a set from the account IDs of follow edges
func EdgeSet(edges []FollowEdge) IDSet {
	s := make(IDSet, len(edges))
	for _, e := range edges {
		s[e.AccountID] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns the set of identifiers present in both sets
func (s IDSet) Intersect(other IDSet) IDSet {
	out := make(IDSet)
	for id := range s {
		if other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Diff returns the set of identifiers in s but not in other
func (s IDSet) Diff(other IDSet) IDSet {
	out := make(IDSet)
	for id := range s {
		if !other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Union returns the set of identifiers in either set
func (s IDSet) Union(other IDSet) IDSet {
	out := make(IDSet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Values returns the identifiers in unspecified order
func (s IDSet) Values() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}
