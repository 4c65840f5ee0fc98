package mission

import (
	"sort"
	"time"
)

// MissionFilter narrows a snapshot for display. Zero values match everything.
type MissionFilter struct {
	Status string
	Vessel string
	Limit  int
}

// Filter returns the missions matching f, preserving input order.
// The input slice is never modified.
func Filter(missions []Mission, f MissionFilter) []Mission {
	out := make([]Mission, 0, len(missions))
	for _, m := range missions {
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.Vessel != "" && m.Vessel != f.Vessel {
			continue
		}
		out = append(out, m)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// FindByID returns the mission with the given id from a snapshot.
func FindByID(missions []Mission, id string) (Mission, bool) {
	for _, m := range missions {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}

// VesselGroup is one row of the fleet view.
type VesselGroup struct {
	Vessel   Vessel
	Missions []Mission
	Open     int
	Overdue  int
}

// GroupByVessel groups missions per vessel for the fleet view.
// Fleet vessels come first in fleet order (including idle ones), followed by
// vessels only referenced by missions, sorted by name.
func GroupByVessel(missions []Mission, fleet []Vessel, now time.Time) []VesselGroup {
	index := make(map[string]int, len(fleet))
	groups := make([]VesselGroup, 0, len(fleet))
	for _, v := range fleet {
		index[v.Name] = len(groups)
		groups = append(groups, VesselGroup{Vessel: v})
	}

	var unknown []string
	for _, m := range missions {
		i, ok := index[m.Vessel]
		if !ok {
			i = len(groups)
			index[m.Vessel] = i
			groups = append(groups, VesselGroup{Vessel: Vessel{Name: m.Vessel}})
			unknown = append(unknown, m.Vessel)
		}
		g := &groups[i]
		g.Missions = append(g.Missions, m)
		if !IsClosed(m.Status) {
			g.Open++
		}
		if IsOverdue(m, now) {
			g.Overdue++
		}
	}

	if len(unknown) > 1 {
		tail := groups[len(fleet):]
		sort.SliceStable(tail, func(a, b int) bool {
			return tail[a].Vessel.Name < tail[b].Vessel.Name
		})
	}
	return groups
}

// Summary holds the aggregates shown on the analytics screen.
type Summary struct {
	Total          int
	ByStatus       map[string]int
	ByVessel       map[string]int
	Overdue        int
	DueSoon        int
	CompletionRate float64 // completed / (total - cancelled), 0 when nothing countable
}

// Summarize derives analytics aggregates from a snapshot.
// DueSoon counts open missions due within window from now that are not yet overdue.
func Summarize(missions []Mission, now time.Time, window time.Duration) Summary {
	s := Summary{
		Total:    len(missions),
		ByStatus: make(map[string]int),
		ByVessel: make(map[string]int),
	}

	cancelled := 0
	for _, m := range missions {
		s.ByStatus[m.Status]++
		s.ByVessel[m.Vessel]++
		if m.Status == StatusCancelled {
			cancelled++
		}
		switch {
		case IsOverdue(m, now):
			s.Overdue++
		case !IsClosed(m.Status) && !m.DueAt.IsZero() && !m.DueAt.After(now.Add(window)):
			s.DueSoon++
		}
	}

	if countable := s.Total - cancelled; countable > 0 {
		s.CompletionRate = float64(s.ByStatus[StatusCompleted]) / float64(countable)
	}
	return s
}

// SortedKeys returns the keys of a count map ordered by descending count, then name.
func SortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return keys[a] < keys[b]
	})
	return keys
}
