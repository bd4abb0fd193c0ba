package main

// Station is one user-configured radio station. The configured name is
// authoritative for the panel; names broadcast in-stream are ignored because
// providers populate them inconsistently.
type Station struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	URL  string `yaml:"url" json:"url" validate:"required,url"`
}

// StationListState is the reducer-owned station selection cursor.
// The list itself is seeded from config at startup and never mutated.
type StationListState struct {
	List    []Station
	Current int
}

// CurrentStation returns the selected station, if any.
func (s StationListState) CurrentStation() (Station, bool) {
	if s.Current < 0 || s.Current >= len(s.List) {
		return Station{}, false
	}
	return s.List[s.Current], true
}

// Select moves the cursor to index i. Out-of-range indexes are rejected.
func (s *StationListState) Select(i int) bool {
	if i < 0 || i >= len(s.List) {
		return false
	}
	s.Current = i
	return true
}

// Advance moves the cursor by delta with wraparound.
func (s *StationListState) Advance(delta int) bool {
	n := len(s.List)
	if n == 0 {
		return false
	}
	s.Current = ((s.Current+delta)%n + n) % n
	return true
}
