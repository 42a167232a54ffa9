package domain

import "strings"

// FilterCategoryAll disables the category filter when passed to VisibleEvents.
const FilterCategoryAll = "all"

// VisibleEvents returns the subset of events matching the search term and
// category filter. An event matches when the term (case-insensitive) is a
// substring of its title or description, and the category filter is "all" or
// equal to the event's category. Input order is preserved and the input slice
// is never mutated.
func VisibleEvents(events []*Event, searchTerm, category string) []*Event {
	term := strings.ToLower(searchTerm)
	visible := make([]*Event, 0, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Title), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) {
			continue
		}
		if category != FilterCategoryAll && string(e.Category) != category {
			continue
		}
		visible = append(visible, e)
	}
	return visible
}
