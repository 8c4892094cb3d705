package client

import (
	"strings"
	"unicode/utf8"
)

// GroupedView partitions an ordered entry list into contiguous runs sharing
// a first letter. Keys appear in order of first appearance in the source
// list; the sizes always sum to the length of the source list.
type GroupedView struct {
	// Keys holds the uppercased first letter of each group, in list order.
	// Entries with an empty name form their own "" group.
	Keys []string
	// Sizes holds the run length of each group, parallel to Keys.
	Sizes []int
}

// GroupByInitial reduces an ordered entry list into its grouped view in a
// single pass. It performs no sorting: a name-sorted input yields
// alphabetical sections, while a relevance-sorted input (text search
// results) yields groups in whatever order the entries arrived.
func GroupByInitial(entries []Entry) GroupedView {
	var view GroupedView
	started := false
	current := ""

	for _, entry := range entries {
		key := initial(entry.Name)
		if !started || key != current {
			view.Keys = append(view.Keys, key)
			view.Sizes = append(view.Sizes, 1)
			current = key
			started = true
		} else {
			view.Sizes[len(view.Sizes)-1]++
		}
	}
	return view
}

// initial returns the uppercased first rune of the trimmed name, or ""
// for an empty name.
func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}
