package client

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultSearchDebounce is the delay between the last keystroke and the
// search request it triggers.
const DefaultSearchDebounce = 300 * time.Millisecond

// SearchFunc performs a search for a term, typically Client.Search.
type SearchFunc func(ctx context.Context, term string) ([]Entry, error)

// Searcher drives the search box lifecycle: it debounces keystrokes,
// tracks a monotonically increasing generation id per search cycle, and
// keeps showing the previous good result set while a newer search is in
// flight (stale-while-revalidate).
//
// A new term cancels a pending (not-yet-issued) timer but never an
// in-flight request; responses for superseded generations are discarded on
// arrival. Close stops all further result application without aborting
// network calls.
type Searcher struct {
	search   SearchFunc
	window   time.Duration
	onUpdate func([]Entry)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	full    []Entry
	current []Entry
	closed  bool
}

// NewSearcher creates a Searcher. full is the cached full entry list shown
// for a blank term; onUpdate is invoked with every applied result set and
// must not block.
func NewSearcher(search SearchFunc, full []Entry, onUpdate func([]Entry)) *Searcher {
	return &Searcher{
		search:   search,
		window:   DefaultSearchDebounce,
		onUpdate: onUpdate,
		full:     full,
		current:  full,
	}
}

// SetWindow overrides the debounce window. Intended for tests.
func (s *Searcher) SetWindow(window time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = window
}

// SetFullList replaces the cached full entry list, e.g. after an insert.
func (s *Searcher) SetFullList(full []Entry) {
	s.mu.Lock()
	s.full = full
	s.mu.Unlock()
}

// Current returns the result set the UI should display right now. While a
// search is debounced or in flight this is the previous good set, never a
// blank intermediate state.
func (s *Searcher) Current() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetTerm starts a new search cycle for term. The pending timer of the
// previous cycle, if it has not fired yet, is cancelled; an already
// in-flight request keeps running but its response will be discarded as
// stale. A blank term applies the cached full list immediately.
func (s *Searcher) SetTerm(term string) {
	term = strings.TrimSpace(term)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	gen := s.gen

	if term == "" {
		s.current = s.full
		onUpdate, current := s.onUpdate, s.current
		s.mu.Unlock()
		if onUpdate != nil {
			onUpdate(current)
		}
		return
	}

	s.timer = time.AfterFunc(s.window, func() {
		s.run(gen, term)
	})
	s.mu.Unlock()
}

// run issues the search for one generation and applies the result if it is
// still the current generation.
func (s *Searcher) run(gen uint64, term string) {
	entries, err := s.search(context.Background(), term)
	if err != nil {
		// Keep showing the previous good results.
		slog.Debug("search failed, keeping stale results", "term", term, "error", err)
		return
	}

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.current = entries
	onUpdate := s.onUpdate
	s.mu.Unlock()

	if onUpdate != nil {
		onUpdate(entries)
	}
}

// Close stops the searcher: pending timers are cancelled and responses of
// in-flight requests are no longer applied. Safe to call multiple times.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
