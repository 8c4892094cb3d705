// Package collation defines the two comparison strategies used by the phone
// book. They are deliberately separate:
//
//   - NameOrder sorts display names in German phone-book order (case- and
//     accent-aware linguistic ordering, "Ä" near "A").
//   - Fold/Equal is a locale-neutral case fold that ignores case and accent
//     distinctions. It is used only for duplicate detection.
//
// Mixing the two would change which entries count as duplicates across
// locales, so the store layer receives them as distinct strategies rather
// than a single locale mode.
package collation

import (
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// phonebook is German with the phonebook collation variant, which sorts
// umlauts next to their base letters.
var phonebook = language.MustParse("de-u-co-phonebk")

// NameOrder compares and keys display names in German phone-book order.
// It is safe for concurrent use.
type NameOrder struct {
	mu sync.Mutex
	c  *collate.Collator
}

// NewNameOrder creates the sort comparator for display names.
func NewNameOrder() *NameOrder {
	return &NameOrder{c: collate.New(phonebook)}
}

// Compare returns -1, 0 or 1 depending on whether a sorts before, equal to
// or after b.
func (o *NameOrder) Compare(a, b string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.c.CompareString(a, b)
}

// Key returns the collation key for name. Keys compare bytewise in the same
// order as Compare, so they can be stored and indexed for sorted listing.
func (o *NameOrder) Key(name string) []byte {
	o.mu.Lock()
	defer o.mu.Unlock()
	buf := new(collate.Buffer)
	key := o.c.KeyFromString(buf, name)
	out := make([]byte, len(key))
	copy(out, key)
	return out
}

// Fold reduces s to its locale-neutral case-folded form: decompose, strip
// combining marks, case-fold, recompose. Two strings are duplicates of each
// other exactly when their folds are equal.
func Fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		cases.Fold(),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		// The chain cannot fail on valid UTF-8; fall back to the input
		// so a malformed string still compares consistently with itself.
		return s
	}
	return out
}

// Equal reports whether a and b are equal under the locale-neutral case
// fold used for duplicate detection.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
