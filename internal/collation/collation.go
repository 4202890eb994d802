// Package collation implements the "UTS-10-style primary-weight" string
// comparator design note (spec.md §9): accent- and case-insensitive
// comparison and ordering for entity names (User, DiscussionTag,
// DiscussionCategory). No pack repository carries a locale-aware collation
// library, so this wires in the ecosystem's own (golang.org/x/text/collate)
// rather than hand-rolling an ASCII fold, per the grounding rules in
// DESIGN.md.
package collation

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares strings using a single collation strength (primary
// level: case- and accent-insensitive) for a configured locale.
type Collator struct {
	mu sync.Mutex
	c  *collate.Collator
}

// New builds a Collator for the given BCP-47 locale tag (e.g. "en", "ro").
// An unparseable tag falls back to language.Und, matching the deployment's
// "confirm against deployment locale data" open question (spec.md §9): the
// default is never fatal, only less precise.
func New(localeTag string) *Collator {
	tag, err := language.Parse(localeTag)
	if err != nil {
		tag = language.Und
	}
	return &Collator{c: collate.New(tag, collate.Loose)}
}

// Compare returns -1, 0, or 1 comparing a and b at primary collation
// strength. Safe for concurrent use; the underlying collate.Collator is
// not goroutine-safe, so calls are serialized.
func (c *Collator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// Equal reports whether a and b collate as equal (spec.md invariant 8: name
// uniqueness under the collation-aware comparator).
func (c *Collator) Equal(a, b string) bool {
	return c.Compare(a, b) == 0
}

// Less reports whether a sorts strictly before b, for use as a ranked
// index's less function.
func (c *Collator) Less(a, b string) bool {
	return c.Compare(a, b) < 0
}
