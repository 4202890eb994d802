// Package entity defines the stable, copy-cheap handle type used to
// reference entities living in a collection's arena, generalizing the
// design note's EntityPointer<T> (spec.md §9: "Shared pointers with
// back-references"). Go's garbage collector removes the cycle-safety
// problem the original's arena-plus-weak-pointer scheme existed to solve,
// so Pointer[T] is modeled as a plain pointer rather than an arena index:
// dereference is O(1) either way, and a *T is already copy-cheap and
// stable for the entity's lifetime in this process.
package entity

// Pointer is a handle into a live EntityCollection. A nil Pointer denotes
// "no reference" (e.g. a category with no parent, an attachment with no
// linked message) wherever spec.md uses "empty id" for the same purpose at
// the identifier level.
type Pointer[T any] = *T
