// Package canon maps raw book names found in source corpora to canonical
// three-character book identifiers (GEN, EXO, ... REV).
//
// The lookup is a fixed table curated ahead of time. Names the table does not
// know are reported as unresolved; callers decide what to do with them.
package canon
