// Package store provides the in-memory record store for gradebook.
//
// The store keeps every record in three structures that are updated
// together on each mutation:
//   - byID: records ordered ascending by id (binary search, display order)
//   - idIndex: id -> record, O(1) primary-key lookup
//   - nameIndex: normalized name -> record, O(1) exact name lookup
//
// # Invariants
//
// Ordered: byID is strictly ascending by id after every Add, Update and Remove.
// Update never changes an id, so it never moves a record.
//
// Lockstep: idIndex holds exactly the records in byID. A failed Add leaves
// all three structures untouched.
//
// Single name slot: nameIndex holds at most one record per normalized name.
// When two records share a normalized name, the most recently added or
// renamed one owns the slot. FindByName scans byID and is not affected;
// LookupName is.
//
// # Ownership
//
// The store owns its records. Every query returns copies, so callers may
// keep or modify results without touching store state.
//
// The store is not safe for concurrent use. It is built for a single caller
// (one CLI invocation, one harness run) and carries no locks.
package store
