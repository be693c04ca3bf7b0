// Package harness runs YAML scenarios against the record store.
//
// A scenario seeds a fresh store, executes a list of steps (add, update,
// remove, lookups, searches, display orderings, persistence reloads), and
// checks each step's expectations. Every step produces one trace event;
// the rendered trace is deterministic and is compared against golden files.
//
// # Scenario Format
//
//	name: end_to_end
//	description: Add, reject duplicate, rename, search, remove
//	setup:
//	  - {id: 1, name: Alice, grades: [90, 80]}
//	steps:
//	  - op: add
//	    id: 101
//	    name: Bob
//	    grades: [70]
//	    expect: {outcome: ok, average: 70}
//	  - op: find
//	    query: bo
//	    expect: {ids: [101]}
//	final:
//	  size: 2
//
// # Golden Files
//
// RenderTrace produces one line per step:
//
//	001 add id=101 name="Bob" grades=[70] -> ok id=101 name="Bob" average=70 size=2
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// or, for scenario files outside the repository:
//
//	gradebook test ./scenarios --update
package harness
