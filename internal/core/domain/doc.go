// Package domain defines the core entities of the khareeta knowledge engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - LessonRecord, PointOfInterest: the static lesson dataset
//   - IndexedFact: a searchable record derived from the dataset
//   - QueryResult: the ranked answer to one query
//   - MissionTemplate, Mission: visit goals evaluated per session
//   - Progress: the persisted snapshot of a child's points and lessons
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
