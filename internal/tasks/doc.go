// Package tasks plans and executes table exports for a loaded session.
//
// # Core Operations
//
// The [Engine] exposes one operation, [Engine.Export]:
//
//  1. Validate the session's matrix shapes (a ShapeError aborts before any file is written)
//  2. Plan export tasks from the classifier's partitions ([PlanGrouped] or [PlanBySpecies])
//  3. Write one table per task, strictly sequentially, in plan order
//  4. Write a JSON run manifest and record the run through the optional [RunRecorder]
//
// Task ordering is deterministic: grouped mode iterates ascending condition
// indices crossed with the canonical species order, legacy mode iterates the
// species order alone. Empty buckets produce no task. An entirely empty plan
// is a warning, not an error: the engine returns a zero-file result.
//
// The first table that cannot be written aborts the whole run — remaining
// tasks are not attempted and the error names the destination path. Manifest
// and database recording failures never fail a run whose tables were written.
//
// # Progress Reporting
//
// Operations emit [ProgressUpdate] values through an optional channel using a
// non-blocking send, so reporting can never stall the export loop.
package tasks
