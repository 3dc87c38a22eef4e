// Package repositories provides the persistence layer for the run manifest database.
//
// [RunRepository] implements models.Repository[*models.ExportRun] and
// additionally persists the per-file records attached to each run. It also
// satisfies tasks.RunRecorder, so the export engine can record runs without
// depending on database/sql.
package repositories
