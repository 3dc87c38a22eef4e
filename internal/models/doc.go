// Package models defines domain entities and persistence interfaces for the hrfx export tool.
//
// The package contains two categories of types:
//
// 1. Domain values describing a loaded fNIRS session result:
//   - [Species] : The closed hemoglobin species enumeration (HbO, HbR, HbT)
//   - [Channel] : One measurement channel descriptor (label + condition index)
//   - [Matrix] : A time-by-channel matrix of float64 samples
//   - [Session] : Channel descriptors plus the parallel signal/variability matrices
//   - [ExportTask] : One planned table export (channel indices + name suffix)
//   - [ExportedFile] : One written table, as recorded in run manifests
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [ExportRun] : One export invocation with counts and destinations
//
// Persistent entities implement the Model interface providing ID generation, timestamps, and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
