// Package interfaces documents the core abstractions of the catalog service.
//
// # Interface Categories
//
// ## Maintenance Interfaces
//
//   - OrphanSweeper: removes unreferenced authors, publishers and genres
//     (internal/tasks/sweep_orphans.go)
//   - CoverReaper: removes unreferenced cover files
//     (internal/tasks/reap_covers.go)
//   - Maintainer: the scheduler's view of both (internal/scheduler/sweep.go)
//   - MaintenanceQueue: enqueues deferred sweeps after saves and deletes
//     (internal/catalog/service.go)
//
// All four are implemented by *catalog.Service or *tasks.Client; the checks
// in checks.go pin that down at compile time.
//
// # Adding a New Maintenance Task
//
// To add a new deferred maintenance job:
//
//  1. Define the task type and its queue in internal/tasks/
//
//     type VacuumTask struct{}
//
//     func (t VacuumTask) Config() backlite.QueueConfig { ... }
//
//  2. Implement the processing behind a small interface so tests can stub it
//
//  3. Register the queue in internal/entrypoint/entrypoint.go
//
//  4. Add a compile-time check here:
//
//     var _ tasks.Vacuumer = (*catalog.Service)(nil)
package interfaces
