package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"bookshelf/internal/catalog"
	"bookshelf/internal/scheduler"
	"bookshelf/internal/tasks"
)

// Maintenance task processing
var _ tasks.OrphanSweeper = (*catalog.Service)(nil)
var _ tasks.CoverReaper = (*catalog.Service)(nil)

// Scheduled maintenance
var _ scheduler.Maintainer = (*catalog.Service)(nil)

// Deferred sweep scheduling
var _ catalog.MaintenanceQueue = (*tasks.Client)(nil)
