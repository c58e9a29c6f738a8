package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultCoversDir is the default directory for managed cover images
	DefaultCoversDir = "./covers"
)
