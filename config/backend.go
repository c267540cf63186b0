package config

import "strings"

// BackendMode names a repository implementation.
type BackendMode string

const (
	// BackendMemory keeps records in process memory; data is lost on restart.
	BackendMemory BackendMode = "memory"
	// BackendPostgres stores records in PostgreSQL.
	BackendPostgres BackendMode = "postgres"
)

// ParseBackend normalises a backend name. Unknown values fall back to memory.
func ParseBackend(s string) BackendMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pg":
		return BackendPostgres
	default:
		return BackendMemory
	}
}
