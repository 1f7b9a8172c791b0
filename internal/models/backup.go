package models

import "time"

// BackupVersion is the current backup document format version
const BackupVersion = 1

// Backup is a full snapshot of the key-value store.
// Entries hold the stored values verbatim, keyed by their full store key.
type Backup struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Driver     string            `json:"driver"`
	Entries    map[string]string `json:"entries"`
}

// ImportResult holds the result of a backup import
type ImportResult struct {
	Imported int `json:"imported"`
	Removed  int `json:"removed"`
}
