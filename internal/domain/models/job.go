package models

import "time"

// JobKind distinguishes how a job's source content entered the system.
type JobKind string

const (
	JobKindUpload           JobKind = "upload"
	JobKindScrape           JobKind = "scrape"
	JobKindEnterpriseScrape JobKind = "enterprise_scrape"
	JobKindConvert          JobKind = "convert"
)

// Job is one ingestion operation and its produced artifact, keyed by ID.
// Jobs replace the old single-slot "latest file" record: every operation
// gets its own entry, and "latest" is just the most recently created one.
type Job struct {
	ID        string    `json:"id"`
	Kind      JobKind   `json:"kind"`
	Filename  string    `json:"filename,omitempty"`
	SourceURL string    `json:"source_url,omitempty"`
	// StorageKey is the blob-storage key of the raw input (uploads) or the
	// rendered artifact (scrapes).
	StorageKey string `json:"storage_key,omitempty"`
	// Location is a pre-signed, addressable URL for the stored object.
	// Empty when the sink degraded ("artifact not available").
	Location string `json:"location,omitempty"`
	// LocalPath is set once the raw input has been staged on disk for
	// parsing.
	LocalPath string    `json:"local_path,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Artifact describes one stored output object.
type Artifact struct {
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	LastModified time.Time `json:"last_modified"`
}
