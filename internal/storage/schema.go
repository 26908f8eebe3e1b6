package storage

import "golang.org/x/mod/semver"

// SchemaVersion is stamped into every persisted snapshot. Readers accept
// snapshots at or below their own version; a blob written by a newer build
// is treated as absent rather than half-parsed.
const SchemaVersion = "v1.0.0"

// SchemaCompatible reports whether a snapshot written at version v can be
// read by this build. An empty version is accepted: blobs from before
// versioning carry none.
func SchemaCompatible(v string) bool {
	if v == "" {
		return true
	}
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, SchemaVersion) <= 0
}
