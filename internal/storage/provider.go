// Package storage defines the compiled-artifact file-system abstraction.
package storage

import "time"

// ArtifactInfo is metadata for one stored artifact.
type ArtifactInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for artifact file operations.
type Provider interface {
	// List returns metadata for every .pdf artifact.
	List() ([]ArtifactInfo, error)
	// Read returns the raw bytes of the artifact with the given name.
	Read(name string) ([]byte, error)
	// Write atomically writes data under name.
	Write(name string, data []byte) error
	// Delete removes the artifact with the given name.
	Delete(name string) error
}
