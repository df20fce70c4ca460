package store

import (
	"encoding/json"
	"io"
	"os"
)

// ExportJSON writes one snapshot's metadata to path.
func ExportJSON(path string, meta *SnapshotMetadata) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, meta)
}

// ExportJSONStdout writes one snapshot's metadata to stdout.
func ExportJSONStdout(meta *SnapshotMetadata) error {
	return writeJSON(os.Stdout, meta)
}

func writeJSON(w io.Writer, meta *SnapshotMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
