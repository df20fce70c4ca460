// Package store persists rendered snapshots: a PNG of the frame plus a
// JSON metadata record per snapshot, under a base directory.
package store

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/catsanzsh/flame64/internal/chaos"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SnapshotMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	SeedSource string             `json:"seed_source"`
	SeedBytes  int                `json:"seed_bytes"`
	Ticks      uint64             `json:"ticks"`
	IntervalMS int                `json:"interval_ms"`
	Metrics    map[string]float64 `json:"metrics"`
}

// SaveSnapshot writes frame as <id>/frame.png plus <id>/metadata.json
// and returns the snapshot id. The frame must be the flat RGB layout
// produced by the engine.
func (s *Store) SaveSnapshot(frame []byte, meta SnapshotMetadata) (string, error) {
	if len(frame) != chaos.FrameHeight*chaos.FrameWidth*3 {
		return "", fmt.Errorf("frame is %d bytes, want %d", len(frame), chaos.FrameHeight*chaos.FrameWidth*3)
	}

	id := fmt.Sprintf("snap_%d", time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta.ID = id
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	pngFile, err := os.Create(filepath.Join(dir, "frame.png"))
	if err != nil {
		return "", err
	}
	defer pngFile.Close()
	if err := png.Encode(pngFile, FrameImage(frame)); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	return id, nil
}

// FrameImage wraps a flat RGB frame buffer in an image.RGBA.
func FrameImage(frame []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chaos.FrameWidth, chaos.FrameHeight))
	for y := 0; y < chaos.FrameHeight; y++ {
		for x := 0; x < chaos.FrameWidth; x++ {
			src := (y*chaos.FrameWidth + x) * 3
			dst := img.PixOffset(x, y)
			img.Pix[dst] = frame[src]
			img.Pix[dst+1] = frame[src+1]
			img.Pix[dst+2] = frame[src+2]
			img.Pix[dst+3] = 0xff
		}
	}
	return img
}

func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	snaps := make([]SnapshotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta SnapshotMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		snaps = append(snaps, meta)
	}
	return snaps, nil
}

func (s *Store) Load(id string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
