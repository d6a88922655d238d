package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/trace3d/internal/viz"
)

// Store keeps exported figures on disk, one directory per figure with a
// metadata document next to the figure JSON.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type FigureMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	TraceCount  int       `json:"trace_count"`
	Fingerprint uint64    `json:"fingerprint"`
}

// Save writes the figure and its metadata, returning the generated ID.
func (s *Store) Save(name string, fig *viz.Figure) (string, error) {
	fp, err := fig.Fingerprint()
	if err != nil {
		return "", err
	}

	id := fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := FigureMetadata{
		ID:          id,
		Name:        name,
		Created:     time.Now(),
		TraceCount:  len(fig.Data),
		Fingerprint: fp,
	}
	if err := writeJSON(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "figure.json"), fig); err != nil {
		return "", err
	}
	return id, nil
}

// List returns metadata for all stored figures, newest first.
func (s *Store) List() ([]FigureMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var metas []FigureMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		var meta FigureMetadata
		if err := readJSON(filepath.Join(s.baseDir, e.Name(), "metadata.json"), &meta); err != nil {
			continue // skip foreign directories
		}
		metas = append(metas, meta)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Created.After(metas[j].Created) })
	return metas, nil
}

// Load reads a stored figure and its metadata by ID.
func (s *Store) Load(id string) (*viz.Figure, *FigureMetadata, error) {
	dir := filepath.Join(s.baseDir, id)

	var meta FigureMetadata
	if err := readJSON(filepath.Join(dir, "metadata.json"), &meta); err != nil {
		return nil, nil, fmt.Errorf("store: load %s: %w", id, err)
	}
	var fig viz.Figure
	if err := readJSON(filepath.Join(dir, "figure.json"), &fig); err != nil {
		return nil, nil, fmt.Errorf("store: load %s: %w", id, err)
	}
	return &fig, &meta, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
