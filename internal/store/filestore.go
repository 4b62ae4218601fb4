// Package store persists match analyses. The file store is the source of
// truth; the archive is optional long-lived history in PostgreSQL.
package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/openmohaa/coach-api/internal/models"
)

const (
	metadataFile = "metadata.json"
	analysisFile = "analysis.json"
)

//go:embed schema/analysis.schema.json
var analysisSchemaJSON []byte

// SchemaError reports an analysis file that does not match the expected shape.
type SchemaError struct {
	Path   string
	Errors []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s does not match analysis schema: %s", e.Path, strings.Join(e.Errors, "; "))
}

// FileStore keeps one directory per match under dataDir and an in-memory
// index of MatchMeta guarded by a single mutex.
type FileStore struct {
	dataDir string
	schema  *gojsonschema.Schema
	logger  *zap.SugaredLogger

	mu      sync.RWMutex
	matches map[string]models.MatchMeta
}

// NewFileStore creates dataDir if needed and rebuilds the registry from any
// match directories already on disk.
func NewFileStore(dataDir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(analysisSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile analysis schema: %w", err)
	}

	s := &FileStore{
		dataDir: dataDir,
		schema:  schema,
		logger:  logger.Sugar(),
		matches: make(map[string]models.MatchMeta),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) reload() error {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("scan data dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(s.dataDir, entry.Name(), metadataFile)
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warnw("Skipping match directory without metadata", "dir", entry.Name(), "error", err)
			continue
		}
		var meta models.MatchMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			s.logger.Warnw("Skipping unreadable metadata", "path", path, "error", err)
			continue
		}
		if meta.ID != entry.Name() {
			s.logger.Warnw("Skipping metadata with mismatched id", "dir", entry.Name(), "id", meta.ID)
			continue
		}
		// The stored path is informational; the data root may have moved.
		meta.AnalysisFile = s.analysisPath(meta.ID)
		s.matches[meta.ID] = meta
	}

	s.logger.Infow("Match registry loaded", "dataDir", s.dataDir, "matches", len(s.matches))
	return nil
}

// Save writes analysis.json and metadata.json and registers the match.
// The returned meta carries the analysis file path.
func (s *FileStore) Save(ctx context.Context, meta models.MatchMeta, result *models.AnalysisResult) (models.MatchMeta, error) {
	if meta.ID == "" || meta.ID != filepath.Base(meta.ID) || strings.HasPrefix(meta.ID, ".") {
		return models.MatchMeta{}, fmt.Errorf("invalid match id %q", meta.ID)
	}

	dir := filepath.Join(s.dataDir, meta.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.MatchMeta{}, fmt.Errorf("create match dir: %w", err)
	}

	meta.AnalysisFile = s.analysisPath(meta.ID)
	if err := writeJSON(meta.AnalysisFile, result); err != nil {
		return models.MatchMeta{}, err
	}
	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return models.MatchMeta{}, err
	}

	s.mu.Lock()
	s.matches[meta.ID] = meta
	s.mu.Unlock()

	return meta, nil
}

// Load reads and validates the analysis of a registered match.
func (s *FileStore) Load(ctx context.Context, matchID string) (*models.AnalysisResult, error) {
	if _, ok := s.Get(matchID); !ok {
		return nil, models.ErrMatchNotFound
	}

	path := s.analysisPath(matchID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis: %w", err)
	}

	res, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	if !res.Valid() {
		schemaErr := &SchemaError{Path: path}
		for _, desc := range res.Errors() {
			schemaErr.Errors = append(schemaErr.Errors, desc.String())
		}
		return nil, schemaErr
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &result, nil
}

func (s *FileStore) analysisPath(matchID string) string {
	return filepath.Join(s.dataDir, matchID, analysisFile)
}

func (s *FileStore) Get(matchID string) (models.MatchMeta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.matches[matchID]
	return meta, ok
}

// List returns registered matches oldest first.
func (s *FileStore) List() []models.MatchMeta {
	s.mu.RLock()
	list := make([]models.MatchMeta, 0, len(s.matches))
	for _, meta := range s.matches {
		list = append(list, meta)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (s *FileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// Clear deletes every registered match directory and empties the registry.
// The registry is emptied even when some directories fail to delete.
func (s *FileStore) Clear(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.matches))
	var errs []error
	for id := range s.matches {
		ids = append(ids, id)
		if err := os.RemoveAll(filepath.Join(s.dataDir, id)); err != nil {
			errs = append(errs, err)
		}
	}
	s.matches = make(map[string]models.MatchMeta)
	sort.Strings(ids)

	return ids, errors.Join(errs...)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
