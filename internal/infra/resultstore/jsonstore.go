// Package resultstore persists analysis results as JSON files for
// reproducibility, one file per run plus an optional JSONL index.
package resultstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pcastellanos/hubblefit/internal/domain"
	"github.com/pcastellanos/hubblefit/internal/ports"
)

const defaultResultsDir = "results"

type JSONStore struct {
	dir        string
	writeIndex bool
	now        func() time.Time
	newID      func() string
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: <dir>/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDGenerator is useful for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(dir string, opts ...Option) *JSONStore {
	if strings.TrimSpace(dir) == "" {
		dir = defaultResultsDir
	}

	s := &JSONStore{
		dir:        dir,
		writeIndex: true,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ResultStore = (*JSONStore)(nil)

func (s *JSONStore) SaveResult(res domain.AnalysisResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "resultstore.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	ts := res.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := res
	if toSave.ID == "" {
		toSave.ID = s.newID()
	}
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), toSave.ID)
	path := filepath.Join(s.dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "resultstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "resultstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "resultstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(filename, toSave)
	}

	return toSave.ID, nil
}

func (s *JSONStore) appendIndex(filename string, res domain.AnalysisResult) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Catalog   string    `json:"catalog"`
		H0        float64   `json:"h0_km_s_mpc"`
		AgeGyr    float64   `json:"age_gyr"`
		StartedAt time.Time `json:"started_at"`
	}
	line, err := json.Marshal(idx{
		ID:        res.ID,
		File:      filename,
		Catalog:   res.CatalogPath,
		H0:        res.Fit.H0,
		AgeGyr:    res.Age.Gyr,
		StartedAt: res.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(s.dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}
