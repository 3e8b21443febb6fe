package resultstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pcastellanos/hubblefit/internal/domain"
)

func sampleResult() domain.AnalysisResult {
	return domain.AnalysisResult{
		CatalogPath:    "data/galaxies.txt",
		TotalPoints:    4,
		MaxDistanceMpc: 100,
		Fit: domain.FitResult{
			H0:         70,
			H0Stderr:   0.5,
			PointsUsed: 4,
		},
		Age:       domain.AgeEstimate{Gyr: 13.97, StderrGyr: 0.1},
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSaveResult(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir, WithIDGenerator(func() string { return "abc123" }))

	id, err := store.SaveResult(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "abc123" {
		t.Fatalf("expected generated id, got %q", id)
	}

	path := filepath.Join(dir, "20260102T030405Z_abc123.json")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("result file not written: %v", err)
	}

	var got domain.AnalysisResult
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("result file not valid JSON: %v", err)
	}
	if got.ID != "abc123" || got.Fit.H0 != 70 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestSaveResult_KeepsExistingID(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	res := sampleResult()
	res.ID = "preset"

	id, err := store.SaveResult(res)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "preset" {
		t.Fatalf("expected preset id, got %q", id)
	}
}

func TestSaveResult_Index(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir, WithIDGenerator(func() string { return "idx1" }))

	if _, err := store.SaveResult(sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "index.jsonl"))
	if err != nil {
		t.Fatalf("index not written: %v", err)
	}
	line := strings.TrimSpace(string(b))
	if !strings.Contains(line, `"id":"idx1"`) {
		t.Fatalf("index line missing id: %s", line)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("index line not JSON: %v", err)
	}
	if entry["h0_km_s_mpc"].(float64) != 70 {
		t.Fatalf("index missing fit value: %v", entry)
	}
}

func TestSaveResult_NoIndex(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir, WithIndex(false))

	if _, err := store.SaveResult(sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.jsonl")); !os.IsNotExist(err) {
		t.Fatalf("index should not exist, stat err = %v", err)
	}
}

func TestSaveResult_ZeroStartedAtUsesClock(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 6, 7, 8, 9, 10, 0, time.UTC)
	store := NewJSONStore(dir,
		WithNow(func() time.Time { return fixed }),
		WithIDGenerator(func() string { return "clock" }),
	)

	res := sampleResult()
	res.StartedAt = time.Time{}

	if _, err := store.SaveResult(res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "20260607T080910Z_clock.json")); err != nil {
		t.Fatalf("expected filename from injected clock: %v", err)
	}
}
