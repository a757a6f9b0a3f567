// Package storage persists completed runs under a data directory: one
// directory per run holding metadata.json, history.csv (per-step metric
// series) and snapshots.csv (particle snapshots).
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/galaxsph/internal/config"
	"github.com/san-kum/galaxsph/internal/evolve"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Config     *config.Config     `json:"config"`
	Metrics    map[string]float64 `json:"metrics"`
	StepsTaken int                `json:"steps_taken"`
}

// Save writes one run directory and returns its id.
func (s *Store) Save(cfg *config.Config, result *evolve.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Config:     cfg,
		Metrics:    result.Metrics,
		StepsTaken: result.StepsTaken,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := s.writeHistory(runDir, result); err != nil {
		return "", err
	}
	if err := s.writeSnapshots(runDir, result); err != nil {
		return "", err
	}
	return runID, nil
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

func (s *Store) writeHistory(runDir string, result *evolve.Result) error {
	f, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	names := make([]string, 0, len(result.History))
	for name := range result.History {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, t := range result.Times {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
		for _, name := range names {
			series := result.History[name]
			v := 0.0
			if i < len(series) {
				v = series[i]
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) writeSnapshots(runDir string, result *evolve.Result) error {
	f, err := os.Create(filepath.Join(runDir, "snapshots.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"step", "time", "id", "x", "y", "z", "vx", "vy", "vz", "u", "rho", "h", "m_gas"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, snap := range result.Snapshots {
		for _, p := range snap.Particles {
			row := []string{
				strconv.Itoa(snap.Step),
				strconv.FormatFloat(snap.Time, 'g', -1, 64),
				strconv.Itoa(p.ID),
				strconv.FormatFloat(p.Pos[0], 'g', -1, 64),
				strconv.FormatFloat(p.Pos[1], 'g', -1, 64),
				strconv.FormatFloat(p.Pos[2], 'g', -1, 64),
				strconv.FormatFloat(p.Vel[0], 'g', -1, 64),
				strconv.FormatFloat(p.Vel[1], 'g', -1, 64),
				strconv.FormatFloat(p.Vel[2], 'g', -1, 64),
				strconv.FormatFloat(p.U, 'g', -1, 64),
				strconv.FormatFloat(p.Rho, 'g', -1, 64),
				strconv.FormatFloat(p.H, 'g', -1, 64),
				strconv.FormatFloat(p.MGas, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

// List returns metadata for every stored run, newest last.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue // skip damaged run dirs
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) LoadMetadata(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, err
	}
	return meta, nil
}

// LoadHistory reads the per-step metric series of a run.
func (s *Store) LoadHistory(runID string) (times []float64, series map[string][]float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("storage: empty history for run %s", runID)
	}

	header := rows[0]
	series = make(map[string][]float64, len(header)-1)
	for _, row := range rows[1:] {
		for col, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, err
			}
			if col == 0 {
				times = append(times, v)
			} else {
				series[header[col]] = append(series[header[col]], v)
			}
		}
	}
	return times, series, nil
}

// LoadSnapshots reconstructs the stored snapshots of a run.
func (s *Store) LoadSnapshots(runID string) ([]evolve.Snapshot, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "snapshots.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var snaps []evolve.Snapshot
	for _, row := range rows[1:] {
		vals := make([]float64, len(row))
		for i, cell := range row {
			vals[i], err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, err
			}
		}

		step := int(vals[0])
		if len(snaps) == 0 || snaps[len(snaps)-1].Step != step {
			snaps = append(snaps, evolve.Snapshot{Step: step, Time: vals[1]})
		}
		last := &snaps[len(snaps)-1]
		last.Particles = append(last.Particles, evolve.ParticleState{
			ID:   int(vals[2]),
			Pos:  [3]float64{vals[3], vals[4], vals[5]},
			Vel:  [3]float64{vals[6], vals[7], vals[8]},
			U:    vals[9],
			Rho:  vals[10],
			H:    vals[11],
			MGas: vals[12],
		})
	}
	return snaps, nil
}

// ExportJSON writes a run's metadata and metric history as one JSON
// document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.LoadMetadata(runID)
	if err != nil {
		return err
	}
	times, series, err := s.LoadHistory(runID)
	if err != nil {
		return err
	}

	doc := struct {
		RunMetadata
		Times   []float64            `json:"times"`
		History map[string][]float64 `json:"history"`
	}{meta, times, series}

	if path == "" || path == "-" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return writeJSON(path, doc)
}
