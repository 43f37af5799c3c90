// Package storage persists runs on disk. Each run gets its own directory
// under the store root holding metadata.json, the step series as CSV and
// the cnf configuration snapshots written at block boundaries.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/system"
)

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string { return s.root }

// Stat is one summarised observable in the run metadata.
type Stat struct {
	Mean   float64 `json:"mean"`
	StdErr float64 `json:"stderr"`
}

type Meta struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Started   time.Time       `json:"started"`
	Finished  time.Time       `json:"finished"`
	Particles int             `json:"particles"`
	Box       float64         `json:"box"`
	Blocks    int             `json:"blocks"`
	Steps     int             `json:"steps"`
	Drift     float64         `json:"drift"`
	Summary   map[string]Stat `json:"summary"`
}

// Run is an open run directory. It satisfies the step sink interface of
// the simulation runner; Finish writes the metadata and closes the run.
type Run struct {
	dir  string
	meta Meta
}

// Begin creates the run directory and the series header. The caller fills
// Particles and Box in meta; identity and timestamps are set here.
func (s *Store) Begin(kind string, names []string, meta Meta) (*Run, error) {
	id := fmt.Sprintf("%s_%d", kind, time.Now().UnixNano())
	dir := filepath.Join(s.root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	meta.ID = id
	meta.Kind = kind
	meta.Started = time.Now()

	f, err := os.Create(filepath.Join(dir, "series.csv"))
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"step"}, names...)); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return &Run{dir: dir, meta: meta}, nil
}

func (r *Run) ID() string  { return r.meta.ID }
func (r *Run) Dir() string { return r.dir }

// AppendSteps appends series rows. The file is reopened per call so a
// crashed run keeps everything written up to its last block.
func (r *Run) AppendSteps(rows [][]float64) error {
	f, err := os.OpenFile(filepath.Join(r.dir, "series.csv"), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	record := make([]string, 0, 8)
	for _, row := range rows {
		record = record[:0]
		for _, val := range row {
			record = append(record, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveConfig snapshots the system as cnf.NNN for block NNN.
func (r *Run) SaveConfig(block int, sys *system.System) error {
	name := fmt.Sprintf("cnf.%03d", block)
	return WriteConfig(filepath.Join(r.dir, name), sys.Box, sys.R, sys.V)
}

// WriteFinal snapshots the system as cnf.out.
func (r *Run) WriteFinal(sys *system.System) error {
	return WriteConfig(filepath.Join(r.dir, "cnf.out"), sys.Box, sys.R, sys.V)
}

// SavePositions snapshots a velocity-free configuration as cnf.NNN.
func (r *Run) SavePositions(block int, box float64, pos []float64) error {
	name := fmt.Sprintf("cnf.%03d", block)
	return WriteConfig(filepath.Join(r.dir, name), box, pos, nil)
}

// WriteFinalPositions snapshots a velocity-free configuration as cnf.out.
func (r *Run) WriteFinalPositions(box float64, pos []float64) error {
	return WriteConfig(filepath.Join(r.dir, "cnf.out"), box, pos, nil)
}

// Finish completes the metadata and writes metadata.json.
func (r *Run) Finish(sum metrics.Summary, drift float64, steps int) error {
	r.meta.Finished = time.Now()
	r.meta.Blocks = sum.Blocks
	r.meta.Steps = steps
	r.meta.Drift = drift
	r.meta.Summary = make(map[string]Stat, len(sum.Names))
	for i, name := range sum.Names {
		r.meta.Summary[name] = Stat{Mean: sum.Mean[i], StdErr: sum.StdErr[i]}
	}

	f, err := os.Create(filepath.Join(r.dir, "metadata.json"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns the metadata of every finished run under the root.
// Directories without readable metadata are skipped.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Meta{}, nil
		}
		return nil, err
	}

	runs := make([]Meta, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(id string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(s.root, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads a run's series.csv back as the header names and the
// numeric rows. Rows that fail to parse are skipped.
func (s *Store) LoadSeries(id string) ([]string, [][]float64, error) {
	f, err := os.Open(filepath.Join(s.root, id, "series.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, [][]float64{}, nil
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, 0, len(record))
		ok := true
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			row = append(row, val)
		}
		if ok && len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return header, rows, nil
}

// ConfigPath resolves a file name inside a run directory.
func (s *Store) ConfigPath(id, name string) string {
	return filepath.Join(s.root, id, name)
}
