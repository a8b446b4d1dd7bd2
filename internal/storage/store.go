package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/chromafill/internal/config"
	"github.com/san-kum/chromafill/internal/fill"
	"github.com/san-kum/chromafill/internal/palette"
)

const (
	metadataFile    = "metadata.json"
	assignmentsFile = "assignments.csv"
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
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Cols        int                `json:"cols"`
	Coherence   float64            `json:"coherence"`
	Opacity     float64            `json:"opacity"`
	StepDelayMs float64            `json:"step_delay_ms"`
	StartFrom   string             `json:"start_from"`
	Start       int                `json:"start"`
	Seed        int64              `json:"seed"`
	Background  string             `json:"background"`
	Blocked     []int              `json:"blocked,omitempty"`
	Colored     int                `json:"colored"`
	Remaining   int                `json:"remaining"`
	Canceled    bool               `json:"canceled"`
	ElapsedMs   float64            `json:"elapsed_ms"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and assignments.csv under a new run directory
// and returns the run id.
func (s *Store) Save(cfg *config.Config, result *fill.Result) (string, error) {
	fc, err := cfg.FillConfig()
	if err != nil {
		return "", err
	}

	now := time.Now()
	runID := fmt.Sprintf("fill_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   now,
		Cols:        cfg.Cols,
		Coherence:   cfg.Coherence,
		Opacity:     cfg.Opacity,
		StepDelayMs: cfg.StepDelayMs,
		StartFrom:   cfg.StartFrom,
		Start:       fc.Start,
		Seed:        cfg.Seed,
		Background:  cfg.Background,
		Blocked:     cfg.Blocked,
		Colored:     len(result.Assignments),
		Remaining:   result.Remaining,
		Canceled:    result.Canceled,
		ElapsedMs:   float64(result.Elapsed.Microseconds()) / 1000,
		Metrics:     result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	if err := writeMetadata(metaFile, meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, assignmentsFile))
	if err != nil {
		return "", err
	}
	if err := writeAssignments(csvFile, result.Assignments); err != nil {
		return "", err
	}

	return runID, nil
}

// writeMetadata encodes meta into f and closes it. A failed close is an
// error like a failed write, since buffered data may not have reached disk.
func writeMetadata(f io.WriteCloser, meta RunMetadata) error {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeAssignments writes one CSV row per assignment into f and closes it.
func writeAssignments(f io.WriteCloser, assignments []fill.Assignment) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "index", "depth", "color"}); err != nil {
		f.Close()
		return err
	}
	for _, a := range assignments {
		row := []string{
			strconv.Itoa(a.Step),
			strconv.Itoa(a.Index),
			strconv.Itoa(a.Depth),
			a.Color.String(),
		}
		if err := w.Write(row); err != nil {
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

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadAssignments reads a run's assignments back. A malformed row is an
// error; stored runs are not silently repaired.
func (s *Store) LoadAssignments(runID string) ([]fill.Assignment, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, assignmentsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []fill.Assignment{}, nil
	}

	out := make([]fill.Assignment, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2
		var ints [3]int
		for j := 0; j < 3; j++ {
			v, err := strconv.Atoi(record[j])
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", assignmentsFile, line, err)
			}
			ints[j] = v
		}
		c, err := palette.ParseColor(record[3])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", assignmentsFile, line, err)
		}
		out = append(out, fill.Assignment{Step: ints[0], Index: ints[1], Depth: ints[2], Color: c})
	}

	return out, nil
}
