package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/gravlens/internal/sampler"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// Columns is the header of frames.csv.
var Columns = []string{"time", "mean_warp", "mean_brightness", "interference", "peak_displacement", "active_sources"}

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
	ID        string             `json:"id"`
	Source    string             `json:"source"`
	Mode      string             `json:"mode"`
	Theme     string             `json:"theme"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint32             `json:"seed,omitempty"`
	FPS       float64            `json:"fps"`
	Duration  float64            `json:"duration"`
	Strength  float64            `json:"strength"`
	Frames    int                `json:"frames"`
	Anomalies int                `json:"anomalies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Series holds the per-frame channels of a run.
type Series struct {
	Times            []float64 `json:"times"`
	MeanWarp         []float64 `json:"mean_warp"`
	MeanBrightness   []float64 `json:"mean_brightness"`
	Interference     []float64 `json:"interference"`
	PeakDisplacement []float64 `json:"peak_displacement"`
	ActiveSources    []float64 `json:"active_sources"`
}

// NewSeries extracts the per-frame channels of a sampler result.
func NewSeries(res *sampler.Result) *Series {
	n := len(res.Frames)
	s := &Series{
		Times:            make([]float64, n),
		MeanWarp:         make([]float64, n),
		MeanBrightness:   make([]float64, n),
		Interference:     make([]float64, n),
		PeakDisplacement: make([]float64, n),
		ActiveSources:    make([]float64, n),
	}
	for i, f := range res.Frames {
		s.Times[i] = f.Time
		s.MeanWarp[i] = f.MeanWarp()
		s.MeanBrightness[i] = f.MeanBrightness()
		s.Interference[i] = f.Interference
		s.PeakDisplacement[i] = f.PeakDisplacement()
		s.ActiveSources[i] = float64(f.ActiveSources())
	}
	return s
}

// Len returns the number of frames.
func (s *Series) Len() int { return len(s.Times) }

func (s *Series) row(i int) []float64 {
	return []float64{s.Times[i], s.MeanWarp[i], s.MeanBrightness[i], s.Interference[i], s.PeakDisplacement[i], s.ActiveSources[i]}
}

// Column returns the channel with the given header name.
func (s *Series) Column(name string) ([]float64, error) {
	switch name {
	case "time":
		return s.Times, nil
	case "mean_warp":
		return s.MeanWarp, nil
	case "mean_brightness":
		return s.MeanBrightness, nil
	case "interference":
		return s.Interference, nil
	case "peak_displacement":
		return s.PeakDisplacement, nil
	case "active_sources":
		return s.ActiveSources, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
}

// Save writes a new run and returns its id. ID, Timestamp and Frames of
// meta are filled in.
func (s *Store) Save(meta RunMetadata, res *sampler.Result) (string, error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = time.Now().UTC()
	meta.Frames = len(res.Frames)
	if meta.Metrics == nil {
		meta.Metrics = res.Metrics
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, NewSeries(res)); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns all readable runs, newest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < len(Columns) {
			continue
		}

		vals := make([]float64, len(Columns))
		ok := true
		for j := range Columns {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		series.Times = append(series.Times, vals[0])
		series.MeanWarp = append(series.MeanWarp, vals[1])
		series.MeanBrightness = append(series.MeanBrightness, vals[2])
		series.Interference = append(series.Interference, vals[3])
		series.PeakDisplacement = append(series.PeakDisplacement, vals[4])
		series.ActiveSources = append(series.ActiveSources, vals[5])
	}
	return series, nil
}
