// Package pbpstore reads and writes the on-disk data layout: play-by-play
// day files partitioned as pbp/{year}/{month}/{day}.json, per-year
// manifests, and monthly stats files under stats/{year}/{MM}.json.
package pbpstore

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/prospectlab/milbstats/internal/model"
)

// Store is rooted at the data directory.
type Store struct {
	root string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

func (s *Store) pbpDir() string   { return filepath.Join(s.root, "pbp") }
func (s *Store) statsDir() string { return filepath.Join(s.root, "stats") }

// dayExtensions are tried in order when loading a day file. Plain JSON is
// what WriteDay produces; compressed variants come from archived data.
var dayExtensions = []string{".json", ".json.gz", ".json.zst"}

// splitDate breaks a YYYY-MM-DD string into its path components.
func splitDate(date string) (year, month, day string, err error) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	return parts[0], parts[1], parts[2], nil
}

// LoadDay loads one date's games. Returns (nil, nil) when no file exists
// for the date in any supported encoding.
func (s *Store) LoadDay(date string) (*model.DayFile, error) {
	year, month, day, err := splitDate(date)
	if err != nil {
		return nil, err
	}
	base := filepath.Join(s.pbpDir(), year, month, day)
	for _, ext := range dayExtensions {
		path := base + ext
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var df model.DayFile
		if err := decodeFile(path, &df); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return &df, nil
	}
	return nil, nil
}

// WriteDay writes one date's games as compact JSON, creating the month
// directory as needed.
func (s *Store) WriteDay(date string, df *model.DayFile) error {
	year, month, day, err := splitDate(date)
	if err != nil {
		return err
	}
	dir := filepath.Join(s.pbpDir(), year, month)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	data, err := json.Marshal(df)
	if err != nil {
		return fmt.Errorf("encode day file: %w", err)
	}
	path := filepath.Join(dir, day+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadMonth loads every game recorded for a month, in day order. A day
// file that fails to decode is skipped with a warning; one bad file never
// sinks the whole month.
func (s *Store) LoadMonth(year, month int) ([]model.Game, error) {
	dir := filepath.Join(s.pbpDir(), strconv.Itoa(year), fmt.Sprintf("%02d", month))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isDayFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var games []model.Game
	for _, name := range names {
		path := filepath.Join(dir, name)
		var df model.DayFile
		if err := decodeFile(path, &df); err != nil {
			fmt.Fprintf(os.Stderr, "  [warn] skipping %s: %v\n", path, err)
			continue
		}
		games = append(games, df.Games...)
	}
	return games, nil
}

func isDayFile(name string) bool {
	for _, ext := range dayExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// decodeFile JSON-decodes a possibly compressed file into out.
func decodeFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var src io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}
	return json.NewDecoder(src).Decode(out)
}

// UpdateManifest rescans a year's day files and rewrites its manifest.
func (s *Store) UpdateManifest(year int) error {
	yearDir := filepath.Join(s.pbpDir(), strconv.Itoa(year))
	if err := os.MkdirAll(yearDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", yearDir, err)
	}

	months := make(map[int][]int)
	for month := 1; month <= 12; month++ {
		dir := filepath.Join(yearDir, fmt.Sprintf("%02d", month))
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		var days []int
		for _, e := range entries {
			if e.IsDir() || !isDayFile(e.Name()) {
				continue
			}
			stem := strings.SplitN(e.Name(), ".", 2)[0]
			day, err := strconv.Atoi(stem)
			if err != nil {
				continue
			}
			days = append(days, day)
		}
		if len(days) > 0 {
			sort.Ints(days)
			months[month] = days
		}
	}

	manifest := model.Manifest{
		Year:    year,
		Updated: time.Now().Format(time.RFC3339),
		Months:  months,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(yearDir, "manifest.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadManifest loads one year's manifest, or (nil, nil) if absent.
func (s *Store) LoadManifest(year int) (*model.Manifest, error) {
	path := filepath.Join(s.pbpDir(), strconv.Itoa(year), "manifest.json")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	var m model.Manifest
	if err := decodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &m, nil
}

// Years lists the years with any play-by-play data, ascending.
func (s *Store) Years() ([]int, error) {
	entries, err := os.ReadDir(s.pbpDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var years []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		y, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// MonthRef names one monthly stats file.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// StatsMonths lists every month with a stats file, ascending.
func (s *Store) StatsMonths() ([]MonthRef, error) {
	entries, err := os.ReadDir(s.statsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var refs []MonthRef
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		year, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		files, err := os.ReadDir(filepath.Join(s.statsDir(), e.Name()))
		if err != nil {
			continue
		}
		for _, f := range files {
			stem, ok := strings.CutSuffix(f.Name(), ".json")
			if !ok {
				continue
			}
			month, err := strconv.Atoi(stem)
			if err != nil || month < 1 || month > 12 {
				continue
			}
			refs = append(refs, MonthRef{Year: year, Month: month})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Year != refs[j].Year {
			return refs[i].Year < refs[j].Year
		}
		return refs[i].Month < refs[j].Month
	})
	return refs, nil
}

// LoadMonthlyStats loads a month's stats file, or a fresh skeleton if the
// file does not exist yet.
func (s *Store) LoadMonthlyStats(year, month int) (*model.MonthlyStats, error) {
	path := filepath.Join(s.statsDir(), strconv.Itoa(year), fmt.Sprintf("%02d.json", month))
	if _, err := os.Stat(path); err != nil {
		return &model.MonthlyStats{
			Year:    year,
			Month:   month,
			Updated: time.Now().Format(time.RFC3339),
			Players: make(map[string]map[string]any),
		}, nil
	}
	var ms model.MonthlyStats
	if err := decodeFile(path, &ms); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if ms.Players == nil {
		ms.Players = make(map[string]map[string]any)
	}
	return &ms, nil
}

// SaveMonthlyStats writes a month's stats file as compact JSON, stamping
// the update time.
func (s *Store) SaveMonthlyStats(ms *model.MonthlyStats) error {
	dir := filepath.Join(s.statsDir(), strconv.Itoa(ms.Year))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	ms.Updated = time.Now().Format(time.RFC3339)
	data, err := json.Marshal(ms)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%02d.json", ms.Month))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
