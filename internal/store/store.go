// file: internal/store/store.go
// version: 1.3.0
// guid: 5b8c2d1e-9f4a-4b7c-8d3e-2a1b0c9d8e7f

package store

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jdfalk/school-finder/internal/models"
	ulid "github.com/oklog/ulid/v2"
)

// AllDistricts is the sentinel district value that bypasses filtering.
const AllDistricts = "All Districts"

// Recognized column headers. Matched case-sensitively after trimming;
// absent columns are tolerated and default to empty strings.
const (
	colSchoolName     = "school_name"
	colVillage        = "village"
	colDistrict       = "district"
	colBlock          = "block"
	colStateMgmt      = "state_mgmt"
	colSchoolCategory = "school_category"
	colSchoolType     = "school_type"
	colSchoolStatus   = "school_status"
	colUDISECode      = "udise_code"
)

// RecognizedColumns lists the headers the normalizer understands, in
// display order.
var RecognizedColumns = []string{
	colSchoolName, colVillage, colDistrict, colBlock, colStateMgmt,
	colSchoolCategory, colSchoolType, colSchoolStatus, colUDISECode,
}

// Dataset is an immutable, normalized snapshot of the school directory.
type Dataset struct {
	Version  string
	Source   string
	LoadedAt time.Time

	records   []models.Record
	districts []string
}

// Records returns the normalized records in load order.
func (d *Dataset) Records() []models.Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Empty reports whether the dataset holds no records.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// Districts returns the sorted, de-duplicated district names present in
// the dataset. The "All Districts" sentinel is not included; callers that
// present a district picker prepend it themselves.
func (d *Dataset) Districts() []string {
	if d == nil {
		return nil
	}
	return d.districts
}

// Info summarizes the dataset for status endpoints and logs.
func (d *Dataset) Info() models.DatasetInfo {
	if d == nil {
		return models.DatasetInfo{}
	}
	return models.DatasetInfo{
		Version:  d.Version,
		Source:   d.Source,
		Records:  len(d.records),
		LoadedAt: d.LoadedAt,
	}
}

// FilterByDistrict returns the subset of records whose district matches
// the given name (trimmed, case-insensitive exact match). The sentinel
// "All Districts" and the empty string return the dataset unchanged.
func (d *Dataset) FilterByDistrict(district string) *Dataset {
	district = strings.TrimSpace(district)
	if d == nil || district == "" || strings.EqualFold(district, AllDistricts) {
		return d
	}

	filtered := make([]models.Record, 0)
	for _, rec := range d.records {
		if strings.EqualFold(strings.TrimSpace(rec.District), district) {
			filtered = append(filtered, rec)
		}
	}
	return &Dataset{
		Version:   d.Version,
		Source:    d.Source,
		LoadedAt:  d.LoadedAt,
		records:   filtered,
		districts: collectDistricts(filtered),
	}
}

// Load reads the directory from a CSV file. Failures are soft: a missing
// or malformed file yields an empty dataset and a log line, never an
// error. Callers check Empty() and offer the upload path instead.
func Load(path string) *Dataset {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[WARN] dataset file unavailable: %v", err)
		return newDataset(nil, path)
	}
	defer f.Close()

	return LoadReader(f, path)
}

// LoadReader reads the directory from an arbitrary byte stream (e.g. an
// uploaded file) with the same normalization and the same soft-failure
// contract as Load.
func LoadReader(r io.Reader, source string) *Dataset {
	records, err := parseCSV(r)
	if err != nil {
		log.Printf("[WARN] dataset source %s unreadable: %v", source, err)
		return newDataset(nil, source)
	}
	return newDataset(records, source)
}

func newDataset(records []models.Record, source string) *Dataset {
	return &Dataset{
		Version:   ulid.Make().String(),
		Source:    source,
		LoadedAt:  time.Now(),
		records:   records,
		districts: collectDistricts(records),
	}
}

func parseCSV(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := headerIndex(rows[0])
	records := make([]models.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := rowToRecord(row, cols)
		if blankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// headerIndex maps trimmed column names to their positions, dropping
// unnamed/index placeholder columns produced by spreadsheet exports.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if isPlaceholderColumn(name) {
			continue
		}
		if _, exists := cols[name]; !exists {
			cols[name] = i
		}
	}
	return cols
}

func isPlaceholderColumn(name string) bool {
	if name == "" {
		return true
	}
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "unnamed") || lower == "index"
}

func rowToRecord(row []string, cols map[string]int) models.Record {
	rec := models.Record{
		Name:          field(row, cols, colSchoolName),
		Village:       field(row, cols, colVillage),
		District:      field(row, cols, colDistrict),
		Block:         field(row, cols, colBlock),
		ManagementRaw: field(row, cols, colStateMgmt),
		Category:      field(row, cols, colSchoolCategory),
		Type:          field(row, cols, colSchoolType),
		Status:        field(row, cols, colSchoolStatus),
		UDISECode:     field(row, cols, colUDISECode),
	}
	rec.Management = ClassifyManagement(rec.ManagementRaw)
	rec.NameLower = Fold(rec.Name)
	rec.VillageLower = Fold(rec.Village)
	return rec
}

// field coerces a cell to a trimmed string, substituting "" when the
// column is absent or the row is short.
func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRecord(rec models.Record) bool {
	return rec.Name == "" && rec.Village == "" && rec.District == "" &&
		rec.Block == "" && rec.UDISECode == ""
}

func collectDistricts(records []models.Record) []string {
	seen := make(map[string]string)
	for _, rec := range records {
		d := strings.TrimSpace(rec.District)
		if d == "" {
			continue
		}
		key := strings.ToLower(d)
		if _, ok := seen[key]; !ok {
			seen[key] = d
		}
	}
	districts := make([]string, 0, len(seen))
	for _, d := range seen {
		districts = append(districts, d)
	}
	sort.Strings(districts)
	return districts
}

// Store holds the active dataset. Replace swaps it wholesale; there is no
// partial update path.
type Store struct {
	mu      sync.RWMutex
	current *Dataset
}

// NewStore creates a store around an initial dataset (which may be empty).
func NewStore(ds *Dataset) *Store {
	if ds == nil {
		ds = newDataset(nil, "")
	}
	return &Store{current: ds}
}

// Current returns the active dataset snapshot.
func (s *Store) Current() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in a new dataset and returns the one it displaced.
func (s *Store) Replace(ds *Dataset) *Dataset {
	if ds == nil {
		return s.Current()
	}
	s.mu.Lock()
	old := s.current
	s.current = ds
	s.mu.Unlock()
	log.Printf("Dataset replaced: %d records from %s (version %s)", ds.Len(), ds.Source, ds.Version)
	return old
}
