// file: internal/store/store_test.go
// version: 1.1.0
// guid: 6d8e0f2a-4b5c-4d6e-8f0a-2b4c6d8e0f2a

package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const sampleCSV = `Unnamed: 0, school_name ,village, district ,block,state_mgmt,school_status,udise_code
0,Govt High School Mysuru,Hebbal,Mysuru,Mysuru North,Govt,Operational,29260100101
1,Govt Higher Primary School Mysoor,Ilavala,Mysuru,Mysuru North,Government,Operational,29260100202
2,St Marys Private Aided School,Kuvempunagar,Mysuru,Mysuru South,Pvt Aided,Operational,29260100303
3,National Public School,Jayanagar,Bengaluru Urban,South 4,Private Unaided,Operational,29280100404
`

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schools.csv")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadNormalizes(t *testing.T) {
	ds := Load(writeCSV(t, sampleCSV))
	if ds.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ds.Len())
	}

	rec := ds.Records()[0]
	if rec.Name != "Govt High School Mysuru" {
		t.Errorf("Name = %q", rec.Name)
	}
	// Headers are trimmed before matching, so " school_name " and
	// " district " still resolve.
	if rec.District != "Mysuru" {
		t.Errorf("District = %q", rec.District)
	}
	if rec.NameLower != "govt high school mysuru" {
		t.Errorf("NameLower = %q", rec.NameLower)
	}
	if rec.VillageLower != "hebbal" {
		t.Errorf("VillageLower = %q", rec.VillageLower)
	}
	if rec.Management != "Government" {
		t.Errorf("Management = %q", rec.Management)
	}
	// school_category is absent from the source: coerced to "".
	if rec.Category != "" {
		t.Errorf("Category = %q, want empty", rec.Category)
	}
}

func TestLoadMissingFileSoftFails(t *testing.T) {
	ds := Load(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	if ds == nil {
		t.Fatal("Load returned nil dataset")
	}
	if !ds.Empty() {
		t.Errorf("expected empty dataset, got %d records", ds.Len())
	}
	if ds.Version == "" {
		t.Error("empty dataset should still carry a version")
	}
}

func TestLoadMalformedSoftFails(t *testing.T) {
	// Unterminated quote makes the CSV unreadable.
	ds := Load(writeCSV(t, "school_name,district\n\"broken,Mysuru\nok,Mysuru\n"))
	if !ds.Empty() {
		t.Errorf("expected empty dataset, got %d records", ds.Len())
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	ds := Load(writeCSV(t, "school_name,district\nA School,Mysuru\n,\n , \n"))
	if ds.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ds.Len())
	}
}

func TestLoadReaderMatchesLoad(t *testing.T) {
	ds := LoadReader(strings.NewReader(sampleCSV), "upload.csv")
	if ds.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ds.Len())
	}
	if ds.Source != "upload.csv" {
		t.Errorf("Source = %q", ds.Source)
	}
}

func TestFilterByDistrict(t *testing.T) {
	ds := Load(writeCSV(t, sampleCSV))

	got := ds.FilterByDistrict("  mysuru ")
	if got.Len() != 3 {
		t.Fatalf("filtered Len() = %d, want 3", got.Len())
	}
	for _, rec := range got.Records() {
		if !strings.EqualFold(rec.District, "Mysuru") {
			t.Errorf("record %q leaked district %q", rec.Name, rec.District)
		}
	}

	if none := ds.FilterByDistrict("Kodagu"); !none.Empty() {
		t.Errorf("unknown district returned %d records", none.Len())
	}
}

func TestFilterByDistrictSentinel(t *testing.T) {
	ds := Load(writeCSV(t, sampleCSV))
	if got := ds.FilterByDistrict(AllDistricts); got != ds {
		t.Error("sentinel filter should return the dataset unchanged")
	}
	if got := ds.FilterByDistrict(""); got != ds {
		t.Error("empty district should return the dataset unchanged")
	}
}

func TestDistrictsSortedUnique(t *testing.T) {
	ds := Load(writeCSV(t, sampleCSV))
	districts := ds.Districts()
	want := []string{"Bengaluru Urban", "Mysuru"}
	if len(districts) != len(want) {
		t.Fatalf("Districts() = %v, want %v", districts, want)
	}
	if !sort.StringsAreSorted(districts) {
		t.Errorf("Districts() not sorted: %v", districts)
	}
	for i := range want {
		if districts[i] != want[i] {
			t.Errorf("Districts()[%d] = %q, want %q", i, districts[i], want[i])
		}
	}
}

func TestStoreReplace(t *testing.T) {
	first := Load(writeCSV(t, sampleCSV))
	st := NewStore(first)
	if st.Current() != first {
		t.Fatal("Current() should return the initial dataset")
	}

	second := LoadReader(strings.NewReader("school_name,district\nNew School,Udupi\n"), "upload.csv")
	old := st.Replace(second)
	if old != first {
		t.Error("Replace should return the displaced dataset")
	}
	if st.Current() != second {
		t.Error("Current() should return the replacement")
	}
	if first.Version == second.Version {
		t.Error("datasets should carry distinct versions")
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Govt  High   School ", "govt high school"},
		{"MYSURU", "mysuru"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
