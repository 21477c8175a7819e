// file: cmd/diagnostics.go
// version: 1.0.0
// guid: 3b5c7d9e-1f2a-4b4c-8d6e-0f2a4b6c8d0e

package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jdfalk/school-finder/internal/config"
	"github.com/jdfalk/school-finder/internal/store"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// doctorCmd inspects the configured data file and reports what the
// normalizer will make of it.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Inspect the data file and report ingestion problems",
	Long: `Doctor reads the configured data file and reports row and column
counts, which columns the loader recognizes, and how many rows would be
unusable for matching.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(config.AppConfig.DataFile)
	},
}

func runDoctor(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("data file unavailable: %w", err)
	}
	fmt.Printf("Data file: %s (%d bytes)\n", path, info.Size())

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open data file: %w", err)
	}
	defer f.Close()

	bar := progressbar.DefaultBytes(info.Size(), "reading")
	reader := csv.NewReader(io.TeeReader(f, bar))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("cannot read header row: %w", err)
	}

	recognized := make(map[string]bool, len(store.RecognizedColumns))
	for _, c := range store.RecognizedColumns {
		recognized[c] = true
	}

	var known, unknown, placeholders []string
	for _, h := range header {
		h = strings.TrimSpace(h)
		switch {
		case h == "" || strings.HasPrefix(strings.ToLower(h), "unnamed") || strings.EqualFold(h, "index"):
			placeholders = append(placeholders, h)
		case recognized[h]:
			known = append(known, h)
		default:
			unknown = append(unknown, h)
		}
	}

	nameIdx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == "school_name" {
			nameIdx = i
			break
		}
	}

	rows := 0
	blankNames := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("row %d unreadable: %w", rows+2, err)
		}
		rows++
		if nameIdx < 0 || nameIdx >= len(row) || strings.TrimSpace(row[nameIdx]) == "" {
			blankNames++
		}
	}
	_ = bar.Finish()
	fmt.Println()

	fmt.Printf("Rows: %d\n", rows)
	fmt.Printf("Recognized columns (%d): %s\n", len(known), strings.Join(known, ", "))
	if len(unknown) > 0 {
		fmt.Printf("Ignored columns (%d): %s\n", len(unknown), strings.Join(unknown, ", "))
	}
	if len(placeholders) > 0 {
		fmt.Printf("Dropped placeholder columns: %d\n", len(placeholders))
	}
	if nameIdx < 0 {
		fmt.Println("WARNING: no school_name column; nothing will be matchable")
	} else if blankNames > 0 {
		fmt.Printf("Rows without a school name (unmatchable): %d\n", blankNames)
	}

	// Normalized view, as the finder will see it
	ds := store.Load(path)
	fmt.Printf("Usable records after normalization: %d\n", ds.Len())
	fmt.Printf("Districts: %d\n", len(ds.Districts()))
	return nil
}
