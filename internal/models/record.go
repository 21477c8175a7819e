// file: internal/models/record.go
// version: 1.1.0
// guid: 3f7a1b2c-8d4e-4f5a-9b6c-7d8e9f0a1b2c

package models

import "time"

// Record is one row of the school directory.
type Record struct {
	Name          string `json:"school_name"`
	Village       string `json:"village"`
	District      string `json:"district"`
	Block         string `json:"block"`
	ManagementRaw string `json:"state_mgmt"`
	Management    string `json:"management"`
	Category      string `json:"school_category,omitempty"`
	Type          string `json:"school_type,omitempty"`
	Status        string `json:"school_status"`
	UDISECode     string `json:"udise_code"`

	// Case-folded shadow fields for containment pre-filtering.
	// Populated at load time, never rendered.
	NameLower    string `json:"-"`
	VillageLower string `json:"-"`
}

// MatchResult pairs a record with its confidence score (0-100).
type MatchResult struct {
	Record Record `json:"record"`
	Score  int    `json:"score"`
}

// DatasetInfo describes the currently loaded dataset.
type DatasetInfo struct {
	Version  string    `json:"version"`
	Source   string    `json:"source"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at"`
}
