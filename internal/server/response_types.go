// file: internal/server/response_types.go
// version: 1.0.0
// guid: 5f7a9b1c-3d4e-4f6a-8b8c-0d2e4f6a8b0c

package server

import "github.com/jdfalk/school-finder/internal/models"

// Search outcome states. Distinct so the UI can tell "no query yet",
// "district has no schools" and "searched, nothing confident enough"
// apart.
const (
	StatusOK            = "ok"
	StatusNoMatch       = "no_match"
	StatusEmptyDistrict = "empty_district"
	StatusEmptyDataset  = "empty_dataset"
)

// SchoolResult is one ranked search hit, shaped for display.
type SchoolResult struct {
	Name       string `json:"school_name"`
	UDISECode  string `json:"udise_code"`
	District   string `json:"district"`
	Block      string `json:"block"`
	Village    string `json:"village"`
	Management string `json:"management"`
	Status     string `json:"school_status,omitempty"`
	Confidence int    `json:"confidence"`
	VerifyURL  string `json:"verify_url,omitempty"`
}

// SearchResponse is the full answer to one search request.
type SearchResponse struct {
	Status    string         `json:"status"`
	Message   string         `json:"message,omitempty"`
	Query     string         `json:"query"`
	District  string         `json:"district"`
	Threshold int            `json:"threshold"`
	Count     int            `json:"count"`
	Results   []SchoolResult `json:"results"`
	Dataset   string         `json:"dataset_version"`
}

// DistrictsResponse lists the selectable districts, sentinel first.
type DistrictsResponse struct {
	Districts []string `json:"districts"`
	Count     int      `json:"count"`
}

// DatasetResponse reports the active dataset and whether an upload is
// needed.
type DatasetResponse struct {
	Dataset models.DatasetInfo `json:"dataset"`
	Empty   bool               `json:"empty"`
	Message string             `json:"message,omitempty"`
}
