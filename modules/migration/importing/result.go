package importing

import "github.com/iota-uz/migscope/modules/migration/domain/records"

// RowError is one rejected data row: its 1-based sheet row number and the
// ordered human-readable reasons.
type RowError struct {
	Row     int      `json:"row"`
	Reasons []string `json:"reasons"`
}

// Duplicate is one row whose natural key an earlier row already claimed.
type Duplicate struct {
	Row int    `json:"row"`
	Key string `json:"key"`
}

// Result partitions the data rows of one import. The partition is exhaustive:
// Valid + len(Invalid) + len(Duplicates) + Blank == DataRows.
type Result struct {
	Kind       records.Kind `json:"kind"`
	Valid      int          `json:"valid"`
	Invalid    []RowError   `json:"invalid"`
	Duplicates []Duplicate  `json:"duplicates"`
	Blank      int          `json:"blank"`
	DataRows   int          `json:"dataRows"`
}

// Dataset carries the accepted records of one import run; only the slice
// matching Kind is populated.
type Dataset struct {
	Kind      records.Kind
	Groups    []records.Group
	Personnel []records.Person
	Packages  []records.PackageStatus
	Tests     []records.TestStatus
	Migration []records.Migration
	Clusters  []records.Cluster
}
