package combined

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is the reconciled, denormalized projection for one
// (identity group, account) pair. Source fields are attached where a matching
// record existed; absent fields stay empty, which is itself a reportable
// data-quality signal (e.g. a group membership with no HR match).
type Record struct {
	IdentityGroup   string
	AccountID       string
	Application     string
	Suite           string
	EnvironmentCode string
	Critical        string

	// HR
	Department     string
	JobRole        string
	Division       string
	LeaveDate      *time.Time
	EmployeeNumber string

	// Packaging
	PackageStatus    string
	PackageReadyDate string

	// Testing
	TestStatus   string
	TestDate     string
	TestResult   string
	TestComments string

	// Migration metadata
	NewApplication     string
	NewSuite           string
	Scope              string
	WillBe             string
	Platform           string
	MigrationReadiness string

	// Clustering
	DepartmentSimple string
	Domain           string
	MigrationCluster string
	ClusterReadiness string

	ImportedAt time.Time
	BatchID    uuid.UUID
}

// HasLeft reports whether the account departed before now; accounts without a
// leave date never count as departed.
func (r Record) HasLeft(now time.Time) bool {
	return r.LeaveDate != nil && r.LeaveDate.Before(now)
}

// OutOfScope reports the migration scope classification "out".
func (r Record) OutOfScope() bool {
	return strings.EqualFold(r.Scope, "out")
}

// HasWillBe reports a redirect to a successor application.
func (r Record) HasWillBe() bool {
	return r.WillBe != ""
}
