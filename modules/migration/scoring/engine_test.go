package scoring

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/migscope/modules/migration/domain/aggregates/combined"
)

func rec(group, account, app, dept, division, pkgStatus, testStatus string) combined.Record {
	return combined.Record{
		IdentityGroup: group,
		AccountID:     account,
		Application:   app,
		Department:    dept,
		Division:      division,
		PackageStatus: pkgStatus,
		TestStatus:    testStatus,
	}
}

func TestScore_PerApplicationMean(t *testing.T) {
	records := []combined.Record{
		rec("G1", "u1", "App A", "Dept 1", "East", "Ready", "In Progress"),
		rec("G2", "u2", "App A", "Dept 1", "East", "Ready", "In Progress"),
	}

	report := Score(records, Options{})
	require.Len(t, report.Applications, 1)
	app := report.Applications[0]
	require.Equal(t, 2, app.Users)
	require.Equal(t, 100.0, app.PackagePct)
	require.Equal(t, 30.0, app.TestPct)
	require.Equal(t, 65.0, app.Progress)
}

func TestScore_WeightedDivisionProgress(t *testing.T) {
	// Dept 1 has three applications at 100% package progress, Dept 2 has one
	// at 0%. The division mean weights by application count: 75%, not 50%.
	records := []combined.Record{
		rec("G1", "u1", "App A", "Dept 1", "East", "Ready", "Not Started"),
		rec("G2", "u2", "App B", "Dept 1", "East", "Completed", "Not Started"),
		rec("G3", "u3", "App C", "Dept 1", "East", "Passed", "Not Started"),
		rec("G4", "u4", "App D", "Dept 2", "East", "Not Started", "Not Started"),
	}

	report := Score(records, Options{})
	require.Len(t, report.Divisions, 1)
	require.Equal(t, "East", report.Divisions[0].Name)
	require.Equal(t, 4, report.Divisions[0].Applications)
	require.Equal(t, 75.0, report.Divisions[0].PackagePct)
}

func TestScore_RollUpDistinctUsers(t *testing.T) {
	// u1 appears in both departments; the division still counts one user.
	records := []combined.Record{
		rec("G1", "u1", "App A", "Dept 1", "East", "Ready", "Ready"),
		rec("G2", "u1", "App B", "Dept 2", "East", "Ready", "Ready"),
		rec("G3", "u2", "App B", "Dept 2", "East", "Ready", "Ready"),
	}

	report := Score(records, Options{})
	require.Len(t, report.Departments, 2)
	require.Equal(t, 1, report.Departments[0].Users)
	require.Equal(t, 2, report.Departments[1].Users)

	require.Len(t, report.Divisions, 1)
	require.Equal(t, 2, report.Divisions[0].Users)
}

func TestScore_OrderIndependent(t *testing.T) {
	records := []combined.Record{
		rec("G1", "u1", "App A", "Dept 1", "East", "Ready", "PAT OK"),
		rec("G2", "u2", "App B", "Dept 1", "East", "In Progress", "GAT OK"),
		rec("G3", "u3", "App C", "Dept 2", "East", "Not Started", ""),
		rec("G4", "u4", "App A", "Dept 2", "East", "Ready", "PAT OK"),
	}
	first := Score(records, Options{})

	shuffled := make([]combined.Record, len(records))
	copy(shuffled, records)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	second := Score(shuffled, Options{})
	require.Equal(t, first, second)
}

func TestScore_ScopeOutExcluded(t *testing.T) {
	out := rec("G1", "u1", "App A", "Dept 1", "East", "Ready", "Ready")
	out.Scope = "Out"
	records := []combined.Record{
		out,
		rec("G2", "u2", "App B", "Dept 1", "East", "Not Started", "Not Started"),
	}

	report := Score(records, Options{})
	require.Len(t, report.Applications, 1)
	require.Equal(t, "App B", report.Applications[0].Application)
	require.Equal(t, 1, report.Departments[0].Applications)
}

func TestScore_RedirectFoldsUsers(t *testing.T) {
	redirected := rec("G1", "u1", "App Old", "Dept 1", "East", "Not Started", "Not Started")
	redirected.WillBe = "App New"
	records := []combined.Record{
		redirected,
		rec("G2", "u2", "App New", "Dept 1", "East", "Ready", "Ready"),
	}

	report := Score(records, Options{ExcludeRedirected: true})
	require.Len(t, report.Applications, 1)
	app := report.Applications[0]
	require.Equal(t, "App New", app.Application)
	require.Equal(t, 2, app.Users)
	require.Equal(t, 100.0, app.Progress)

	// Without the redirect filter the superseded application scores on its
	// own and drags the department down.
	report = Score(records, Options{})
	require.Len(t, report.Applications, 2)
	require.Equal(t, 50.0, report.Departments[0].PackagePct)
}

func TestScore_ExcludeLeft(t *testing.T) {
	now := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	gone := time.Date(2019, 1, 31, 0, 0, 0, 0, time.UTC)

	left := rec("G1", "u1", "App A", "Dept 1", "East", "Ready", "Ready")
	left.LeaveDate = &gone
	records := []combined.Record{
		left,
		rec("G2", "u2", "App A", "Dept 1", "East", "Ready", "Ready"),
	}

	report := Score(records, Options{ExcludeLeft: true, Now: now})
	require.Len(t, report.Applications, 1)
	require.Equal(t, 1, report.Applications[0].Users)

	report = Score(records, Options{})
	require.Equal(t, 2, report.Applications[0].Users)
}

func TestScore_ReadinessCoverage(t *testing.T) {
	withStage := func(group, account, app, dept, stage string) combined.Record {
		r := rec(group, account, app, dept, "East", "Ready", "Ready")
		r.ClusterReadiness = stage
		return r
	}

	// Three of four weighted applications carry a readiness value: coverage
	// 75%, aggregate defined.
	records := []combined.Record{
		withStage("G1", "u1", "App A", "Dept 1", "Build"),
		withStage("G2", "u2", "App B", "Dept 1", "Build"),
		withStage("G3", "u3", "App C", "Dept 1", "Build"),
		rec("G4", "u4", "App D", "Dept 2", "East", "Ready", "Ready"),
	}
	report := Score(records, Options{})
	require.Len(t, report.Divisions, 1)
	require.Equal(t, 50.0, report.Divisions[0].ReadinessPct)
	require.Equal(t, "Build", report.Divisions[0].ReadinessStage)

	// One of four: coverage 25%, aggregate reported as undefined rather than
	// the lowest stage.
	records = []combined.Record{
		withStage("G1", "u1", "App A", "Dept 1", "Build"),
		rec("G2", "u2", "App B", "Dept 2", "East", "Ready", "Ready"),
		rec("G3", "u3", "App C", "Dept 2", "East", "Ready", "Ready"),
		rec("G4", "u4", "App D", "Dept 2", "East", "Ready", "Ready"),
	}
	report = Score(records, Options{})
	require.Empty(t, report.Divisions[0].ReadinessStage)
	require.Zero(t, report.Divisions[0].ReadinessPct)
}

func TestScore_MissingHRGroupsUnderEmptyDepartment(t *testing.T) {
	records := []combined.Record{
		rec("G1", "u1", "App A", "", "", "Ready", "Ready"),
	}
	report := Score(records, Options{})
	require.Len(t, report.Departments, 1)
	require.Equal(t, "", report.Departments[0].Name)
}

func TestPackagePercent(t *testing.T) {
	require.Equal(t, 100.0, PackagePercent("Ready for Testing"))
	require.Equal(t, 100.0, PackagePercent(" READY "))
	require.Equal(t, 50.0, PackagePercent("In Progress"))
	require.Equal(t, 0.0, PackagePercent("N/A"))
	require.Equal(t, 0.0, PackagePercent(""))
	require.Equal(t, 0.0, PackagePercent("some unknown status"))
}

func TestTestPercent(t *testing.T) {
	require.Equal(t, 100.0, TestPercent("PAT OK"))
	require.Equal(t, 75.0, TestPercent("PAT On Hold"))
	require.Equal(t, 60.0, TestPercent("pat planned"))
	require.Equal(t, 50.0, TestPercent("GAT OK"))
	require.Equal(t, 30.0, TestPercent("in progress"))
	require.Equal(t, 0.0, TestPercent("not started"))
}
