package importing

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/pkg/eventbus"
	"github.com/iota-uz/migscope/pkg/excel"
	"github.com/iota-uz/migscope/pkg/logging"
)

func sheetOf(rows ...[]string) *excel.Sheet {
	normalized := make([][]string, len(rows))
	for i, row := range rows {
		normalized[i] = excel.NormalizeRow(row)
	}
	return &excel.Sheet{Name: "Sheet1", Rows: normalized}
}

func groupSheet(dataRows ...[]string) *excel.Sheet {
	rows := [][]string{
		{"Directory export"},
		{"=startdatabelow="},
		{"AD Group", "Account", "Application", "Suite", "Environment", "Critical"},
	}
	rows = append(rows, dataRows...)
	return sheetOf(rows...)
}

func newTestTracker() *Tracker {
	return NewTracker(eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel)))
}

func TestProcess_Groups(t *testing.T) {
	sheet := groupSheet(
		[]string{"GRP1", "user1", "App A", "Suite1", "P", "Y"},
		[]string{"GRP2", "user2", "App B", "Suite1", "A", "N"},
	)

	dataset, result, err := Process(context.Background(), records.KindGroups, sheet, newTestTracker())
	require.NoError(t, err)
	require.Equal(t, 2, result.Valid)
	require.Empty(t, result.Invalid)
	require.Empty(t, result.Duplicates)
	require.Len(t, dataset.Groups, 2)
	require.Equal(t, "GRP1", dataset.Groups[0].IdentityGroup())
	require.Equal(t, "P", dataset.Groups[0].EnvironmentCode())
}

func TestProcess_Partition(t *testing.T) {
	sheet := groupSheet(
		[]string{"GRP1", "user1", "App A"},
		[]string{"GRP1", "user1", "App A"},     // duplicate key
		[]string{"", "user3", "App C"},         // missing group
		[]string{"", "", "", "", "", ""},       // blank, skipped
		[]string{"GRP2", "user2", "App B"},
	)

	_, result, err := Process(context.Background(), records.KindGroups, sheet, newTestTracker())
	require.NoError(t, err)

	require.Equal(t, 2, result.Valid)
	require.Len(t, result.Invalid, 1)
	require.Len(t, result.Duplicates, 1)
	require.Equal(t, 1, result.Blank)
	require.Equal(t, result.DataRows,
		result.Valid+len(result.Invalid)+len(result.Duplicates)+result.Blank)

	// Row numbers are 1-based sheet positions.
	require.Equal(t, 5, result.Duplicates[0].Row)
	require.Equal(t, "GRP1 / user1", result.Duplicates[0].Key)
	require.Equal(t, 6, result.Invalid[0].Row)
	require.Equal(t, []string{"AD Group is required"}, result.Invalid[0].Reasons)
}

func TestProcess_SentinelCaseVariantKeyRejected(t *testing.T) {
	// Dirty exports spell absence as "n/a" or "N/a"; any variant in a key
	// column invalidates the row rather than producing an empty-keyed record.
	sheet := groupSheet(
		[]string{"GRP1", "n/a", "App A"},
		[]string{"GRP1", "N/a", "App B"},
		[]string{"n/a", "n/a", "n/a"},
	)

	dataset, result, err := Process(context.Background(), records.KindGroups, sheet, newTestTracker())
	require.NoError(t, err)
	require.Equal(t, 0, result.Valid)
	require.Empty(t, dataset.Groups)
	require.Empty(t, result.Duplicates)
	require.Equal(t, 1, result.Blank)
	require.Len(t, result.Invalid, 2)
	require.Equal(t, []string{"Account is required"}, result.Invalid[0].Reasons)
	require.Equal(t, []string{"Account is required"}, result.Invalid[1].Reasons)
}

func TestProcess_SeparatorInKeyIsNotADuplicate(t *testing.T) {
	// Both rows render the same report key string, but the natural keys
	// differ, so neither is a duplicate of the other.
	sheet := groupSheet(
		[]string{"GRP1 / A", "user1", "App A"},
		[]string{"GRP1", "A / user1", "App B"},
	)

	dataset, result, err := Process(context.Background(), records.KindGroups, sheet, newTestTracker())
	require.NoError(t, err)
	require.Equal(t, 2, result.Valid)
	require.Empty(t, result.Duplicates)
	require.Len(t, dataset.Groups, 2)
}

func TestProcess_FirstSeenWins(t *testing.T) {
	sheet := groupSheet(
		[]string{"GRP1", "user1", "App A"},
		[]string{"GRP1", "user1", "App DIFFERENT"},
	)

	dataset, _, err := Process(context.Background(), records.KindGroups, sheet, newTestTracker())
	require.NoError(t, err)
	require.Len(t, dataset.Groups, 1)
	require.Equal(t, "App A", dataset.Groups[0].Application())
}

func TestProcess_Rerun_IdenticalPartition(t *testing.T) {
	sheet := groupSheet(
		[]string{"GRP1", "user1", "App A"},
		[]string{"GRP1", "user1", "App A"},
		[]string{"", "user3", ""},
	)

	_, first, err := Process(context.Background(), records.KindGroups, sheet, newTestTracker())
	require.NoError(t, err)
	_, second, err := Process(context.Background(), records.KindGroups, sheet, newTestTracker())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestProcess_Personnel_LeaveDate(t *testing.T) {
	sheet := sheetOf(
		[]string{"start data below"},
		[]string{"Account", "Department", "Job Role", "Division", "Leave Date"},
		[]string{"user1", "Finance", "Analyst", "East", ""},
		[]string{"user2", "Finance", "Analyst", "East", "2019-01-31"},
		[]string{"user3", "Finance", "Analyst", "East", "yesterday"},
	)

	dataset, result, err := Process(context.Background(), records.KindPersonnel, sheet, newTestTracker())
	require.NoError(t, err)
	require.Equal(t, 2, result.Valid)
	require.Len(t, result.Invalid, 1)
	require.Contains(t, result.Invalid[0].Reasons[0], "not a recognized date")

	require.Nil(t, dataset.Personnel[0].LeaveDate())
	require.NotNil(t, dataset.Personnel[1].LeaveDate())
	require.Equal(t, "2019-01-31", dataset.Personnel[1].LeaveDate().Format("2006-01-02"))
}

func TestProcess_Packages_NoDedup(t *testing.T) {
	sheet := sheetOf(
		[]string{"=startdatabelow="},
		[]string{"Application", "Package Status", "Ready Date"},
		[]string{"App A", "Ready", "2019-05-01"},
		[]string{"App A", "Not Started", ""},
	)

	dataset, result, err := Process(context.Background(), records.KindPackages, sheet, newTestTracker())
	require.NoError(t, err)
	require.Equal(t, 2, result.Valid)
	require.Empty(t, result.Duplicates)
	require.Len(t, dataset.Packages, 2)
}

func TestProcess_MarkerMissing(t *testing.T) {
	sheet := sheetOf(
		[]string{"AD Group", "Account"},
		[]string{"GRP1", "user1"},
	)

	_, _, err := Process(context.Background(), records.KindGroups, sheet, newTestTracker())
	require.ErrorIs(t, err, excel.ErrMarkerNotFound)
}

func TestProcess_KindMismatch(t *testing.T) {
	personnelSheet := sheetOf(
		[]string{"=startdatabelow="},
		[]string{"Account", "Department", "Job Role", "Division"},
		[]string{"user1", "Finance", "Analyst", "East"},
	)

	_, _, err := Process(context.Background(), records.KindGroups, personnelSheet, newTestTracker())
	require.ErrorIs(t, err, ErrKindMismatch)

	// Migration sheets share the AD Group key column with group sheets; the
	// richer field match must still flag the mismatch.
	migrationSheet := sheetOf(
		[]string{"=startdatabelow="},
		[]string{"AD Group", "Application", "New Application", "Scope", "Will Be", "Platform"},
		[]string{"GRP1", "App A", "App B", "in", "N/A", "Cloud"},
	)
	_, _, err = Process(context.Background(), records.KindGroups, migrationSheet, newTestTracker())
	require.ErrorIs(t, err, ErrKindMismatch)
}

func TestProcess_Cancellation(t *testing.T) {
	dataRows := make([][]string, 0, 300)
	for i := 0; i < 300; i++ {
		dataRows = append(dataRows, []string{fmt.Sprintf("GRP%d", i), fmt.Sprintf("user%d", i), "App"})
	}
	sheet := groupSheet(dataRows...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Process(ctx, records.KindGroups, sheet, newTestTracker())
	require.ErrorIs(t, err, context.Canceled)
}

func TestTracker_MonotonicProgress(t *testing.T) {
	publisher := eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel))
	var progress []float64
	publisher.Subscribe(func(e *ProgressEvent) {
		progress = append(progress, e.Progress)
	})

	dataRows := make([][]string, 0, 250)
	for i := 0; i < 250; i++ {
		dataRows = append(dataRows, []string{fmt.Sprintf("GRP%d", i), "user", "App"})
	}
	tracker := NewTracker(publisher)
	_, _, err := Process(context.Background(), records.KindGroups, groupSheet(dataRows...), tracker)
	require.NoError(t, err)

	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		require.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	require.Equal(t, 1.0, progress[len(progress)-1])

	state := tracker.State()
	require.False(t, state.Processing)
	require.Equal(t, records.KindGroups, state.Selected)
	require.NotNil(t, tracker.ResultFor(records.KindGroups))

	tracker.Reset()
	require.Nil(t, tracker.ResultFor(records.KindGroups))
}
