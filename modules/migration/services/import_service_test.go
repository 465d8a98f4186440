package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/migscope/modules/migration/domain/records"
	"github.com/iota-uz/migscope/modules/migration/importing"
)

func groupWorkbook(t *testing.T, dataRows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { require.NoError(t, f.Close()) }()

	rows := [][]interface{}{
		{"=startdatabelow="},
		{"AD Group", "Account", "Application"},
	}
	rows = append(rows, dataRows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportService_Import(t *testing.T) {
	store := &mockStore{}
	publisher := &capturePublisher{}
	svc := NewImportService(store.sourceStore(), newMockCombinedRepo(), publisher)

	file := groupWorkbook(t,
		[]interface{}{"GRP1", "user1", "App A"},
		[]interface{}{"GRP1", "user1", "App A"},
		[]interface{}{"GRP2", "user2", "App B"},
	)

	result, err := svc.Import(txContext(), records.KindGroups, file)
	require.NoError(t, err)
	require.Equal(t, 2, result.Valid)
	require.Len(t, result.Duplicates, 1)
	require.Len(t, store.groups.items, 2)

	var completed *importing.CompletedEvent
	for _, e := range publisher.events {
		if c, ok := e.(*importing.CompletedEvent); ok {
			completed = c
		}
	}
	require.NotNil(t, completed)
	require.Equal(t, result, completed.Result)
}

func TestImportService_ImportAppends(t *testing.T) {
	store := &mockStore{}
	svc := NewImportService(store.sourceStore(), newMockCombinedRepo(), &capturePublisher{})

	_, err := svc.Import(txContext(), records.KindGroups, groupWorkbook(t,
		[]interface{}{"GRP1", "user1", "App A"},
	))
	require.NoError(t, err)
	_, err = svc.Import(txContext(), records.KindGroups, groupWorkbook(t,
		[]interface{}{"GRP2", "user2", "App B"},
	))
	require.NoError(t, err)

	require.Len(t, store.groups.items, 2)
}

func TestImportService_StructuralFailureAppendsNothing(t *testing.T) {
	store := &mockStore{}
	publisher := &capturePublisher{}
	svc := NewImportService(store.sourceStore(), newMockCombinedRepo(), publisher)

	_, err := svc.Import(txContext(), records.KindGroups, strings.NewReader("not a workbook"))
	require.Error(t, err)
	require.Empty(t, store.groups.items)

	var failed *importing.FailedEvent
	for _, e := range publisher.events {
		if f, ok := e.(*importing.FailedEvent); ok {
			failed = f
		}
	}
	require.NotNil(t, failed)
	require.Equal(t, records.KindGroups, failed.Kind)
}

func TestImportService_KindMismatchAppendsNothing(t *testing.T) {
	store := &mockStore{}
	svc := NewImportService(store.sourceStore(), newMockCombinedRepo(), &capturePublisher{})

	// A groups workbook imported as personnel must be rejected as a whole.
	_, err := svc.Import(txContext(), records.KindPersonnel, groupWorkbook(t,
		[]interface{}{"GRP1", "user1", "App A"},
	))
	require.ErrorIs(t, err, importing.ErrKindMismatch)
	require.Empty(t, store.personnel.items)
	require.Empty(t, store.groups.items)
}

func TestImportService_Clear(t *testing.T) {
	store := &mockStore{}
	store.tests.items = []records.TestStatus{records.NewTestStatus("App A", "Ready", "", "", "")}
	svc := NewImportService(store.sourceStore(), newMockCombinedRepo(), &capturePublisher{})

	require.NoError(t, svc.Clear(txContext(), records.KindTests))
	require.True(t, store.tests.cleared)
	require.False(t, store.groups.cleared)
}

func TestImportService_Reinitialize(t *testing.T) {
	store := &mockStore{}
	combinedRepo := newMockCombinedRepo()
	svc := NewImportService(store.sourceStore(), combinedRepo, &capturePublisher{})

	_, err := svc.Import(txContext(), records.KindGroups, groupWorkbook(t,
		[]interface{}{"GRP1", "user1", "App A"},
	))
	require.NoError(t, err)
	require.NotNil(t, svc.Tracker().ResultFor(records.KindGroups))

	require.NoError(t, svc.Reinitialize(txContext()))
	require.True(t, store.groups.cleared)
	require.True(t, store.personnel.cleared)
	require.True(t, store.clusters.cleared)
	require.True(t, combinedRepo.cleared)
	require.Nil(t, svc.Tracker().ResultFor(records.KindGroups))
}

func TestImportService_Counts(t *testing.T) {
	store := &mockStore{}
	store.groups.items = []records.Group{records.NewGroup("G", "u", "", "", "", "")}
	svc := NewImportService(store.sourceStore(), newMockCombinedRepo(), &capturePublisher{})

	counts, err := svc.Counts(txContext())
	require.NoError(t, err)
	require.Equal(t, int64(1), counts[records.KindGroups])
	require.Equal(t, int64(0), counts[records.KindTests])
}
