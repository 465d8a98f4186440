package excel

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookFromRows(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadSheet_NormalizesBlanks(t *testing.T) {
	r := workbookFromRows(t, [][]string{
		{"GRP1", "user1", "  ", "App A"},
		{"", "user2"},
	})

	sheet, err := ReadSheet(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)
	require.Equal(t, []string{"GRP1", "user1", "N/A", "App A"}, sheet.Rows[0])
	require.Equal(t, "N/A", sheet.Rows[1][0])
	require.Equal(t, "user2", sheet.Rows[1][1])
}

func TestNormalizeCell_SentinelVariants(t *testing.T) {
	require.Equal(t, Sentinel, NormalizeCell("n/a"))
	require.Equal(t, Sentinel, NormalizeCell(" N/a "))
	require.Equal(t, Sentinel, NormalizeCell(""))
	require.Equal(t, "App A", NormalizeCell(" App A "))
	// Only the exact word counts as absent.
	require.Equal(t, "n/a surcharge", NormalizeCell("n/a surcharge"))
}

func TestReadSheet_Cancelled(t *testing.T) {
	r := workbookFromRows(t, [][]string{{"a"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadSheet(ctx, r)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCell_ShortRow(t *testing.T) {
	row := []string{"a", "b"}
	require.Equal(t, "b", Cell(row, 1))
	require.Equal(t, Sentinel, Cell(row, 5))
	require.Equal(t, Sentinel, Cell(row, -1))
}

func TestIsBlankRow(t *testing.T) {
	require.True(t, IsBlankRow([]string{Sentinel, Sentinel}))
	require.True(t, IsBlankRow(nil))
	require.False(t, IsBlankRow([]string{Sentinel, "x"}))
}
