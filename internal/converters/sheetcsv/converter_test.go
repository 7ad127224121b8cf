package sheetcsv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"

	"github.com/fileforge/convertd/internal/core/ports/driven"
)

func writeTestWorkbook(t *testing.T, dir string) string {
	t.Helper()
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	require.NoError(t, book.SetCellValue(sheet, "A1", "name"))
	require.NoError(t, book.SetCellValue(sheet, "B1", "amount"))
	require.NoError(t, book.SetCellValue(sheet, "A2", "widget"))
	require.NoError(t, book.SetCellValue(sheet, "B2", 42))

	path := filepath.Join(dir, "in.xlsx")
	require.NoError(t, book.SaveAs(path))
	require.NoError(t, book.Close())
	return path
}

func TestConvert_FirstSheetToCSV(t *testing.T) {
	c := New()
	assert.Equal(t, "excel2csv", c.Name())
	assert.Equal(t, driven.StagePath, c.Staging())

	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")
	in := driven.CapabilityInput{Path: writeTestWorkbook(t, dir)}

	require.NoError(t, c.Convert(context.Background(), in, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "name,amount\nwidget,42\n", string(data))
}

func TestConvert_NotAWorkbook(t *testing.T) {
	c := New()
	dir := t.TempDir()
	bogus := filepath.Join(dir, "in.xlsx")
	require.NoError(t, os.WriteFile(bogus, []byte("plain text"), 0o600))

	err := c.Convert(context.Background(), driven.CapabilityInput{Path: bogus}, filepath.Join(dir, "out.csv"))
	assert.Error(t, err)
}
