// Package sheetcsv converts spreadsheet workbooks to CSV. Only the
// first sheet is exported, matching the behaviour callers expect from
// single-table workbooks.
package sheetcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/fileforge/convertd/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Capability = (*Converter)(nil)

// Converter is the excel-to-csv capability.
type Converter struct{}

// New creates the excel-to-csv capability.
func New() *Converter {
	return &Converter{}
}

// Name identifies the capability.
func (c *Converter) Name() string { return "excel2csv" }

// Staging declares path-based input.
func (c *Converter) Staging() driven.StagingMode { return driven.StagePath }

// Convert reads the workbook at in.Path and writes its first sheet as
// CSV at outputPath.
func (c *Converter) Convert(_ context.Context, in driven.CapabilityInput, outputPath string) error {
	book, err := excelize.OpenFile(in.Path)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}
	defer book.Close() //nolint:errcheck

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("workbook %s has no sheets", in.Path)
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(out)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			out.Close()
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		out.Close()
		return fmt.Errorf("flushing csv: %w", err)
	}
	return out.Close()
}
