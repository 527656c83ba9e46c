package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"pricecli/pkg/contracts/domain"
)

// DefaultSheetName is the worksheet holding exported prices.
const DefaultSheetName = "Prices"

// XLSXWriter writes datasets as Excel workbooks
type XLSXWriter struct {
	SheetName string
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{SheetName: DefaultSheetName}
}

// ContentType implements Writer
func (x *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Writer
func (x *XLSXWriter) Extension() string { return FormatXLSX }

// Write produces a workbook with a single sheet: a bold header row followed
// by one row per trading day. Dates are text, prices are numbers rounded
// to two decimals, volumes are integers.
func (x *XLSXWriter) Write(w io.Writer, ds *domain.Dataset) error {
	if err := ds.CheckAligned(); err != nil {
		return fmt.Errorf("cannot export dataset: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := x.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	priceStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("failed to create price style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}
	if err := sw.SetColWidth(1, len(domain.RequiredFields), 14); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	header := make([]interface{}, 0, len(domain.RequiredFields))
	for _, name := range sourceHeader() {
		header = append(header, excelize.Cell{StyleID: headerStyle, Value: name})
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	price := func(p float32) excelize.Cell {
		return excelize.Cell{StyleID: priceStyle, Value: roundPrice(p).InexactFloat64()}
	}

	for i := 0; i < ds.Len(); i++ {
		bar := ds.Bar(i)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			FormatDate(bar.Date),
			price(bar.Open),
			price(bar.High),
			price(bar.Low),
			price(bar.Close),
			price(bar.AdjClose),
			int64(bar.Volume),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
