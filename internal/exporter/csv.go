package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"pricecli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes datasets as comma-separated text
type CSVWriter struct {
	// BOMPrefix adds a UTF-8 BOM so spreadsheet tools detect the encoding.
	BOMPrefix bool
	Delimiter rune
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{Delimiter: ','}
}

// ContentType implements Writer
func (c *CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

// Extension implements Writer
func (c *CSVWriter) Extension() string { return FormatCSV }

// Write writes the header and one record per trading day in source order.
// Prices are written with two decimal places.
func (c *CSVWriter) Write(w io.Writer, ds *domain.Dataset) error {
	if err := ds.CheckAligned(); err != nil {
		return fmt.Errorf("cannot export dataset: %w", err)
	}

	if c.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if c.Delimiter != 0 {
		writer.Comma = c.Delimiter
	}

	if err := writer.Write(sourceHeader()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(domain.RequiredFields))
	for i := 0; i < ds.Len(); i++ {
		bar := ds.Bar(i)
		record[0] = FormatDate(bar.Date)
		record[1] = FormatPrice(bar.Open)
		record[2] = FormatPrice(bar.High)
		record[3] = FormatPrice(bar.Low)
		record[4] = FormatPrice(bar.Close)
		record[5] = FormatPrice(bar.AdjClose)
		record[6] = FormatVolume(bar.Volume)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
