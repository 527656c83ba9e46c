package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Source column names a dataset header must carry. Matching is exact.
const (
	FieldDate     = "Date"
	FieldOpen     = "Open"
	FieldHigh     = "High"
	FieldLow      = "Low"
	FieldClose    = "Close"
	FieldAdjClose = "Adj Close"
	FieldVolume   = "Volume"
)

// RequiredFields lists the source columns in canonical order.
var RequiredFields = []string{
	FieldDate,
	FieldOpen,
	FieldHigh,
	FieldLow,
	FieldClose,
	FieldAdjClose,
	FieldVolume,
}

// Canonical keys used when a dataset is exposed as named columns.
const (
	KeyDate          = "date"
	KeyOpenPrice     = "open_price"
	KeyHighPrice     = "high_price"
	KeyLowPrice      = "low_price"
	KeyClosePrice    = "close_price"
	KeyAdjClosePrice = "adj_close_price"
	KeyVolume        = "volume"
)

// ColumnKeys lists the canonical keys in the same order as RequiredFields.
var ColumnKeys = []string{
	KeyDate,
	KeyOpenPrice,
	KeyHighPrice,
	KeyLowPrice,
	KeyClosePrice,
	KeyAdjClosePrice,
	KeyVolume,
}

// DailyBar is one coerced source row.
type DailyBar struct {
	Date     civil.Date
	Open     float32
	High     float32
	Low      float32
	Close    float32
	AdjClose float32
	Volume   int32
}

// Dataset holds a price history as index-aligned columns: position i of
// every slice describes the same trading day. Dates keep source order.
type Dataset struct {
	Date     []civil.Date `json:"date"`
	Open     []float32    `json:"open_price"`
	High     []float32    `json:"high_price"`
	Low      []float32    `json:"low_price"`
	Close    []float32    `json:"close_price"`
	AdjClose []float32    `json:"adj_close_price"`
	Volume   []int32      `json:"volume"`
}

// Len returns the number of trading days in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Date)
}

// Bar returns row i as a DailyBar.
func (d *Dataset) Bar(i int) DailyBar {
	return DailyBar{
		Date:     d.Date[i],
		Open:     d.Open[i],
		High:     d.High[i],
		Low:      d.Low[i],
		Close:    d.Close[i],
		AdjClose: d.AdjClose[i],
		Volume:   d.Volume[i],
	}
}

// CheckAligned reports an error when the columns differ in length.
func (d *Dataset) CheckAligned() error {
	n := len(d.Date)
	lengths := map[string]int{
		KeyOpenPrice:     len(d.Open),
		KeyHighPrice:     len(d.High),
		KeyLowPrice:      len(d.Low),
		KeyClosePrice:    len(d.Close),
		KeyAdjClosePrice: len(d.AdjClose),
		KeyVolume:        len(d.Volume),
	}
	for key, l := range lengths {
		if l != n {
			return fmt.Errorf("column %s has %d values, %s has %d", key, l, KeyDate, n)
		}
	}
	return nil
}

// Columns returns the dataset keyed by canonical column name. The slices
// are shared with d, not copied.
func (d *Dataset) Columns() Columns {
	return Columns{
		KeyDate:          d.Date,
		KeyOpenPrice:     d.Open,
		KeyHighPrice:     d.High,
		KeyLowPrice:      d.Low,
		KeyClosePrice:    d.Close,
		KeyAdjClosePrice: d.AdjClose,
		KeyVolume:        d.Volume,
	}
}

// Columns maps canonical column keys to typed slices: []civil.Date for
// KeyDate, []int32 for KeyVolume and []float32 for the price keys.
type Columns map[string]any

// Dates returns the date column.
func (c Columns) Dates() []civil.Date {
	v, _ := c[KeyDate].([]civil.Date)
	return v
}

// Prices returns the float column stored under key, or nil when key is not
// a price column.
func (c Columns) Prices(key string) []float32 {
	v, _ := c[key].([]float32)
	return v
}

// Volumes returns the volume column.
func (c Columns) Volumes() []int32 {
	v, _ := c[KeyVolume].([]int32)
	return v
}

// DatasetSummary is a descriptive overview of a loaded dataset.
type DatasetSummary struct {
	Name        string      `json:"name"`
	Rows        int         `json:"rows"`
	FirstDate   *civil.Date `json:"first_date,omitempty"`
	LastDate    *civil.Date `json:"last_date,omitempty"`
	MinClose    float32     `json:"min_close"`
	MaxClose    float32     `json:"max_close"`
	TotalVolume int64       `json:"total_volume"`
}

// Summarize computes a DatasetSummary in source order: FirstDate is the
// first row's date, not the earliest date.
func Summarize(name string, d *Dataset) DatasetSummary {
	s := DatasetSummary{Name: name, Rows: d.Len()}
	if s.Rows == 0 {
		return s
	}
	first, last := d.Date[0], d.Date[s.Rows-1]
	s.FirstDate, s.LastDate = &first, &last
	s.MinClose, s.MaxClose = d.Close[0], d.Close[0]
	for i := 0; i < s.Rows; i++ {
		if d.Close[i] < s.MinClose {
			s.MinClose = d.Close[i]
		}
		if d.Close[i] > s.MaxClose {
			s.MaxClose = d.Close[i]
		}
		s.TotalVolume += int64(d.Volume[i])
	}
	return s
}

// DatasetFile describes a dataset file found in the base directory.
type DatasetFile struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}
