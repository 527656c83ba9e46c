package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	apperrors "pricecli/internal/errors"
	"pricecli/pkg/contracts/domain"
)

// rowCoercer converts the cells of one record into a DailyBar. row is the
// zero-based data row index and line the source line, both used only for
// error reporting.
type rowCoercer struct {
	idx    *columnIndex
	record []string
	row    int
	line   func(col int) int
	err    error
}

func (c *rowCoercer) bar() (domain.DailyBar, error) {
	bar := domain.DailyBar{
		Date:     c.date(domain.FieldDate, c.idx.date),
		Open:     c.price(domain.FieldOpen, c.idx.open),
		High:     c.price(domain.FieldHigh, c.idx.high),
		Low:      c.price(domain.FieldLow, c.idx.low),
		Close:    c.price(domain.FieldClose, c.idx.close),
		AdjClose: c.price(domain.FieldAdjClose, c.idx.adjClose),
		Volume:   c.volume(domain.FieldVolume, c.idx.volume),
	}
	return bar, c.err
}

func (c *rowCoercer) date(field string, col int) civil.Date {
	if c.err != nil {
		return civil.Date{}
	}
	raw := strings.TrimSpace(c.record[col])
	d, err := civil.ParseDate(raw)
	if err != nil {
		c.fail(field, col, raw, err)
	}
	return d
}

func (c *rowCoercer) price(field string, col int) float32 {
	if c.err != nil {
		return 0
	}
	raw := strings.TrimSpace(c.record[col])
	v, err := strconv.ParseFloat(raw, 32)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("value is not finite")
	}
	if err != nil {
		c.fail(field, col, raw, err)
		return 0
	}
	return float32(v)
}

func (c *rowCoercer) volume(field string, col int) int32 {
	if c.err != nil {
		return 0
	}
	raw := strings.TrimSpace(c.record[col])
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		c.fail(field, col, raw, err)
		return 0
	}
	return int32(v)
}

func (c *rowCoercer) fail(field string, col int, raw string, cause error) {
	c.err = apperrors.NewCoercionError(field, c.row, c.line(col), raw, cause)
}
