package exporter

import (
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// priceDecimals is the number of decimal places written for prices.
const priceDecimals = 2

// roundPrice rounds a price half away from zero to two decimal places.
// float32 prices go through their shortest decimal form first, so 100.8
// rounds as 100.8 and not as 100.800003.
func roundPrice(p float32) decimal.Decimal {
	return decimal.NewFromFloat32(p).Round(priceDecimals)
}

// FormatPrice formats a price with exactly two decimal places.
func FormatPrice(p float32) string {
	return roundPrice(p).StringFixed(priceDecimals)
}

// FormatVolume formats a volume as a plain integer.
func FormatVolume(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(d civil.Date) string {
	return d.String()
}
