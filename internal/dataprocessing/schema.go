package dataprocessing

import (
	"strings"

	apperrors "pricecli/internal/errors"
	"pricecli/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// columnIndex maps each required field to its position in a record.
type columnIndex struct {
	date, open, high, low, close, adjClose, volume int
	// width is the minimum record length that holds every required field.
	width int
}

// buildColumnIndex matches header against the required fields. Names must
// match exactly; the first occurrence of a duplicated name wins and columns
// that are not required are ignored.
func buildColumnIndex(header []string) (*columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	var missing []string
	for _, field := range domain.RequiredFields {
		if _, ok := positions[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewSchemaError(domain.RequiredFields, missing, header)
	}

	idx := &columnIndex{
		date:     positions[domain.FieldDate],
		open:     positions[domain.FieldOpen],
		high:     positions[domain.FieldHigh],
		low:      positions[domain.FieldLow],
		close:    positions[domain.FieldClose],
		adjClose: positions[domain.FieldAdjClose],
		volume:   positions[domain.FieldVolume],
	}
	for _, field := range domain.RequiredFields {
		if p := positions[field]; p+1 > idx.width {
			idx.width = p + 1
		}
	}
	return idx, nil
}
