package domain

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeDays() *Dataset {
	return &Dataset{
		Date: []civil.Date{
			{Year: 2024, Month: time.January, Day: 3},
			{Year: 2024, Month: time.January, Day: 2},
			{Year: 2024, Month: time.January, Day: 4},
		},
		Open:     []float32{10, 11, 12},
		High:     []float32{11, 12, 13},
		Low:      []float32{9, 10, 11},
		Close:    []float32{10.5, 9.5, 12.5},
		AdjClose: []float32{10.5, 9.5, 12.5},
		Volume:   []int32{100, 200, 2147483647},
	}
}

func TestDataset_Len(t *testing.T) {
	var nilDataset *Dataset
	assert.Equal(t, 0, nilDataset.Len())
	assert.Equal(t, 0, (&Dataset{}).Len())
	assert.Equal(t, 3, threeDays().Len())
}

func TestDataset_Bar(t *testing.T) {
	bar := threeDays().Bar(1)

	assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 2}, bar.Date)
	assert.Equal(t, float32(11), bar.Open)
	assert.Equal(t, float32(9.5), bar.Close)
	assert.Equal(t, int32(200), bar.Volume)
}

func TestDataset_CheckAligned(t *testing.T) {
	d := threeDays()
	require.NoError(t, d.CheckAligned())

	d.Volume = d.Volume[:2]
	err := d.CheckAligned()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyVolume)
}

func TestDataset_Columns(t *testing.T) {
	d := threeDays()
	cols := d.Columns()

	assert.Len(t, cols, len(ColumnKeys))
	for _, key := range ColumnKeys {
		assert.Contains(t, cols, key)
	}
	assert.Equal(t, d.Date, cols.Dates())
	assert.Equal(t, d.High, cols.Prices(KeyHighPrice))
	assert.Equal(t, d.Volume, cols.Volumes())
	assert.Nil(t, cols.Prices(KeyVolume))

	// Columns share storage with the dataset.
	d.Close[0] = 99
	assert.Equal(t, float32(99), cols.Prices(KeyClosePrice)[0])
}

func TestSummarize(t *testing.T) {
	s := Summarize("X.csv", threeDays())

	assert.Equal(t, "X.csv", s.Name)
	assert.Equal(t, 3, s.Rows)
	require.NotNil(t, s.FirstDate)
	require.NotNil(t, s.LastDate)
	// Source order, not chronological order.
	assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 3}, *s.FirstDate)
	assert.Equal(t, civil.Date{Year: 2024, Month: time.January, Day: 4}, *s.LastDate)
	assert.Equal(t, float32(9.5), s.MinClose)
	assert.Equal(t, float32(12.5), s.MaxClose)
	assert.Equal(t, int64(2147483947), s.TotalVolume)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize("empty.csv", &Dataset{})

	assert.Equal(t, 0, s.Rows)
	assert.Nil(t, s.FirstDate)
	assert.Nil(t, s.LastDate)
	assert.Zero(t, s.TotalVolume)
}
