package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseShelfLifeText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"twelve months", "12 months", 12},
		{"one year", "1 year", 12},
		{"one year embedded", "Minimum 1 year remaining", 12},
		{"six months", "6 months", 6},
		{"three months", "3 months", 3},
		{"mixed case", "12 Months", 12},
		{"empty falls back to default", "", 6},
		{"unrecognized falls back to default", "whatever the PO says", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseShelfLifeText(tt.text, 6))
		})
	}
}

func TestParseShelfLifeText_CustomDefault(t *testing.T) {
	assert.Equal(t, 9, ParseShelfLifeText("no requirement stated", 9))
}
