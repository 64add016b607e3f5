package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []uint64
	}{
		{"empty", "", []uint64{}},
		{"json numbers", "[1, 2, 3]", []uint64{1, 2, 3}},
		{"json strings", `["4","5"]`, []uint64{4, 5}},
		{"empty json array", "[]", []uint64{}},
		{"comma separated", "7, 8,,9", []uint64{7, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDList(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIDList_Invalid(t *testing.T) {
	for _, raw := range []string{"[1,", `["x"]`, "1,a", "[-1]"} {
		_, err := ParseIDList(raw)
		assert.Error(t, err, raw)
	}
}
