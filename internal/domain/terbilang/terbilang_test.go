package terbilang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{0, "nol rupiah"},
		{1, "satu rupiah"},
		{7, "tujuh rupiah"},
		{10, "sepuluh rupiah"},
		{11, "sebelas rupiah"},
		{15, "lima belas rupiah"},
		{20, "dua puluh rupiah"},
		{21, "dua puluh satu rupiah"},
		{100, "seratus rupiah"},
		{101, "seratus satu rupiah"},
		{111, "seratus sebelas rupiah"},
		{200, "dua ratus rupiah"},
		{999, "sembilan ratus sembilan puluh sembilan rupiah"},
		{1000, "seribu rupiah"},
		{1001, "seribu satu rupiah"},
		{1500, "seribu lima ratus rupiah"},
		{2000, "dua ribu rupiah"},
		{11000, "sebelas ribu rupiah"},
		{999999, "sembilan ratus sembilan puluh sembilan ribu sembilan ratus sembilan puluh sembilan rupiah"},
		{1000000, "satu juta rupiah"},
		{1001000, "satu juta seribu rupiah"},
		{2000000, "dua juta rupiah"},
		{2500000, "dua juta lima ratus ribu rupiah"},
		{1000000000, "satu miliar rupiah"},
		{1000000000000, "satu triliun rupiah"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToWords(tt.n))
		})
	}
}

func TestToWords_SuffixAndCase(t *testing.T) {
	for _, n := range []int64{0, 1, 11, 15, 20, 100, 101, 1000, 1001, 2000, 1000000, 999999} {
		got := ToWords(n)
		assert.NotEmpty(t, got)
		assert.True(t, strings.HasSuffix(got, CurrencySuffix), "missing suffix: %q", got)
		assert.Equal(t, strings.ToLower(got), got, "not lowercase: %q", got)
	}
}

func TestToWords_IrregularThousand(t *testing.T) {
	got := ToWords(1000)
	assert.Contains(t, got, "seribu")
	assert.NotContains(t, got, "satu ribu")
}

func TestToWords_NegativeTakesAbsoluteValue(t *testing.T) {
	assert.Equal(t, ToWords(1500), ToWords(-1500))
}
