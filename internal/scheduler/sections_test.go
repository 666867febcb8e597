package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSectionsEvenSplit(t *testing.T) {
	sections, err := GenerateSections(enrollment("BSIT", 1, 75), DefaultOptions().Bounds)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "BSIT1A", sections[0].ID)
	assert.Equal(t, 38, sections[0].Size)
	assert.Equal(t, "BSIT1B", sections[1].ID)
	assert.Equal(t, 37, sections[1].Size)
	assert.Equal(t, testTerm, sections[1].Term)
}

func TestGenerateSectionsSingleSection(t *testing.T) {
	for _, count := range []int{12, 25, 40} {
		sections, err := GenerateSections(enrollment("BSCS", 2, count), DefaultOptions().Bounds)
		require.NoError(t, err)
		require.Len(t, sections, 1)
		assert.Equal(t, "BSCS2A", sections[0].ID)
		assert.Equal(t, count, sections[0].Size)
	}
}

func TestGenerateSectionsBelowMinimum(t *testing.T) {
	_, err := GenerateSections(enrollment("BSIT", 3, 11), DefaultOptions().Bounds)
	require.Error(t, err)
	var cfgErr ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "enrollment", cfgErr.Entity)
	assert.Equal(t, "count", cfgErr.Field)
	assert.Equal(t, "BSIT/3/2024-1", cfgErr.Key)
}

func TestGenerateSectionsUnsatisfiableBounds(t *testing.T) {
	_, err := GenerateSections(enrollment("BSIT", 1, 21), SectionBounds{Min: 12, Max: 20})
	var cfgErr ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "cannot be split")
}

func TestGenerateSectionsCustomBounds(t *testing.T) {
	cases := []struct {
		name   string
		bounds SectionBounds
		count  int
		sizes  []int
	}{
		{"undersized pair merges then overflows", SectionBounds{Min: 15, Max: 16}, 17, nil},
		{"undersized triple merges then overflows", SectionBounds{Min: 15, Max: 16}, 33, nil},
		{"halves exactly at minimum", SectionBounds{Min: 12, Max: 20}, 24, []int{12, 12}},
		{"three at minimum", SectionBounds{Min: 15, Max: 16}, 45, []int{15, 15, 15}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sections, err := GenerateSections(enrollment("BSIT", 1, tc.count), tc.bounds)
			if tc.sizes == nil {
				var cfgErr ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Contains(t, cfgErr.Message, "cannot be split")
				return
			}
			require.NoError(t, err)
			sizes := make([]int, len(sections))
			for i, s := range sections {
				sizes[i] = s.Size
			}
			assert.Equal(t, tc.sizes, sizes)
		})
	}
}

func TestGenerateSectionsSizesWithinBounds(t *testing.T) {
	bounds := DefaultOptions().Bounds
	for count := bounds.Min; count <= 600; count++ {
		sections, err := GenerateSections(enrollment("BSIT", 1, count), bounds)
		require.NoError(t, err, "count %d", count)
		total := 0
		for i, s := range sections {
			assert.GreaterOrEqual(t, s.Size, bounds.Min)
			assert.LessOrEqual(t, s.Size, bounds.Max)
			if i > 0 {
				assert.LessOrEqual(t, s.Size, sections[i-1].Size, "sizes must not grow")
			}
			total += s.Size
		}
		assert.Equal(t, count, total)
	}
}

func TestSectionLetters(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for index, want := range cases {
		assert.Equal(t, want, SectionLetters(index))
	}
}
