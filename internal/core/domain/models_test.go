package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512.0B"},
		{2048, "2.0KB"},
		{60 * 1024 * 1024, "60.0MB"},
		{62914560, "60.0MB"},
		{3 * 1024 * 1024 * 1024, "3.0GB"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, HumanSize(test.bytes))
	}
}

func TestParseTier(t *testing.T) {
	for _, s := range []string{"best", "720", "360", "audio"} {
		tier, ok := ParseTier(s)
		assert.True(t, ok)
		assert.Equal(t, QualityTier(s), tier)
	}

	_, ok := ParseTier("1080")
	assert.False(t, ok)
}

func TestHeightCeiling(t *testing.T) {
	assert.Equal(t, 720, Tier720.HeightCeiling())
	assert.Equal(t, 360, Tier360.HeightCeiling())
	assert.Equal(t, 0, TierBest.HeightCeiling())
	assert.Equal(t, 0, TierAudio.HeightCeiling())
}
