package icons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scalingFactors = []float64{0, 0.5, 1, 1.25, 1.5, 1.75, 2, 2.5, 3, 4, 8, 16, 100}

func TestAssets_AllDecode(t *testing.T) {
	assets := all()
	require.Len(t, assets, 10)

	for _, asset := range assets {
		t.Run(asset.Name, func(t *testing.T) {
			img, err := asset.Image()
			require.NoError(t, err)
			assert.Equal(t, asset.Size, img.Width)
			assert.Equal(t, asset.Size, img.Height)
			assert.NotEmpty(t, img.Data)
		})
	}
}

func TestMultiResolution_AlwaysMemberOfRightTheme(t *testing.T) {
	policy := NewMultiResolutionPolicy()

	for _, light := range []bool{true, false} {
		want := ThemeDark
		if light {
			want = ThemeLight
		}
		for _, scale := range scalingFactors {
			got := policy.Select(Params{LightMode: light, ScalingFactor: scale})
			assert.Equal(t, want, got.Theme, "scale %v", scale)
			assert.Contains(t, Sizes, got.Size)
			assert.NotEmpty(t, got.Data)
		}
	}
}

func TestMultiResolution_NearestSize(t *testing.T) {
	policy := NewMultiResolutionPolicy()

	tests := []struct {
		scale float64
		want  int
	}{
		{1.0, 16},
		{1.5, 24},
		{2.0, 32},
		{3.0, 48},
		{16.0, 256},
		{0.25, 16},
		{1.25, 16}, // target 20, equidistant from 16 and 24
		{2.5, 32},  // target 40, equidistant from 32 and 48
		{1.26, 24},
		{9.5, 48}, // target 152, equidistant from 48 and 256
	}

	for _, tt := range tests {
		got := policy.Select(Params{LightMode: true, ScalingFactor: tt.scale})
		assert.Equal(t, tt.want, got.Size, "scale %v", tt.scale)
	}
}

func TestPairPolicy(t *testing.T) {
	policy := NewPairPolicy()

	for _, scale := range scalingFactors {
		assert.Equal(t, policy.Light.Name, policy.Select(Params{LightMode: true, ScalingFactor: scale}).Name)
		assert.Equal(t, policy.Dark.Name, policy.Select(Params{LightMode: false, ScalingFactor: scale}).Name)
	}
	assert.Equal(t, ThemeLight, policy.Light.Theme)
	assert.Equal(t, ThemeDark, policy.Dark.Theme)
}

func TestNearest_TieKeepsDeclaredOrder(t *testing.T) {
	candidates := []Asset{{Name: "b", Size: 30}, {Name: "a", Size: 10}, {Name: "c", Size: 40}}

	assert.Equal(t, "b", nearest(candidates, 20).Name)
	assert.Equal(t, "c", nearest(candidates, 38).Name)
	assert.Equal(t, "a", nearest(candidates, 0).Name)
}
