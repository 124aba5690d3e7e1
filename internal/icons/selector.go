package icons

import "math"

// Params describe what the tray icon should look like right now. Values are
// compared with == to skip redundant icon swaps.
type Params struct {
	// LightMode selects the light glyph set.
	LightMode bool
	// ScalingFactor is the display scale, 1.0 at 96 DPI.
	ScalingFactor float64
}

// Selector picks an asset for the given parameters. Implementations never fail.
type Selector interface {
	Select(p Params) Asset
}

// PairPolicy chooses between two fixed assets on LightMode alone.
type PairPolicy struct {
	Light Asset
	Dark  Asset
}

// NewPairPolicy uses the 32px assets of each theme.
func NewPairPolicy() *PairPolicy {
	return &PairPolicy{
		Light: mustAsset(ThemeLight, 32),
		Dark:  mustAsset(ThemeDark, 32),
	}
}

// Select implements Selector.
func (p *PairPolicy) Select(params Params) Asset {
	if params.LightMode {
		return p.Light
	}
	return p.Dark
}

// MultiResolutionPolicy chooses the theme set, then the size closest to
// BaseSize*ScalingFactor. Ties go to the earlier candidate.
type MultiResolutionPolicy struct {
	Light []Asset
	Dark  []Asset
}

// NewMultiResolutionPolicy uses every embedded size.
func NewMultiResolutionPolicy() *MultiResolutionPolicy {
	return &MultiResolutionPolicy{
		Light: Set(ThemeLight),
		Dark:  Set(ThemeDark),
	}
}

// Select implements Selector.
func (p *MultiResolutionPolicy) Select(params Params) Asset {
	candidates := p.Dark
	if params.LightMode {
		candidates = p.Light
	}
	return nearest(candidates, params.ScalingFactor*BaseSize)
}

// nearest returns the candidate minimizing |Size - target|. candidates is
// never empty for the embedded sets.
func nearest(candidates []Asset, target float64) Asset {
	best := candidates[0]
	bestDist := math.Abs(float64(best.Size) - target)
	for _, c := range candidates[1:] {
		if d := math.Abs(float64(c.Size) - target); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
