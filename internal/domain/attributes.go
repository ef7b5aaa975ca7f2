package domain

import "math"

// radiusPerMagnitude converts magnitude to a circle radius in meters.
const radiusPerMagnitude = 100000

// Depth palette, shallow to deep.
const (
	ColorShallow      = "#64B5F6" // < 10 km
	ColorIntermediate = "#43A047" // 10-30 km
	ColorModerate     = "#FFF176" // 30-50 km
	ColorDeep         = "#FB8C00" // 50-70 km
	ColorVeryDeep     = "#B71C1C" // 70-90 km
	ColorExtreme      = "#FF3300" // >= 90 km
)

// DepthBand is one rung of the depth color ladder. A band covers
// [Min, next band's Min).
type DepthBand struct {
	Min   float64
	Color string
}

var depthBands = []DepthBand{
	{Min: math.Inf(-1), Color: ColorShallow},
	{Min: 10, Color: ColorIntermediate},
	{Min: 30, Color: ColorModerate},
	{Min: 50, Color: ColorDeep},
	{Min: 70, Color: ColorVeryDeep},
	{Min: 90, Color: ColorExtreme},
}

// DepthBands returns a copy of the depth color ladder in ascending order.
func DepthBands() []DepthBand {
	out := make([]DepthBand, len(depthBands))
	copy(out, depthBands)
	return out
}

// SizeFor maps magnitude to a marker radius. Zero and negative magnitudes
// are passed through unchanged.
func SizeFor(magnitude float64) float64 {
	return magnitude * radiusPerMagnitude
}

// ColorFor maps depth in km to a fill color. Boundary values belong to the
// deeper band. NaN compares false against every bound and lands in the last band.
func ColorFor(depth float64) string {
	switch {
	case depth < 10:
		return ColorShallow
	case depth < 30:
		return ColorIntermediate
	case depth < 50:
		return ColorModerate
	case depth < 70:
		return ColorDeep
	case depth < 90:
		return ColorVeryDeep
	default:
		return ColorExtreme
	}
}
