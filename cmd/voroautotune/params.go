package main

// ParamSpec defines one optimizable grid dimension.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the (nx, ny) search space, normalized to [0,1] for
// CMA-ES the way this codebase always normalizes its optimize.Problem
// inputs.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector builds the standard nx/ny search space bounded by
// gridMax.
func NewParamVector(gridMax int) *ParamVector {
	max := float64(gridMax)
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "nx", Min: 1, Max: max, Default: max / 4},
			{Name: "ny", Min: 1, Max: max, Default: max / 4},
		},
	}
}

func (pv *ParamVector) Dim() int { return len(pv.Specs) }

func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds and rounds values to valid integer grid dimensions.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = float64(int(val + 0.5))
	}
	return clamped
}
