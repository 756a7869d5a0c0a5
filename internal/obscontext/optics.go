package obscontext

import "math"

// TelescopeOptics describes the physical optical train. All derived
// quantities are computed on read, never cached, so changing any input
// field immediately changes the derived outputs.
type TelescopeOptics struct {
	FocalLengthMM  float64
	ApertureMM     float64
	EyepieceMM     float64
	EyepieceFOVDeg float64
	Zoom           float64

	// LightPollutionOffset subtracts from the limiting magnitude estimate.
	LightPollutionOffset float64
}

// DefaultOptics mirrors the reference configuration's defaults.
func DefaultOptics() TelescopeOptics {
	return TelescopeOptics{
		FocalLengthMM:        1200,
		ApertureMM:           200,
		EyepieceMM:           25,
		EyepieceFOVDeg:       40,
		Zoom:                 1,
		LightPollutionOffset: 1,
	}
}

// Magnification is focal_length / eyepiece.
func (o TelescopeOptics) Magnification() float64 {
	if o.EyepieceMM == 0 {
		return 0
	}
	return o.FocalLengthMM / o.EyepieceMM
}

// TrueFOV is the eyepiece's apparent field of view divided by magnification.
func (o TelescopeOptics) TrueFOV() float64 {
	mag := o.Magnification()
	if mag == 0 {
		return 0
	}
	return o.EyepieceFOVDeg / mag
}

// FieldRadius is half the true field of view, scaled by zoom.
func (o TelescopeOptics) FieldRadius() float64 {
	return (o.TrueFOV() / 2) * o.Zoom
}

// LimitingMagnitude is the faintest magnitude the optics can resolve,
// derated for light pollution and zoom.
func (o TelescopeOptics) LimitingMagnitude() float64 {
	if o.ApertureMM <= 0 {
		return 0
	}
	return 2 + 5*math.Log10(o.ApertureMM) - o.LightPollutionOffset - o.Zoom/3
}
