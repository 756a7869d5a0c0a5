package obscontext

import "time"

// CatalogFilter restricts a target lookup to one class of celestial object.
type CatalogFilter int

const (
	FilterStars CatalogFilter = iota
	FilterDSOs
	FilterSolarSystem
)

func (f CatalogFilter) String() string {
	switch f {
	case FilterStars:
		return "stars"
	case FilterDSOs:
		return "dsos"
	case FilterSolarSystem:
		return "solar-system"
	default:
		return "unknown"
	}
}

// ObjectKind classifies a CelestialObject.
type ObjectKind int

const (
	KindStar ObjectKind = iota
	KindDSO
	KindPlanet
	KindAsteroid
)

// CelestialObject is a single catalog or ephemeris entry.
type CelestialObject struct {
	Name       string
	RA         float64
	Dec        float64
	Magnitude  float64
	Kind       ObjectKind
	CatalogID  string
	IsPlanet   bool // set by FOV queries that merge catalog + ephemeris results
}

// Frame is a single captured image, grayscale or RGB.
type Frame struct {
	Pixels    []byte
	Width     int
	Height    int
	Channels  int // 1 = grayscale, 3 = RGB
	CapturedAt time.Time
}

// SolveResult is what a Solver reports for one Frame.
type SolveResult struct {
	RA          float64
	Dec         float64
	Roll        float64
	Probability float64
	FOVMeasured float64
	Timestamp   time.Time
}

// Location is an observer's fixed geographic position.
type Location struct {
	LatDeg float64
	LonDeg float64
	ElevM  float64
}
