package transform

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestRadecVectorRoundTrip(t *testing.T) {
	cases := [][2]float64{{0, 0}, {90, 45}, {359.9999, -89}, {180, 0}}
	for _, c := range cases {
		v := RadecToVector(c[0], c[1])
		ra, dec := VectorToRadec(v)
		if !almostEqual(ra, math.Mod(c[0]+360, 360), 1e-6) {
			t.Errorf("ra round trip: got %v want %v", ra, c[0])
		}
		if !almostEqual(dec, c[1], 1e-6) {
			t.Errorf("dec round trip: got %v want %v", dec, c[1])
		}
	}
}

func TestApplyRotationRoundTrip(t *testing.T) {
	camRA, camDec := 10.0, 20.0
	telRA, telDec := 15.0, 25.0
	r := SolveRotation(camRA, camDec, telRA, telDec, 0)

	ra, dec := ApplyRotation(r, camRA, camDec, 0)
	if !almostEqual(ra, telRA, 1e-6) {
		t.Errorf("ra: got %v want %v", ra, telRA)
	}
	if !almostEqual(dec, telDec, 1e-6) {
		t.Errorf("dec: got %v want %v", dec, telDec)
	}
}

func TestRotationBetweenVectorsAntiParallel(t *testing.T) {
	v1 := Vector3{1, 0, 0}
	v2 := Vector3{-1, 0, 0}
	r := RotationBetweenVectors(v1, v2)
	got := matVec(r, v1)
	if !almostEqual(got[0], v2[0], 1e-6) || !almostEqual(got[1], v2[1], 1e-6) || !almostEqual(got[2], v2[2], 1e-6) {
		t.Errorf("anti-parallel rotation: got %v want %v", got, v2)
	}
}

func TestSkyDriftWraps(t *testing.T) {
	got := SkyDrift(359.9999, 0.0, 3600)
	want := math.Mod(359.9999+15, 360)
	if !almostEqual(got, want, 1e-6) {
		t.Errorf("drift wrap: got %v want %v", got, want)
	}
	if got < 0 || got >= 360 {
		t.Errorf("drift out of domain: %v", got)
	}
}

func TestSkyDriftAtPole(t *testing.T) {
	ra := SkyDrift(45, 90, 3600)
	if !almostEqual(ra, 45, 1e-9) {
		t.Errorf("drift at pole should not change ra: got %v", ra)
	}
	ra = SkyDrift(45, -90, 3600)
	if !almostEqual(ra, 45, 1e-9) {
		t.Errorf("drift at south pole should not change ra: got %v", ra)
	}
}

func TestHaversineZero(t *testing.T) {
	d := HaversineDist(10, 20, 10, 20)
	if !almostEqual(d, 0, 1e-9) {
		t.Errorf("self distance should be 0, got %v", d)
	}
}

func TestGnomonicProjectAntipodeRejected(t *testing.T) {
	ra0, dec0 := 200.0, 55.0
	_, ok := GnomonicProject(ra0+180, -dec0, ra0, dec0, 0.5, 0)
	if ok {
		t.Errorf("antipodal object should be rejected by the projection")
	}
}

func TestGnomonicProjectWithinField(t *testing.T) {
	ra0, dec0 := 200.0, 55.0
	p, ok := GnomonicProject(ra0+0.01, dec0, ra0, dec0, 0.5, 0)
	if !ok {
		t.Fatalf("expected nearby object to project")
	}
	if p.X*p.X+p.Y*p.Y > 1 {
		t.Errorf("projected point outside unit disk: %+v", p)
	}
}

func TestGnomonicProjectOutsideField(t *testing.T) {
	ra0, dec0 := 200.0, 55.0
	_, ok := GnomonicProject(210, 55, ra0, dec0, 0.5, 0)
	if ok {
		t.Errorf("object ~5.7 degrees away should be outside a 0.5 degree field")
	}
}

func TestAltAzRoundTrip(t *testing.T) {
	conv := StandardAltAz{}
	ra, dec := 279.2437, 38.7861
	loc := struct{ lat, lon float64 }{43.1566, -77.6088}
	at := time.Date(2026, 7, 31, 4, 30, 0, 0, time.UTC)

	alt, az := conv.RadecToAltAz(ra, dec, at, loc.lat, loc.lon)
	raBack, decBack := conv.AltAzToRadec(alt, az, at, loc.lat, loc.lon)

	if !almostEqual(raBack, ra, 1e-6) {
		t.Errorf("ra round trip: got %v want %v", raBack, ra)
	}
	if !almostEqual(decBack, dec, 1e-6) {
		t.Errorf("dec round trip: got %v want %v", decBack, dec)
	}
}

func TestDistanceNorthEast(t *testing.T) {
	north, east := DistanceNorthEast(200, 55, 200, 56, 0)
	if !almostEqual(north, 1, 1e-6) {
		t.Errorf("north offset: got %v want 1", north)
	}
	if !almostEqual(east, 0, 1e-6) {
		t.Errorf("east offset: got %v want 0", east)
	}
}
