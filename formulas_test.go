package mapproj

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nearSphere is an ellipsoid flat enough for the ellipsoidal formulas to
// agree with the spherical ones.
func nearSphere(phi0 float64) base {
	return base{
		semiMajor:        1,
		semiMinor:        math.Sqrt(1 - 1e-12),
		es:               1e-12,
		e:                1e-6,
		scaleFactor:      1,
		latitudeOfOrigin: phi0,
	}
}

func unitSphere(phi0 float64) base {
	return base{semiMajor: 1, semiMinor: 1, scaleFactor: 1, latitudeOfOrigin: phi0}
}

func parallels(sp1, sp2 float64) *paramReader {
	return newParamReader(&Parameters{values: map[string]float64{
		StandardParallel1: sp1,
		StandardParallel2: sp2,
	}})
}

type coreBuilder func(b base) (projector, error)

func compareCores(t *testing.T, name string, build coreBuilder, phi0, maxLam, minPhi, maxPhi float64) {
	t.Helper()
	ell, err := build(nearSphere(phi0))
	require.NoError(t, err)
	sph, err := build(unitSphere(phi0))
	require.NoError(t, err)
	for lam := -maxLam; lam <= maxLam; lam += maxLam / 8 {
		for phi := minPhi; phi <= maxPhi; phi += (maxPhi - minPhi) / 16 {
			x1, y1, err := ell.forward(lam, phi)
			require.NoError(t, err)
			x2, y2, err := sph.forward(lam, phi)
			require.NoError(t, err)
			if math.Abs(x1-x2) > 1e-6 || math.Abs(y1-y2) > 1e-6 {
				t.Fatalf("%s: ellipsoidal (%g, %g) and spherical (%g, %g) disagree at (%g°, %g°)",
					name, x1, y1, x2, y2, lam*rad2Deg, phi*rad2Deg)
			}
			lam1, phi1, err := ell.inverse(x2, y2)
			require.NoError(t, err)
			if math.Abs(lam1-lam) > 1e-6 || math.Abs(phi1-phi) > 1e-6 {
				t.Fatalf("%s: ellipsoidal inverse gave (%g°, %g°), expected (%g°, %g°)",
					name, lam1*rad2Deg, phi1*rad2Deg, lam*rad2Deg, phi*rad2Deg)
			}
		}
	}
}

func TestSphericalEllipsoidalAgreement(t *testing.T) {
	var o options
	deg := deg2Rad
	compareCores(t, "mercator", func(b base) (projector, error) {
		return buildMercator1SP(&b, nil, o)
	}, 0, 170*deg, -80*deg, 80*deg)
	compareCores(t, "transverse mercator", func(b base) (projector, error) {
		return buildTransverseMercator(&b, nil, o)
	}, 20*deg, 3*deg, -80*deg, 80*deg)
	compareCores(t, "lambert", func(b base) (projector, error) {
		return newLambertConic(&b, 30*deg, 60*deg, false)
	}, 45*deg, 60*deg, -40*deg, 85*deg)
	compareCores(t, "albers", func(b base) (projector, error) {
		return buildAlbers(&b, parallels(20, 50), o)
	}, 35*deg, 60*deg, -40*deg, 85*deg)
	compareCores(t, "stereographic oblique", func(b base) (projector, error) {
		return buildStereographic(&b, nil, o)
	}, 40*deg, 60*deg, -20*deg, 85*deg)
	compareCores(t, "stereographic equatorial", func(b base) (projector, error) {
		return buildStereographic(&b, nil, o)
	}, 0, 80*deg, -80*deg, 80*deg)
	compareCores(t, "stereographic north", func(b base) (projector, error) {
		return newStereographic(&b, modeNorthPole, 70*deg, o), nil
	}, halfPi, 170*deg, 0, 80*deg)
	compareCores(t, "stereographic south", func(b base) (projector, error) {
		return newStereographic(&b, modeSouthPole, halfPi, o), nil
	}, -halfPi, 170*deg, -80*deg, 0)
}

func TestAzimuthalMode(t *testing.T) {
	assert.Equal(t, modeNorthPole, azimuthalModeFor(halfPi))
	assert.Equal(t, modeSouthPole, azimuthalModeFor(-halfPi))
	assert.Equal(t, modeEquatorial, azimuthalModeFor(0))
	assert.Equal(t, modeOblique, azimuthalModeFor(0.3))
	assert.True(t, modeSouthPole.polar())
	assert.False(t, modeEquatorial.polar())
	assert.Equal(t, "oblique", modeOblique.String())
}

func TestPolarSeriesInverse(t *testing.T) {
	b := base{semiMajor: WGS84.SemiMajor, semiMinor: WGS84.SemiMinor, es: WGS84.Es(), e: WGS84.E(),
		scaleFactor: 0.994, latitudeOfOrigin: halfPi}
	iter := newStereographic(&b, modeNorthPole, halfPi, options{})
	series := newStereographic(&b, modeNorthPole, halfPi, options{seriesInverse: true})
	for lat := 0.0; lat < 90; lat += 0.5 {
		x, y, err := iter.forward(0.7, lat*deg2Rad)
		require.NoError(t, err)
		_, phi1, err := iter.inverse(x, y)
		require.NoError(t, err)
		_, phi2, err := series.inverse(x, y)
		require.NoError(t, err)
		if math.Abs(phi1-phi2) > 1e-9 {
			t.Fatalf("series and iteration disagree at %g°: %g vs %g", lat, phi2*rad2Deg, phi1*rad2Deg)
		}
	}
}

func TestSnyderKrugerAgreement(t *testing.T) {
	params, err := NewParameters(map[string]float64{
		SemiMajor:       WGS84.SemiMajor,
		SemiMinor:       WGS84.SemiMinor,
		CentralMeridian: 15,
		ScaleFactor:     0.9996,
		FalseEasting:    500000,
	})
	require.NoError(t, err)
	snyder, err := Create("Transverse_Mercator", params)
	require.NoError(t, err)
	kruger, err := Create("Transverse_Mercator_Extended", params)
	require.NoError(t, err)
	for lon := 12.0; lon <= 18; lon += 0.25 {
		for lat := -80.0; lat <= 80; lat += 2 {
			x1, y1, err := snyder.Forward(lon, lat)
			require.NoError(t, err)
			x2, y2, err := kruger.Forward(lon, lat)
			require.NoError(t, err)
			if d := math.Hypot(x1-x2, y1-y2); d > 0.01 {
				t.Fatalf("series disagree by %g m at (%g, %g)", d, lon, lat)
			}
		}
	}
}

func TestObliqueStereographicVariants(t *testing.T) {
	params, err := NewParameters(map[string]float64{
		SemiMajor:        Bessel1841.SemiMajor,
		SemiMinor:        Bessel1841.SemiMinor,
		LatitudeOfOrigin: 52.156160556,
		CentralMeridian:  5.387638889,
		ScaleFactor:      0.9999079,
		FalseEasting:     155000,
		FalseNorthing:    463000,
	})
	require.NoError(t, err)
	epsg, err := Create("Oblique_Stereographic", params)
	require.NoError(t, err)
	conformal, err := Create("Stereographic", params)
	require.NoError(t, err)

	x1, y1, err := epsg.Forward(5.387638889, 52.156160556)
	require.NoError(t, err)
	x2, y2, err := conformal.Forward(5.387638889, 52.156160556)
	require.NoError(t, err)
	assert.InDelta(t, 155000, x1, 1e-6)
	assert.InDelta(t, 463000, y1, 1e-6)
	assert.InDelta(t, x1, x2, 1e-6)
	assert.InDelta(t, y1, y2, 1e-6)

	// the two formulations drift apart away from the origin
	x1, y1, err = epsg.Forward(6, 53)
	require.NoError(t, err)
	x2, y2, err = conformal.Forward(6, 53)
	require.NoError(t, err)
	assert.Greater(t, math.Hypot(x1-x2, y1-y2), 0.5)
}

func TestGeneratedCoefficients(t *testing.T) {
	var aCoeff, bCoeff [8]float64
	n := (WGS84.SemiMajor - WGS84.SemiMinor) / (WGS84.SemiMajor + WGS84.SemiMinor)
	r4oa := generateCoefficients(n, aCoeff[:], bCoeff[:])
	// rectifying radius of WGS84 over a
	assert.InDelta(t, 6367449.1458/WGS84.SemiMajor, r4oa, 1e-10)
	assert.InDelta(t, n/2, aCoeff[0], n*n)
	assert.InDelta(t, -n/2, bCoeff[0], n*n)

	r4oa = generateCoefficients(0, aCoeff[:], bCoeff[:])
	assert.Equal(t, 1.0, r4oa)
	for i := range aCoeff {
		assert.Zero(t, aCoeff[i])
		assert.Zero(t, bCoeff[i])
	}
}

func TestCheckDeltaLon(t *testing.T) {
	assert.NoError(t, checkDeltaLon(0, 60*deg2Rad))
	assert.NoError(t, checkDeltaLon(0, 170*deg2Rad))
	assert.NoError(t, checkDeltaLon(85*deg2Rad, 90*deg2Rad))
	assert.ErrorIs(t, checkDeltaLon(0, 80*deg2Rad), ErrToleranceCondition)
}
