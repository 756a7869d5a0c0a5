// Package catalog loads a star table from a read-only sqlite database and
// answers name, radius, and field-of-view lookups, merged with ephemeris
// positions for solar-system bodies.
package catalog

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"skyscope/internal/obscontext"
	"skyscope/internal/transform"
)

// Catalog provides read-only access to a star table. It is immutable
// after Open, so it is freely shared across goroutines without locking.
type Catalog struct {
	db   *sql.DB
	path string
}

// Open opens a read-only connection to the sqlite catalog database at
// path. The schema is expected to carry a single `objects` table with
// columns (name, ra, dec, magnitude, kind, catalog_id).
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog database ping failed: %w", err)
	}
	return &Catalog{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Lookup finds a catalog object by case-insensitive, trimmed name match.
func (c *Catalog) Lookup(name string) (obscontext.CelestialObject, bool, error) {
	needle := strings.TrimSpace(strings.ToLower(name))
	row := c.db.QueryRow(
		`SELECT name, ra, dec, magnitude, kind, catalog_id FROM objects WHERE lower(trim(name)) = ? LIMIT 1`,
		needle,
	)

	obj, err := scanObject(row)
	if err == sql.ErrNoRows {
		return obscontext.CelestialObject{}, false, nil
	}
	if err != nil {
		return obscontext.CelestialObject{}, false, fmt.Errorf("lookup %q: %w", name, err)
	}
	return obj, true, nil
}

// RadiusSearch returns catalog objects within radiusDeg of (raDeg, decDeg)
// no fainter than maxMagnitude. It uses a coarse bounding-box prefilter in
// SQL (cheap index use) and a precise haversine check in Go.
func (c *Catalog) RadiusSearch(raDeg, decDeg, radiusDeg, maxMagnitude float64) ([]obscontext.CelestialObject, error) {
	decPad := radiusDeg
	raPad := radiusDeg
	if cosDec := cosDeg(decDeg); cosDec > 1e-6 {
		raPad = radiusDeg / cosDec
	}

	rows, err := c.db.Query(
		`SELECT name, ra, dec, magnitude, kind, catalog_id FROM objects
		 WHERE dec BETWEEN ? AND ? AND ra BETWEEN ? AND ? AND magnitude <= ?`,
		decDeg-decPad, decDeg+decPad, raDeg-raPad, raDeg+raPad, maxMagnitude,
	)
	if err != nil {
		return nil, fmt.Errorf("radius search: %w", err)
	}
	defer rows.Close()

	var out []obscontext.CelestialObject
	for rows.Next() {
		obj, err := scanObjectRows(rows)
		if err != nil {
			return nil, fmt.Errorf("radius search scan: %w", err)
		}
		if transform.HaversineDist(raDeg, decDeg, obj.RA, obj.Dec) > radiusDeg {
			continue
		}
		out = append(out, obj)
	}
	return out, rows.Err()
}

// FieldOfView returns catalog objects within fovRadiusDeg of the field
// center, merged with any ephemeris objects the caller supplies (tagged
// IsPlanet), no fainter than maxMagnitude.
func (c *Catalog) FieldOfView(raDeg, decDeg, fovRadiusDeg, maxMagnitude float64, ephemerisObjects []obscontext.CelestialObject) ([]obscontext.CelestialObject, error) {
	objs, err := c.RadiusSearch(raDeg, decDeg, fovRadiusDeg, maxMagnitude)
	if err != nil {
		return nil, err
	}
	for _, e := range ephemerisObjects {
		e.IsPlanet = true
		if e.Magnitude <= maxMagnitude {
			objs = append(objs, e)
		}
	}
	return objs, nil
}

// Browse returns up to limit objects of the given kind, brightest first,
// for the TargetList screen.
func (c *Catalog) Browse(kind obscontext.ObjectKind, limit int) ([]obscontext.CelestialObject, error) {
	rows, err := c.db.Query(
		`SELECT name, ra, dec, magnitude, kind, catalog_id FROM objects WHERE kind = ? ORDER BY magnitude ASC LIMIT ?`,
		int(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}
	defer rows.Close()

	var out []obscontext.CelestialObject
	for rows.Next() {
		obj, err := scanObjectRows(rows)
		if err != nil {
			return nil, fmt.Errorf("browse scan: %w", err)
		}
		out = append(out, obj)
	}
	return out, rows.Err()
}

func scanObject(row *sql.Row) (obscontext.CelestialObject, error) {
	var obj obscontext.CelestialObject
	var kind int
	if err := row.Scan(&obj.Name, &obj.RA, &obj.Dec, &obj.Magnitude, &kind, &obj.CatalogID); err != nil {
		return obscontext.CelestialObject{}, err
	}
	obj.Kind = obscontext.ObjectKind(kind)
	return obj, nil
}

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}

func scanObjectRows(rows *sql.Rows) (obscontext.CelestialObject, error) {
	var obj obscontext.CelestialObject
	var kind int
	if err := rows.Scan(&obj.Name, &obj.RA, &obj.Dec, &obj.Magnitude, &kind, &obj.CatalogID); err != nil {
		return obscontext.CelestialObject{}, err
	}
	obj.Kind = obscontext.ObjectKind(kind)
	return obj, nil
}
