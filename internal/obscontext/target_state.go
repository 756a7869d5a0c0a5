package obscontext

import "sync"

// TargetState is either set (both RA and Dec finite) or absent.
type TargetState struct {
	mu sync.Mutex

	name   string
	ra     float64
	dec    float64
	isSet  bool
	filter CatalogFilter
}

// NewTargetState returns an absent TargetState filtered to stars.
func NewTargetState() *TargetState {
	return &TargetState{filter: FilterStars}
}

// HasTarget reports whether a target is currently set.
func (t *TargetState) HasTarget() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isSet
}

// Target returns the current target, or ok=false if absent.
func (t *TargetState) Target() (name string, ra, dec float64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.isSet {
		return "", 0, 0, false
	}
	return t.name, t.ra, t.dec, true
}

// SetTarget records a new target by name and coordinates.
func (t *TargetState) SetTarget(name string, ra, dec float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
	t.ra = ra
	t.dec = dec
	t.isSet = true
}

// Clear removes the current target.
func (t *TargetState) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.isSet = false
	t.name = ""
}

// Filter returns the catalog filter applied to target selection.
func (t *TargetState) Filter() CatalogFilter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filter
}

// SetFilter changes the catalog filter applied to target selection.
func (t *TargetState) SetFilter(f CatalogFilter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = f
}
