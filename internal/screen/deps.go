package screen

import (
	"skyscope/internal/analyzer"
	"skyscope/internal/catalog"
	"skyscope/internal/obscontext"
	"skyscope/internal/transform"
)

// Deps bundles the collaborators screens need beyond the shared Context:
// the catalog for target search, the analyzer for focus/noise readouts,
// and the alt/az converter for directional math. Screens hold only what
// they individually need from Deps.
type Deps struct {
	Catalog   *catalog.Catalog
	Ephemeris *catalog.EphemerisCache
	Analyzer  *analyzer.Analyzer
	AltAz     transform.AltAzConverter
}

// NewDefaultFactory builds the factory map wiring every screen ID to its
// concrete Screen implementation.
func NewDefaultFactory(deps Deps) map[ID]func() Screen {
	searchResults := &searchState{}
	return map[ID]func() Screen{
		MainMenu:     func() Screen { return &mainMenuScreen{} },
		Focus:        func() Screen { return &focusScreen{analyzer: deps.Analyzer} },
		Alignment:    func() Screen { return &alignmentScreen{cursor: &obscontext.PixelCoord{Row: render240 / 2, Col: render240 / 2}} },
		TargetList:   func() Screen { return &targetListScreen{catalog: deps.Catalog, state: searchResults} },
		TargetSelect: func() Screen { return &targetSelectScreen{state: searchResults} },
		Navigation:   func() Screen { return &navigationScreen{altAz: deps.AltAz, catalog: deps.Catalog, ephemeris: deps.Ephemeris} },
		Directions:   func() Screen { return &directionsScreen{altAz: deps.AltAz} },
		Info:         func() Screen { return &infoScreen{analyzer: deps.Analyzer} },
	}
}

const render240 = 240

// searchState carries the TargetList's current result set into
// TargetSelect, since the state machine only ever holds one active
// screen instance at a time.
type searchState struct {
	results  []obscontext.CelestialObject
	selected int
}
