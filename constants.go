package main

import "time"

type View int

const (
	ViewHome View = iota
	ViewRoadmap
	ViewContact
)

var views = []View{ViewHome, ViewRoadmap, ViewContact}

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewRoadmap:
		return "roadmap"
	case ViewContact:
		return "contact"
	default:
		return "unknown"
	}
}

func (v View) Next() View {
	return views[(int(v)+1)%len(views)]
}

func (v View) Prev() View {
	return views[(int(v)+len(views)-1)%len(views)]
}

// Anchors reachable with jumpTo.
const (
	anchorFAQ      = "faq"
	anchorRoadmap  = "timeline"
	anchorProducts = "products"
)

const (
	headerHeight = 2 // title line and progress bar
	statusHeight = 1

	globeRows     = 14
	iconRows      = 6
	slideshowRows = 10

	// driftColumns is how far a fully drifted section shifts sideways.
	driftColumns = 8

	messageTTL = 3 * time.Second
)
