package session

import (
	"weather-map/internal/render"
	"weather-map/internal/types"
)

// View is a map view change issued to the page
type View struct {
	Center   types.Coords `json:"center"`
	Mercator [2]float64   `json:"mercator"` // Center in EPSG:3857
	Zoom     float64      `json:"zoom"`
}

// Notice is a user-facing failure message
type Notice struct {
	Message string `json:"message"`
	Kind    string `json:"kind"` // network_failure, parse_failure or invalid_input
}

// State is everything the session knows about its page
type State struct {
	Coords    types.Coords // Coordinate of the latest issued render cycle
	Page      *render.Page // Last applied page
	View      *View
	Latest    uint64 // Sequence number of the latest issued render cycle
	Applied   uint64 // Sequence number of the cycle that produced Page
	Rendering bool
	Notice    *Notice
}

type ActionType int

const (
	ViewMoved ActionType = iota + 1
	RenderStarted
	RenderSucceeded
	RenderFailed
	LocateFailed
	InputRejected
)

// Action is a state transition request; only the fields its Type uses are set
type Action struct {
	Type   ActionType
	Seq    uint64
	Coords types.Coords
	Page   *render.Page
	View   *View
	Notice *Notice
}

// reduce is the only place State changes. Completions of anything but the
// latest cycle leave the state untouched.
func reduce(state State, action Action) State {
	switch action.Type {
	case ViewMoved:
		state.View = action.View

	case RenderStarted:
		if action.Seq <= state.Latest {
			return state
		}
		state.Latest = action.Seq
		state.Coords = action.Coords
		state.Rendering = true

	case RenderSucceeded:
		if action.Seq != state.Latest {
			return state
		}
		state.Page = action.Page
		state.Applied = action.Seq
		state.Rendering = false
		state.Notice = nil

	case RenderFailed:
		if action.Seq != state.Latest {
			return state
		}
		state.Rendering = false
		state.Notice = action.Notice

	case LocateFailed, InputRejected:
		state.Notice = action.Notice
	}

	return state
}

// isCurrent reports whether a cycle's completion may still reach the page
func (s State) isCurrent(seq uint64) bool {
	return seq == s.Latest
}
