package session

// EventType names what a pushed event carries
type EventType string

const (
	EventView   EventType = "view"
	EventPage   EventType = "page"
	EventClock  EventType = "clock"
	EventNotice EventType = "notice"
)

const (
	LocateFailedMessage = "Something went wrong while retrieving your location."
	RenderFailedMessage = "Something went wrong while retrieving this place."
	InvalidPointMessage = "That point is outside the map."
)

// Event is one message to the page. Seq is the render cycle it belongs to,
// zero for events that belong to none.
type Event struct {
	Type EventType `json:"type"`
	Seq  uint64    `json:"seq"`
	Data any       `json:"data"`
}

// Clock is the content of the timezone text area
type Clock struct {
	Text string `json:"text"`
}

// Publisher delivers events to the page. It is called with the session lock
// held and must neither block nor call back into the session.
type Publisher func(Event)
