// Package session drives one open map page: it resolves the visitor, turns
// clicks into render cycles and pushes the results to the page.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"weather-map/internal/location"
	"weather-map/internal/metrics"
	"weather-map/internal/projection"
	"weather-map/internal/render"
	"weather-map/internal/types"
)

const (
	OriginLocate = "locate"
	OriginClick  = "click"

	invalidInput = "invalid_input"
)

// Options tunes a session
type Options struct {
	LocateZoom    float64
	ClockInterval time.Duration
	LocateTimeout time.Duration    // Zero leaves the visitor lookup unbounded
	Now           func() time.Time // Defaults to time.Now
}

// Session owns the state of one page. At most one render cycle is current
// and at most one clock runs at any time.
type Session struct {
	mu    sync.Mutex
	state State

	cancelCycle context.CancelFunc
	clockStop   chan struct{}
	clocks      atomic.Int32
	closed      bool

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	locator  location.Service
	renderer render.Service
	publish  Publisher
	opts     Options
	logger   *slog.Logger
}

// New creates a session. Close must be called once the page goes away.
func New(logger *slog.Logger, locator location.Service, renderer render.Service, publish Publisher, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = 100 * time.Millisecond
	}

	ctx, stop := context.WithCancel(context.Background())
	metrics.ActiveSessions.Inc()

	return &Session{
		ctx:      ctx,
		stop:     stop,
		locator:  locator,
		renderer: renderer,
		publish:  publish,
		opts:     opts,
		logger:   logger.With("component", "session"),
	}
}

// State returns a copy of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Locate resolves the visitor at ip, moves the view there and renders it.
// A click that lands while the lookup is in flight wins over the result.
func (s *Session) Locate(ip string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	since := s.state.Latest
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		ctx := s.ctx
		if s.opts.LocateTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opts.LocateTimeout)
			defer cancel()
		}

		coords, err := s.locator.Locate(ctx, ip)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed {
			return
		}

		if err != nil {
			outcome := render.Outcome(err)
			metrics.RenderCycles.WithLabelValues(OriginLocate, outcome).Inc()
			s.logger.Error("failed to locate visitor",
				"ip", ip,
				"outcome", outcome,
				"error", err,
			)
			s.notify(LocateFailed, &Notice{Message: LocateFailedMessage, Kind: outcome})
			return
		}

		if s.state.Latest != since {
			s.logger.Debug("visitor located after a newer cycle started, ignoring",
				"coords", coords.String(),
				"latest_seq", s.state.Latest,
			)
			return
		}

		mercator := projection.FromLonLat(coords)
		view := &View{
			Center:   coords,
			Mercator: [2]float64{mercator.X(), mercator.Y()},
			Zoom:     s.opts.LocateZoom,
		}
		s.dispatch(Action{Type: ViewMoved, View: view})
		s.publish(Event{Type: EventView, Data: view})

		s.startLocked(OriginLocate, coords)
	}()
}

// Click starts a render cycle for a point clicked on the map, given in
// EPSG:3857 meters.
func (s *Session) Click(x, y float64) (uint64, error) {
	coords, err := projection.ToLonLat(x, y)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logger.Warn("rejected click",
			"x", x,
			"y", y,
			"error", err,
		)
		if !s.closed {
			s.notify(InputRejected, &Notice{Message: InvalidPointMessage, Kind: invalidInput})
		}
		return 0, err
	}
	return s.Start(OriginClick, coords), nil
}

// Start issues a new render cycle for coords and cancels the previous one.
// It returns the cycle's sequence number, or 0 once the session is closed.
func (s *Session) Start(origin string, coords types.Coords) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(origin, coords)
}

func (s *Session) startLocked(origin string, coords types.Coords) uint64 {
	if s.closed {
		return 0
	}

	if s.cancelCycle != nil {
		s.cancelCycle()
	}

	seq := s.state.Latest + 1
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelCycle = cancel
	s.dispatch(Action{Type: RenderStarted, Seq: seq, Coords: coords})

	s.logger.Debug("render cycle started",
		"seq", seq,
		"origin", origin,
		"coords", coords.String(),
	)

	s.wg.Add(1)
	go s.run(ctx, cancel, origin, seq, coords)

	return seq
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, origin string, seq uint64, coords types.Coords) {
	defer s.wg.Done()
	defer cancel()

	page, err := s.renderer.Render(ctx, coords)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if !s.state.isCurrent(seq) {
		metrics.RenderStale.Inc()
		s.logger.Debug("discarding stale render cycle",
			"seq", seq,
			"latest_seq", s.state.Latest,
		)
		return
	}

	outcome := render.Outcome(err)
	metrics.RenderCycles.WithLabelValues(origin, outcome).Inc()

	if err != nil {
		s.logger.Error("failed to render page",
			"seq", seq,
			"origin", origin,
			"coords", coords.String(),
			"outcome", outcome,
			"error", err,
		)
		notice := &Notice{Message: RenderFailedMessage, Kind: outcome}
		s.dispatch(Action{Type: RenderFailed, Seq: seq, Notice: notice})
		s.publish(Event{Type: EventNotice, Seq: seq, Data: notice})
		return
	}

	s.dispatch(Action{Type: RenderSucceeded, Seq: seq, Page: page})
	s.publish(Event{Type: EventPage, Seq: seq, Data: page})
	s.startClockLocked(seq, page)
}

// startClockLocked replaces the running clock with one for page
func (s *Session) startClockLocked(seq uint64, page *render.Page) {
	s.stopClockLocked()

	stop := make(chan struct{})
	s.clockStop = stop
	s.publishClockLocked(seq, page)

	s.clocks.Add(1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.clocks.Add(-1)

		ticker := time.NewTicker(s.opts.ClockInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.clockStop == stop {
					s.publishClockLocked(seq, page)
				}
				s.mu.Unlock()
			}
		}
	}()
}

func (s *Session) publishClockLocked(seq uint64, page *render.Page) {
	text := render.ClockLine(page.Timezone, page.Location(), s.opts.Now())
	s.publish(Event{Type: EventClock, Seq: seq, Data: Clock{Text: text}})
}

func (s *Session) stopClockLocked() {
	if s.clockStop != nil {
		close(s.clockStop)
		s.clockStop = nil
	}
}

// Close cancels in-flight work, stops the clock and waits for every
// session goroutine to exit. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancelCycle != nil {
		s.cancelCycle()
	}
	s.stopClockLocked()
	s.mu.Unlock()

	s.stop()
	s.wg.Wait()
	metrics.ActiveSessions.Dec()

	s.logger.Debug("session closed")
}

func (s *Session) dispatch(action Action) {
	s.state = reduce(s.state, action)
}

func (s *Session) notify(kind ActionType, notice *Notice) {
	s.dispatch(Action{Type: kind, Notice: notice})
	s.publish(Event{Type: EventNotice, Data: notice})
}
