// Package screens runs dashboard screens. A Screen owns one dashstate.State
// and is the only goroutine that changes it: events are applied strictly in
// arrival order, and the commands each transition produces run in their own
// goroutines bound to the screen's context. Results come back as events.
package screens

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	metricsstore "github.com/dalemusser/arenadash/internal/app/store/metrics"
	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	userstore "github.com/dalemusser/arenadash/internal/app/store/users"
	"github.com/dalemusser/arenadash/internal/app/system/dashstate"
	"github.com/dalemusser/arenadash/internal/app/system/timeouts"
	"github.com/dalemusser/arenadash/internal/domain/models"
	"go.uber.org/zap"
)

// ErrClosed is returned when an event is sent to a screen that has been torn down.
var ErrClosed = errors.New("screen closed")

type envelope struct {
	ev    dashstate.Event
	reply chan dashstate.State
}

// Screen is one open dashboard.
type Screen struct {
	id    string
	owner string
	log   *zap.Logger

	metrics *metricsstore.Client
	details *userstore.DetailFetcher

	ctx    context.Context
	cancel context.CancelFunc
	inbox  chan envelope
	done   chan struct{}
	cmds   sync.WaitGroup
	once   sync.Once

	mu      sync.RWMutex
	state   dashstate.State
	changed chan struct{}

	lastSeen atomic.Int64
}

// New starts a screen whose fetches go through gw. The screen stays
// Initializing until it receives dashstate.Mounted.
func New(id, owner string, gw platformstore.Gateway, logger *zap.Logger) *Screen {
	ctx, cancel := context.WithCancel(context.Background())
	log := logger.With(zap.String("screen", id))
	s := &Screen{
		id:      id,
		owner:   owner,
		log:     log,
		metrics: metricsstore.New(gw, log),
		details: userstore.NewDetailFetcher(gw, log),
		ctx:     ctx,
		cancel:  cancel,
		inbox:   make(chan envelope),
		done:    make(chan struct{}),
		state:   dashstate.New(),
		changed: make(chan struct{}),
	}
	s.touch()
	go s.run()
	return s
}

// ID returns the screen identifier.
func (s *Screen) ID() string { return s.id }

// Owner returns the session owner the screen was opened for.
func (s *Screen) Owner() string { return s.owner }

// LastSeen returns when the screen was last used by its presenter.
func (s *Screen) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

func (s *Screen) touch() { s.lastSeen.Store(time.Now().UnixNano()) }

// State returns the current snapshot.
func (s *Screen) State() dashstate.State {
	st, _ := s.snapshot()
	return st
}

// Changed returns a channel that is closed on the next state change.
func (s *Screen) Changed() <-chan struct{} {
	_, ch := s.snapshot()
	return ch
}

func (s *Screen) snapshot() (dashstate.State, <-chan struct{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.changed
}

func (s *Screen) publish(next dashstate.State) {
	s.mu.Lock()
	s.state = next
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()
}

// Dispatch applies ev and returns the state right after the transition.
// Commands the transition produced are already running when it returns.
func (s *Screen) Dispatch(ctx context.Context, ev dashstate.Event) (dashstate.State, error) {
	s.touch()
	reply := make(chan dashstate.State, 1)
	select {
	case s.inbox <- envelope{ev: ev, reply: reply}:
	case <-s.done:
		return s.State(), ErrClosed
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
	select {
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
}

// Await blocks until cond holds for the current state, the screen closes,
// or ctx ends.
func (s *Screen) Await(ctx context.Context, cond func(dashstate.State) bool) (dashstate.State, error) {
	s.touch()
	for {
		st, ch := s.snapshot()
		if cond(st) {
			return st, nil
		}
		select {
		case <-ch:
		case <-s.done:
			return s.State(), ErrClosed
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

// Done is closed once the screen has shut down.
func (s *Screen) Done() <-chan struct{} { return s.done }

// Close tears the screen down. In-flight fetches are cancelled and any
// result that still arrives is dropped. Close waits for the event loop and
// all command goroutines to exit; it is safe to call more than once.
func (s *Screen) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
		s.cmds.Wait()
		s.log.Debug("screen closed")
	})
}

func (s *Screen) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			next, _ := dashstate.Reduce(s.State(), dashstate.Teardown{})
			s.publish(next)
			return
		case in := <-s.inbox:
			next, cmds := dashstate.Reduce(s.State(), in.ev)
			s.publish(next)
			for _, c := range cmds {
				s.exec(c)
			}
			if in.reply != nil {
				in.reply <- next
			}
		}
	}
}

// post delivers a command result. It gives up once the screen is closing.
func (s *Screen) post(ev dashstate.Event) {
	select {
	case s.inbox <- envelope{ev: ev}:
	case <-s.ctx.Done():
	}
}

func (s *Screen) exec(c dashstate.Command) {
	switch c := c.(type) {
	case dashstate.LoadMetrics:
		s.cmds.Add(1)
		go func() {
			defer s.cmds.Done()
			s.post(s.loadMetrics())
		}()

	case dashstate.FetchDetail:
		s.cmds.Add(1)
		go func() {
			defer s.cmds.Done()
			s.post(s.fetchDetail(c))
		}()

	case dashstate.Redirect:
		// Presenters read RedirectTo from the state; nothing to run here.
		s.log.Info("dashboard redirect", zap.String("to", c.To), zap.String("reason", c.Reason))
	}
}

func (s *Screen) loadMetrics() dashstate.Event {
	ctx, cancel := timeouts.WithTimeout(s.ctx, timeouts.Medium(), s.log, "load dashboard metrics")
	defer cancel()

	res, err := s.metrics.Load(ctx)
	if err != nil {
		if s.ctx.Err() == nil {
			s.log.Error("dashboard load failed", zap.Error(err))
		}
		return dashstate.MetricsFailed{Err: err}
	}
	return dashstate.MetricsLoaded{
		Authorized: res.Authorized,
		Metrics:    res.Metrics,
		Users:      res.Users,
	}
}

func (s *Screen) fetchDetail(c dashstate.FetchDetail) dashstate.Event {
	ctx, cancel := timeouts.WithTimeout(s.ctx, timeouts.Medium(), s.log, "fetch user detail")
	defer cancel()

	u, err := s.details.FetchDetail(ctx, c.ID)
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		return dashstate.DetailNotFound{Token: c.Token}
	case err != nil:
		if s.ctx.Err() == nil {
			s.log.Warn("user detail fetch failed", zap.String("user_id", c.ID), zap.Error(err))
		}
		return dashstate.DetailFetchFailed{Token: c.Token, Err: err}
	}
	return dashstate.DetailLoaded{Token: c.Token, User: u}
}
