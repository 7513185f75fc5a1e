// Package service runs list/form views: it owns their state, feeds events
// through the reducer and executes the effects the reducer asks for.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/heroes/internal/adapters/repository"
	"github.com/okian/heroes/internal/adapters/superheroes"
	"github.com/okian/heroes/internal/domain/hero"
	"github.com/okian/heroes/internal/view"
	"github.com/okian/heroes/pkg/logger"
	"github.com/okian/heroes/pkg/metrics"
)

// ErrViewNotFound is returned for unknown or evicted view ids.
var ErrViewNotFound = errors.New("view not found")

// ErrNotStarted is returned when the service is used before Start.
var ErrNotStarted = errors.New("service not started")

// HeroesAPI is the subset of the superheroes client used by views.
type HeroesAPI interface {
	List(ctx context.Context) ([]hero.Hero, error)
	Create(ctx context.Context, d hero.Draft) (hero.Hero, error)
}

// session is one mounted view. mu serializes its events.
type session struct {
	mu    sync.Mutex
	state view.State
}

// Service implements the view runtime behind the HTML and JSON handlers.
type Service struct {
	mu sync.RWMutex

	api     HeroesAPI
	views   *repository.Store[*session]
	reducer view.Reducer

	// Configuration
	maxViews    int
	guardSubmit bool

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMaxViews bounds the number of views kept in memory.
func WithMaxViews(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxViews = n
		}
	}
}

// WithGuardSubmit drops a submit while the same view has a create in flight.
func WithGuardSubmit(enabled bool) Option {
	return func(s *Service) {
		s.guardSubmit = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service backed by api.
func New(api HeroesAPI, opts ...Option) *Service {
	s := &Service{
		api:      api,
		maxViews: 10_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start allocates the view store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.reducer = view.Reducer{GuardSubmit: s.guardSubmit}
	s.views = repository.NewStore[*session](
		repository.WithMaxSize(s.maxViews),
		repository.WithEvictHook(func(string) { metrics.RecordViewEvicted() }),
	)
	s.started = true
	s.logger.Info(ctx, "view service started",
		logger.Int("maxViews", s.maxViews),
		logger.Bool("guardSubmit", s.guardSubmit),
	)
	return nil
}

// Stop drops every view.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.views.Clear()
	metrics.UpdateActiveViews(0)
	s.started = false
	s.logger.Info(context.Background(), "view service stopped")
}

func (s *Service) store() (*repository.Store[*session], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.views, nil
}

// Mount creates a view, loads the hero list into it and returns its id.
func (s *Service) Mount(ctx context.Context) (string, view.State, error) {
	views, err := s.store()
	if err != nil {
		return "", view.State{}, err
	}

	id := uuid.NewString()
	views.Put(ctx, id, &session{})
	metrics.RecordViewMounted()
	metrics.UpdateActiveViews(views.Len())
	s.logger.Debug(ctx, "view mounted", logger.String("view", id))

	st, err := s.Dispatch(ctx, id, view.Mounted{})
	return id, st, err
}

// View returns the current state of a view without changing it.
func (s *Service) View(ctx context.Context, id string) (view.State, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return view.State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state.Clone(), nil
}

// Dispatch applies events to a view in order and runs the resulting effects.
// Effects run outside the view lock, like requests in a browser, so two
// overlapping submits can both reach the API unless the submit guard is on.
func (s *Service) Dispatch(ctx context.Context, id string, events ...view.Event) (view.State, error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return view.State{}, err
	}

	var st view.State
	for _, ev := range events {
		var eff view.Effect
		st, eff = s.apply(ctx, sess, ev)
		if eff.Kind == view.EffectNone {
			continue
		}
		if result := s.run(ctx, id, eff); result != nil {
			st, _ = s.apply(ctx, sess, result)
		}
	}
	if len(events) == 0 {
		return s.View(ctx, id)
	}
	return st, nil
}

func (s *Service) apply(ctx context.Context, sess *session, ev view.Event) (view.State, view.Effect) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	prev := sess.state
	next, eff := s.reducer.Reduce(prev, ev)
	sess.state = next

	if _, ok := ev.(view.Submit); ok && eff.Kind == view.EffectNone {
		if verr := hero.Validate(prev.Draft); verr != nil {
			metrics.RecordValidationRejection(verr.Rule)
		} else {
			s.logger.Debug(ctx, "submit dropped while create in flight")
		}
	}
	return next.Clone(), eff
}

// run executes one effect and returns the event describing its outcome.
// The API call outlives the caller's cancellation: once sent, a create is not aborted.
func (s *Service) run(ctx context.Context, id string, eff view.Effect) view.Event {
	callCtx := context.WithoutCancel(ctx)

	switch eff.Kind {
	case view.EffectLoad:
		heroes, err := s.api.List(callCtx)
		if err != nil {
			s.logger.Error(ctx, "initial hero load failed", logger.String("view", id), logger.Error(err))
			return view.LoadFailed{Message: superheroes.UserMessage(err)}
		}
		return view.Loaded{Heroes: heroes}

	case view.EffectCreate:
		created, err := s.api.Create(callCtx, eff.Draft)
		if err != nil {
			s.logger.Warn(ctx, "hero create rejected", logger.String("view", id), logger.Error(err))
			return view.CreateFailed{Message: superheroes.UserMessage(err)}
		}
		metrics.RecordHeroCreated()
		s.logger.Info(ctx, "hero created",
			logger.String("view", id),
			logger.String("id", created.ID.String()),
			logger.String("name", created.Name),
		)
		return view.Created{Hero: created}
	}
	return nil
}

func (s *Service) session(ctx context.Context, id string) (*session, error) {
	views, err := s.store()
	if err != nil {
		return nil, err
	}
	sess, err := views.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrViewNotFound
	}
	return sess, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":     s.started,
		"maxViews":    s.maxViews,
		"guardSubmit": s.guardSubmit,
	}
	if s.started {
		active := s.views.Len()
		stats["activeViews"] = active
		metrics.UpdateActiveViews(active)
	}
	return stats
}
