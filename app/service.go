package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kilianp07/dockyard/api/crew"
	"github.com/kilianp07/dockyard/api/docks"
	"github.com/kilianp07/dockyard/api/records"
	"github.com/kilianp07/dockyard/app/plugins"
	"github.com/kilianp07/dockyard/auth"
	"github.com/kilianp07/dockyard/config"
	"github.com/kilianp07/dockyard/core/journal"
	coremetrics "github.com/kilianp07/dockyard/core/metrics"
	"github.com/kilianp07/dockyard/core/yard"
	"github.com/kilianp07/dockyard/infra/logger"
	"github.com/kilianp07/dockyard/infra/metrics"
	"github.com/kilianp07/dockyard/internal/eventbus"
	"github.com/kilianp07/dockyard/tui/board"
	"github.com/kilianp07/dockyard/web"
)

// Service owns the yard store and the adapters listening to it.
type Service struct {
	Store   *yard.Store
	cfg     *config.Config
	bus     *eventbus.Bus[yard.Event]
	sink    coremetrics.Sink
	journal journal.Store
	rec     *journal.Recorder
	handler http.Handler
	window  yard.Window
	loc     *time.Location
	log     logger.Logger

	cancel  context.CancelFunc
	stopped []<-chan struct{}
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	loc, err := cfg.Yard.Location()
	if err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := plugins.NewJournal(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}

	bus := eventbus.New[yard.Event]()
	rec := journal.NewRecorder(store, logger.New("journal"))
	st := yard.NewStore(yard.Config{
		Docks:     cfg.Yard.Docks,
		SeedCrew:  cfg.Yard.SeedCrew,
		Publisher: bus,
		Recorder:  rec,
		Logger:    logger.New("yard"),
	})
	win := yard.Window{StartHour: cfg.Yard.ScheduleStartHour, EndHour: cfg.Yard.ScheduleEndHour}

	pages, err := web.NewHandler(st, web.Options{Window: win, Location: loc, Logger: logger.New("web")})
	if err != nil {
		rec.Close()
		_ = store.Close()
		return nil, fmt.Errorf("web templates: %w", err)
	}
	guard := func(h http.Handler) http.Handler { return auth.Bearer(cfg.API.Token, h) }
	mux := http.NewServeMux()
	docks.Routes(mux, st, win, guard)
	crew.Routes(mux, st, guard)
	records.Routes(mux, st, loc)
	mux.Handle("/", pages)

	logg.Infof("yard ready: %d docks, journal=%s, sinks=%d", cfg.Yard.Docks, cfg.Journal.Backend, len(cfg.Metrics.Sinks))
	return &Service{
		Store:   st,
		cfg:     cfg,
		bus:     bus,
		sink:    sink,
		journal: store,
		rec:     rec,
		handler: mux,
		window:  win,
		loc:     loc,
		log:     logg,
	}, nil
}

// Handler returns the HTTP handler serving the API and the pages.
func (s *Service) Handler() http.Handler { return s.handler }

// start launches the metrics collector and the Prometheus endpoint.
func (s *Service) start(ctx context.Context) context.Context {
	ctx, s.cancel = context.WithCancel(ctx)
	s.stopped = append(s.stopped,
		metrics.StartEventCollector(ctx, s.bus, s.sink, logger.New("metrics")),
	)
	if addr := s.cfg.Metrics.PrometheusAddr(); addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return ctx
}

// serve runs the HTTP server until ctx is canceled.
func (s *Service) serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Server.Address, Handler: s.handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warnf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", s.cfg.Server.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves the dashboard and API, blocking until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	return s.serve(s.start(ctx))
}

// RunBoard shows the terminal board until the user quits. With withHTTP the
// dashboard and API are served alongside it.
func (s *Service) RunBoard(ctx context.Context, withHTTP bool) error {
	ctx = s.start(ctx)
	if withHTTP {
		go func() {
			if err := s.serve(ctx); err != nil {
				s.log.Errorf("http server: %v", err)
			}
		}()
	}
	p := tea.NewProgram(board.New(s.Store, s.window, s.loc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Close flushes queued events and journal records, then releases the
// journal and sinks.
func (s *Service) Close() error {
	s.bus.Close()
	for _, done := range s.stopped {
		<-done
	}
	s.rec.Close()
	if s.cancel != nil {
		s.cancel()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}
