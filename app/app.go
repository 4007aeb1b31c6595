package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/transcriptor/component"
	"github.com/kbukum/transcriptor/logger"
	"github.com/kbukum/transcriptor/media"
	"github.com/kbukum/transcriptor/observability"
	"github.com/kbukum/transcriptor/server"
	"github.com/kbukum/transcriptor/server/handler"
	"github.com/kbukum/transcriptor/transcriber"
	"github.com/kbukum/transcriptor/transcription"
	"github.com/kbukum/transcriptor/transcription/openai"
	"github.com/kbukum/transcriptor/transcription/whisper"
)

// App holds the wired service.
type App struct {
	Name       string
	Version    string
	Cfg        *Config
	Components *component.Registry
	Logger     *logger.Logger
	Service    *transcriber.Service

	server          *server.Server
	gracefulTimeout time.Duration
}

// DefaultEngines returns a registry with every built-in backend.
func DefaultEngines() *transcription.Registry {
	r := transcription.NewRegistry()
	r.Register(whisper.ProviderName, whisper.Factory())
	r.Register(openai.ProviderName, openai.Factory())
	return r
}

// New applies defaults to cfg, validates it, initializes the logger, and
// builds the engine and the orchestrator. Nothing is started.
func New(cfg *Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	log := o.logger
	if log == nil {
		logger.Init(&cfg.Logging)
		log = logger.GetGlobalLogger()
	}

	engines := o.engines
	if engines == nil {
		engines = DefaultEngines()
	}
	provider, err := engines.Create(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("engine %q: %w", cfg.Engine.Backend, err)
	}

	tools := o.media
	if tools == nil {
		tools = media.NewFFmpeg(cfg.Media, log)
	}

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	a := &App{
		Name:       cfg.Name,
		Version:    cfg.Version,
		Cfg:        cfg,
		Components: component.NewRegistry(log),
		Logger:     log,
		Service: transcriber.New(cfg.Transcriber, cfg.Media, tools,
			transcription.Serialized(provider, cfg.Engine.MaxConcurrent),
			transcriber.WithLogger(log),
			transcriber.WithMetrics(metrics),
		),
		gracefulTimeout: time.Duration(cfg.Server.ShutdownTimeout)*time.Second + 5*time.Second,
	}
	if o.gracefulTimeout != nil {
		a.gracefulTimeout = *o.gracefulTimeout
	}

	if err := a.Components.Register(newTelemetry(cfg, log)); err != nil {
		return nil, err
	}
	if err := a.Components.Register(transcription.NewComponent(provider, cfg.Engine, log)); err != nil {
		return nil, err
	}
	return a, nil
}

// Server returns the HTTP server with every route mounted, building it on
// first use and registering it as a component.
func (a *App) Server() (*server.Server, error) {
	if a.server != nil {
		return a.server, nil
	}
	srv := server.New(a.Cfg.Server, a.Logger)
	srv.ApplyDefaults(a.Name, a.Components.HealthAll)
	handler.New(a.Service, a.Logger).Register(srv.Engine())
	if err := a.Components.Register(server.NewComponent(srv)); err != nil {
		return nil, err
	}
	a.server = srv
	return srv, nil
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run serves HTTP until ctx ends or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.Server(); err != nil {
		return err
	}
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask starts the components (without the HTTP server unless Server was
// called), runs task, and shuts down. SIGINT/SIGTERM cancels the task.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		_ = a.stop()
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}

	a.Logger.Info("application started", logger.DurationFields("startup", time.Since(start)))
	return nil
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown stops all components. Use when managing your own lifecycle.
func (a *App) Shutdown(ctx context.Context) error {
	return a.stop()
}

func (a *App) stop() error {
	a.Logger.Info("shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		return err
	}

	a.Logger.Info("application shutdown complete")
	return nil
}
