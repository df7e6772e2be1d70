package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sharetube/partyclient/internal/connection"
	"github.com/sharetube/partyclient/internal/controller"
	"github.com/sharetube/partyclient/internal/repository/rest"
	"github.com/sharetube/partyclient/internal/terminal"
	"github.com/sharetube/partyclient/pkg/ctxlogger"
)

const (
	healthTimeout   = 3 * time.Second
	shutdownTimeout = 5 * time.Second
)

var ErrInvalidConfig = errors.New("invalid config")

type AppConfig struct {
	APIURL         string        `json:"api_url"`
	WSURL          string        `json:"ws_url"`
	RoomID         string        `json:"room_id"`
	UserID         string        `json:"user_id"`
	Duration       int           `json:"duration"`
	ReconnectDelay time.Duration `json:"reconnect_delay"`
	SendInterval   time.Duration `json:"send_interval"`
	Countdown      int           `json:"countdown"`
	LogLevel       string        `json:"log_level"`
	NoColor        bool          `json:"no_color"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.APIURL == "" || cfg.WSURL == "" {
		return fmt.Errorf("%w: api and ws urls are required", ErrInvalidConfig)
	}
	if cfg.RoomID == "" {
		return fmt.Errorf("%w: room id is required", ErrInvalidConfig)
	}
	if cfg.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidConfig)
	}
	if cfg.Duration < 1 {
		return fmt.Errorf("%w: duration must be greater than 0", ErrInvalidConfig)
	}
	if cfg.ReconnectDelay <= 0 || cfg.SendInterval <= 0 {
		return fmt.Errorf("%w: delays must be greater than 0", ErrInvalidConfig)
	}
	if cfg.Countdown < 1 {
		return fmt.Errorf("%w: countdown must be greater than 0", ErrInvalidConfig)
	}

	return nil
}

type streams struct {
	in  io.Reader
	out io.Writer
	log io.Writer
}

// Run joins the room and serves stdin commands until /quit, end of input,
// a termination signal, or ctx is done.
func Run(ctx context.Context, cfg *AppConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	return run(ctx, cfg, &streams{in: os.Stdin, out: os.Stdout, log: os.Stderr})
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	return slog.New(&h), nil
}

func run(ctx context.Context, cfg *AppConfig, s *streams) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, s.log)
	if err != nil {
		return err
	}

	ctx = ctxlogger.AppendCtx(ctx, slog.String("room_id", cfg.RoomID))
	ctx = ctxlogger.AppendCtx(ctx, slog.String("user_id", cfg.UserID))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	repo := rest.NewRepo(cfg.APIURL, newHTTPClient())
	checkHealth(ctx, logger, repo)

	view := terminal.NewView(s.out, terminal.Options{NoColor: cfg.NoColor})

	// the manager needs the controller for its callbacks and the controller
	// needs the manager to send
	var ctrl *controller.Controller
	manager := connection.NewManager(&connection.Config{
		URL:        connection.Endpoint(cfg.WSURL, cfg.RoomID, cfg.UserID),
		RetryDelay: cfg.ReconnectDelay,
		OnMessage: func(ctx context.Context, data []byte) {
			ctrl.HandleMessage(ctx, data)
		},
		OnStateChange: func(state connection.State) {
			ctrl.ConnectionChanged(state == connection.Connected)
		},
		Logger: logger,
	})
	ctrl = controller.NewController(repo, manager, view, &controller.Config{
		Session:      controller.Session{RoomID: cfg.RoomID, UserID: cfg.UserID},
		Duration:     cfg.Duration,
		SendInterval: cfg.SendInterval,
		Countdown:    cfg.Countdown,
		Logger:       logger,
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		ctrl.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		manager.Run(ctx)
	}()

	ctrl.Start(ctx)
	view.Notify(fmt.Sprintf("joined %s as %s, type /help for commands", cfg.RoomID, cfg.UserID))
	logger.InfoContext(ctx, "client started")

	// stdin cannot be interrupted, so the reader is not waited for
	go func() {
		defer cancel()
		if err := terminal.NewCommands(ctrl, view).Run(ctx, s.in); err != nil {
			logger.ErrorContext(ctx, "failed to read commands", "error", err)
		}
	}()

	<-ctx.Done()
	logger.InfoContext(ctx, "shutting down")

	stopped := make(chan struct{})
	go func() {
		wg.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(shutdownTimeout):
		return errors.New("graceful shutdown timed out")
	}

	return nil
}

// newHTTPClient has no timeout: a REST call ends with its response or with
// the session context.
func newHTTPClient() *http.Client {
	return &http.Client{}
}

type healthChecker interface {
	Health(ctx context.Context) (string, error)
}

func checkHealth(ctx context.Context, logger *slog.Logger, repo healthChecker) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	status, err := repo.Health(ctx)
	if err != nil {
		logger.WarnContext(ctx, "backend health check failed", "error", err)
		return
	}

	logger.InfoContext(ctx, "backend health", "status", status)
}
