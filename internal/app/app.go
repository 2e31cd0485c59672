package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/five82/postdeck/internal/config"
	"github.com/five82/postdeck/internal/i18n"
	"github.com/five82/postdeck/internal/logging"
	"github.com/five82/postdeck/internal/mail"
	"github.com/five82/postdeck/internal/notify"
	"github.com/five82/postdeck/internal/placeholder"
	"github.com/five82/postdeck/internal/prefs"
	"github.com/five82/postdeck/internal/resilience"
	"github.com/five82/postdeck/internal/state"
	"github.com/five82/postdeck/internal/ui"
)

// Options configure the postdeck application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/postdeck/prefs.toml
	ProbeEvery time.Duration // zero uses default
}

// Services are the collaborators shared by the TUI and the CLI commands.
type Services struct {
	Config config.Config
	Logger *slog.Logger
	API    *placeholder.Client
	Mailer mail.Sender

	closer io.Closer
}

// Bootstrap loads the config and builds the logger, API client and mailer.
// Callers must Close the result.
func Bootstrap(configPath string) (*Services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	slog.SetDefault(logger)

	client, err := NewClient(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	return &Services{
		Config: cfg,
		Logger: logger,
		API:    client,
		Mailer: mail.New(MailConfig(cfg), logger),
		closer: closer,
	}, nil
}

// Close releases the log file.
func (s *Services) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// NewClient builds the API client from cfg.
func NewClient(cfg config.Config) (*placeholder.Client, error) {
	retry := resilience.DefaultRetryConfig()
	if cfg.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.RetryAttempts
	}
	return placeholder.NewClient(placeholder.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Retry:     retry,
	})
}

// MailConfig maps the [email] section onto the mail package.
func MailConfig(cfg config.Config) mail.Config {
	return mail.Config{
		Endpoint:   cfg.Email.Endpoint,
		ServiceID:  cfg.Email.ServiceID,
		TemplateID: cfg.Email.TemplateID,
		PublicKey:  cfg.Email.PublicKey,
		FromName:   cfg.Email.FromName,
		Timeout:    cfg.RequestTimeout,
	}
}

// Run boots the postdeck TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	svc, err := Bootstrap(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	store := prefs.Open(opts.PrefsPath)
	tr, err := i18n.New(store.Get().Locale, svc.Logger)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	health := &state.Health{}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartHealthProbe(ctx, health, svc.API, opts.ProbeEvery, svc.Logger)

	svc.Logger.Info("postdeck starting",
		slog.String("api", svc.Config.APIBaseURL),
		slog.Bool("email", svc.Config.Email.Enabled()),
		slog.String("locale", tr.Locale()))

	return ui.Run(ui.Options{
		Context:    ctx,
		API:        svc.API,
		Mailer:     svc.Mailer,
		Translator: tr,
		Prefs:      store,
		Notices:    notify.NewCenter(),
		Health:     health,
		Logger:     svc.Logger,
		LogFile:    svc.Config.LogFile,
		FromName:   svc.Config.Email.FromName,
	})
}
