package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/five82/postdeck/internal/resilience"
)

// DefaultEndpoint is the EmailJS REST send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

const (
	maxBodyRunes  = 2000
	maxErrorBytes = 512
)

// Config holds the EmailJS credentials.
type Config struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	FromName   string
	Timeout    time.Duration
	// RateLimit is sends per second; zero uses one per two seconds.
	RateLimit float64
	Retry     resilience.RetryConfig
}

// Enabled reports whether the required ids are present.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.ServiceID) != "" &&
		strings.TrimSpace(c.TemplateID) != "" &&
		strings.TrimSpace(c.PublicKey) != ""
}

// EmailJS sends template emails through the EmailJS REST API.
type EmailJS struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	logger  *slog.Logger
}

var _ Sender = (*EmailJS)(nil)

type payload struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	ToEmail   string `json:"to_email"`
	FromName  string `json:"from_name"`
	PostTitle string `json:"post_title"`
	PostBody  string `json:"post_body"`
	RequestID string `json:"request_id"`
}

// New returns an EmailJS sender, or Noop when cfg lacks credentials.
func New(cfg Config, logger *slog.Logger) Sender {
	if !cfg.Enabled() {
		return Noop{}
	}
	return NewEmailJS(cfg, logger)
}

// NewEmailJS builds the sender without checking credentials.
func NewEmailJS(cfg Config, logger *slog.Logger) *EmailJS {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Every(2 * time.Second)
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = resilience.RetryConfig{
			MaxAttempts:    2,
			InitialDelay:   500 * time.Millisecond,
			MaxDelay:       2 * time.Second,
			Multiplier:     2,
			JitterFraction: 0.1,
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailJS{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		breaker: resilience.NewBreaker(resilience.MailBreakerConfig(), countsAgainstBreaker),
		logger:  logger.With(slog.String("component", "mail")),
	}
}

// Send validates the recipient and posts the template request.
func (s *EmailJS) Send(ctx context.Context, msg Message) error {
	to, err := ValidateRecipient(msg.To)
	if err != nil {
		return err
	}
	from := strings.TrimSpace(msg.FromName)
	if from == "" {
		from = s.cfg.FromName
	}

	requestID := uuid.NewString()
	body := payload{
		ServiceID:  s.cfg.ServiceID,
		TemplateID: s.cfg.TemplateID,
		UserID:     s.cfg.PublicKey,
		TemplateParams: templateParams{
			ToEmail:   to,
			FromName:  from,
			PostTitle: msg.PostTitle,
			PostBody:  truncateRunes(msg.PostBody, maxBodyRunes),
			RequestID: requestID,
		},
	}

	start := time.Now()
	err = resilience.WithBackoff(ctx, s.cfg.Retry, func() error {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
		return s.breaker.Do(func() error {
			return s.post(ctx, body)
		})
	})
	if err != nil {
		s.logger.Warn("share email failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return fmt.Errorf("send email: %w", err)
	}
	s.logger.Info("share email sent",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (s *EmailJS) post(ctx context.Context, body payload) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	return &ProviderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
}

// countsAgainstBreaker ignores credential errors so a typo does not hide
// later provider outages.
func countsAgainstBreaker(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return !providerErr.IsClientError()
	}
	return true
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
