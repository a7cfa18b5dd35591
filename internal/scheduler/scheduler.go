package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"GoldSentinel/internal/calculator"
	"GoldSentinel/internal/collector"
	"GoldSentinel/internal/model"
	"GoldSentinel/internal/notifier"
	"GoldSentinel/internal/strategy"
)

// DefaultRunTimeout bounds the wall-clock time of one run.
const DefaultRunTimeout = 2 * time.Minute

// Sender delivers a pre-formatted message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Scheduler runs the signal pipeline on a cron schedule and on demand.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Notifier   Sender
	Label      string
	RunTimeout time.Duration
	Now        func() time.Time

	mu      sync.Mutex // one run at a time
	limiter *rate.Limiter
}

// NewScheduler creates a new Scheduler.
func NewScheduler(col *collector.Collector, n Sender, label string) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		Notifier:   n,
		Label:      label,
		RunTimeout: DefaultRunTimeout,
		Now:        time.Now,
		limiter:    rate.NewLimiter(rate.Every(time.Minute), 1),
	}
}

// Register adds the periodic run. Runs use ctx until it is cancelled.
func (s *Scheduler) Register(ctx context.Context, spec string) error {
	task := func() {
		if err := s.Run(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled run failed")
		}
	}
	if _, err := s.Cron.AddFunc(spec, task); err != nil {
		return fmt.Errorf("register signal task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// Run acquires prices, derives the signal and sends exactly one message.
// Source failures end up in the message; only a failed delivery (or an
// internal error) is returned, after one best-effort error report.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.RunTimeout)
		defer cancel()
	}

	log.Info().Msg("running signal task")
	acq := s.Collector.Acquire(ctx)

	msg, err := s.compose(acq)
	if err != nil {
		log.Error().Err(err).Msg("compose message")
		s.report(ctx, err)
		return err
	}
	if err := s.Notifier.Send(ctx, msg); err != nil {
		log.Error().Err(err).Msg("send notification")
		s.report(ctx, err)
		return fmt.Errorf("deliver signal: %w", err)
	}
	log.Info().Str("kind", acq.Kind.String()).Msg("notification sent")
	return nil
}

// compose picks one of the terminal presentations for an acquisition.
func (s *Scheduler) compose(acq *model.Acquisition) (string, error) {
	now := s.Now()

	if acq.Kind == model.AcquiredSeries {
		ind, err := calculator.ComputeIndicators(acq.Series)
		if err != nil {
			return "", fmt.Errorf("compute indicators: %w", err)
		}
		sig := strategy.Derive(ind)
		if !sig.Directional() {
			log.Info().Float64("last", ind.Last).Float64("sma20", ind.SMAShort).Float64("sma50", ind.SMALong).Msg("signal WAIT")
			return notifier.FormatStatus(s.Label, now, ind, acq.SeriesSource), nil
		}
		momentum := sig.Confirmed
		sig = strategy.Adjust(sig, acq.Spots)
		log.Info().
			Str("mode", sig.Mode.String()).
			Float64("entry", sig.Entry).
			Float64("volatility", sig.Volatility).
			Bool("momentum", momentum).
			Bool("confirmed", sig.Confirmed).
			Msg("signal derived")
		return notifier.FormatAlert(s.Label, now, sig, acq.SeriesSource), nil
	}

	if acq.AllFailed() {
		log.Warn().Msg("all sources failed")
		return notifier.FormatAllFailed(now), nil
	}
	return notifier.FormatSpotUpdate(s.Label, now, acq.Spots), nil
}

func (s *Scheduler) report(ctx context.Context, cause error) {
	if err := s.Notifier.Send(ctx, notifier.FormatError(cause)); err != nil {
		log.Error().Err(err).Msg("send error report")
	}
}

// HandleCommand processes a user command and returns a reply. Plain chat
// text gets no reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	command = fields[0]
	// Group chats append the bot name: /signal@GoldSentinelBot
	if i := strings.Index(command, "@"); i > 0 {
		command = command[:i]
	}
	switch command {
	case "/signal", "/now":
		if !s.limiter.Allow() {
			return "⏳ A signal was requested less than a minute ago, try again shortly."
		}
		if err := s.Run(ctx); err != nil {
			log.Error().Err(err).Msg("on-demand run failed")
		}
		return ""
	case "/help", "/start":
		return helpText
	default:
		return "Unknown command.\n" + helpText
	}
}

const helpText = "Available commands:\n/signal - run the signal check now\n/help - show this message"
