package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"FXSentinel/internal/metrics"
	"FXSentinel/internal/model"
	"FXSentinel/internal/notifier"
)

// SignalGenerator produces a signal for a pair and timeframe. It must not fail.
type SignalGenerator interface {
	Generate(ctx context.Context, pair, timeframe string) model.Signal
}

// Delivery sends text and signals to a chat.
type Delivery interface {
	Notify(ctx context.Context, chatID int64, text string) error
	Deliver(ctx context.Context, chatID int64, sig model.Signal) error
}

// Options configures the recurring mode.
type Options struct {
	ChatID    int64
	Timeframe string
	Warning   time.Duration
	// Rest is the pause after a full pass in loop mode.
	Rest time.Duration
	// CronSpec, when set, triggers passes from a seconds-enabled cron expression instead of the loop.
	CronSpec string
	// RunOnStart fires one cron-mode pass immediately. Loop mode always starts with a pass.
	RunOnStart bool
}

// Scheduler drives the signal engine on a recurring timer and on demand.
type Scheduler struct {
	Engine   SignalGenerator
	Delivery Delivery
	Pairs    model.PairConfig
	Options  Options
	Metrics  *metrics.Recorder
	Log      zerolog.Logger

	cron *cron.Cron
}

// NewScheduler creates a new Scheduler.
func NewScheduler(engine SignalGenerator, delivery Delivery, pairs model.PairConfig, opts Options, rec *metrics.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Engine:   engine,
		Delivery: delivery,
		Pairs:    pairs,
		Options:  opts,
		Metrics:  rec,
		Log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Run drives recurring passes until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Options.CronSpec != "" {
		return s.runCron(ctx)
	}
	return s.runLoop(ctx)
}

// runLoop waits the rest period after each pass completes, so passes never overlap and
// the cycle drifts by the pass duration.
func (s *Scheduler) runLoop(ctx context.Context) error {
	s.Log.Info().Dur("rest", s.Options.Rest).Strs("pairs", s.Pairs.Pairs()).Msg("scheduler started")
	for {
		s.RunPass(ctx)
		if err := sleep(ctx, s.Options.Rest); err != nil {
			s.Log.Info().Msg("scheduler stopped")
			return nil
		}
	}
}

func (s *Scheduler) runCron(ctx context.Context) error {
	logger := cronLogger{log: s.Log}
	s.cron = cron.New(cron.WithSeconds(), cron.WithLogger(logger))

	// one wrapped job, so the start-up pass and cron ticks share the skip guard
	pass := cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).
		Then(cron.FuncJob(func() { s.RunPass(ctx) }))
	if _, err := s.cron.AddJob(s.Options.CronSpec, pass); err != nil {
		return fmt.Errorf("register signal pass: %w", err)
	}
	s.cron.Start()
	s.Log.Info().Str("cron", s.Options.CronSpec).Strs("pairs", s.Pairs.Pairs()).Msg("scheduler started")

	var startup sync.WaitGroup
	if s.Options.RunOnStart {
		s.Log.Info().Msg("running a signal pass on start")
		startup.Add(1)
		go func() {
			defer startup.Done()
			pass.Run()
		}()
	}

	<-ctx.Done()
	<-s.cron.Stop().Done()
	startup.Wait()
	s.Log.Info().Msg("scheduler stopped")
	return nil
}

// RunPass warns, waits and delivers a signal for every pair in order.
// A failure for one pair never stops the pass.
func (s *Scheduler) RunPass(ctx context.Context) {
	for _, pair := range s.Pairs.Pairs() {
		if ctx.Err() != nil {
			return
		}
		s.runPair(ctx, pair)
	}
}

func (s *Scheduler) runPair(ctx context.Context, pair string) {
	log := s.Log.With().Str("pair", pair).Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("scheduled signal panicked")
		}
	}()

	s.trySend(ctx, notifier.FormatWarning(pair, s.Options.Warning))
	if err := sleep(ctx, s.Options.Warning); err != nil {
		return
	}

	sig := s.Engine.Generate(ctx, pair, s.Options.Timeframe)
	if err := s.Delivery.Deliver(ctx, s.Options.ChatID, sig); err != nil {
		log.Error().Err(err).Str("classification", string(sig.Classification)).Msg("deliver scheduled signal")
		return
	}
	log.Info().Str("classification", string(sig.Classification)).Msg("sent automatic signal")
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if err := s.Delivery.Notify(ctx, s.Options.ChatID, text); err != nil {
		s.Log.Error().Err(err).Msg("send notification")
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
