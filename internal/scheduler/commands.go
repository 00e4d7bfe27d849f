package scheduler

import (
	"context"

	"FXSentinel/internal/model"
	"FXSentinel/internal/notifier"
)

// HandleSignalCommand answers "/signal PAIR TIMEFRAME" in the requesting chat.
// Invalid requests are answered without touching the signal engine.
func (s *Scheduler) HandleSignalCommand(ctx context.Context, chatID int64, args []string) {
	if len(args) != 2 {
		s.Metrics.RecordRejection("usage")
		s.reply(ctx, chatID, notifier.UsageMessage)
		return
	}

	pair := model.NormalizePair(args[0])
	timeframe := args[1]
	if !s.Pairs.Contains(pair) {
		s.Metrics.RecordRejection("unsupported_pair")
		s.reply(ctx, chatID, notifier.FormatUnsupportedPair(s.Pairs))
		return
	}

	sig := s.Engine.Generate(ctx, pair, timeframe)
	if err := s.Delivery.Deliver(ctx, chatID, sig); err != nil {
		s.Log.Error().Err(err).Str("pair", pair).Str("timeframe", timeframe).Int64("chat_id", chatID).
			Msg("deliver on-demand signal")
	}
}

// HandlePairsCommand lists the supported pairs.
func (s *Scheduler) HandlePairsCommand(ctx context.Context, chatID int64, _ []string) {
	s.reply(ctx, chatID, notifier.FormatPairs(s.Pairs))
}

// HandleHelpCommand replies with usage.
func (s *Scheduler) HandleHelpCommand(ctx context.Context, chatID int64, _ []string) {
	s.reply(ctx, chatID, notifier.FormatHelp(s.Pairs))
}

func (s *Scheduler) reply(ctx context.Context, chatID int64, text string) {
	if err := s.Delivery.Notify(ctx, chatID, text); err != nil {
		s.Log.Error().Err(err).Int64("chat_id", chatID).Msg("send reply")
	}
}
