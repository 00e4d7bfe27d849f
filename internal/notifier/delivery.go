package notifier

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"

	"FXSentinel/internal/metrics"
	"FXSentinel/internal/model"
)

// ErrAssetMissing is returned when a signal image cannot be read. It is not retried.
var ErrAssetMissing = errors.New("signal image missing")

// DeliveryOptions configures images and retry behaviour.
type DeliveryOptions struct {
	BuyImage   string
	SellImage  string
	MaxRetries int
	BackoffMin time.Duration
	BackoffMax time.Duration
}

// Deliverer maps signals onto message shapes and sends them with retry.
type Deliverer struct {
	Messenger Messenger
	Options   DeliveryOptions
	Metrics   *metrics.Recorder
	Log       zerolog.Logger
}

// NewDeliverer creates a Deliverer.
func NewDeliverer(m Messenger, opts DeliveryOptions, rec *metrics.Recorder, log zerolog.Logger) *Deliverer {
	if opts.BackoffMin <= 0 {
		opts.BackoffMin = time.Second
	}
	if opts.BackoffMax < opts.BackoffMin {
		opts.BackoffMax = opts.BackoffMin
	}
	return &Deliverer{
		Messenger: m,
		Options:   opts,
		Metrics:   rec,
		Log:       log.With().Str("component", "delivery").Logger(),
	}
}

// ImageFor returns the static image for a classification. ERROR has none.
func (d *Deliverer) ImageFor(class model.Classification) (string, bool) {
	switch class {
	case model.ClassBuy:
		return d.Options.BuyImage, true
	case model.ClassSell:
		return d.Options.SellImage, true
	default:
		return "", false
	}
}

// Deliver sends BUY/SELL as a captioned photo and ERROR as plain text.
func (d *Deliverer) Deliver(ctx context.Context, chatID int64, sig model.Signal) error {
	path, ok := d.ImageFor(sig.Classification)
	if !ok {
		return d.Notify(ctx, chatID, sig.Rationale)
	}

	if err := checkAsset(path); err != nil {
		d.Metrics.RecordDelivery("photo", err)
		return err
	}
	err := d.withRetry(ctx, "photo", func() error {
		return d.Messenger.SendPhoto(chatID, path, sig.Rationale)
	})
	d.Metrics.RecordDelivery("photo", err)
	return err
}

// Notify sends a plain text message.
func (d *Deliverer) Notify(ctx context.Context, chatID int64, text string) error {
	err := d.withRetry(ctx, "text", func() error {
		return d.Messenger.SendText(chatID, text)
	})
	d.Metrics.RecordDelivery("text", err)
	return err
}

func checkAsset(path string) error {
	if path == "" {
		return fmt.Errorf("%w: no path configured", ErrAssetMissing)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAssetMissing, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrAssetMissing, path)
	}
	return nil
}

// withRetry runs send with exponential backoff until it succeeds, retries run out, or ctx ends.
func (d *Deliverer) withRetry(ctx context.Context, kind string, send func() error) error {
	b := &backoff.Backoff{
		Min:    d.Options.BackoffMin,
		Max:    d.Options.BackoffMax,
		Factor: 2,
	}
	attempts := d.Options.MaxRetries + 1

	var lastErr error
	for i := 1; i <= attempts; i++ {
		if lastErr = send(); lastErr == nil {
			return nil
		}
		if i == attempts {
			break
		}
		wait := b.Duration()
		d.Log.Warn().Err(lastErr).Str("kind", kind).
			Int("attempt", i).Int("max_attempts", attempts).Dur("retry_in", wait).
			Msg("telegram send failed")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("all %d attempts exhausted: %w", attempts, lastErr)
}
