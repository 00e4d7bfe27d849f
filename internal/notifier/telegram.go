package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Messenger is the outbound side of the chat channel.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendPhoto(chatID int64, path, caption string) error
}

// TelegramBot sends messages and receives commands via the Telegram Bot API.
type TelegramBot struct {
	client *tb.Bot
	log    zerolog.Logger
	ctx    context.Context
}

// NewTelegramBot creates a long-polling bot with optional proxy support.
func NewTelegramBot(botToken, proxyURL string, pollTimeout time.Duration, log zerolog.Logger) (*TelegramBot, error) {
	log = log.With().Str("component", "telegram").Logger()

	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}

	return newTelegramBot(tb.Settings{
		Token:  botToken,
		Poller: &tb.LongPoller{Timeout: pollTimeout},
		Client: &http.Client{
			// must outlive the long-poll request
			Timeout:   pollTimeout + 30*time.Second,
			Transport: transport,
		},
		Reporter: func(err error) {
			log.Error().Err(err).Msg("telegram client error")
		},
	}, log)
}

func newTelegramBot(settings tb.Settings, log zerolog.Logger) (*TelegramBot, error) {
	client, err := tb.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramBot{client: client, log: log, ctx: context.Background()}, nil
}

// SendText sends a plain text message.
func (t *TelegramBot) SendText(chatID int64, text string) error {
	if _, err := t.client.Send(tb.ChatID(chatID), text); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendPhoto uploads the image at path with a caption.
func (t *TelegramBot) SendPhoto(chatID int64, path, caption string) error {
	photo := &tb.Photo{File: tb.FromDisk(path), Caption: caption}
	if _, err := t.client.Send(tb.ChatID(chatID), photo); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}
