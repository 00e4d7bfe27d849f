package notifier

import (
	"context"
	"fmt"
	"strings"

	tb "gopkg.in/tucnak/telebot.v2"
)

// CommandHandler is called for each received command with its whitespace-separated arguments.
type CommandHandler func(ctx context.Context, chatID int64, args []string)

// Command describes a bot command for the Telegram command menu.
type Command struct {
	Name        string // without the leading slash
	Description string
}

// ParseArgs splits a command payload into arguments.
func ParseArgs(payload string) []string {
	return strings.Fields(payload)
}

// HandleCommand routes "/name" messages to handler.
func (t *TelegramBot) HandleCommand(name string, handler CommandHandler) {
	endpoint := "/" + strings.TrimPrefix(name, "/")
	t.client.Handle(endpoint, func(m *tb.Message) {
		if m.Chat == nil {
			return
		}
		args := ParseArgs(m.Payload)
		t.log.Info().Str("command", endpoint).Strs("args", args).Int64("chat_id", m.Chat.ID).Msg("received command")
		handler(t.ctx, m.Chat.ID, args)
	})
}

// SetCommands publishes the command menu.
func (t *TelegramBot) SetCommands(cmds []Command) error {
	tbCmds := make([]tb.Command, len(cmds))
	for i, c := range cmds {
		tbCmds[i] = tb.Command{Text: strings.TrimPrefix(c.Name, "/"), Description: c.Description}
	}
	if err := t.client.SetCommands(tbCmds); err != nil {
		return fmt.Errorf("set commands: %w", err)
	}
	return nil
}

// Start long-polls for updates. Blocks until ctx is cancelled.
func (t *TelegramBot) Start(ctx context.Context) {
	t.ctx = ctx
	go t.client.Start()
	t.log.Info().Msg("telegram polling started")

	<-ctx.Done()
	t.client.Stop()
	t.log.Info().Msg("telegram polling stopped")
}
