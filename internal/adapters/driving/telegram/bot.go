// Package telegram drives the archival core from a Telegram bot.
//
// The bot listens over long polling, maps incoming messages onto inbound
// items and hands them to the archiver. Pipeline progress is surfaced as
// message reactions rather than reply messages, keeping the chat clean.
package telegram

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"

	"github.com/custodia-labs/tgarchive/internal/core/ports/driving"
)

// Config configures the Telegram transport.
type Config struct {
	// Token is the bot API token.
	Token string

	// SendDetailedErrors attaches a short explanation as a reply when an
	// item fails, in addition to the failure reaction.
	SendDetailedErrors bool

	// Poller overrides the default long poller. Used by tests.
	Poller tele.Poller

	// Offline skips the token handshake. Used by tests.
	Offline bool
}

// Bot wires Telegram updates into the archival core.
type Bot struct {
	bot     *tele.Bot
	arch    driving.Archiver
	topics  driving.TopicService
	details bool
	log     zerolog.Logger
}

// NewBot creates the transport and registers all handlers.
func NewBot(cfg Config, arch driving.Archiver, topics driving.TopicService, log zerolog.Logger) (*Bot, error) {
	logger := log.With().Str("component", "telegram").Logger()

	poller := cfg.Poller
	if poller == nil {
		poller = &tele.LongPoller{Timeout: 10 * time.Second}
	}

	tb, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		Poller:  poller,
		Offline: cfg.Offline,
		OnError: func(err error, c tele.Context) {
			logger.Error().Err(err).Msg("handler error")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	b := &Bot{
		bot:     tb,
		arch:    arch,
		topics:  topics,
		details: cfg.SendDetailedErrors,
		log:     logger,
	}
	b.registerHandlers()

	return b, nil
}

// registerHandlers binds commands and content endpoints. Each catalogued
// topic additionally gets its own selection command (/work, /family, ...).
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.onStart)
	b.bot.Handle("/help", b.onStart)
	b.bot.Handle("/topics", b.onTopics)
	b.bot.Handle("/topic", b.onTopic)
	b.bot.Handle("/current", b.onCurrent)
	b.bot.Handle("/clear", b.onClear)

	for _, t := range b.topics.All() {
		name := t.Name
		b.bot.Handle("/"+name, func(c tele.Context) error {
			return b.selectTopic(c, name)
		})
	}

	b.bot.Handle(tele.OnText, b.onText)
	for _, endpoint := range []string{
		tele.OnPhoto, tele.OnVideo, tele.OnVoice, tele.OnAudio, tele.OnDocument,
	} {
		b.bot.Handle(endpoint, b.onMedia)
	}
}

// Start begins long polling. Blocks until Stop is called.
func (b *Bot) Start() {
	b.log.Info().Msg("starting long polling")
	b.bot.Start()
}

// Stop terminates long polling.
func (b *Bot) Stop() {
	b.bot.Stop()
	b.log.Info().Msg("stopped")
}
