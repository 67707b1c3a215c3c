package telegram

import (
	tele "gopkg.in/telebot.v3"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
	"github.com/custodia-labs/tgarchive/internal/core/ports/driving"
)

// Pipeline states map onto message reactions. Setting a reaction replaces
// the previous one, so the terminal reaction always supersedes processing.
const (
	emojiProcessing = "✍"
	emojiSuccess    = "👍"
	emojiFailure    = "🤷‍♂️"
)

// statusEmoji returns the reaction emoji for a pipeline state.
func statusEmoji(s domain.Status) string {
	switch s {
	case domain.StatusProcessing:
		return emojiProcessing
	case domain.StatusSuccess:
		return emojiSuccess
	default:
		return emojiFailure
	}
}

// notifier builds a StatusNotifier that mirrors pipeline states onto the
// originating message as reactions.
func (b *Bot) notifier(m *tele.Message) driving.StatusNotifier {
	return driving.StatusFunc(func(s domain.Status) {
		b.react(m, s)
	})
}

// react sets the reaction for a pipeline state on msg. Reaction failures
// are logged and swallowed: feedback must never break the pipeline.
func (b *Bot) react(m *tele.Message, s domain.Status) {
	r := tele.ReactionOptions{
		Reactions: []tele.Reaction{{Type: "emoji", Emoji: statusEmoji(s)}},
	}
	if err := b.bot.React(m.Chat, m, r); err != nil {
		b.log.Warn().Err(err).Str("status", s.String()).Msg("setting reaction")
	}
}
