package telegram

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/custodia-labs/tgarchive/internal/core/domain"
)

func (b *Bot) onStart(c tele.Context) error {
	var sb strings.Builder
	sb.WriteString("Send me messages, photos or files and I archive them to cloud storage.\n\n")
	sb.WriteString("/topics - list available topics\n")
	sb.WriteString("/topic <name> - select a topic\n")
	sb.WriteString("/current - show your current topic\n")
	sb.WriteString("/clear - drop your topic selection\n")
	return c.Send(sb.String())
}

func (b *Bot) onTopics(c tele.Context) error {
	topics := b.topics.All()
	if len(topics) == 0 {
		return c.Send("No topics configured.")
	}

	var sb strings.Builder
	sb.WriteString("Available topics:\n")
	for _, t := range topics {
		sb.WriteString("/" + t.Name)
		if t.Description != "" {
			sb.WriteString(" - " + t.Description)
		}
		sb.WriteString("\n")
	}
	return c.Send(sb.String())
}

func (b *Bot) onTopic(c tele.Context) error {
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send("Usage: /topic <name>. See /topics for the list.")
	}
	return b.selectTopic(c, name)
}

// selectTopic records the selection and confirms it. An unknown name keeps
// the previous selection.
func (b *Bot) selectTopic(c tele.Context, name string) error {
	topic, err := b.topics.Select(context.Background(), c.Sender().ID, name)
	if errors.Is(err, domain.ErrTopicNotFound) {
		return c.Send(fmt.Sprintf("Unknown topic %q. See /topics for the list.", name))
	}
	if err != nil {
		b.log.Error().Err(err).Str("topic", name).Msg("selecting topic")
		return c.Send("Could not save your selection, please try again.")
	}
	return c.Send(fmt.Sprintf("Topic set to %s %s", topic.Name, topic.Hashtag))
}

func (b *Bot) onCurrent(c tele.Context) error {
	topic, ok := b.topics.Current(context.Background(), c.Sender().ID)
	if !ok {
		return c.Send("No topic selected; items go to the default folder.")
	}
	return c.Send(fmt.Sprintf("Current topic: %s %s", topic.Name, topic.Hashtag))
}

func (b *Bot) onClear(c tele.Context) error {
	if err := b.topics.Clear(context.Background(), c.Sender().ID); err != nil {
		b.log.Error().Err(err).Msg("clearing topic")
		return c.Send("Could not clear your selection, please try again.")
	}
	return c.Send("Topic cleared; items go to the default folder.")
}

func (b *Bot) onText(c tele.Context) error {
	m := c.Message()
	item := &domain.InboundItem{
		SenderID:   m.Sender.ID,
		SenderName: senderName(m.Sender),
		Kind:       domain.KindText,
		Text:       m.Text,
		SentAt:     m.Time(),
	}

	b.dispatch(m, item)
	return nil
}

func (b *Bot) onMedia(c tele.Context) error {
	m := c.Message()

	att, err := extractAttachment(m)
	if err != nil {
		b.log.Warn().Err(err).Msg("unsupported attachment")
		return nil
	}

	// Buffer the payload so transient upload failures can be retried.
	// The transport caps downloads at the same order of magnitude as the
	// default size policy, so this stays bounded.
	rc, err := b.bot.File(att.file)
	if err != nil {
		b.log.Error().Err(err).Msg("downloading attachment")
		b.react(m, domain.StatusFailure)
		return nil
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		b.log.Error().Err(err).Msg("reading attachment")
		b.react(m, domain.StatusFailure)
		return nil
	}

	item := &domain.InboundItem{
		SenderID:   m.Sender.ID,
		SenderName: senderName(m.Sender),
		Kind:       att.kind,
		Content:    bytes.NewReader(buf.Bytes()),
		Size:       int64(buf.Len()),
		MIMEType:   att.mime,
		Filename:   att.filename,
		GroupID:    m.AlbumID,
		Text:       m.Caption,
		SentAt:     m.Time(),
	}

	b.dispatch(m, item)
	return nil
}

// dispatch runs the pipeline on its own goroutine so a slow upload never
// blocks the poller. Reactions track the pipeline states.
func (b *Bot) dispatch(m *tele.Message, item *domain.InboundItem) {
	go func() {
		res := b.arch.Archive(context.Background(), item, b.notifier(m))
		if res.Status == domain.StatusFailure && b.details {
			if _, err := b.bot.Reply(m, failureText(res)); err != nil {
				b.log.Warn().Err(err).Msg("sending failure reply")
			}
		}
	}()
}

// failureText renders a terse user-facing explanation for a failed item.
func failureText(res domain.UploadResult) string {
	switch res.Reason {
	case domain.ReasonTooLarge:
		return "File is too large to archive."
	case domain.ReasonDisallowedType:
		return "This file type is not allowed."
	case domain.ReasonPermissionDenied:
		return "The bot has no access to the destination folder."
	case domain.ReasonAuthFailure:
		return "Storage authentication failed, contact the operator."
	default:
		return "Upload failed, please try again later."
	}
}

// senderName builds a display name for note annotations.
func senderName(u *tele.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}
