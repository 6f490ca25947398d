package notifier

import (
	"time"
	"unicode/utf8"

	"github.com/aleister1102/tixwatch/internal/models"
)

// DiscordEmbedBuilder helps in constructing models.DiscordEmbed objects.
type DiscordEmbedBuilder struct {
	embed models.DiscordEmbed
}

// NewDiscordEmbedBuilder creates a new instance of DiscordEmbedBuilder.
func NewDiscordEmbedBuilder() *DiscordEmbedBuilder {
	return &DiscordEmbedBuilder{}
}

func (b *DiscordEmbedBuilder) WithTitle(title string) *DiscordEmbedBuilder {
	b.embed.Title = title
	return b
}

func (b *DiscordEmbedBuilder) WithDescription(description string) *DiscordEmbedBuilder {
	b.embed.Description = description
	return b
}

func (b *DiscordEmbedBuilder) WithURL(url string) *DiscordEmbedBuilder {
	b.embed.URL = url
	return b
}

// WithTimestamp formats the time as RFC3339, which Discord reads as ISO8601.
func (b *DiscordEmbedBuilder) WithTimestamp(timestamp time.Time) *DiscordEmbedBuilder {
	b.embed.Timestamp = timestamp.Format(time.RFC3339)
	return b
}

func (b *DiscordEmbedBuilder) WithColor(color int) *DiscordEmbedBuilder {
	b.embed.Color = color
	return b
}

func (b *DiscordEmbedBuilder) WithFooter(text string) *DiscordEmbedBuilder {
	b.embed.Footer = &models.DiscordEmbedFooter{Text: text}
	return b
}

// AddField appends a field, truncating the value to Discord's limit.
// The limit counts characters, so the cut never splits a rune.
func (b *DiscordEmbedBuilder) AddField(name string, value string, inline bool) *DiscordEmbedBuilder {
	if utf8.RuneCountInString(value) > MaxFieldValueLength {
		value = string([]rune(value)[:MaxFieldValueLength-3]) + "..."
	}
	b.embed.Fields = append(b.embed.Fields, models.DiscordEmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	})
	return b
}

func (b *DiscordEmbedBuilder) Build() models.DiscordEmbed {
	return b.embed
}
