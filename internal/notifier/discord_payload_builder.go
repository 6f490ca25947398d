package notifier

import "github.com/aleister1102/tixwatch/internal/models"

// DiscordMessagePayloadBuilder helps in constructing models.DiscordMessagePayload objects.
type DiscordMessagePayloadBuilder struct {
	payload models.DiscordMessagePayload
}

func NewDiscordMessagePayloadBuilder() *DiscordMessagePayloadBuilder {
	return &DiscordMessagePayloadBuilder{}
}

func (b *DiscordMessagePayloadBuilder) WithContent(content string) *DiscordMessagePayloadBuilder {
	b.payload.Content = content
	return b
}

func (b *DiscordMessagePayloadBuilder) WithUsername(username string) *DiscordMessagePayloadBuilder {
	b.payload.Username = username
	return b
}

func (b *DiscordMessagePayloadBuilder) AddEmbed(embed models.DiscordEmbed) *DiscordMessagePayloadBuilder {
	b.payload.Embeds = append(b.payload.Embeds, embed)
	return b
}

// WithRoleMentions pings the given roles and nothing else
func (b *DiscordMessagePayloadBuilder) WithRoleMentions(roles []string) *DiscordMessagePayloadBuilder {
	if len(roles) == 0 {
		return b
	}
	b.payload.AllowedMentions = &models.AllowedMentions{Roles: roles}
	return b
}

func (b *DiscordMessagePayloadBuilder) Build() models.DiscordMessagePayload {
	return b.payload
}
