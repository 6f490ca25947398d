package notifier

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/httpclient"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/rs/zerolog"
)

// DiscordNotifier posts the alert to a Discord webhook.
type DiscordNotifier struct {
	logger       zerolog.Logger
	httpClient   *httpclient.HTTPClient
	webhookURL   string
	mentionRoles []string
}

// NewDiscordNotifier validates the webhook URL up front.
func NewDiscordNotifier(webhookURL string, mentionRoles []string, httpClient *httpclient.HTTPClient, logger zerolog.Logger) (*DiscordNotifier, error) {
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return nil, common.WrapError(err, "invalid discord webhook URL")
	}
	return &DiscordNotifier{
		logger:       logger.With().Str("module", "DiscordNotifier").Logger(),
		httpClient:   httpClient,
		webhookURL:   webhookURL,
		mentionRoles: mentionRoles,
	}, nil
}

func (dn *DiscordNotifier) Name() string {
	return ChannelDiscord
}

func (dn *DiscordNotifier) Notify(ctx context.Context, alert models.Alert) error {
	payload := buildAlertPayload(alert, dn.mentionRoles)

	if _, err := dn.httpClient.PostJSON(ctx, dn.webhookURL, payload); err != nil {
		dn.logger.Error().Err(err).Msg("Discord notification failed")
		return err
	}

	dn.logger.Info().Str("keyword", alert.Keyword).Msg("Discord notification sent successfully.")
	return nil
}

func buildAlertPayload(alert models.Alert, mentionRoles []string) models.DiscordMessagePayload {
	embed := NewDiscordEmbedBuilder().
		WithTitle("🎫 Tickets may be available").
		WithDescription(fmt.Sprintf("Found **%s** on the page.", alert.Keyword)).
		WithURL(alert.URL).
		WithTimestamp(alert.Timestamp).
		WithColor(FoundEmbedColor).
		AddField("URL", alert.URL, false).
		AddField("Matched via", string(alert.Via), true).
		AddField("Attempt", strconv.Itoa(alert.Attempt), true).
		WithFooter(DiscordUsername).
		Build()

	return NewDiscordMessagePayloadBuilder().
		WithUsername(DiscordUsername).
		WithContent(roleMentions(mentionRoles)).
		AddEmbed(embed).
		WithRoleMentions(mentionRoles).
		Build()
}

func roleMentions(roles []string) string {
	mentions := make([]string, 0, len(roles))
	for _, role := range roles {
		mentions = append(mentions, "<@&"+role+">")
	}
	return strings.Join(mentions, " ")
}
