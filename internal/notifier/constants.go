package notifier

// Discord formatting constants
const (
	DiscordUsername   = "tixwatch"
	FoundEmbedColor   = 0x5CB85C // green
	DefaultEmbedColor = 0x2B2D31
	// MaxFieldValueLength is Discord's per-field value limit
	MaxFieldValueLength = 1024
)

// Channel names reported in NotifyError
const (
	ChannelConsole = "console"
	ChannelBeeper  = "beeper"
	ChannelOpener  = "opener"
	ChannelDiscord = "discord"
)
