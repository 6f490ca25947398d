package config

const (
	// Monitor Defaults
	DefaultTargetURL         = "https://tixcraft.com/activity/game/25_bnd"
	DefaultBasePeriodSeconds = 20
	DefaultKeyword           = "立即訂購"
	DefaultDetectionMode     = "scripted"
	DefaultMinFactor         = 0.7
	DefaultMaxFactor         = 1.5

	// Browser Defaults
	DefaultPageReadyTimeoutSecs = 20
	DefaultReadySelector        = "body"
	DefaultSettleMillis         = 3000
	DefaultWindowWidth          = 1920
	DefaultWindowHeight         = 1080

	// HTTP Defaults
	DefaultHTTPTimeoutSecs = 30
	DefaultMaxContentBytes = 10 * 1024 * 1024
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// Notification Defaults
	DefaultBeepCount          = 5
	DefaultBeepIntervalMillis = 500

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Resource Watchdog Defaults
	DefaultResourceCheckIntervalSecs = 60
	DefaultMaxMemoryMB               = 512
	DefaultSystemMemThreshold        = 0.9
	DefaultCPUThreshold              = 0.95

	// ConfigPathEnv overrides the config file location
	ConfigPathEnv = "TIXWATCH_CONFIG_PATH"
	// DefaultConfigFileName is looked up in the working and executable directories
	DefaultConfigFileName = "config.yaml"
)

// Default element markers used by the detector
var (
	DefaultElementTags        = []string{"button", "a", "div", "input"}
	DefaultContainerSelectors = []string{"div.buy", "div#buyTicket"}
	DefaultButtonSelectors    = []string{".btn-buy", ".buy-ticket", ".ticket-button"}
)
