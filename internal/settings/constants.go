package settings

// DB config keys and defaults for settings.
const (
	// SiteNameKey is the DB config key for the UI site name.
	SiteNameKey = "SITE_NAME"
	// DefaultSiteName is the fallback UI site name.
	DefaultSiteName = "INNOVTEC Réseaux"
	// AIModelKey overrides the generation model id.
	AIModelKey = "AI_MODEL"
	// AIMaxTokensKey overrides the generation output token cap.
	AIMaxTokensKey = "AI_MAX_TOKENS"
	// AIFileMaxTokensKey overrides the token cap for file analysis.
	AIFileMaxTokensKey = "AI_FILE_MAX_TOKENS"
	// AITimeoutSecondsKey overrides the provider call timeout.
	AITimeoutSecondsKey = "AI_TIMEOUT_SECONDS"
	// DefaultAIMaxTokens is the fallback output token cap.
	DefaultAIMaxTokens = 2048
	// DefaultAIFileMaxTokens is the fallback token cap for file analysis.
	DefaultAIFileMaxTokens = 4096
	// AIUsageRetentionDaysKey overrides how long AI usage rows are kept.
	AIUsageRetentionDaysKey = "AI_USAGE_RETENTION_DAYS"
	// DefaultAIUsageRetentionDays is the fallback retention for AI usage rows.
	DefaultAIUsageRetentionDays = 180
)
