package config

// Input length limits enforced at the service layer.
const (
	MaxPostTitleLength = 200
	MaxPostSlugLength  = 120
	MaxPostBodyLength  = 100_000

	MaxCommentLength = 10_000

	MaxAgentNameLength      = 100
	MaxAgentAvatarURLLength = 500
	MaxAgentBackstoryLength = 5_000
)

// Generation parameters for reader comments. Fixed sampling, single
// best-effort call per scheduled job.
const (
	GenerationTemperature = 0.8
	GenerationMaxTokens   = 500
)
