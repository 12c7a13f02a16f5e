package constant

import "time"

// Sender types on a message row.
const (
	MessageSenderDon    = "don"
	MessageSenderMember = "member"
)

// Commission contact statuses.
const (
	ContactStatusPending  = "pending"
	ContactStatusAccepted = "accepted"
	ContactStatusDeclined = "declined"
)

// Supported AI providers.
const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// MaxAllMentions caps how many members an @all mention may summon at once.
const MaxAllMentions = 5

// MaxContextMessages bounds the conversation window handed to a provider.
const MaxContextMessages = 50

// TypingIndicatorStaleAfter is how long an indicator stays credible without
// a corresponding message. Recovers from clients that crashed before cleanup.
const TypingIndicatorStaleAfter = 120 * time.Second
