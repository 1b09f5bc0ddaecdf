package config

import "time"

// Keyword tables reproduce the tuned production lists verbatim. The blocked
// list intentionally includes some general violence terms; revisit with
// product before narrowing it.
var (
	defaultBlockedTerms = []string{
		"porn", "sex", "sexy", "nude", "naked", "nsfw", "adult", "xxx", "explicit",
		"erotic", "sexual", "18+", "hentai", "fetish", "obscene", "vulgar",
		"inappropriate", "seductive", "intimate", "provocative", "lewd",
		"pornography", "pornographic", "intercourse", "orgasm", "masturbat",
		"breast", "nipple", "genitals", "penis", "vagina", "anal",
		"rape", "violence", "gore", "disturbing", "graphic violence",
	}

	defaultSearchTerms = []string{
		"current", "today", "now", "latest", "recent", "weather",
		"news", "stock", "price", "score", "live", "update",
		"what is happening", "what happened", "who won", "real-time",
		"trending", "breaking", "search", "find", "look up", "tell me about recent",
		"time", "date", "year", "day", "month", "temperature", "forecast",
		"cyclone", "storm", "prime minister", "president", "who is", "what is the",
	}

	defaultImageTerms = []string{
		"image", "images", "picture", "pictures", "photo", "photos",
		"show me", "look like", "looks like", "appearance", "visual",
		"see", "view", "gallery", "screenshot", "pic", "pics",
		"how does", "what does", "design", "style", "color", "face",
		"img", "provide an img", "provide img", "show img", "display img",
		"can you provide", "give me image", "send image", "share image",
	}

	defaultReferenceTerms = []string{
		"above", "previous", "that topic", "those", "these", "it", "them",
		"earlier", "before",
	}
)

const (
	// DefaultPrefix is the response-prefix convention the terminal UI keys on.
	DefaultPrefix = "SYSTEM_ASSISTANT@system"

	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultSearchEndpoint = "https://www.googleapis.com/customsearch/v1"
)

// ApplyDefaults fills every unset field with its default value.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.AllowedOrigin == "" {
		cfg.Server.AllowedOrigin = "*"
	}
	if cfg.Server.ImageProxyLimit == 0 {
		cfg.Server.ImageProxyLimit = 10 * 1024 * 1024
	}

	if cfg.Gemini.Endpoint == "" {
		cfg.Gemini.Endpoint = defaultGeminiEndpoint
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash-exp"
	}
	if cfg.Gemini.Temperature == 0 {
		cfg.Gemini.Temperature = 0.4
	}
	if cfg.Gemini.TopK == 0 {
		cfg.Gemini.TopK = 64
	}
	if cfg.Gemini.TopP == 0 {
		cfg.Gemini.TopP = 0.98
	}
	if cfg.Gemini.MaxOutputTokens == 0 {
		cfg.Gemini.MaxOutputTokens = 2048
	}
	if cfg.Gemini.Timeout == 0 {
		cfg.Gemini.Timeout = 60 * time.Second
	}

	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = defaultSearchEndpoint
	}
	if cfg.Search.WebLimit == 0 {
		cfg.Search.WebLimit = 3
	}
	if cfg.Search.ImageLimit == 0 {
		cfg.Search.ImageLimit = 6
	}
	if cfg.Search.QualityTerms == "" {
		cfg.Search.QualityTerms = "high quality HD 4K"
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 10 * time.Second
	}

	if cfg.Persona.Prefix == "" {
		cfg.Persona.Prefix = DefaultPrefix
	}
	if cfg.Persona.PolicyMessage == "" {
		cfg.Persona.PolicyMessage = "I cannot provide adult content, explicit images, or inappropriate material. I'm designed to be a helpful and safe AI assistant. Please ask me something else - I'm here to help with information, technology, science, education, and much more!"
	}
	if cfg.Persona.NoImagesMessage == "" {
		cfg.Persona.NoImagesMessage = "I couldn't find any images for that right now. Please try again or rephrase your request."
	}
	if cfg.Persona.FailureMessage == "" {
		cfg.Persona.FailureMessage = "Sorry, I encountered an error while processing your request. Please try again."
	}

	if len(cfg.Routing.BlockedTerms) == 0 {
		cfg.Routing.BlockedTerms = append([]string(nil), defaultBlockedTerms...)
	}
	if len(cfg.Routing.SearchTerms) == 0 {
		cfg.Routing.SearchTerms = append([]string(nil), defaultSearchTerms...)
	}
	if len(cfg.Routing.ImageTerms) == 0 {
		cfg.Routing.ImageTerms = append([]string(nil), defaultImageTerms...)
	}
	if len(cfg.Routing.ReferenceTerms) == 0 {
		cfg.Routing.ReferenceTerms = append([]string(nil), defaultReferenceTerms...)
	}

	if cfg.MaxHistory == 0 {
		cfg.MaxHistory = 10
	}
}
