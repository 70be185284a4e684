package model

import (
	"time"
)

// Language of the generated changelog, ISO 639-1 code
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageRussian    Language = "ru"
	LanguageSpanish    Language = "es"
	LanguageFrench     Language = "fr"
	LanguageItalian    Language = "it"
	LanguageGerman     Language = "de"
	LanguagePortuguese Language = "pt"
	LanguageJapanese   Language = "ja"
	LanguageKorean     Language = "ko"
	LanguageChinese    Language = "zh"
)

// ModelConfig is passed to a vendor adapter. Empty Model and URL mean vendor defaults.
type ModelConfig struct {
	APIKey   string
	Model    string
	URL      string
	ProxyURL string
}

// APIRequest is one changelog generation call
type APIRequest struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
	ResponseType string // MIME type, used by Gemini only
}

// APIResponse is the generated text with token usage if the vendor reports it
type APIResponse struct {
	CreateTime       time.Time
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Prompt is a pair of system and user prompts
type Prompt struct {
	SystemPrompt string
	UserPrompt   string
	Language     Language
}
