package prompts

import (
	"github.com/maxbolgarin/changry/internal/model"
)

// LanguageConfig defines the target language for AI responses
type LanguageConfig struct {
	Language     model.Language `yaml:"language"`     // Language code (en, es, fr, de, ru, etc.)
	Instructions string         `yaml:"instructions"` // Language-specific instructions for the AI

	ChangelogHeaders ChangelogHeaders `yaml:"changelog_headers"`
}

// ChangelogHeaders are the category titles the model is asked to use
type ChangelogHeaders struct {
	NewFeatures   string `yaml:"new_features"`
	Improvements  string `yaml:"improvements"`
	BugFixes      string `yaml:"bug_fixes"`
	Security      string `yaml:"security"`
	Performance   string `yaml:"performance"`
	Documentation string `yaml:"documentation"`
	ComingSoon    string `yaml:"coming_soon"`
}

func (h ChangelogHeaders) isEmpty() bool {
	return h.NewFeatures == ""
}

var englishHeaders = ChangelogHeaders{
	NewFeatures:   "✨ New Features",
	Improvements:  "🚀 Improvements",
	BugFixes:      "🐛 Bug Fixes",
	Security:      "🔒 Security Updates",
	Performance:   "🏎️ Performance Enhancements",
	Documentation: "📚 Documentation Updates",
	ComingSoon:    "🔮 Coming Soon",
}

// DefaultLanguages provides common language configurations
var DefaultLanguages = map[model.Language]LanguageConfig{
	model.LanguageEnglish: {
		Language:         model.LanguageEnglish,
		Instructions:     "Respond in clear, friendly English. Avoid developer jargon unless it is necessary.",
		ChangelogHeaders: englishHeaders,
	},
	model.LanguageSpanish: {
		Language:     model.LanguageSpanish,
		Instructions: "Responde en español claro y cercano. Evita la jerga técnica salvo que sea necesaria.",
		ChangelogHeaders: ChangelogHeaders{
			NewFeatures:   "✨ Nuevas funciones",
			Improvements:  "🚀 Mejoras",
			BugFixes:      "🐛 Correcciones",
			Security:      "🔒 Seguridad",
			Performance:   "🏎️ Rendimiento",
			Documentation: "📚 Documentación",
			ComingSoon:    "🔮 Próximamente",
		},
	},
	model.LanguageFrench: {
		Language:     model.LanguageFrench,
		Instructions: "Répondez en français clair et chaleureux. Évitez le jargon technique sauf si nécessaire.",
	},
	model.LanguageGerman: {
		Language:     model.LanguageGerman,
		Instructions: "Antworten Sie in klarem, freundlichem Deutsch. Vermeiden Sie Fachjargon, wenn er nicht nötig ist.",
	},
	model.LanguageRussian: {
		Language:     model.LanguageRussian,
		Instructions: "Отвечайте на русском языке понятно и дружелюбно. Избегайте технического жаргона без необходимости.",
		ChangelogHeaders: ChangelogHeaders{
			NewFeatures:   "✨ Новые возможности",
			Improvements:  "🚀 Улучшения",
			BugFixes:      "🐛 Исправления",
			Security:      "🔒 Безопасность",
			Performance:   "🏎️ Производительность",
			Documentation: "📚 Документация",
			ComingSoon:    "🔮 Скоро",
		},
	},
	model.LanguagePortuguese: {
		Language:     model.LanguagePortuguese,
		Instructions: "Responda em português claro e amigável. Evite jargão técnico, a menos que seja necessário.",
	},
	model.LanguageItalian: {
		Language:     model.LanguageItalian,
		Instructions: "Rispondi in italiano chiaro e cordiale. Evita il gergo tecnico se non è necessario.",
	},
	model.LanguageJapanese: {
		Language:     model.LanguageJapanese,
		Instructions: "分かりやすく親しみやすい日本語で回答してください。必要な場合を除き専門用語は避けてください。",
	},
	model.LanguageKorean: {
		Language:     model.LanguageKorean,
		Instructions: "명확하고 친근한 한국어로 답변해 주세요. 꼭 필요한 경우가 아니면 전문 용어는 피해 주세요.",
	},
	model.LanguageChinese: {
		Language:     model.LanguageChinese,
		Instructions: "请用清晰、友好的中文回答。除非必要，避免使用开发术语。",
	},
}
