package types

// Language selects the output language for every generator call and for
// export filenames.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

// Valid reports whether l is a supported language code.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageChinese
}

// Directive returns the language name used inside prompt text.
func (l Language) Directive() string {
	if l == LanguageChinese {
		return "Chinese (简体中文)"
	}
	return "English"
}
