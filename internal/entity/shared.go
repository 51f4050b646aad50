package entity

import "strings"

// Language is the language a sentence is written in, i.e. the one being practised.
// The translation is always in the learner's own language and carries no code.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageEnglish     Language = "en"
	LanguageChinese     Language = "zh"
	LanguageSpanish     Language = "es"
	LanguageFrench      Language = "fr"
	LanguageGerman      Language = "de"
	LanguageJapanese    Language = "ja"
	LanguageKorean      Language = "ko"
)

var supportedLanguages = map[string]Language{
	"en": LanguageEnglish,
	"zh": LanguageChinese,
	"es": LanguageSpanish,
	"fr": LanguageFrench,
	"de": LanguageGerman,
	"ja": LanguageJapanese,
	"ko": LanguageKorean,
}

// Code returns the trimmed language code without defaulting.
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// CodeOrDefault is the code stored in the sentences table; rows never carry an empty language.
func (l Language) CodeOrDefault() string {
	if l.Code() == "" {
		return string(LanguageEnglish)
	}
	return l.Code()
}

// NormalizeLanguage maps anything outside the supported set to English.
func NormalizeLanguage(lang Language) Language {
	if known, ok := supportedLanguages[lang.Code()]; ok {
		return known
	}
	return LanguageEnglish
}

// ParseLanguage reads a code from user input or a stored row. Unknown codes are unspecified.
func ParseLanguage(code string) Language {
	return supportedLanguages[strings.ToLower(strings.TrimSpace(code))]
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
