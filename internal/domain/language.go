package domain

import "strings"

// Language is a normalized language hint, e.g. "de" or "eng+deu".
type Language string

// ParseLanguage trims and lower-cases a hint, falling back to def when the
// hint is empty.
func ParseLanguage(hint string, def Language) Language {
	l := strings.ToLower(strings.TrimSpace(hint))
	if l == "" {
		return def
	}
	return Language(l)
}

func (l Language) String() string { return string(l) }

// alpha3 maps ISO 639-1 and PaddleOCR model codes to Tesseract traineddata names.
var alpha3 = map[string]string{
	"en":          "eng",
	"de":          "deu",
	"german":      "deu",
	"fr":          "fra",
	"french":      "fra",
	"ch":          "chi_sim",
	"zh":          "chi_sim",
	"chinese_cht": "chi_tra",
	"japan":       "jpn",
	"ja":          "jpn",
	"korean":      "kor",
	"ko":          "kor",
	"ru":          "rus",
	"es":          "spa",
	"it":          "ita",
	"pt":          "por",
	"nl":          "nld",
	"pl":          "pol",
	"uk":          "ukr",
	"ar":          "ara",
	"hi":          "hin",
	"th":          "tha",
	"tr":          "tur",
	"vi":          "vie",
}

// Alpha3 returns the Tesseract language names for l. Combined hints such as
// "en+de" yield one entry per part; unknown codes pass through unchanged.
func (l Language) Alpha3() []string {
	parts := strings.Split(string(l), "+")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if a, ok := alpha3[p]; ok {
			p = a
		}
		out = append(out, p)
	}
	return out
}
