package translate

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// DetectLanguage возвращает ISO 639-1 код языка текста или "",
// если язык не определен уверенно (как и для пустого текста).
func DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	code := info.Lang.Iso6391()
	if len(code) > 5 {
		return ""
	}
	return code
}
