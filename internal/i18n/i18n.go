package i18n

import (
	"fmt"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// известные локали: язык интерфейса можно включить, только если для него есть
// правила go-playground/locales и каталог сообщений
var knownLocales = map[string]func() locales.Translator{
	"en": en.New,
	"es": es.New,
}

// Bundle - переводы интерфейса и выбор языка по Accept-Language.
type Bundle struct {
	uni       *ut.UniversalTranslator
	matcher   language.Matcher
	languages []string
}

// New создает bundle для перечисленных языков; первый язык - язык по умолчанию.
func New(languages []string) (*Bundle, error) {
	if len(languages) == 0 {
		return nil, fmt.Errorf("no languages configured")
	}

	tags := make([]language.Tag, 0, len(languages))
	translators := make([]locales.Translator, 0, len(languages))
	for _, code := range languages {
		newLocale, ok := knownLocales[code]
		if !ok {
			return nil, fmt.Errorf("unsupported language %q", code)
		}
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", code, err)
		}
		tags = append(tags, tag)
		translators = append(translators, newLocale())
	}

	b := &Bundle{
		uni:       ut.New(translators[0], translators...),
		matcher:   language.NewMatcher(tags),
		languages: languages,
	}

	for _, code := range languages {
		trans, _ := b.uni.GetTranslator(code)
		for key, text := range catalog[code] {
			if err := trans.Add(key, text, true); err != nil {
				return nil, fmt.Errorf("add translation %q for %s: %w", key, code, err)
			}
		}
	}
	return b, nil
}

// Languages возвращает поддерживаемые языки в порядке конфигурации.
func (b *Bundle) Languages() []string {
	return b.languages
}

// Default - язык по умолчанию
func (b *Bundle) Default() string {
	return b.languages[0]
}

// Negotiate выбирает язык интерфейса. override (cookie lang) имеет приоритет,
// если язык поддерживается; иначе используется Accept-Language.
func (b *Bundle) Negotiate(acceptLanguage, override string) string {
	if override != "" && b.Supports(override) {
		return override
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return b.Default()
	}
	_, idx, confidence := b.matcher.Match(prefs...)
	if confidence == language.No {
		return b.Default()
	}
	return b.languages[idx]
}

func (b *Bundle) Supports(code string) bool {
	for _, l := range b.languages {
		if l == code {
			return true
		}
	}
	return false
}

// Translator возвращает переводчик для языка (или языка по умолчанию).
func (b *Bundle) Translator(locale string) ut.Translator {
	trans, found := b.uni.GetTranslator(locale)
	if !found {
		trans, _ = b.uni.GetTranslator(b.Default())
	}
	return trans
}

// T переводит сообщение. Ключ - английский текст; если перевода нет,
// возвращается сам ключ с подставленными параметрами {0}, {1}, ...
func (b *Bundle) T(locale, key string, params ...string) string {
	if text, err := b.Translator(locale).T(key, params...); err == nil {
		return text
	}
	return substitute(key, params)
}

func substitute(text string, params []string) string {
	if len(params) == 0 {
		return text
	}
	pairs := make([]string, 0, len(params)*2)
	for i, p := range params {
		pairs = append(pairs, fmt.Sprintf("{%d}", i), p)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
