// Package i18n хранит тексты и подписи кнопок на всех поддерживаемых
// языках. Каталоги встроены в бинарник, по одному JSON файлу на язык.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// locale тексты одного языка
type locale struct {
	Texts     map[string]string `json:"texts"`
	Keyboards map[string]string `json:"keyboards"`
}

// Catalog тексты всех языков с поиском подписи кнопки на любом языке
type Catalog struct {
	locales map[string]locale
	// labelActions: подпись кнопки на любом языке -> ключ действия.
	// Пользователь может сменить язык между сообщениями, поэтому
	// подписи распознаются независимо от текущего языка.
	labelActions map[string]string
}

// Load читает встроенные каталоги локализации
func Load() (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	catalog := &Catalog{
		locales:      make(map[string]locale),
		labelActions: make(map[string]string),
	}

	for _, entry := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", entry.Name(), err)
		}

		var loc locale
		if err := json.Unmarshal(data, &loc); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", entry.Name(), err)
		}

		lang := strings.TrimSuffix(entry.Name(), ".json")
		catalog.locales[lang] = loc
		for action, label := range loc.Keyboards {
			catalog.labelActions[label] = action
		}
	}

	if _, ok := catalog.locales["en"]; !ok {
		return nil, fmt.Errorf("english locale is required as fallback")
	}

	return catalog, nil
}

// Text возвращает текст по ключу на данном языке,
// с откатом на английский для незнакомых языков и ключей
func (c *Catalog) Text(lang, key string) string {
	if loc, ok := c.locales[lang]; ok {
		if text, ok := loc.Texts[key]; ok {
			return text
		}
	}
	return c.locales["en"].Texts[key]
}

// Label возвращает подпись кнопки по ключу действия на данном языке
func (c *Catalog) Label(lang, action string) string {
	if loc, ok := c.locales[lang]; ok {
		if label, ok := loc.Keyboards[action]; ok {
			return label
		}
	}
	return c.locales["en"].Keyboards[action]
}

// ActionFor возвращает ключ действия для подписи кнопки на любом языке
func (c *Catalog) ActionFor(label string) (string, bool) {
	action, ok := c.labelActions[label]
	return action, ok
}

// Languages возвращает отсортированный список кодов языков
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.locales))
	for lang := range c.locales {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Has сообщает, поддерживается ли язык
func (c *Catalog) Has(lang string) bool {
	_, ok := c.locales[lang]
	return ok
}
