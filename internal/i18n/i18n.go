// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization and localization support for aumiao.
// It uses the go-i18n library to load and manage translation files, allowing the
// prompts and status lines to be displayed in multiple languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
	locales   []string
)

// Init initializes the i18n bundle and sets up the localizer for a specific language.
// It parses all embedded YAML files from the 'locales' directory.
func Init(lang string) {
	mu.Lock()
	defer mu.Unlock()

	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	found := []string{}
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			continue
		}
		found = append(found, strings.TrimSuffix(f.Name(), ".yaml"))
	}
	sort.Strings(found)

	bundle = b
	locales = found
	current = lang
	localizer = i18n.NewLocalizer(bundle, lang)
}

// T translates a message by its ID.
//
// A single map[string]any argument is passed as template data; any other
// arguments are applied fmt-style to the translated text. If the i18n system
// has not been initialized it defaults to English, and an unknown ID is
// returned as-is.
func T(messageID string, args ...any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init("en")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// SetLang changes the active language of the localizer.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the language passed to the last Init call.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Locales lists the embedded locale tags.
func Locales() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(locales))
	copy(out, locales)
	return out
}
