// Package i18n installs the translated UI strings. Callers use gotext.Get
// with the English source text as the message id.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used when the requested language has no catalogue.
const DefaultLanguage = "en_GB"

// ErrUnknownLanguage is returned by Init when neither the requested language
// nor DefaultLanguage has a catalogue.
var ErrUnknownLanguage = errors.New("unknown language")

//go:embed locales/*/default.po
var locales embed.FS

// Languages lists the embedded catalogues.
func Languages() []string {
	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs
}

// Init makes lang the active catalogue, falling back to DefaultLanguage.
// It returns the language actually installed.
func Init(lang string) (string, error) {
	data, err := locales.ReadFile(catalogue(lang))
	if err != nil {
		lang = DefaultLanguage
		if data, err = locales.ReadFile(catalogue(lang)); err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, lang)
		}
	}

	po := gotext.NewPo()
	po.Parse(data)

	l := gotext.NewLocale("", lang)
	l.AddTranslator("default", po)
	gotext.SetStorage(l)
	return lang, nil
}

func catalogue(lang string) string {
	return path.Join("locales", lang, "default.po")
}
