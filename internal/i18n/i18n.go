// Package i18n loads the display-string catalogs used for filter names and
// descriptions. A missing catalog or key always resolves to "".
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EmbeddedFS is set by the main package to provide the embedded catalogs.
var EmbeddedFS *embed.FS

const (
	localeDir     = "locales"
	defaultLocale = "en"
)

// Catalog maps message keys to display strings for one language.
type Catalog struct {
	tag      language.Tag
	messages map[string]string
}

// Msg returns the display string for key, or "" when absent.
func (c *Catalog) Msg(key string) string {
	if c == nil {
		return ""
	}
	return c.messages[key]
}

// Language returns the BCP 47 tag of the matched catalog.
func (c *Catalog) Language() string {
	if c == nil {
		return ""
	}
	return c.tag.String()
}

// Load loads the embedded catalog best matching locale. An empty locale
// falls back to $LANG. Returns a nil catalog when nothing is embedded.
func Load(locale string) (*Catalog, error) {
	if EmbeddedFS == nil {
		return nil, nil
	}
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	return LoadFS(EmbeddedFS, localeDir, locale)
}

// LoadFS loads the catalog best matching locale from dir in fsys. Keys
// missing from the matched language fall back to the default language.
func LoadFS(fsys fs.FS, dir, locale string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	var tags []language.Tag
	files := make(map[language.Tag]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ".yaml"))
		if err != nil {
			continue
		}
		files[tag] = path.Join(dir, name)
		// the default language goes first so the matcher falls back to it
		if tag == language.Make(defaultLocale) {
			tags = append([]language.Tag{tag}, tags...)
		} else {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil, nil
	}

	_, idx, _ := language.NewMatcher(tags).Match(language.Make(normalizeLocale(locale)))
	matched := tags[idx]

	messages := make(map[string]string)
	if base := tags[0]; base != matched {
		if err := readCatalog(fsys, files[base], messages); err != nil {
			return nil, err
		}
	}
	if err := readCatalog(fsys, files[matched], messages); err != nil {
		return nil, err
	}
	return &Catalog{tag: matched, messages: messages}, nil
}

func readCatalog(fsys fs.FS, name string, into map[string]string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", name, err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse catalog %s: %w", name, err)
	}
	for k, v := range m {
		into[k] = v
	}
	return nil
}

// normalizeLocale turns POSIX locale names like "fr_FR.UTF-8" into BCP 47.
func normalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}
