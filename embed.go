package exsel

import "embed"

// EmbeddedLocales holds the message catalogs shipped with the binary.
//
//go:embed locales/*.yaml
var EmbeddedLocales embed.FS
