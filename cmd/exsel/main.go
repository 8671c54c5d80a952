package main

import (
	"os"

	exsel "github.com/edouard-claude/exsel"
	"github.com/edouard-claude/exsel/internal/cli"
	"github.com/edouard-claude/exsel/internal/i18n"
)

func main() {
	fs := exsel.EmbeddedLocales
	i18n.EmbeddedFS = &fs
	exitCode := cli.Run(os.Args)
	os.Exit(exitCode)
}
