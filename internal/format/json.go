package format

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

func formatJSON(src, unit string) (string, error) {
	if !gjson.Valid(src) {
		return "", malformed(JSON, "invalid json")
	}
	out := pretty.PrettyOptions([]byte(src), &pretty.Options{
		Width:  80,
		Prefix: "",
		Indent: unit,
	})
	return strings.TrimRight(string(out), "\n"), nil
}
