package format

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/go-xmlfmt/xmlfmt"
)

func formatXML(src, unit string) (string, error) {
	if err := checkXML(src); err != nil {
		return "", err
	}
	out := xmlfmt.FormatXML(src, "", unit)
	out = strings.ReplaceAll(out, "\r\n", "\n")
	return strings.Trim(out, "\n"), nil
}

// checkXML rejects documents that are not well formed. xmlfmt reindents
// whatever it is given, so mismatched or unclosed tags are caught here.
func checkXML(src string) error {
	dec := xml.NewDecoder(strings.NewReader(src))
	dec.Strict = true

	sawElement := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return malformed(XML, err.Error())
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
	if !sawElement {
		return malformed(XML, "no root element")
	}
	return nil
}
