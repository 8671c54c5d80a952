package filter

import (
	"fmt"

	"github.com/edouard-claude/exsel/internal/digest"
	"github.com/edouard-claude/exsel/internal/format"
)

// Messages resolves display strings by key. Missing keys yield "".
type Messages interface {
	Msg(key string) string
}

// Deps are the collaborators the built-in catalog delegates to.
type Deps struct {
	Formatter format.Formatter
	Digester  digest.Digester
	Messages  Messages
}

type noMessages struct{}

func (noMessages) Msg(string) string { return "" }

// DefaultActive is the active filter list used when nothing is configured.
var DefaultActive = []string{
	"LowerCase", "UpperCase", "Length", "Shuffle", "Reverse", "Replace",
	"WordCount", "WordWrap", "Base64Encode", "Base64Decode", "UrlEncode",
	"StripTags", "RemoveWhitespace", "MD5", "SHA1", "SHA256", "SHA512",
	"FormatXML", "FormatJSON", "FormatCSS", "FormatSQL",
}

// NewBuiltin returns a registry holding the built-in catalog. Nil
// collaborators are replaced by their defaults.
func NewBuiltin(deps Deps) *Registry {
	if deps.Formatter == nil {
		deps.Formatter = format.Default()
	}
	if deps.Digester == nil {
		deps.Digester = digest.Default()
	}
	if deps.Messages == nil {
		deps.Messages = noMessages{}
	}
	m := deps.Messages

	// localized builds a descriptor whose name and description come from
	// the message catalog under key and key+"Desc".
	localized := func(id, key string, fn TransformFunc) Descriptor {
		return Descriptor{ID: id, Name: m.Msg(key), Description: m.Msg(key + "Desc"), Transform: fn}
	}
	formatted := func(id string, kind format.Kind) Descriptor {
		return localized(id, id, func(ctx Context) (Output, error) {
			out, err := deps.Formatter.Format(kind, ctx.Text)
			if err != nil {
				return Output{}, err
			}
			return Text(out), nil
		})
	}
	digested := func(id, name string, algo digest.Algorithm) Descriptor {
		return Descriptor{
			ID:          id,
			Name:        name,
			Description: m.Msg(id + "Desc"),
			Transform: func(ctx Context) (Output, error) {
				sum, err := deps.Digester.Digest(algo, ctx.Text)
				if err != nil {
					return Output{}, err
				}
				return Text(sum), nil
			},
		}
	}

	shuffleDesc := localized("Shuffle", "Shuffle", shuffle)
	shuffleDesc.Random = true

	replaceDesc := localized("Replace", "Replace", replace)
	replaceDesc.Inputs = []Input{
		{Name: "search", Label: "Search:"},
		{Name: "replace", Label: "Replace:"},
	}

	wrapDesc := localized("WordWrap", "WordWrap", wordWrap)
	wrapDesc.Inputs = []Input{
		{Name: "width", Label: "Line Width:"},
		{Name: "cut", Label: "Cut long words:", Optional: true},
	}

	return NewRegistry(
		localized("LowerCase", "Lowercase", lowerCase),
		localized("UpperCase", "Uppercase", upperCase),
		localized("Length", "Length", length),
		shuffleDesc,
		localized("Reverse", "Reverse", reverse),
		replaceDesc,
		localized("WordCount", "WordCount", wordCount),
		wrapDesc,
		localized("Base64Encode", "Base64Encode", base64Encode),
		localized("Base64Decode", "Base64Decode", base64Decode),
		localized("UrlEncode", "URLEncode", urlEncode),
		localized("StripTags", "StripTags", stripTags),
		localized("RemoveWhitespace", "RemoveWhitespace", removeWhitespace),
		formatted("FormatXML", format.XML),
		formatted("FormatJSON", format.JSON),
		formatted("FormatCSS", format.CSS),
		formatted("FormatSQL", format.SQL),
		digested("MD5", "MD5", digest.MD5),
		digested("SHA1", "SHA1", digest.SHA1),
		digested("SHA256", "SHA256", digest.SHA256),
		digested("SHA512", "SHA512", digest.SHA512),
		digested("SHA3_256", "SHA3-256", digest.SHA3_256),
		digested("BLAKE2b_256", "BLAKE2b-256", digest.BLAKE2b256),
		Descriptor{ID: "PigLatin", Name: "Pig Latin", Description: m.Msg("PigLatinDesc"), Transform: pigLatin},
	)
}

// Run executes d against ctx, wrapping any error with the filter ID.
func Run(d Descriptor, ctx Context) (Output, error) {
	out, err := d.Transform(ctx)
	if err != nil {
		return Output{}, fmt.Errorf("filter %s: %w", d.ID, err)
	}
	return out, nil
}
