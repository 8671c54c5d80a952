package filter

import (
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/edouard-claude/exsel/internal/utils"
)

const (
	defaultWrapWidth = 75
	// RE2 rejects repeat counts above 1000.
	maxWrapWidth = 1000
)

var (
	tagRe        = utils.NewLazyRegex(`<[^>]+>`)
	pigVowelRe   = utils.NewLazyRegex(`(?i)\b([aeiou][a-z]*)\b`)
	pigConsonRe  = utils.NewLazyRegex(`(?i)\b([bcdfghjklmnpqrstvwxy]+)([a-z]*)\b`)
	replaceCache = utils.NewRegexCache(64)
)

func lowerCase(ctx Context) (Output, error) {
	return Text(strings.ToLower(ctx.Text)), nil
}

func upperCase(ctx Context) (Output, error) {
	return Text(strings.ToUpper(ctx.Text)), nil
}

func length(ctx Context) (Output, error) {
	return Count(utf8.RuneCountInString(ctx.Text)), nil
}

// shuffle applies a Fisher-Yates shuffle over the runes of the selection.
func shuffle(ctx Context) (Output, error) {
	rs := []rune(ctx.Text)
	for i := len(rs) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		rs[i], rs[j] = rs[j], rs[i]
	}
	return Text(string(rs)), nil
}

func reverse(ctx Context) (Output, error) {
	rs := []rune(ctx.Text)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return Text(string(rs)), nil
}

// replace substitutes every match of the search pattern. The pattern uses RE2
// syntax; the replacement follows String.prototype.replace: $$, $&, $`, $',
// $1..$99 and $<name>. A reference to a group that does not exist is kept
// literally.
func replace(ctx Context) (Output, error) {
	search, _ := ctx.Input("search")
	repl, _ := ctx.Input("replace")
	re, err := replaceCache.Compile(search)
	if err != nil {
		return Output{}, fmt.Errorf("replace: %w", err)
	}

	src := ctx.Text
	var b strings.Builder
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(src, -1) {
		b.WriteString(src[last:m[0]])
		expandReplacement(&b, re, repl, src, m)
		last = m[1]
	}
	b.WriteString(src[last:])
	return Text(b.String()), nil
}

func expandReplacement(b *strings.Builder, re *regexp.Regexp, repl, src string, m []int) {
	groups := len(m)/2 - 1
	group := func(n int) {
		if m[2*n] >= 0 {
			b.WriteString(src[m[2*n]:m[2*n+1]])
		}
	}

	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c != '$' || i+1 >= len(repl) {
			b.WriteByte(c)
			continue
		}
		next := repl[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			group(0)
			i++
		case next == '`':
			b.WriteString(src[:m[0]])
			i++
		case next == '\'':
			b.WriteString(src[m[1]:])
			i++
		case next >= '0' && next <= '9':
			n := int(next - '0')
			width := 1
			if i+2 < len(repl) && repl[i+2] >= '0' && repl[i+2] <= '9' {
				if nn := n*10 + int(repl[i+2]-'0'); nn >= 1 && nn <= groups {
					n, width = nn, 2
				}
			}
			if n < 1 || n > groups {
				b.WriteByte(c)
				continue
			}
			group(n)
			i += width
		case next == '<':
			end := strings.IndexByte(repl[i+2:], '>')
			idx := -1
			if end >= 0 {
				idx = re.SubexpIndex(repl[i+2 : i+2+end])
			}
			if idx < 0 {
				b.WriteByte(c)
				continue
			}
			group(idx)
			i += end + 2
		default:
			b.WriteByte(c)
		}
	}
}

func wordCount(ctx Context) (Output, error) {
	return Count(len(strings.Fields(ctx.Text))), nil
}

func wordWrap(ctx Context) (Output, error) {
	width := defaultWrapWidth
	if v, ok := ctx.Input("width"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			width = n
		}
	}
	if width > maxWrapWidth {
		width = maxWrapWidth
	}
	cut := false
	if v, ok := ctx.Input("cut"); ok {
		cut = isTruthy(v)
	}
	return Text(wrap(ctx.Text, width, "\n", cut)), nil
}

func wrap(s string, width int, brk string, cut bool) string {
	if s == "" {
		return s
	}
	pattern := fmt.Sprintf(`.{1,%d}(\s|$)`, width)
	if cut {
		pattern += fmt.Sprintf(`|.{%d}|.+$`, width)
	} else {
		pattern += `|\S+?(\s|$)`
	}
	re, err := replaceCache.Compile(pattern)
	if err != nil {
		return s
	}
	parts := re.FindAllString(s, -1)
	if parts == nil {
		return s
	}
	return strings.Join(parts, brk)
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

func base64Encode(ctx Context) (Output, error) {
	return Text(base64.StdEncoding.EncodeToString([]byte(ctx.Text))), nil
}

// base64Decode ignores whitespace anywhere in the input.
func base64Decode(ctx Context) (Output, error) {
	s := strings.Join(strings.Fields(ctx.Text), "")
	enc := base64.StdEncoding
	if !strings.HasSuffix(s, "=") && len(s)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	data, err := enc.DecodeString(s)
	if err != nil {
		return Output{}, fmt.Errorf("base64 decode: %w", err)
	}
	return Text(string(data)), nil
}

// urlEncode follows the legacy escape() scheme: bytes below 256 become
// %XX, other UTF-16 code units become %uXXXX.
func urlEncode(ctx Context) (Output, error) {
	const safe = "@*_+-./"
	var b strings.Builder
	for _, u := range utf16.Encode([]rune(ctx.Text)) {
		switch {
		case u < 128 && (isAlnum(byte(u)) || strings.IndexByte(safe, byte(u)) >= 0):
			b.WriteByte(byte(u))
		case u < 256:
			fmt.Fprintf(&b, "%%%02X", u)
		default:
			fmt.Fprintf(&b, "%%u%04X", u)
		}
	}
	return Text(b.String()), nil
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// stripTags removes anything between angle brackets. It is not an HTML
// parser: a '>' inside an attribute value ends the tag early.
func stripTags(ctx Context) (Output, error) {
	return Text(tagRe.Re().ReplaceAllString(ctx.Text, "")), nil
}

// removeWhitespace removes U+0020 only; tabs and newlines are kept.
func removeWhitespace(ctx Context) (Output, error) {
	return Text(strings.ReplaceAll(ctx.Text, " ", "")), nil
}

// pigLatin runs both passes against the original text. The consonant pass
// wins whenever it changed anything, so vowel-initial words mixed with
// consonant-initial ones are left as they were.
func pigLatin(ctx Context) (Output, error) {
	first := pigVowelRe.Re().ReplaceAllString(ctx.Text, "${1}way")
	second := pigConsonRe.Re().ReplaceAllString(ctx.Text, "${2}${1}ay")
	if second != ctx.Text {
		return Text(second), nil
	}
	return Text(first), nil
}
