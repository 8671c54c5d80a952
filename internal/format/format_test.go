package format

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatJSON(t *testing.T) {
	out, err := Default().Format(JSON, `{"a":1,"b":{"c":"d"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "{\n") {
		t.Errorf("expected multi-line object, got %q", out)
	}
	if !strings.Contains(out, `    "a": 1`) {
		t.Errorf("expected four-space indent, got %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Errorf("trailing newline not trimmed: %q", out)
	}
}

func TestFormatXML(t *testing.T) {
	out, err := Default().Format(XML, `<?xml version="1.0"?><root a="1"><item>one</item><empty/><!-- note --><group><item>two</item></group></root>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		`<?xml version="1.0"?>`,
		`<root a="1">`,
		`    <item>one</item>`,
		`    <empty/>`,
		`    <!-- note -->`,
		`    <group>`,
		`        <item>two</item>`,
		`    </group>`,
		`</root>`,
	}, "\n")
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatCSS(t *testing.T) {
	out, err := Default().Format(CSS, `a{color:red;background:blue} @media screen{p{margin:0}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"a {",
		"    color:red;",
		"    background:blue;",
		"}",
		"@media screen {",
		"    p {",
		"        margin:0;",
		"    }",
		"}",
	}, "\n")
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatCSSKeepsStringsAndComments(t *testing.T) {
	out, err := Default().Format(CSS, `/* head */ a{content:"x ; }"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "/* head */") {
		t.Errorf("comment lost: %q", out)
	}
	if !strings.Contains(out, `content:"x ; }";`) {
		t.Errorf("string mangled: %q", out)
	}
}

func TestFormatCSSSelectorListAndAtRule(t *testing.T) {
	out, err := Default().Format(CSS, `@import url(x.css);h1,h2{margin : 0 auto}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"@import url(x.css);",
		"h1, h2 {",
		"    margin:0 auto;",
		"}",
	}, "\n")
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatXMLReindents(t *testing.T) {
	out, err := Default().Format(XML, "<a>\n<b>x</b>\n      <c/></a>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"<a>",
		"    <b>x</b>",
		"    <c/>",
		"</a>",
	}, "\n")
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatSQL(t *testing.T) {
	out, err := Default().Format(SQL, "select a, b from t left join u on t.id = u.id where x = 1 and y = 'it''s' order by a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"select a, b",
		"from t",
		"left join u",
		"    on t.id = u.id",
		"where x = 1",
		"    and y = 'it''s'",
		"order by a",
	}, "\n")
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatSQLSubquery(t *testing.T) {
	out, err := Default().Format(SQL, "SELECT * FROM t WHERE id IN (SELECT id FROM u)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"SELECT *",
		"FROM t",
		"WHERE id IN (",
		"    SELECT id",
		"    FROM u",
		")",
	}, "\n")
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatMalformed(t *testing.T) {
	tests := []struct {
		kind Kind
		src  string
	}{
		{JSON, `{"a":`},
		{JSON, ``},
		{XML, `<a><b></a>`},
		{XML, `<a>`},
		{XML, `just text`},
		{CSS, `a{color:red`},
		{CSS, `a{color:red}}`},
		{CSS, `/* open`},
		{CSS, `a{content:"open}`},
		{XML, `<a><b/>`},
		{SQL, `select 'open`},
		{SQL, `select (1`},
		{SQL, `select 1)`},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+" "+tt.src, func(t *testing.T) {
			_, err := Default().Format(tt.kind, tt.src)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestFormatUnknownKind(t *testing.T) {
	if _, err := Default().Format("yaml", "a: 1"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
