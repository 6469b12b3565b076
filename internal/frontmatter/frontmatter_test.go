package frontmatter

import (
	"reflect"
	"testing"
)

func TestParse_MetadataAndBody(t *testing.T) {
	input := "---\ntitle: Hello World\nminutes: 8\ntags: [go, \"kb\"]\n---\n\n# Hello\nBody text.\n\n"
	r := Parse(input)

	if r.Metadata["title"] != "Hello World" {
		t.Errorf("title = %#v", r.Metadata["title"])
	}
	if r.Metadata["minutes"] != 8 {
		t.Errorf("minutes = %#v, want int 8", r.Metadata["minutes"])
	}
	if !reflect.DeepEqual(r.Metadata["tags"], []string{"go", "kb"}) {
		t.Errorf("tags = %#v", r.Metadata["tags"])
	}
	if r.Body != "# Hello\nBody text." {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := "  # Just a heading\nSome text.\n\n"
	r := Parse(input)
	if len(r.Metadata) != 0 {
		t.Errorf("expected empty metadata, got %v", r.Metadata)
	}
	if r.Metadata == nil {
		t.Error("metadata should be empty, not nil")
	}
	if r.Body != input {
		t.Errorf("body = %q, want input unchanged", r.Body)
	}
}

func TestParse_UnclosedBlockIsBody(t *testing.T) {
	input := "---\ntitle: Dangling\nno closing delimiter"
	r := Parse(input)
	if len(r.Metadata) != 0 || r.Body != input {
		t.Errorf("unclosed block should degrade to body, got %+v", r)
	}
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	input := "---\ntitle: Kept\nthis line has no colon\n\n   \n# comment: ignored\n: empty key\n---\nbody"
	r := Parse(input)
	if len(r.Metadata) != 1 {
		t.Fatalf("metadata = %v, want only title", r.Metadata)
	}
	if r.Metadata["title"] != "Kept" {
		t.Errorf("title = %#v", r.Metadata["title"])
	}
}

func TestParse_DuplicateKeyLastWins(t *testing.T) {
	r := Parse("---\nstatus: draft\nstatus: published\n---\nbody")
	if r.Metadata["status"] != "published" {
		t.Errorf("status = %#v, want published", r.Metadata["status"])
	}
}

func TestParse_ColonInValuePreserved(t *testing.T) {
	r := Parse("---\ntitle: Ratio: 3:1 explained\nimage: https://example.com/a.png\n---\nbody")
	if r.Metadata["title"] != "Ratio: 3:1 explained" {
		t.Errorf("title = %#v", r.Metadata["title"])
	}
	if r.Metadata["image"] != "https://example.com/a.png" {
		t.Errorf("image = %#v", r.Metadata["image"])
	}
}

func TestParse_CRLF(t *testing.T) {
	r := Parse("---\r\ntitle: Windows\r\n---\r\nbody\r\n")
	if r.Metadata["title"] != "Windows" {
		t.Errorf("title = %#v", r.Metadata["title"])
	}
	if r.Body != "body" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"mixed quoting array", `[alpha, "beta", 'gamma']`, []string{"alpha", "beta", "gamma"}},
		{"empty array", `[]`, []string{}},
		{"blank array", `[  ]`, []string{}},
		{"array drops blanks keeps dups", `[a, , "", a]`, []string{"a", "a"}},
		{"integer", `8`, 8},
		{"negative integer", `-3`, -3},
		{"float", `2.5`, 2.5},
		{"integral float", `4.0`, 4},
		{"quoted number stays string", `"8"`, "8"},
		{"single quoted", `'hello'`, "hello"},
		{"one layer only", `""quoted""`, `"quoted"`},
		{"mismatched quotes", `"half'`, `"half'`},
		{"infinity is a string", `Infinity`, "Infinity"},
		{"nan is a string", `NaN`, "NaN"},
		{"date stays string", `2024-01-01`, "2024-01-01"},
		{"plain", `  beginner `, "beginner"},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseValue(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	input := "---\ntitle: A\ntags: [x, y]\n---\nbody"
	a, b := Parse(input), Parse(input)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("parse is not deterministic: %+v vs %+v", a, b)
	}
}
