package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_Headings(t *testing.T) {
	f := Extract("# One\ntext\n### Three  \n####### seven is not a heading\n#NoSpace\n  # indented")
	assert.Equal(t, []string{"One", "Three"}, f.Headings)
}

func TestExtract_Links(t *testing.T) {
	f := Extract("See [ Attention ](/entries/attention) and [RAG](https://x.dev/rag). Not [this] or (that).")
	assert.Equal(t, []string{"Attention", "RAG"}, f.Links)
}

func TestExtract_FirstParagraph(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"skips short blocks", "Short.\n\nThis paragraph is definitely long enough.", "This paragraph is definitely long enough."},
		{"exactly twenty is too short", "12345678901234567890\n\nnext block is long enough too", "next block is long enough too"},
		{"none", "tiny\n\nsmall", ""},
		{"heading block counts", "# A heading that is long\n\nBody.", "# A heading that is long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.body).FirstParagraph)
		})
	}
}

func TestExtract_WordCount(t *testing.T) {
	assert.Equal(t, 0, Extract("   \n\t ").WordCount)
	assert.Equal(t, 2, Extract("Hello world.").WordCount)
	assert.Equal(t, 4, Extract(" a\tb\n\nc  d ").WordCount)
}

func TestExtract_MathAndFormulas(t *testing.T) {
	tests := []struct {
		body          string
		math, formula bool
	}{
		{"plain text", false, false},
		{"costs $5", false, false},
		{"inline $a^2$", true, false},
		{`inline \(a^2\)`, true, false},
		{"block $$a^2 + b^2$$", true, true},
		{`block \[a^2\]`, true, true},
	}
	for _, tt := range tests {
		f := Extract(tt.body)
		assert.Equal(t, tt.math, f.HasMath, "HasMath(%q)", tt.body)
		assert.Equal(t, tt.formula, f.HasFormulas, "HasFormulas(%q)", tt.body)
		if f.HasFormulas {
			assert.True(t, f.HasMath, "formulas imply math")
		}
	}
}

func TestFeatures_MentionsIgnoresCase(t *testing.T) {
	f := Extract("A COMMON Mistake.\n## How To Fix")
	assert.True(t, f.Mentions("common mistake"))
	assert.True(t, f.HeadingMentions("how to"))
	assert.False(t, f.Mentions("pitfall"))
}
