package mention

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagParseRoundTrip(t *testing.T) {
	msg := "Collected UGX 23053 from " + Tag("TENANT", "abc-123", "Sarah Nakato") + " via mobile money"

	tokens := Parse(msg)

	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Kind: KindText, Text: "Collected UGX 23053 from "}, tokens[0])
	assert.Equal(t, Token{Kind: KindEntity, Entity: "TENANT", ID: "abc-123", Label: "Sarah Nakato"}, tokens[1])
	assert.Equal(t, Token{Kind: KindText, Text: " via mobile money"}, tokens[2])
}

func TestParse(t *testing.T) {
	t.Run("Plain text", func(t *testing.T) {
		tokens := Parse("no tags here")
		require.Len(t, tokens, 1)
		assert.Equal(t, KindText, tokens[0].Kind)
		assert.Equal(t, "no tags here", tokens[0].Text)
	})

	t.Run("Empty message", func(t *testing.T) {
		assert.Empty(t, Parse(""))
	})

	t.Run("Tag only", func(t *testing.T) {
		tokens := Parse("[TENANT:id-1:Jane]")
		require.Len(t, tokens, 1)
		assert.Equal(t, KindEntity, tokens[0].Kind)
	})

	t.Run("Multiple tags", func(t *testing.T) {
		tokens := Parse("[AGENT:a1:John] paid [TENANT:t1:Jane]")
		require.Len(t, tokens, 3)
		assert.Equal(t, "John", tokens[0].Label)
		assert.Equal(t, " paid ", tokens[1].Text)
		assert.Equal(t, "Jane", tokens[2].Label)
	})

	t.Run("Label may contain colons", func(t *testing.T) {
		tokens := Parse("[TENANT:t1:Unit 4: Annex]")
		require.Len(t, tokens, 1)
		assert.Equal(t, "Unit 4: Annex", tokens[0].Label)
	})

	t.Run("Malformed tags degrade to text", func(t *testing.T) {
		cases := []string{
			"[not a tag]",
			"[TENANT:only-two]",
			"[:missing:entity]",
			"unterminated [TENANT:t1:Jane",
			"stray ] bracket",
		}
		for _, msg := range cases {
			tokens := Parse(msg)
			text := ""
			for _, tok := range tokens {
				require.Equal(t, KindText, tok.Kind, "input %q", msg)
				text += tok.Text
			}
			assert.Equal(t, msg, text, "malformed input must survive verbatim")
		}
	})

	t.Run("Inner tag wins over an unclosed opener", func(t *testing.T) {
		tokens := Parse("[a[TENANT:1:x]")
		require.Len(t, tokens, 2)
		assert.Equal(t, Token{Kind: KindText, Text: "[a"}, tokens[0])
		assert.Equal(t, Token{Kind: KindEntity, Entity: "TENANT", ID: "1", Label: "x"}, tokens[1])
	})

	t.Run("Nested malformed brackets survive verbatim", func(t *testing.T) {
		msg := "[a[not-a-tag]"
		tokens := Parse(msg)
		text := ""
		for _, tok := range tokens {
			require.Equal(t, KindText, tok.Kind)
			text += tok.Text
		}
		assert.Equal(t, msg, text)
	})

	t.Run("Malformed tag followed by a valid one", func(t *testing.T) {
		tokens := Parse("[oops] then [TENANT:t1:Jane]")
		require.Len(t, tokens, 2)
		assert.Equal(t, "[oops] then ", tokens[0].Text)
		assert.Equal(t, KindEntity, tokens[1].Kind)
	})
}
