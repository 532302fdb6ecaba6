// Package mention parses inline entity tags of the form
// [TENANT:<id>:<display name>] embedded in notification messages into a token
// sequence, so rendering layers never re-parse the raw text.
package mention

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindText   Kind = "text"
	KindEntity Kind = "entity"
)

type Token struct {
	Kind Kind `json:"kind"`

	// Text is set for text tokens.
	Text string `json:"text,omitempty"`

	// Entity fields are set for entity tokens.
	Entity string `json:"entity,omitempty"`
	ID     string `json:"id,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Tag renders an inline entity tag.
func Tag(entity, id, label string) string {
	return fmt.Sprintf("[%s:%s:%s]", entity, id, label)
}

// Parse splits a message into text and entity-reference tokens. Malformed
// tags degrade to plain text.
func Parse(message string) []Token {
	var tokens []Token
	rest := message

	for {
		start := strings.IndexByte(rest, '[')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], ']')
		if end < 0 {
			break
		}
		end += start

		// An inner '[' opens a closer candidate tag; the prefix before it is
		// plain text.
		if inner := strings.LastIndexByte(rest[start+1:end], '['); inner >= 0 {
			start += 1 + inner
		}

		tag := rest[start+1 : end]
		parts := strings.SplitN(tag, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			// Not an entity tag; emit up to and including '[' as text and
			// keep scanning after it.
			tokens = appendText(tokens, rest[:start+1])
			rest = rest[start+1:]
			continue
		}

		tokens = appendText(tokens, rest[:start])
		tokens = append(tokens, Token{
			Kind:   KindEntity,
			Entity: parts[0],
			ID:     parts[1],
			Label:  parts[2],
		})
		rest = rest[end+1:]
	}

	return appendText(tokens, rest)
}

func appendText(tokens []Token, text string) []Token {
	if text == "" {
		return tokens
	}
	// Merge with a preceding text token so malformed tags don't fragment.
	if n := len(tokens); n > 0 && tokens[n-1].Kind == KindText {
		tokens[n-1].Text += text
		return tokens
	}
	return append(tokens, Token{Kind: KindText, Text: text})
}
