// Package advanced interprets the inline [key:value] reference tokens that
// game text embeds in descriptions and operator values. The interpreter knows
// nothing about output dialects or the entity graph: callers register one
// handler per key, and a handler either returns replacement text or reports
// the value unresolved, in which case the token is left verbatim.
package advanced

import (
	"log/slog"
	"strings"
)

// Handler resolves the value of one [key:value] token. The boolean reports
// whether a replacement was produced; on false the original token text is
// kept.
type Handler func(value string) (string, bool)

// Interpreter substitutes reference tokens in free text. Replacement is a
// single left-to-right pass: handler output is never re-scanned.
type Interpreter struct {
	handlers map[byte]Handler
	log      *slog.Logger
}

func New(log *slog.Logger) *Interpreter {
	return &Interpreter{
		handlers: make(map[byte]Handler),
		log:      log,
	}
}

// Handle registers the handler for one token key. Keys are single lowercase
// letters; registering again replaces the previous handler.
func (it *Interpreter) Handle(key byte, h Handler) {
	it.handlers[key] = h
}

// Expand replaces every well-formed [key:value] token in text. Values may
// nest further tokens to arbitrary depth; a handler that needs the nested
// tokens resolved calls Expand on the value itself. Tokens with an unknown
// key, an unresolvable value, or no closing bracket are kept as-is.
func (it *Interpreter) Expand(text string) string {
	if !strings.ContainsRune(text, '[') {
		return text
	}

	var out strings.Builder
	out.Grow(len(text))

	for i := 0; i < len(text); {
		start := strings.IndexByte(text[i:], '[')
		if start < 0 {
			out.WriteString(text[i:])
			break
		}
		start += i
		out.WriteString(text[i:start])

		key, end, ok := scanToken(text, start)
		if !ok {
			// Not a token, just a stray bracket.
			out.WriteByte('[')
			i = start + 1
			continue
		}

		token := text[start : end+1]
		value := text[start+3 : end]

		h, known := it.handlers[key]
		if !known {
			it.log.Warn("unknown reference key in advanced string",
				"key", string(key), "token", token)
			out.WriteString(token)
			i = end + 1
			continue
		}
		if repl, resolved := h(value); resolved {
			out.WriteString(repl)
		} else {
			out.WriteString(token)
		}
		i = end + 1
	}

	return out.String()
}

// scanToken checks for a [k:...] token opening at position start and returns
// its key and the index of the matching closing bracket.
func scanToken(text string, start int) (key byte, end int, ok bool) {
	if start+3 >= len(text) {
		return 0, 0, false
	}
	key = text[start+1]
	if key < 'a' || key > 'z' || text[start+2] != ':' {
		return 0, 0, false
	}

	depth := 1
	for i := start + 3; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return key, i, true
			}
		}
	}
	return 0, 0, false
}
