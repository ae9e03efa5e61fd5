// Package tokenizer turns a raw search string into query nodes.
//
// Grammar:
//
//	query   = { term }
//	term    = phrase | field | hashtag | mention | word
//	phrase  = '"' { char | '\' char } '"'
//	field   = key ':' ( phrase | bare )      key = [A-Za-z_][A-Za-z0-9_]*
//	hashtag = '#' bare
//	mention = '@' bare
//
// Terms are separated by whitespace. Field keys are lower-cased.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"

	"fjacquet/txsearch/internal/querynode"
	"fjacquet/txsearch/internal/searcherror"
)

// SyntaxError reports malformed query syntax at a rune offset.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

// Is reports searcherror.ErrBadRequest.
func (e *SyntaxError) Is(target error) bool {
	return target == searcherror.ErrBadRequest
}

// Tokenize parses raw into an ordered node sequence.
func Tokenize(raw string) ([]querynode.Node, error) {
	s := &scanner{input: []rune(raw)}
	var nodes []querynode.Node

	for {
		s.skipSpace()
		if s.eof() {
			return nodes, nil
		}

		node, err := s.term()
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
}

type scanner struct {
	input []rune
	pos   int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() rune {
	return s.input[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.pos++
	}
}

func (s *scanner) term() (querynode.Node, error) {
	if s.peek() == '"' {
		text, err := s.quoted()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		return querynode.Phrase{Text: text}, nil
	}

	start := s.pos
	for !s.eof() && !unicode.IsSpace(s.peek()) {
		if s.peek() == ':' && isKey(s.input[start:s.pos]) {
			key := strings.ToLower(string(s.input[start:s.pos]))
			s.pos++
			return s.fieldValue(key, start)
		}
		s.pos++
	}
	return classify(string(s.input[start:s.pos])), nil
}

func (s *scanner) fieldValue(key string, start int) (querynode.Node, error) {
	if !s.eof() && s.peek() == '"' {
		value, err := s.quoted()
		if err != nil {
			return nil, err
		}
		return querynode.Field{Operator: key, Value: value}, nil
	}

	valueStart := s.pos
	for !s.eof() && !unicode.IsSpace(s.peek()) {
		s.pos++
	}
	if s.pos == valueStart {
		// "key:" without a value is plain text
		return querynode.Word{Text: string(s.input[start:s.pos])}, nil
	}
	return querynode.Field{Operator: key, Value: string(s.input[valueStart:s.pos])}, nil
}

// quoted consumes a double-quoted string starting at the current position and
// returns its unescaped content.
func (s *scanner) quoted() (string, error) {
	open := s.pos
	s.pos++

	var b strings.Builder
	for !s.eof() {
		r := s.peek()
		switch r {
		case '\\':
			s.pos++
			if s.eof() {
				return "", &SyntaxError{Pos: s.pos, Msg: "dangling escape character"}
			}
			b.WriteRune(s.peek())
		case '"':
			s.pos++
			return b.String(), nil
		default:
			b.WriteRune(r)
		}
		s.pos++
	}
	return "", &SyntaxError{Pos: open, Msg: "unterminated quoted string"}
}

func isKey(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for i, r := range rs {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func classify(text string) querynode.Node {
	if len(text) > 1 {
		switch text[0] {
		case '#':
			return querynode.Hashtag{Text: text[1:]}
		case '@':
			return querynode.Mention{Text: text[1:]}
		}
	}
	return querynode.Word{Text: text}
}
