// Package querynode defines the typed tokens a search query is made of.
//
// Node is a sealed interface: only the types in this package implement it,
// so a type switch over Node with a default branch is exhaustive.
package querynode

import "fmt"

// Kind identifies the variant of a Node.
type Kind string

const (
	KindWord    Kind = "word"
	KindPhrase  Kind = "phrase"
	KindField   Kind = "field"
	KindHashtag Kind = "hashtag"
	KindMention Kind = "mention"
)

// Node is a single parsed token of a search query.
type Node interface {
	Kind() Kind
	// String renders the node back into query syntax.
	String() string
	node()
}

// Word is a bare token.
type Word struct {
	Text string
}

// Phrase is the literal content of a quoted string, without the quotes.
type Phrase struct {
	Text string
}

// Field is a key:value modifier.
type Field struct {
	Operator string
	Value    string
}

// Hashtag is a #value token.
type Hashtag struct {
	Text string
}

// Mention is an @value token.
type Mention struct {
	Text string
}

func (Word) Kind() Kind    { return KindWord }
func (Phrase) Kind() Kind  { return KindPhrase }
func (Field) Kind() Kind   { return KindField }
func (Hashtag) Kind() Kind { return KindHashtag }
func (Mention) Kind() Kind { return KindMention }

func (w Word) String() string    { return w.Text }
func (p Phrase) String() string  { return quote(p.Text) }
func (h Hashtag) String() string { return "#" + h.Text }
func (m Mention) String() string { return "@" + m.Text }

func (f Field) String() string {
	if needsQuoting(f.Value) {
		return f.Operator + ":" + quote(f.Value)
	}
	return f.Operator + ":" + f.Value
}

func (Word) node()    {}
func (Phrase) node()  {}
func (Field) node()   {}
func (Hashtag) node() {}
func (Mention) node() {}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '"':
			return true
		}
	}
	return false
}

// Texts returns the String form of every node, in order.
func Texts(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}
	return out
}
