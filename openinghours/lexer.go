// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package openinghours

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokNumber
	tokTime
	tokDash
	tokComma
	tokSemicolon
	tokFallback
	tokColon
	tokSlash
	tokPlus
	tokLBracket
	tokRBracket
	tokComment
)

var tokenNames = map[tokenKind]string{
	tokEOF:       "end of input",
	tokWord:      "word",
	tokNumber:    "number",
	tokTime:      "time",
	tokDash:      "'-'",
	tokComma:     "','",
	tokSemicolon: "';'",
	tokFallback:  "'||'",
	tokColon:     "':'",
	tokSlash:     "'/'",
	tokPlus:      "'+'",
	tokLBracket:  "'['",
	tokRBracket:  "']'",
	tokComment:   "comment",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokWord, tokNumber, tokTime:
		return fmt.Sprintf("%s %q at %d", t.kind, t.text, t.pos)
	case tokComment:
		return fmt.Sprintf("comment at %d", t.pos)
	}
	return fmt.Sprintf("%s at %d", t.kind, t.pos)
}

var punctuation = map[byte]tokenKind{
	'-': tokDash,
	',': tokComma,
	';': tokSemicolon,
	':': tokColon,
	'/': tokSlash,
	'+': tokPlus,
	'[': tokLBracket,
	']': tokRBracket,
}

func isDigit(c byte) bool  { return '0' <= c && c <= '9' }
func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

// lex splits an expression into tokens. The expression is plain ASCII apart
// from the contents of quoted comments.
func lex(in string) ([]token, error) {
	var toks []token

	for i := 0; i < len(in); {
		c := in[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case isLetter(c):
			start := i
			for i < len(in) && isLetter(in[i]) {
				i++
			}
			toks = append(toks, token{kind: tokWord, text: in[start:i], pos: start})

		case isDigit(c):
			start := i
			for i < len(in) && isDigit(in[i]) {
				i++
			}
			// HH:MM is a single token, a bare ':' is a separator.
			if i+2 < len(in) && in[i] == ':' && isDigit(in[i+1]) && isDigit(in[i+2]) {
				i += 3
				toks = append(toks, token{kind: tokTime, text: in[start:i], pos: start})
				continue
			}
			toks = append(toks, token{kind: tokNumber, text: in[start:i], pos: start})

		case c == '"':
			end := strings.IndexByte(in[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated comment at %d", ErrInvalidInput, i)
			}
			toks = append(toks, token{kind: tokComment, text: in[i+1 : i+1+end], pos: i})
			i += end + 2

		case c == '|':
			if i+1 >= len(in) || in[i+1] != '|' {
				return nil, fmt.Errorf("%w: expected '||' at %d", ErrInvalidInput, i)
			}
			toks = append(toks, token{kind: tokFallback, text: "||", pos: i})
			i += 2

		default:
			kind, ok := punctuation[c]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrInvalidInput, c, i)
			}
			toks = append(toks, token{kind: kind, text: in[i : i+1], pos: i})
			i++
		}
	}

	return append(toks, token{kind: tokEOF, pos: len(in)}), nil
}
