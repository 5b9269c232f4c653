// Package isbt implements the ISBT 128 data structure conventions carried
// in Code 128 symbols: the data identifier prefix and the ISO 7064 Mod 37-2
// keyboard check character.
package isbt

import (
	"fmt"
	"strings"
)

const (
	// FlagEquals and FlagAmpersand are the first characters of every ISBT
	// 128 data identifier.
	FlagEquals    = '='
	FlagAmpersand = '&'
)

const checkAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ*"

// Error reports a malformed ISBT 128 data structure. Pos is a byte offset.
type Error struct {
	Pos    int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("isbt: %s at offset %d", e.Reason, e.Pos)
}

// Validate checks that text is a single ISBT 128 data structure: a two
// character data identifier followed by its content. The content is limited
// to the characters that carry a Mod 37-2 value, so '*' may appear only as
// the second data identifier character.
func Validate(text string) error {
	if len(text) < 2 {
		return &Error{Pos: len(text), Reason: "data structure needs a two character data identifier"}
	}
	if text[0] != FlagEquals && text[0] != FlagAmpersand {
		return &Error{Pos: 0, Reason: "data identifier must start with '=' or '&'"}
	}
	if !isAlnum(text[1]) && strings.IndexByte("%*!+-", text[1]) < 0 {
		return &Error{Pos: 1, Reason: fmt.Sprintf("invalid data identifier character %q", text[1])}
	}
	for i := 2; i < len(text); i++ {
		if !isAlnum(text[i]) {
			return &Error{Pos: i, Reason: fmt.Sprintf("character %q not allowed in data content", text[i])}
		}
	}
	return nil
}

// CheckCharacter computes the ISO 7064 Mod 37-2 check character over the
// checked portion of text (see Checked).
func CheckCharacter(text string) (byte, error) {
	if err := Validate(text); err != nil {
		return 0, err
	}
	return mod372(Checked(text))
}

// Checked returns the part of a valid data structure the check character
// covers. A '=' identifier followed by an alphanumeric is a single
// character flag, and that alphanumeric is already content; every other
// identifier is two characters long.
func Checked(text string) string {
	if len(text) >= 2 && text[0] == FlagEquals && isAlnum(text[1]) {
		return text[1:]
	}
	if len(text) < 2 {
		return ""
	}
	return text[2:]
}

// Verify reports whether the last character of s is the Mod 37-2 check
// character of the rest. s is what Checked returns, without the data
// identifier flag.
func Verify(s string) bool {
	if len(s) < 2 {
		return false
	}
	c, err := mod372(s[:len(s)-1])
	return err == nil && c == s[len(s)-1]
}

func mod372(content string) (byte, error) {
	sum := 0
	for i := 0; i < len(content); i++ {
		v := strings.IndexByte(checkAlphabet, content[i])
		if v < 0 || v == 36 {
			return 0, &Error{Pos: i, Reason: fmt.Sprintf("character %q has no check value", content[i])}
		}
		sum = ((sum + v) * 2) % 37
	}
	return checkAlphabet[(38-sum)%37], nil
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')
}
