// Package font maps Code 128 symbol values to the characters a barcode font
// draws them with.
package font

import (
	"fmt"
	"strings"
)

// NumSymbols is the number of Code 128 symbol values (0-106).
const NumSymbols = 107

// Mapping is an immutable value-to-character table for one font layout.
type Mapping struct {
	name    string
	chars   [NumSymbols]rune
	inverse map[rune]int
}

func newMapping(name string, char func(value int) rune) *Mapping {
	m := &Mapping{name: name, inverse: make(map[rune]int, NumSymbols)}
	for v := 0; v < NumSymbols; v++ {
		m.chars[v] = char(v)
		m.inverse[m.chars[v]] = v
	}
	return m
}

var (
	// IDAutomation is the layout used by the IDAutomation and most free
	// Code 128 fonts. Values 1-94 sit on ASCII 33-126, value 0 on U+00C2
	// and values 95-106 on U+00C3-U+00CE.
	IDAutomation = newMapping("idautomation", func(v int) rune {
		switch {
		case v == 0:
			return 0xC2
		case v < 95:
			return rune(v + 32)
		default:
			return rune(v + 100)
		}
	})

	// PrivateUse places every value in the Unicode private use area at
	// U+E000 + value.
	PrivateUse = newMapping("private-use", func(v int) rune {
		return rune(0xE000 + v)
	})

	// Default is the mapping used when a request names none.
	Default = IDAutomation
)

var byName = map[string]*Mapping{
	IDAutomation.name: IDAutomation,
	PrivateUse.name:   PrivateUse,
}

// Lookup returns the mapping with the given name. The empty name selects
// Default.
func Lookup(name string) (*Mapping, error) {
	if name == "" {
		return Default, nil
	}
	m, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown font mapping %q", name)
	}
	return m, nil
}

// Names returns the registered mapping names.
func Names() []string {
	return []string{IDAutomation.name, PrivateUse.name}
}

// Name returns the mapping's name.
func (m *Mapping) Name() string { return m.name }

// Char returns the character for a symbol value. It panics if value is out
// of range.
func (m *Mapping) Char(value int) rune {
	return m.chars[value]
}

// Value returns the symbol value drawn by r.
func (m *Mapping) Value(r rune) (int, bool) {
	v, ok := m.inverse[r]
	return v, ok
}

// Text maps a sequence of symbol values to font text.
func (m *Mapping) Text(values []int) string {
	var sb strings.Builder
	sb.Grow(len(values) * 2)
	for _, v := range values {
		sb.WriteRune(m.chars[v])
	}
	return sb.String()
}

// Values maps font text back to symbol values.
func (m *Mapping) Values(text string) ([]int, error) {
	values := make([]int, 0, len(text))
	pos := 0
	for _, r := range text {
		v, ok := m.inverse[r]
		if !ok {
			return nil, fmt.Errorf("character %q at position %d is not in the %s font", r, pos, m.name)
		}
		values = append(values, v)
		pos++
	}
	return values, nil
}
