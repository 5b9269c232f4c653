package gs1

import (
	"fmt"
	"strings"
)

// GS is the group separator that ends a variable-length field in a raw
// element string. In a GS1-128 symbol it is carried as FNC1.
const GS = '\x1d'

// charset82 is the GS1 AI encodable character set 82.
const charset82 = `!"%&'()*+,-./0123456789:;<=>?ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz`

// Element is one application identifier and its data.
type Element struct {
	AI   string
	Data string
}

// Variable reports whether the element's data has variable length, in which
// case a separator must follow it unless it is last.
func (e Element) Variable() bool {
	dl, ok := lookupAI(e.AI)
	return ok && dl.variable
}

// Error reports malformed element string data. Pos is a byte offset into the
// parsed text.
type Error struct {
	Pos    int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gs1: %s at offset %d", e.Reason, e.Pos)
}

// Parse parses text in either the parenthesised human-readable form or the
// raw form, chosen by whether text starts with '('.
func Parse(text string) ([]Element, error) {
	if strings.HasPrefix(text, "(") {
		return ParseHumanReadable(text)
	}
	return ParseRaw(text)
}

// ParseHumanReadable parses "(01)09501101530003(10)ABC" style input. A '('
// always opens the next AI, so data containing '(' has to be given in raw
// form.
func ParseHumanReadable(text string) ([]Element, error) {
	if text == "" {
		return nil, &Error{Pos: 0, Reason: "empty element string"}
	}
	var elements []Element
	pos := 0
	for pos < len(text) {
		if text[pos] != '(' {
			return nil, &Error{Pos: pos, Reason: "expected '(' before application identifier"}
		}
		end := strings.IndexByte(text[pos:], ')')
		if end < 0 {
			return nil, &Error{Pos: pos, Reason: "unterminated application identifier"}
		}
		ai := text[pos+1 : pos+end]
		dl, ok := lookupAI(ai)
		if !ok {
			reason := fmt.Sprintf("unknown application identifier %q", ai)
			if pos > 0 {
				reason += " (data containing '(' must use the raw form)"
			}
			return nil, &Error{Pos: pos + 1, Reason: reason}
		}
		dataStart := pos + end + 1
		dataEnd := strings.IndexByte(text[dataStart:], '(')
		if dataEnd < 0 {
			dataEnd = len(text)
		} else {
			dataEnd += dataStart
		}
		el := Element{AI: ai, Data: text[dataStart:dataEnd]}
		if err := checkData(el, dl, dataStart); err != nil {
			return nil, err
		}
		elements = append(elements, el)
		pos = dataEnd
	}
	return elements, nil
}

// ParseRaw parses a concatenated element string in which GS ends each
// variable-length field that is not last.
func ParseRaw(text string) ([]Element, error) {
	if text == "" {
		return nil, &Error{Pos: 0, Reason: "empty element string"}
	}
	var elements []Element
	pos := 0
	for pos < len(text) {
		n, dl, ok := lookupPrefix(text[pos:])
		if !ok {
			return nil, &Error{Pos: pos, Reason: "unknown application identifier"}
		}
		ai := text[pos : pos+n]
		dataStart := pos + n
		var dataEnd int
		if dl.variable {
			dataEnd = strings.IndexByte(text[dataStart:], GS)
			if dataEnd < 0 {
				dataEnd = len(text)
			} else {
				dataEnd += dataStart
			}
		} else {
			dataEnd = dataStart + dl.length
			if dataEnd > len(text) {
				return nil, &Error{Pos: dataStart, Reason: fmt.Sprintf("AI (%s) needs %d characters, got %d", ai, dl.length, len(text)-dataStart)}
			}
		}
		el := Element{AI: ai, Data: text[dataStart:dataEnd]}
		if err := checkData(el, dl, dataStart); err != nil {
			return nil, err
		}
		elements = append(elements, el)
		pos = dataEnd
		if pos < len(text) && text[pos] == GS {
			pos++
			if pos == len(text) {
				return nil, &Error{Pos: pos - 1, Reason: "trailing separator"}
			}
		}
	}
	return elements, nil
}

func checkData(el Element, dl dataLength, offset int) error {
	n := len(el.Data)
	switch {
	case n == 0:
		return &Error{Pos: offset, Reason: fmt.Sprintf("AI (%s) has no data", el.AI)}
	case dl.variable && n > dl.length:
		return &Error{Pos: offset + dl.length, Reason: fmt.Sprintf("AI (%s) data exceeds %d characters", el.AI, dl.length)}
	case !dl.variable && n != dl.length:
		return &Error{Pos: offset, Reason: fmt.Sprintf("AI (%s) needs %d characters, got %d", el.AI, dl.length, n)}
	}
	numeric := numericAI(el.AI)
	for i := 0; i < n; i++ {
		c := el.Data[i]
		if numeric && !isDigit(c) {
			return &Error{Pos: offset + i, Reason: fmt.Sprintf("AI (%s) data must be numeric", el.AI)}
		}
		if strings.IndexByte(charset82, c) < 0 {
			return &Error{Pos: offset + i, Reason: fmt.Sprintf("character %q not allowed in AI data", c)}
		}
	}
	return nil
}

// HumanReadable renders elements in parenthesised form.
func HumanReadable(elements []Element) string {
	var sb strings.Builder
	for _, el := range elements {
		sb.WriteByte('(')
		sb.WriteString(el.AI)
		sb.WriteByte(')')
		sb.WriteString(el.Data)
	}
	return sb.String()
}

// Raw renders elements as a raw element string, inserting GS after every
// variable-length field except the last.
func Raw(elements []Element) string {
	var sb strings.Builder
	for i, el := range elements {
		sb.WriteString(el.AI)
		sb.WriteString(el.Data)
		if el.Variable() && i < len(elements)-1 {
			sb.WriteByte(GS)
		}
	}
	return sb.String()
}
