package oned

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/ericlevine/barcodefont"
	"github.com/ericlevine/barcodefont/font"
)

// DecodeFontText maps font text back to symbol values and decodes them.
func DecodeFontText(text string, mapping *font.Mapping, gs1 bool) (string, error) {
	if mapping == nil {
		mapping = font.Default
	}
	symbols, err := mapping.Values(text)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, barcodefont.ErrFormat)
	}
	return DecodeCode128(symbols, gs1)
}

// DecodeCode128 decodes a full symbol sequence (start through stop) back
// into the encoded data. With gs1 set, the FNC1 following the start symbol
// is dropped and every other FNC1 becomes GS (0x1D).
func DecodeCode128(symbols []int, gs1 bool) (string, error) {
	if len(symbols) < 3 {
		return "", fmt.Errorf("symbol sequence too short: %w", barcodefont.ErrFormat)
	}
	for i, s := range symbols {
		if s < 0 || s > code128Stop {
			return "", fmt.Errorf("symbol value %d at %d out of range: %w", s, i, barcodefont.ErrFormat)
		}
	}
	if symbols[len(symbols)-1] != code128Stop {
		return "", fmt.Errorf("missing stop symbol: %w", barcodefont.ErrFormat)
	}

	var codeSet int
	switch symbols[0] {
	case code128StartA:
		codeSet = code128CodeA
	case code128StartB:
		codeSet = code128CodeB
	case code128StartC:
		codeSet = code128CodeC
	default:
		return "", fmt.Errorf("missing start symbol: %w", barcodefont.ErrFormat)
	}

	body := symbols[:len(symbols)-2]
	if code128Checksum(body) != symbols[len(symbols)-2] {
		return "", barcodefont.ErrChecksum
	}

	var result []byte
	isNextShifted := false
	upperMode := false
	shiftUpperMode := false

	// appendChar applies any pending FNC4 to a character from set A or B.
	appendChar := func(ch byte) {
		if shiftUpperMode == upperMode {
			result = append(result, ch)
		} else {
			result = append(result, ch+128)
		}
		shiftUpperMode = false
	}
	fnc1 := func(index int) {
		if !gs1 {
			return
		}
		if index > 1 {
			result = append(result, gs1Separator)
		}
	}
	toggleUpper := func() {
		if !upperMode && shiftUpperMode {
			upperMode = true
			shiftUpperMode = false
		} else if upperMode && shiftUpperMode {
			upperMode = false
			shiftUpperMode = false
		} else {
			shiftUpperMode = true
		}
	}

	for i := 1; i < len(body); i++ {
		code := body[i]
		unshift := isNextShifted
		isNextShifted = false

		switch code {
		case code128StartA, code128StartB, code128StartC:
			return "", fmt.Errorf("start symbol inside data at %d: %w", i, barcodefont.ErrFormat)
		}

		switch codeSet {
		case code128CodeA:
			switch {
			case code < 64:
				appendChar(byte(' ' + code))
			case code < 96:
				appendChar(byte(code - 64))
			default:
				switch code {
				case code128FNC1:
					fnc1(i)
				case code128FNC2, code128FNC3:
					// no data
				case code128FNC4A:
					toggleUpper()
				case code128Shift:
					isNextShifted = true
					codeSet = code128CodeB
				case code128CodeB:
					codeSet = code128CodeB
				case code128CodeC:
					codeSet = code128CodeC
				}
			}
		case code128CodeB:
			if code < 96 {
				appendChar(byte(' ' + code))
				break
			}
			switch code {
			case code128FNC1:
				fnc1(i)
			case code128FNC2, code128FNC3:
				// no data
			case code128FNC4B:
				toggleUpper()
			case code128Shift:
				isNextShifted = true
				codeSet = code128CodeA
			case code128CodeA:
				codeSet = code128CodeA
			case code128CodeC:
				codeSet = code128CodeC
			}
		case code128CodeC:
			if code < 100 {
				result = append(result, byte('0'+code/10), byte('0'+code%10))
				break
			}
			switch code {
			case code128FNC1:
				fnc1(i)
			case code128CodeA:
				codeSet = code128CodeA
			case code128CodeB:
				codeSet = code128CodeB
			default:
				return "", fmt.Errorf("symbol %d invalid in code set C: %w", code, barcodefont.ErrFormat)
			}
		}

		if unshift {
			if codeSet == code128CodeA {
				codeSet = code128CodeB
			} else {
				codeSet = code128CodeA
			}
		}
	}

	var sb strings.Builder
	sb.Grow(len(result))
	for _, b := range result {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(b))
	}
	return sb.String(), nil
}

const gs1Separator = 0x1d
