package oned

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ericlevine/barcodefont"
	"github.com/ericlevine/barcodefont/gs1"
	"github.com/ericlevine/barcodefont/isbt"
)

// unitFNC1 stands for an FNC1 in the unit sequence fed to the code set
// state machine. Other units are ISO-8859-1 byte values.
const unitFNC1 = 0x100

// Code128Encoder encodes Code 128, GS1-128 and ISBT 128 symbols as font
// text. It holds no state and is safe for concurrent use.
type Code128Encoder struct{}

// NewCode128Encoder creates a new Code 128 encoder.
func NewCode128Encoder() *Code128Encoder {
	return &Code128Encoder{}
}

// Encode encodes the request into a Code 128 symbol sequence and maps it
// through the request's font.
func (e *Code128Encoder) Encode(req barcodefont.Request) (*barcodefont.Result, error) {
	units, hri, err := code128Units(req)
	if err != nil {
		return nil, err
	}
	symbols := encodeCode128(units, req.CodeSet)
	return &barcodefont.Result{
		Text:          req.FontMapping().Text(symbols),
		Symbols:       symbols,
		Symbology:     req.Symbology,
		HumanReadable: hri,
	}, nil
}

// Validate reports whether the request can be encoded.
func (e *Code128Encoder) Validate(req barcodefont.Request) bool {
	return e.Check(req) == nil
}

// Check returns why the request cannot be encoded, or nil.
func (e *Code128Encoder) Check(req barcodefont.Request) error {
	_, _, err := code128Units(req)
	return err
}

// EncodeAsImage always fails: only font output is supported.
func (e *Code128Encoder) EncodeAsImage(req barcodefont.Request) ([]byte, error) {
	return nil, fmt.Errorf("%s image encoding: %w", req.Symbology, barcodefont.ErrNotImplemented)
}

func (e *Code128Encoder) SupportsFontEncoding() bool  { return true }
func (e *Code128Encoder) SupportsImageEncoding() bool { return false }

// code128Units validates the request and flattens it into units, returning
// the human-readable interpretation alongside.
func code128Units(req barcodefont.Request) ([]int, string, error) {
	if req.Text == "" {
		return nil, "", barcodefont.ErrEmptyInput
	}
	switch req.Symbology {
	case barcodefont.SymbologyCode128:
		units, err := textUnits(req.Text, req.ExtendedLatin1)
		return units, req.Text, err

	case barcodefont.SymbologyGS1128:
		elements, err := gs1.Parse(req.Text)
		if err != nil {
			if gerr, ok := err.(*gs1.Error); ok {
				return nil, "", newInputError(req.Text, gerr.Pos, gerr.Reason)
			}
			return nil, "", err
		}
		units := []int{unitFNC1}
		for i, el := range elements {
			for j := 0; j < len(el.AI); j++ {
				units = append(units, int(el.AI[j]))
			}
			for j := 0; j < len(el.Data); j++ {
				units = append(units, int(el.Data[j]))
			}
			if el.Variable() && i < len(elements)-1 {
				units = append(units, unitFNC1)
			}
		}
		return units, gs1.HumanReadable(elements), nil

	case barcodefont.SymbologyISBT128:
		if err := isbt.Validate(req.Text); err != nil {
			if ierr, ok := err.(*isbt.Error); ok {
				return nil, "", newInputError(req.Text, ierr.Pos, ierr.Reason)
			}
			return nil, "", err
		}
		units, err := textUnits(req.Text, false)
		if err != nil {
			return nil, "", err
		}
		c, err := isbt.CheckCharacter(req.Text)
		if err != nil {
			return nil, "", err
		}
		return units, fmt.Sprintf("%s [%c]", req.Text, c), nil
	}
	return nil, "", fmt.Errorf("%w: code 128 encoder cannot encode %s: %w", barcodefont.ErrInvalidInput, req.Symbology, barcodefont.ErrUnsupportedSymbology)
}

func textUnits(text string, extended bool) ([]int, error) {
	units := make([]int, 0, len(text))
	pos := 0
	for _, r := range text {
		switch {
		case r < 128:
			units = append(units, int(r))
		case !extended:
			return nil, &barcodefont.InputError{Pos: pos, Char: r, Reason: "character outside ASCII 0-127 and Latin-1 extension is disabled"}
		default:
			b, ok := charmap.ISO8859_1.EncodeRune(r)
			if !ok {
				return nil, &barcodefont.InputError{Pos: pos, Char: r, Reason: "character not representable in ISO-8859-1"}
			}
			units = append(units, int(b))
		}
		pos++
	}
	return units, nil
}

func newInputError(text string, offset int, reason string) *barcodefont.InputError {
	if offset > len(text) {
		offset = len(text)
	}
	char := rune(-1)
	if offset < len(text) {
		char, _ = utf8.DecodeRuneInString(text[offset:])
	}
	return &barcodefont.InputError{Pos: utf8.RuneCountInString(text[:offset]), Char: char, Reason: reason}
}

// digitRun counts consecutive digit units starting at start.
func digitRun(units []int, start int) int {
	n := 0
	for i := start; i < len(units) && units[i] >= '0' && units[i] <= '9'; i++ {
		n++
	}
	return n
}

// baseUnit strips the Latin-1 high bit, which FNC4 carries instead.
func baseUnit(u int) (int, bool) {
	if u >= 128 && u != unitFNC1 {
		return u - 128, true
	}
	return u, false
}

func fitsCode128(codeSet, base int) bool {
	switch codeSet {
	case code128CodeA:
		return base < 96
	case code128CodeB:
		return base >= 32 && base < 128
	}
	return false
}

func code128Value(codeSet, base int) int {
	if codeSet == code128CodeA && base < 32 {
		return base + 64
	}
	return base - 32
}

func otherCode128(codeSet int) int {
	if codeSet == code128CodeA {
		return code128CodeB
	}
	return code128CodeA
}

func fnc4(codeSet int) int {
	if codeSet == code128CodeA {
		return code128FNC4A
	}
	return code128FNC4B
}

// chooseCode128AB picks between A and B for data starting at start: A if a
// control character comes before any lowercase character.
func chooseCode128AB(units []int, start int) int {
	for i := start; i < len(units); i++ {
		if units[i] == unitFNC1 {
			continue
		}
		base, _ := baseUnit(units[i])
		if base < 32 {
			return code128CodeA
		}
		if base >= 96 {
			return code128CodeB
		}
	}
	return code128CodeB
}

func chooseCode128Start(units []int, hint barcodefont.CodeSet) int {
	first := 0
	for first < len(units) && units[first] == unitFNC1 {
		first++
	}
	if first == len(units) {
		return code128CodeB
	}
	run := digitRun(units, first)
	base, _ := baseUnit(units[first])
	switch hint {
	case barcodefont.CodeSetA:
		if fitsCode128(code128CodeA, base) {
			return code128CodeA
		}
	case barcodefont.CodeSetB:
		if fitsCode128(code128CodeB, base) {
			return code128CodeB
		}
	case barcodefont.CodeSetC:
		if run >= 2 {
			return code128CodeC
		}
	}
	if run >= 4 || (run == 2 && first+2 == len(units)) {
		return code128CodeC
	}
	return chooseCode128AB(units, first)
}

// outOfSetRun counts consecutive units from start that codeSet cannot
// represent.
func outOfSetRun(units []int, start, codeSet int) int {
	n := 0
	for i := start; i < len(units) && units[i] != unitFNC1; i++ {
		base, _ := baseUnit(units[i])
		if fitsCode128(codeSet, base) {
			break
		}
		n++
	}
	return n
}

// encodeCode128 runs the code set state machine over units and returns the
// full symbol sequence including start, checksum and stop.
func encodeCode128(units []int, hint barcodefont.CodeSet) []int {
	codeSet := chooseCode128Start(units, hint)
	var symbols []int
	switch codeSet {
	case code128CodeA:
		symbols = append(symbols, code128StartA)
	case code128CodeB:
		symbols = append(symbols, code128StartB)
	default:
		symbols = append(symbols, code128StartC)
	}

	position := 0
	for position < len(units) {
		u := units[position]
		if u == unitFNC1 {
			symbols = append(symbols, code128FNC1)
			position++
			continue
		}

		if codeSet == code128CodeC {
			if digitRun(units, position) >= 2 {
				symbols = append(symbols, (u-'0')*10+(units[position+1]-'0'))
				position += 2
				continue
			}
			// A lone digit or non-digit ends the run.
			codeSet = chooseCode128AB(units, position)
			symbols = append(symbols, codeSet)
			continue
		}

		if run := digitRun(units, position); run >= 4 && run%2 == 0 {
			codeSet = code128CodeC
			symbols = append(symbols, code128CodeC)
			continue
		}

		base, extended := baseUnit(u)
		if fitsCode128(codeSet, base) {
			if extended {
				symbols = append(symbols, fnc4(codeSet))
			}
			symbols = append(symbols, code128Value(codeSet, base))
			position++
			continue
		}

		other := otherCode128(codeSet)
		if outOfSetRun(units, position, codeSet) == 1 {
			if extended {
				symbols = append(symbols, fnc4(codeSet))
			}
			symbols = append(symbols, code128Shift, code128Value(other, base))
			position++
			continue
		}
		codeSet = other
		symbols = append(symbols, codeSet)
	}

	symbols = append(symbols, code128Checksum(symbols), code128Stop)
	return symbols
}

// code128Checksum computes the modulo 103 check value over a start symbol
// followed by data symbols.
func code128Checksum(symbols []int) int {
	checkSum := symbols[0]
	for i := 1; i < len(symbols); i++ {
		checkSum += symbols[i] * i
	}
	return checkSum % 103
}
