// Package barcodefont encodes text as Code 128 symbol sequences and renders
// them as barcode-font ligature text.
package barcodefont

import (
	"fmt"
	"strings"
)

// Symbology represents a Code 128 application profile.
type Symbology int

const (
	SymbologyCode128 Symbology = iota
	SymbologyGS1128
	SymbologyISBT128
)

// String returns the name of the symbology.
func (s Symbology) String() string {
	switch s {
	case SymbologyCode128:
		return "CODE_128"
	case SymbologyGS1128:
		return "GS1_128"
	case SymbologyISBT128:
		return "ISBT_128"
	default:
		return "UNKNOWN"
	}
}

// ParseSymbology parses a symbology name. Matching ignores case, dashes and
// underscores, so "gs1-128", "GS1_128" and "gs1128" are equivalent.
func ParseSymbology(name string) (Symbology, error) {
	n := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	switch n {
	case "", "code128":
		return SymbologyCode128, nil
	case "gs1128", "ean128", "ucc128":
		return SymbologyGS1128, nil
	case "isbt128", "isbt":
		return SymbologyISBT128, nil
	}
	return 0, fmt.Errorf("unknown symbology %q: %w", name, ErrUnsupportedSymbology)
}

// CodeSet is a preferred Code 128 code set.
type CodeSet int

const (
	CodeSetAuto CodeSet = iota
	CodeSetA
	CodeSetB
	CodeSetC
)

// String returns the code set letter, or "AUTO".
func (c CodeSet) String() string {
	switch c {
	case CodeSetA:
		return "A"
	case CodeSetB:
		return "B"
	case CodeSetC:
		return "C"
	default:
		return "AUTO"
	}
}

// ParseCodeSet parses "A", "B", "C" or "auto" (empty means auto).
func ParseCodeSet(name string) (CodeSet, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "AUTO":
		return CodeSetAuto, nil
	case "A":
		return CodeSetA, nil
	case "B":
		return CodeSetB, nil
	case "C":
		return CodeSetC, nil
	}
	return 0, fmt.Errorf("unsupported code set hint: %s", name)
}

// Result is an encoded Code 128 symbol.
type Result struct {
	// Text is the symbol sequence mapped through the target font.
	Text string

	// Symbols holds every symbol value in order: start, data (including
	// shift, latch and function codes), checksum and stop.
	Symbols []int

	Symbology Symbology

	// HumanReadable is the interpretation line printed below the bars.
	HumanReadable string
}

// StartSymbol returns the start symbol value.
func (r *Result) StartSymbol() int {
	if len(r.Symbols) == 0 {
		return -1
	}
	return r.Symbols[0]
}

// DataSymbols returns the symbols between the start symbol and the checksum.
func (r *Result) DataSymbols() []int {
	if len(r.Symbols) < 3 {
		return nil
	}
	return r.Symbols[1 : len(r.Symbols)-2]
}

// Checksum returns the emitted checksum symbol value.
func (r *Result) Checksum() int {
	if len(r.Symbols) < 3 {
		return -1
	}
	return r.Symbols[len(r.Symbols)-2]
}
