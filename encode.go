package barcodefont

import "github.com/ericlevine/barcodefont/font"

// Request describes one encode or validate call. Requests are values; nothing
// an encoder does is written back into them.
type Request struct {
	// Text is the data to encode. For GS1-128 it is either the
	// parenthesised form "(01)...(10)..." or the raw element string with
	// GS (0x1D) ending variable-length fields.
	Text string

	Symbology Symbology

	// CodeSet is a hint for the start code set. It is ignored when the
	// leading data does not fit the hinted set.
	CodeSet CodeSet

	// ExtendedLatin1 allows ISO-8859-1 characters above 127, each encoded
	// behind an FNC4.
	ExtendedLatin1 bool

	// Font is the target font's value-to-character table. Nil selects
	// font.IDAutomation.
	Font *font.Mapping
}

// FontMapping returns the request's font, falling back to the default.
func (r Request) FontMapping() *font.Mapping {
	if r.Font == nil {
		return font.Default
	}
	return r.Font
}

// Encoder encodes requests for one or more symbologies.
type Encoder interface {
	// Encode encodes the request into font text. It fails with an error
	// wrapping ErrInvalidInput when Check fails.
	Encode(req Request) (*Result, error)

	// Validate reports whether Encode would succeed.
	Validate(req Request) bool

	// Check returns the reason Validate would report false, or nil.
	Check(req Request) error

	// EncodeAsImage renders the request as an image. Encoders without image
	// support return ErrNotImplemented.
	EncodeAsImage(req Request) ([]byte, error)

	SupportsFontEncoding() bool
	SupportsImageEncoding() bool
}
