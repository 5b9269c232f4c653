package barcodefont_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/barcodefont"
	// Also registers the Code 128 encoders.
	"github.com/ericlevine/barcodefont/oned"
)

func TestEncodeWithoutHooks(t *testing.T) {
	res, err := barcodefont.Encode(barcodefont.Request{Text: "ABC123"})
	require.NoError(t, err)
	assert.Equal(t, 104, res.StartSymbol())

	decoded, err := oned.DecodeFontText(res.Text, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", decoded)
}

func TestBeforeEncodeShortCircuits(t *testing.T) {
	var order []string
	override := &barcodefont.Result{Text: "custom"}
	hooks := []barcodefont.Hooks{
		{BeforeEncode: func(req barcodefont.Request) (*barcodefont.Result, bool, error) {
			order = append(order, "before-1")
			return nil, false, nil
		}},
		{BeforeEncode: func(req barcodefont.Request) (*barcodefont.Result, bool, error) {
			order = append(order, "before-2")
			return override, true, nil
		}},
		{
			BeforeEncode: func(req barcodefont.Request) (*barcodefont.Result, bool, error) {
				order = append(order, "before-3")
				return nil, false, nil
			},
			AfterEncode: func(req barcodefont.Request, res *barcodefont.Result) error {
				order = append(order, "after-3")
				res.HumanReadable = "seen"
				return nil
			},
		},
	}

	// The input is not encodable; the hook takes over before validation.
	res, err := barcodefont.Encode(barcodefont.Request{Text: "€"}, hooks...)
	require.NoError(t, err)
	assert.Same(t, override, res)
	assert.Equal(t, "seen", res.HumanReadable)
	assert.Equal(t, []string{"before-1", "before-2", "after-3"}, order)
}

func TestBeforeEncodeError(t *testing.T) {
	boom := errors.New("boom")
	afterCalled := false
	_, err := barcodefont.Encode(barcodefont.Request{Text: "A"}, barcodefont.Hooks{
		BeforeEncode: func(barcodefont.Request) (*barcodefont.Result, bool, error) {
			return nil, true, boom
		},
		AfterEncode: func(barcodefont.Request, *barcodefont.Result) error {
			afterCalled = true
			return nil
		},
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, afterCalled)
}

func TestBeforeEncodeHandledWithoutResult(t *testing.T) {
	_, err := barcodefont.Encode(barcodefont.Request{Text: "A"}, barcodefont.Hooks{
		BeforeEncode: func(barcodefont.Request) (*barcodefont.Result, bool, error) {
			return nil, true, nil
		},
	})
	assert.Error(t, err)
}

func TestAfterEncodeMutatesAndFails(t *testing.T) {
	upper := barcodefont.Hooks{AfterEncode: func(req barcodefont.Request, res *barcodefont.Result) error {
		res.HumanReadable = strings.ToUpper(res.HumanReadable)
		return nil
	}}
	res, err := barcodefont.Encode(barcodefont.Request{Text: "abc"}, upper)
	require.NoError(t, err)
	assert.Equal(t, "ABC", res.HumanReadable)

	reject := barcodefont.Hooks{AfterEncode: func(barcodefont.Request, *barcodefont.Result) error {
		return errors.New("rejected")
	}}
	res, err = barcodefont.Encode(barcodefont.Request{Text: "abc"}, upper, reject)
	assert.Error(t, err)
	assert.Nil(t, res, "no partial result on failure")
}

func TestAfterEncodeSkippedOnEncodeFailure(t *testing.T) {
	called := false
	_, err := barcodefont.Encode(barcodefont.Request{Text: ""}, barcodefont.Hooks{
		AfterEncode: func(barcodefont.Request, *barcodefont.Result) error {
			called = true
			return nil
		},
	})
	assert.ErrorIs(t, err, barcodefont.ErrEmptyInput)
	assert.False(t, called)
}

func TestValidateHooks(t *testing.T) {
	assert.True(t, barcodefont.Validate(barcodefont.Request{Text: "OK"}))
	assert.False(t, barcodefont.Validate(barcodefont.Request{}))

	allowAll := barcodefont.Hooks{BeforeValidate: func(barcodefont.Request) (bool, bool) { return true, true }}
	assert.True(t, barcodefont.Validate(barcodefont.Request{}, allowAll))

	veto := barcodefont.Hooks{AfterValidate: func(req barcodefont.Request, valid *bool) {
		if strings.Contains(req.Text, "X") {
			*valid = false
		}
	}}
	assert.False(t, barcodefont.Validate(barcodefont.Request{Text: "AXB"}, veto))
	assert.True(t, barcodefont.Validate(barcodefont.Request{Text: "AB"}, veto))
}

func TestProviderCapabilities(t *testing.T) {
	p := barcodefont.NewProvider()
	for _, sym := range []barcodefont.Symbology{barcodefont.SymbologyCode128, barcodefont.SymbologyGS1128, barcodefont.SymbologyISBT128} {
		assert.True(t, p.SupportsFontEncoding(sym), sym.String())
		assert.False(t, p.SupportsImageEncoding(sym), sym.String())
	}
	assert.False(t, p.SupportsFontEncoding(barcodefont.Symbology(99)))

	_, err := p.EncodeAsImage(barcodefont.Request{Text: "ABC"})
	assert.ErrorIs(t, err, barcodefont.ErrNotImplemented)

	_, err = p.Encode(barcodefont.Request{Text: "ABC", Symbology: barcodefont.Symbology(99)})
	assert.ErrorIs(t, err, barcodefont.ErrUnsupportedSymbology)
	assert.ErrorIs(t, err, barcodefont.ErrInvalidInput)
	assert.False(t, p.Validate(barcodefont.Request{Text: "ABC", Symbology: barcodefont.Symbology(99)}))
}

func TestProviderCheck(t *testing.T) {
	p := barcodefont.NewProvider()
	err := p.Check(barcodefont.Request{Text: "Aé"})
	var ierr *barcodefont.InputError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 1, ierr.Pos)
	assert.NoError(t, p.Check(barcodefont.Request{Text: "Aé", ExtendedLatin1: true}))
}

func TestProviderLogsShortCircuit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := barcodefont.NewProvider(barcodefont.WithLogger(logger))
	_, err := p.Encode(barcodefont.Request{Text: "A"}, barcodefont.Hooks{
		BeforeEncode: func(barcodefont.Request) (*barcodefont.Result, bool, error) {
			return &barcodefont.Result{Text: "x"}, true, nil
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "encode handled by hook")
}

func TestParseSymbologyAndCodeSet(t *testing.T) {
	for in, want := range map[string]barcodefont.Symbology{
		"":         barcodefont.SymbologyCode128,
		"code-128": barcodefont.SymbologyCode128,
		"GS1_128":  barcodefont.SymbologyGS1128,
		"isbt":     barcodefont.SymbologyISBT128,
	} {
		got, err := barcodefont.ParseSymbology(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := barcodefont.ParseSymbology("qr")
	assert.ErrorIs(t, err, barcodefont.ErrUnsupportedSymbology)

	cs, err := barcodefont.ParseCodeSet("c")
	require.NoError(t, err)
	assert.Equal(t, barcodefont.CodeSetC, cs)
	_, err = barcodefont.ParseCodeSet("D")
	assert.Error(t, err)
}
