package barcodefont

import (
	"errors"
	"fmt"
	"log/slog"
)

// encoderFactory is a function that creates an Encoder.
type encoderFactory func() Encoder

var encoderFactories = map[Symbology]encoderFactory{}

// RegisterEncoder registers an encoder factory for the given symbology.
// It is meant to be called from package init functions.
func RegisterEncoder(symbology Symbology, factory encoderFactory) {
	encoderFactories[symbology] = factory
}

func lookupEncoder(symbology Symbology) (Encoder, error) {
	factory, ok := encoderFactories[symbology]
	if !ok {
		return nil, fmt.Errorf("%w: no encoder registered for symbology %s: %w", ErrInvalidInput, symbology, ErrUnsupportedSymbology)
	}
	return factory(), nil
}

// Hooks lets a caller replace or post-process the built-in encoding and
// validation. Any field may be nil.
type Hooks struct {
	// BeforeEncode runs before the encoder. Returning handled=true skips the
	// encoder and every later BeforeEncode; res and err become the outcome.
	BeforeEncode func(req Request) (res *Result, handled bool, err error)

	// AfterEncode observes the final result and may modify it. A non-nil
	// error discards the result.
	AfterEncode func(req Request, res *Result) error

	// BeforeValidate runs before the encoder's validation. Returning
	// handled=true makes valid the verdict.
	BeforeValidate func(req Request) (valid, handled bool)

	// AfterValidate observes the verdict and may overwrite it.
	AfterValidate func(req Request, valid *bool)
}

// Provider dispatches requests to the registered encoder, running hook
// chains around it.
type Provider struct {
	logger *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProvider creates a provider. Without WithLogger it logs nowhere.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Encode runs the BeforeEncode hooks, then the registered encoder unless a
// hook handled the request, then every AfterEncode hook.
func (p *Provider) Encode(req Request, hooks ...Hooks) (*Result, error) {
	var res *Result
	handled := false
	for i, h := range hooks {
		if h.BeforeEncode == nil {
			continue
		}
		r, ok, err := h.BeforeEncode(req)
		if !ok {
			continue
		}
		p.logger.Debug("encode handled by hook", "hook", i, "symbology", req.Symbology.String())
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, fmt.Errorf("hook %d handled encode without a result", i)
		}
		res, handled = r, true
		break
	}

	if !handled {
		enc, err := lookupEncoder(req.Symbology)
		if err != nil {
			return nil, err
		}
		res, err = enc.Encode(req)
		if err != nil {
			p.logger.Debug("encode failed", "symbology", req.Symbology.String(), "error", err)
			return nil, err
		}
	}

	for i, h := range hooks {
		if h.AfterEncode == nil {
			continue
		}
		if err := h.AfterEncode(req, res); err != nil {
			p.logger.Debug("post-encode hook failed", "hook", i, "error", err)
			return nil, err
		}
	}
	return res, nil
}

// Validate runs the validation hook chain around the registered encoder.
// An unregistered symbology is never valid.
func (p *Provider) Validate(req Request, hooks ...Hooks) bool {
	valid := false
	handled := false
	for i, h := range hooks {
		if h.BeforeValidate == nil {
			continue
		}
		if v, ok := h.BeforeValidate(req); ok {
			p.logger.Debug("validate handled by hook", "hook", i, "symbology", req.Symbology.String())
			valid, handled = v, true
			break
		}
	}

	if !handled {
		enc, err := lookupEncoder(req.Symbology)
		if err == nil {
			valid = enc.Validate(req)
		}
	}

	for _, h := range hooks {
		if h.AfterValidate != nil {
			h.AfterValidate(req, &valid)
		}
	}
	return valid
}

// Check returns the reason the registered encoder rejects req, or nil.
// Hooks are not consulted.
func (p *Provider) Check(req Request) error {
	enc, err := lookupEncoder(req.Symbology)
	if err != nil {
		return err
	}
	return enc.Check(req)
}

// EncodeAsImage asks the registered encoder for an image. It never falls
// back to font output.
func (p *Provider) EncodeAsImage(req Request) ([]byte, error) {
	enc, err := lookupEncoder(req.Symbology)
	if err != nil {
		return nil, err
	}
	b, err := enc.EncodeAsImage(req)
	if errors.Is(err, ErrNotImplemented) {
		p.logger.Debug("image encoding requested but not supported", "symbology", req.Symbology.String())
	}
	return b, err
}

// SupportsFontEncoding reports whether the symbology's encoder produces font text.
func (p *Provider) SupportsFontEncoding(symbology Symbology) bool {
	enc, err := lookupEncoder(symbology)
	return err == nil && enc.SupportsFontEncoding()
}

// SupportsImageEncoding reports whether the symbology's encoder renders images.
func (p *Provider) SupportsImageEncoding(symbology Symbology) bool {
	enc, err := lookupEncoder(symbology)
	return err == nil && enc.SupportsImageEncoding()
}

var defaultProvider = NewProvider()

// Encode is a top-level convenience function that encodes req with the
// default provider.
func Encode(req Request, hooks ...Hooks) (*Result, error) {
	return defaultProvider.Encode(req, hooks...)
}

// Validate is a top-level convenience function that validates req with the
// default provider.
func Validate(req Request, hooks ...Hooks) bool {
	return defaultProvider.Validate(req, hooks...)
}
