package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ericlevine/barcodefont"
	"github.com/ericlevine/barcodefont/gs1"
	"github.com/ericlevine/barcodefont/oned"
)

type decodeOutput struct {
	Text          string `json:"text" yaml:"text"`
	Data          string `json:"data" yaml:"data"`
	HumanReadable string `json:"human_readable,omitempty" yaml:"human_readable,omitempty"`
}

func newDecodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode FONT_TEXT",
		Short: "Decode barcode font text back to data",
		Long: `Map barcode font text back to symbol values, verify the checksum, and
print the encoded data. With --symbology gs1-128, FNC1 separators are shown as
GS and the element string is also printed in parenthesised form.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDecode(cmd, args[0])
		},
	}
	addEncodingFlags(cmd)
	return cmd
}

func (a *app) runDecode(cmd *cobra.Command, text string) error {
	// The request is only used for its parsed symbology and font.
	req, err := a.cfg.Encoding.Request(text)
	if err != nil {
		return err
	}
	isGS1 := req.Symbology == barcodefont.SymbologyGS1128

	data, err := oned.DecodeFontText(text, req.FontMapping(), isGS1)
	if err != nil {
		return err
	}
	a.logger.Debug("decoded font text", "font", req.FontMapping().Name(), "length", len(data))

	out := decodeOutput{Text: text, Data: data}
	if isGS1 {
		elements, err := gs1.ParseRaw(data)
		if err != nil {
			a.logger.Warn("decoded data is not a valid GS1 element string", "error", err)
		} else {
			out.HumanReadable = gs1.HumanReadable(elements)
		}
	}

	return writeOutput(cmd.OutOrStdout(), a.cfg.Output.Format, out, func(w io.Writer) error {
		if out.HumanReadable != "" {
			_, err := fmt.Fprintln(w, out.HumanReadable)
			return err
		}
		_, err := fmt.Fprintln(w, out.Data)
		return err
	})
}
