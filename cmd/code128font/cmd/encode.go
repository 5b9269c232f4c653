package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ericlevine/barcodefont/oned"
)

type encodeOutput struct {
	Input         string `json:"input" yaml:"input"`
	Symbology     string `json:"symbology" yaml:"symbology"`
	Font          string `json:"font" yaml:"font"`
	Text          string `json:"text" yaml:"text"`
	HumanReadable string `json:"human_readable" yaml:"human_readable"`
	Symbols       []int  `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Modules       string `json:"modules,omitempty" yaml:"modules,omitempty"`
}

func newEncodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode TEXT",
		Short: "Encode text as barcode font text",
		Long: `Encode text into a Code 128 symbol sequence and print it as characters
of the selected barcode font. Set the font's typeface on the printed text to
render the barcode.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEncode(cmd, args[0])
		},
	}
	addEncodingFlags(cmd)
	cmd.Flags().Bool("symbols", false, "include symbol values in the output")
	cmd.Flags().Bool("modules", false, "include the bar/space module pattern in the output")
	cmd.Flags().Bool("image", false, "request image output instead of font text")
	return cmd
}

func (a *app) runEncode(cmd *cobra.Command, text string) error {
	req, err := a.cfg.Encoding.Request(text)
	if err != nil {
		return err
	}

	if image, _ := cmd.Flags().GetBool("image"); image {
		_, err := a.provider.EncodeAsImage(req)
		return err
	}

	res, err := a.provider.Encode(req)
	if err != nil {
		return err
	}

	out := encodeOutput{
		Input:         text,
		Symbology:     res.Symbology.String(),
		Font:          req.FontMapping().Name(),
		Text:          res.Text,
		HumanReadable: res.HumanReadable,
	}
	if show, _ := cmd.Flags().GetBool("symbols"); show {
		out.Symbols = res.Symbols
	}
	if show, _ := cmd.Flags().GetBool("modules"); show {
		out.Modules = moduleString(oned.Code128Modules(res.Symbols))
	}

	return writeOutput(cmd.OutOrStdout(), a.cfg.Output.Format, out, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, out.Text); err != nil {
			return err
		}
		if out.HumanReadable != text {
			fmt.Fprintf(w, "human readable: %s\n", out.HumanReadable)
		}
		if out.Symbols != nil {
			fmt.Fprintf(w, "symbols: %s\n", joinInts(out.Symbols))
		}
		if out.Modules != "" {
			fmt.Fprintf(w, "modules: %s\n", out.Modules)
		}
		return nil
	})
}
