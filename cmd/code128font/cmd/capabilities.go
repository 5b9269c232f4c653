package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ericlevine/barcodefont"
	"github.com/ericlevine/barcodefont/font"
)

type capability struct {
	Symbology string `json:"symbology" yaml:"symbology"`
	Font      bool   `json:"font" yaml:"font"`
	Image     bool   `json:"image" yaml:"image"`
}

type capabilitiesOutput struct {
	Symbologies []capability `json:"symbologies" yaml:"symbologies"`
	Fonts       []string     `json:"fonts" yaml:"fonts"`
}

func newCapabilitiesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:          "capabilities",
		Short:        "List supported symbologies, output kinds and fonts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCapabilities(cmd)
		},
	}
}

func (a *app) runCapabilities(cmd *cobra.Command) error {
	out := capabilitiesOutput{Fonts: font.Names()}
	for _, sym := range []barcodefont.Symbology{
		barcodefont.SymbologyCode128,
		barcodefont.SymbologyGS1128,
		barcodefont.SymbologyISBT128,
	} {
		out.Symbologies = append(out.Symbologies, capability{
			Symbology: sym.String(),
			Font:      a.provider.SupportsFontEncoding(sym),
			Image:     a.provider.SupportsImageEncoding(sym),
		})
	}

	return writeOutput(cmd.OutOrStdout(), a.cfg.Output.Format, out, func(w io.Writer) error {
		for _, c := range out.Symbologies {
			fmt.Fprintf(w, "%-10s font=%-5t image=%t\n", c.Symbology, c.Font, c.Image)
		}
		fmt.Fprintf(w, "fonts: %v\n", out.Fonts)
		return nil
	})
}
