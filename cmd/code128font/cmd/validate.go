package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// errInputInvalid is returned by validate so the process exits non-zero.
var errInputInvalid = errors.New("input cannot be encoded")

type validateOutput struct {
	Input     string `json:"input" yaml:"input"`
	Symbology string `json:"symbology" yaml:"symbology"`
	Valid     bool   `json:"valid" yaml:"valid"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func newValidateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate TEXT",
		Short: "Check whether text can be encoded",
		Long: `Check whether text can be encoded under the selected symbology and
settings. Prints the reason when it cannot, and exits with a non-zero status.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd, args[0])
		},
	}
	addEncodingFlags(cmd)
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, text string) error {
	req, err := a.cfg.Encoding.Request(text)
	if err != nil {
		return err
	}

	out := validateOutput{
		Input:     text,
		Symbology: req.Symbology.String(),
		Valid:     a.provider.Validate(req),
	}
	if !out.Valid {
		if err := a.provider.Check(req); err != nil {
			out.Reason = err.Error()
		}
	}

	err = writeOutput(cmd.OutOrStdout(), a.cfg.Output.Format, out, func(w io.Writer) error {
		if out.Valid {
			_, err := fmt.Fprintln(w, "valid")
			return err
		}
		_, err := fmt.Fprintf(w, "invalid: %s\n", out.Reason)
		return err
	})
	if err != nil {
		return err
	}
	if !out.Valid {
		return errInputInvalid
	}
	return nil
}
