package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/andaru/rtsprofile/profile"
	"github.com/andaru/rtsprofile/rtserr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newShowCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print the contents of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := o.load(cmd, args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), p.String())
			return err
		},
	}
}

func newConvertCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN [OUT]",
		Short: "Convert a profile between XML and YAML",
		Long: `convert reads the profile IN and writes it to OUT, or to standard
output when OUT is "-" or absent. The output format is taken from
--output-format, then the extension of OUT. Written to standard output
with no format given, the profile is converted to the other format.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], "-"
			if len(args) == 2 {
				out = args[1]
			}
			p, inFormat, err := o.loadFormat(cmd, in)
			if err != nil {
				return err
			}
			f, err := o.outputFormat(inFormat, out)
			if err != nil {
				return err
			}
			if out == "-" {
				return o.write(cmd.OutOrStdout(), p, f)
			}
			file, err := os.Create(out)
			if err != nil {
				return errors.WithStack(err)
			}
			if err := o.write(file, p, f); err != nil {
				file.Close()
				return err
			}
			return errors.WithStack(file.Close())
		},
	}
}

// outputFormat returns the format to convert a profile read in format in
// to, when writing it to out.
func (o *options) outputFormat(in profile.Format, out string) (profile.Format, error) {
	name := o.v.GetString("format.output")
	if !isAuto(name) || out != "-" {
		return resolveFormat(name, out)
	}
	if in == profile.FormatXML {
		return profile.FormatYAML, nil
	}
	return profile.FormatXML, nil
}

func newConnectionsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "connections FILE",
		Short: "List the required and optional connections of a profile",
		Long: `connections lists the port connectors of a profile, split by whether
both ends are on required components.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := o.load(cmd, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			reqData, err := p.RequiredDataConnections()
			if err != nil {
				return err
			}
			optData, err := p.OptionalDataConnections()
			if err != nil {
				return err
			}
			reqSvc, err := p.RequiredServiceConnections()
			if err != nil {
				return err
			}
			optSvc, err := p.OptionalServiceConnections()
			if err != nil {
				return err
			}
			printConnections(w, "Required data connections", reqData)
			printConnections(w, "Optional data connections", optData)
			printConnections(w, "Required service connections", reqSvc)
			printConnections(w, "Optional service connections", optSvc)
			return nil
		},
	}
}

func printConnections[T fmt.Stringer](w io.Writer, heading string, conns []T) {
	fmt.Fprintf(w, "%s: %d\n", heading, len(conns))
	for _, c := range conns {
		fmt.Fprint(w, c.String())
	}
}

func newValidateCmd(o *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a profile parses",
		Long: `validate parses a profile and reports the first error found. With
--json the error is written to standard output as a JSON object.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := o.load(cmd, args[0])
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
				return nil
			}
			if e, ok := rtserr.As(err); ok && asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				if jerr := enc.Encode(e); jerr != nil {
					return errors.WithStack(jerr)
				}
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write profile errors as JSON")
	return cmd
}
