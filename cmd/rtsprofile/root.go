package main

import (
	"bufio"
	"flag"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/andaru/rtsprofile/profile"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const formatAuto = "auto"

// options is the configuration shared by every subcommand.
type options struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	o := &options{v: viper.New()}
	cmd := &cobra.Command{
		Use:   "rtsprofile",
		Short: "Inspect and convert RT system profiles",
		Long: `rtsprofile reads RT system profile documents in XML or YAML form,
prints their contents, lists their connections, and converts between the
two formats.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return o.initConfig()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&o.cfgFile, "config", "c", "", "config file (default is $HOME/.rtsprofile.yaml)")
	pf.String("input-format", formatAuto, "input document format: auto, xml or yaml (auto reads standard input by content)")
	pf.String("output-format", formatAuto, "output document format: auto, xml or yaml")
	pf.String("indent", profile.DefaultIndent, "indent of XML output")
	pf.AddGoFlagSet(flag.CommandLine)
	o.bind(pf, "format.input", "input-format")
	o.bind(pf, "format.output", "output-format")
	o.bind(pf, "xml.indent", "indent")

	cmd.AddCommand(
		newShowCmd(o),
		newConvertCmd(o),
		newConnectionsCmd(o),
		newValidateCmd(o),
	)
	return cmd
}

func (o *options) bind(fs *pflag.FlagSet, key, name string) {
	if err := o.v.BindPFlag(key, fs.Lookup(name)); err != nil {
		panic(err)
	}
}

// initConfig loads the config file, if any, and the environment.
func (o *options) initConfig() error {
	v := o.v
	v.SetDefault("format.input", formatAuto)
	v.SetDefault("format.output", formatAuto)
	v.SetDefault("xml.indent", profile.DefaultIndent)
	v.SetEnvPrefix("rtsprofile")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.cfgFile != "" {
		v.SetConfigFile(o.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".rtsprofile")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "reading config")
		}
	} else {
		glog.V(1).Infof("using config file %s", v.ConfigFileUsed())
	}
	return nil
}

// resolveFormat returns the format named by name, or implied by the
// extension of path when name is "auto" or empty.
func resolveFormat(name, path string) (profile.Format, error) {
	if isAuto(name) {
		return profile.FormatOf(path)
	}
	return profile.ParseFormat(name)
}

func isAuto(name string) bool { return name == "" || strings.EqualFold(name, formatAuto) }

// sniffFormat returns the format of the document buffered in r, judged by
// its first non-space byte: XML documents start with '<'. Nothing is
// consumed from r.
func sniffFormat(r *bufio.Reader) (profile.Format, error) {
	for n := 1; n <= r.Size(); n++ {
		buf, err := r.Peek(n)
		if len(buf) < n {
			if err == io.EOF {
				break
			}
			return 0, errors.WithStack(err)
		}
		c := buf[n-1]
		if c == '<' {
			return profile.FormatXML, nil
		}
		if !unicode.IsSpace(rune(c)) {
			break
		}
	}
	return profile.FormatYAML, nil
}

// load reads the profile at path, or from the command's input when path
// is "-".
func (o *options) load(cmd *cobra.Command, path string) (*profile.Profile, error) {
	p, _, err := o.loadFormat(cmd, path)
	return p, err
}

// loadFormat is load, also returning the format the profile was read in.
// Standard input in "auto" format is recognised by its content.
func (o *options) loadFormat(cmd *cobra.Command, path string) (*profile.Profile, profile.Format, error) {
	name := o.v.GetString("format.input")
	var (
		r   io.Reader
		f   profile.Format
		err error
	)
	if path == "-" {
		br := bufio.NewReader(cmd.InOrStdin())
		if isAuto(name) {
			f, err = sniffFormat(br)
		} else {
			f, err = profile.ParseFormat(name)
		}
		if err != nil {
			return nil, 0, err
		}
		r = br
	} else {
		if f, err = resolveFormat(name, path); err != nil {
			return nil, 0, err
		}
		file, err := os.Open(path)
		if err != nil {
			return nil, 0, errors.WithStack(err)
		}
		defer file.Close()
		r = file
	}

	opt := profile.FromXML(r)
	if f == profile.FormatYAML {
		opt = profile.FromYAML(r)
	}
	p, err := profile.New(opt)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "%s", path)
	}
	glog.V(1).Infof("loaded %s profile %q from %s", f, p.ID(), path)
	return p, f, nil
}

// write writes p to w in format f.
func (o *options) write(w io.Writer, p *profile.Profile, f profile.Format) error {
	if f == profile.FormatXML {
		return p.WriteXMLIndent(w, o.v.GetString("xml.indent"))
	}
	return p.Write(w, f)
}
