package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/promptdock/pkg/app"
)

// FormatOptions
type FormatOptions struct {
	Format app.Format
}

// AddFormatArgs adds --format. An empty def leaves the choice to the caller.
func AddFormatArgs(cmd *cobra.Command, o *FormatOptions, def app.Format) {
	o.Format = def
	cmd.Flags().VarP(&formatValue{f: &o.Format}, "format", "f",
		"Encoding of the file. One of 'json' or 'yaml'.")
}

type formatValue struct {
	f *app.Format
}

var _ pflag.Value = (*formatValue)(nil)

func (v *formatValue) String() string {
	if v.f == nil {
		return ""
	}
	return string(*v.f)
}

func (v *formatValue) Set(raw string) error {
	f, err := app.ParseFormat(raw)
	if err != nil {
		return err
	}
	*v.f = f
	return nil
}

func (v *formatValue) Type() string {
	return "format"
}
