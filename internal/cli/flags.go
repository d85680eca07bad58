package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritter/pkg/pipeline"
	"github.com/matzehuels/spritter/pkg/quantize"
)

// addOutputFlags binds the output location and metadata flags.
func addOutputFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Output, "output", "o", opts.Output, "output directory")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", opts.Prefix, "prefix for every output file name")
	cmd.Flags().BoolVar(&opts.Lua, "lua", opts.Lua, "write a Lua metadata file")
	cmd.Flags().BoolVar(&opts.JSON, "json", opts.JSON, "write a JSON metadata file")
}

// addEncodingFlags binds the PNG encoding flags.
func addEncodingFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().BoolVar(&opts.Lossy, "lossy", opts.Lossy, "quantize to a palette before writing (much smaller files)")
	addPaletteFlags(cmd, opts)
}

// addPaletteFlags binds the quantizer choice and worker count.
func addPaletteFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Quantizer, "quantizer", opts.Quantizer,
		"palette quantizer: "+strings.Join(quantize.Methods, ", "))
	cmd.Flags().IntVar(&opts.Colors, "colors", opts.Colors, "maximum palette size for lossy output (2-256)")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "j", opts.Workers, "number of parallel workers")
}

// optionalInt is a pflag.Value for an *int option that stays nil until the
// flag is given.
type optionalInt struct{ p **int }

func (o optionalInt) String() string {
	if o.p == nil || *o.p == nil {
		return ""
	}
	return strconv.Itoa(**o.p)
}

func (o optionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*o.p = &n
	return nil
}

func (optionalInt) Type() string { return "int" }
