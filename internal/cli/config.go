package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/pipeline"
)

// configExtensions lists the config file formats loadConfig understands.
var configExtensions = []string{".toml", ".yaml", ".yml"}

// loadConfig decodes the config file at path over opts. Keys missing from the
// file keep their current value. Flags the user set explicitly are applied
// again afterwards so the command line always wins. An empty path is a no-op.
func loadConfig(cmd *cobra.Command, path string, opts *pipeline.Options) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	changed := changedFlags(cmd.Flags())

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		err = toml.Unmarshal(data, opts)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, opts)
	default:
		return errors.ValidateChoice("config format", ext, configExtensions)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOption, err, "parse config %s", path)
	}

	for _, f := range changed {
		if err := f.flag.Value.Set(f.value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOption, err, "reapply --%s", f.flag.Name)
		}
	}
	return nil
}

// flagValue is a flag the user set together with its textual value.
type flagValue struct {
	flag  *pflag.Flag
	value string
}

// changedFlags snapshots every explicitly set flag before the config file
// overwrites the variables they are bound to.
func changedFlags(fs *pflag.FlagSet) []flagValue {
	var out []flagValue
	fs.Visit(func(f *pflag.Flag) {
		out = append(out, flagValue{flag: f, value: f.Value.String()})
	})
	return out
}
