package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const LogLevelKey = "log-level"

// envKey is the environment variable that overrides flag of the named tool.
func envKey(name, flag string) string {
	return strings.ToUpper(strings.ReplaceAll(name+"_"+flag, "-", "_"))
}

// applyEnv sets every flag left untouched on the command line from its
// environment variable, so list flags get pflag's CSV parsing.
func applyEnv(name string, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}
		if val, ok := os.LookupEnv(envKey(name, f.Name)); ok {
			err = fs.Set(f.Name, val)
		}
	})
	return err
}

// BuildViper parses args with the flags registered by addFlags and binds them
// into a viper instance. Every flag can also be set through the environment
// as <NAME>_<FLAG>, dashes replaced by underscores. Command line values win.
func BuildViper(name string, addFlags func(fs *pflag.FlagSet), args []string) (*viper.Viper, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(LogLevelKey, "info", "Logging level (debug, info, warn, error)")
	addFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := applyEnv(name, fs); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}
