package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teksel-io/teksel/interpreter"
	"github.com/teksel-io/teksel/server"
	"github.com/teksel-io/teksel/sheet"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// app holds the configuration shared by every command. Flags, TEKSEL_*
// environment variables and the config file are merged by viper.
type app struct {
	v *viper.Viper
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "teksel",
		Short:         "Run programs written in the teksel spreadsheet language",
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			a.processGlobalFlags()
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.teksel.yaml)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.Int("rows", sheet.DefaultRows, "number of grid rows")
	flags.Int("recursion-limit", interpreter.DefaultRecursionLimit, "maximum number of consecutive calls of one function")
	flags.StringP("output", "o", "text", "output format (text or json)")
	flags.StringP("query", "q", "", "JMESPath query applied to JSON output")
	_ = root.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormats, cobra.ShellCompDirectiveNoFileComp))
	for _, name := range []string{"config", "no-color", "log-level", "rows", "recursion-limit", "output", "query"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.runCommand(),
		a.tokensCommand(),
		a.astCommand(),
		a.examplesCommand(),
		a.replCommand(),
		a.serveCommand(),
	)
	return root
}

func (a *app) initConfig() error {
	a.v.SetEnvPrefix("teksel")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	a.v.SetDefault("addr", ":8080")
	a.v.SetDefault("database", "memory:")
	a.v.SetDefault("timeout", server.DefaultTimeout)

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		return a.v.ReadInConfig()
	}
	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	a.v.AddConfigPath(home)
	a.v.SetConfigName(".teksel")
	a.v.SetConfigType("yaml")
	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("%s: %w", filepath.Join(home, ".teksel.yaml"), err)
		}
	}
	return nil
}

func (a *app) timeout() time.Duration {
	return a.v.GetDuration("timeout")
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fatal(err)
	}
}
