package main

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/qiangli/pye/api"
	"github.com/qiangli/pye/internal"
	"github.com/qiangli/pye/internal/log"
	"github.com/qiangli/pye/internal/watch"
	"github.com/qiangli/pye/interp"
)

var rootCmd = &cobra.Command{
	Use:   "pye [OPTIONS] [FILE | -]",
	Short: "Embedded script runner",
	Long: `Run scripts on an embedded interpreter and print the captured output.

Engines: starlark (default), lua, js, go.
Global state persists across inputs within one session: variables bound
by one input are visible to the next.`,
	Example: `  pye -c 'x = 5'
  pye -c '1 + 1'
  echo 'print("hello")' | pye
  pye --lang lua script.lua
  pye --watch script.star`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setLogLevel()

		lang := viper.GetString("lang")
		if !validLang(lang) {
			return internal.NewUserInputErrorf("unknown lang: %s", lang)
		}

		interp.SetConfig(&api.Config{
			Lang:    lang,
			Globals: parseGlobals(viper.GetStringSlice("set")),
		})
		interp.Initialize()
		defer interp.Finalize()

		if source := viper.GetString("command"); source != "" {
			log.Print(interp.Execute(source))
			return nil
		}

		if len(args) == 1 && args[0] != "-" {
			if viper.GetBool("watch") {
				return watch.WatchFile(args[0], interp.Execute)
			}
			src, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "read script")
			}
			log.Print(interp.Execute(string(src)))
			return nil
		}

		// "-" or no args: stdin. A terminal gets the repl.
		if len(args) == 0 && isatty.IsTerminal(os.Stdin.Fd()) {
			return repl()
		}
		src, err := readAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "read stdin")
		}
		log.Print(interp.Execute(src))
		return nil
	},
}

func init() {
	rootCmd.Flags().StringP("lang", "l", api.LangStarlark, "script engine: starlark, lua, js, go")
	rootCmd.Flags().StringP("command", "c", "", "execute the given source and exit")
	rootCmd.Flags().StringArray("set", nil, "bind a host global, name=value. May be repeated")
	rootCmd.Flags().BoolP("watch", "w", false, "watch FILE and re-run it on change")
	rootCmd.Flags().Bool("verbose", false, "Show debugging information")
	rootCmd.Flags().Bool("quiet", false, "Operate quietly")

	// Bind the flags to viper using underscores
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		viper.BindPFlag(key, f)
	})

	viper.AutomaticEnv()
	viper.SetEnvPrefix("pye")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	rootCmd.Version = internal.Version
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func validLang(lang string) bool {
	switch lang {
	case "", api.LangStarlark, api.LangLua, api.LangJS, "javascript", "ecmascript", api.LangGo, "golang":
		return true
	}
	return false
}

// name=value pairs from --set. Values are bound as strings.
func parseGlobals(pairs []string) map[string]any {
	if len(pairs) == 0 {
		return nil
	}
	globals := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, _ := strings.Cut(p, "=")
		globals[name] = value
	}
	return globals
}

func setLogLevel() {
	if viper.GetBool("quiet") {
		log.SetLogLevel(log.Quiet)
		return
	}
	if viper.GetBool("verbose") {
		log.SetLogLevel(log.Verbose)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		internal.Exit(err)
	}
}
