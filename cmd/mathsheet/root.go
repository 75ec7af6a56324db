package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/mathsheet/internal/config"
	"github.com/phrazzld/mathsheet/internal/platform/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flags to configuration keys. Flags a command
// does not define are skipped when binding.
var flagKeys = map[string]string{
	"log-level":            "server.log_level",
	"log-format":           "server.log_format",
	"port":                 "server.port",
	"digits":               "worksheet.digits",
	"ops":                  "worksheet.operations",
	"limit-multiplication": "worksheet.limit_multiplication",
	"seed":                 "worksheet.seed",
	"template":             "render.template_path",
	"out-dir":              "render.output_dir",
	"name":                 "render.output_name",
	"compiler":             "render.compiler",
	"compile-timeout":      "render.compile_timeout",
	"compile":              "render.compile",
	"answers":              "render.answer_key",
}

// cli carries state shared by the subcommands once configuration is loaded.
type cli struct {
	configFile string
	config     *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "mathsheet",
		Short: "Generate randomized arithmetic practice worksheets",
		Long: `mathsheet builds worksheets of 20 arithmetic problems laid out in a
5x4 grid and typesets them with LaTeX.

Configuration is read from defaults, an optional mathsheet.yaml (or the file
named by --config or MATHSHEET_CONFIG), MATHSHEET_* environment variables and
finally command-line flags.`,
		Version:       Version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd.Flags())
		},
	}

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $MATHSHEET_CONFIG or ./mathsheet.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().String("log-format", "text", "log format: json or text")

	root.AddCommand(
		newGenerateCmd(c),
		newServeCmd(c),
		newMCPCmd(c),
	)

	return root
}

// addWorksheetFlags registers the flags that shape a worksheet.
func addWorksheetFlags(flags *pflag.FlagSet) {
	flags.Int("digits", 3, "maximum number of digits per operand (1-9)")
	flags.StringSlice("ops", []string{"+", "-"}, "operations to draw from, by name or symbol (e.g. plus,minus,times,divide)")
	flags.Bool("limit-multiplication", true, "keep multiplication operands within the 0-12 times tables")
	flags.Uint64("seed", 0, "seed for a reproducible worksheet (0 picks a random seed)")
	flags.String("template", "", "LaTeX template file (default: built-in template)")
	flags.String("compiler", "pdflatex", "typesetting binary")
	flags.Duration("compile-timeout", 60*time.Second, "maximum time for one compilation")
}

// load reads configuration with the command's flags bound and sets up logging.
func (c *cli) load(flags *pflag.FlagSet) error {
	v := viper.New()
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	configFile := c.configFile
	if configFile == "" {
		configFile = os.Getenv(config.ConfigFileEnv)
	}

	cfg, err := config.LoadWith(v, configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Format: cfg.Server.LogFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Debug("configuration loaded",
		"digits", cfg.Worksheet.Digits,
		"operations", cfg.Worksheet.Operations,
		"limit_multiplication", cfg.Worksheet.LimitMultiplication,
		"template", cfg.Render.TemplatePath,
		"output_dir", cfg.Render.OutputDir)

	c.config = cfg
	c.logger = log
	return nil
}
