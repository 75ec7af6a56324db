package main

import (
	"fmt"

	"github.com/phrazzld/mathsheet/internal/service"
	"github.com/spf13/cobra"
)

func newGenerateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a worksheet document and compile it",
		Long: `Generates one worksheet, writes <name>.tex to the output directory and,
unless --compile=false, runs the typesetting tool to produce <name>.pdf.
With --answers an answer key is written to <name>.answers.yaml.

Example:
  mathsheet generate --digits 2 --ops plus,minus,times --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(c.config, c.logger)
			if err != nil {
				return err
			}
			return app.generate(cmd)
		},
	}

	addWorksheetFlags(cmd.Flags())
	cmd.Flags().String("out-dir", ".", "directory the worksheet files are written to")
	cmd.Flags().String("name", "worksheet", "base name of the written files")
	cmd.Flags().Bool("compile", true, "compile the document to PDF")
	cmd.Flags().Bool("answers", false, "also write an answer key")

	return cmd
}

// generate builds one worksheet as configured and reports the written files.
func (app *application) generate(cmd *cobra.Command) error {
	cfg := app.config

	result, err := app.worksheetService.Build(cmd.Context(),
		service.RequestFromConfig(cfg.Worksheet),
		service.BuildOptions{
			OutputDir: cfg.Render.OutputDir,
			Name:      cfg.Render.OutputName,
			Compile:   cfg.Render.Compile,
			AnswerKey: cfg.Render.AnswerKey,
		})
	if result != nil {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "seed: %d\n", result.Worksheet.Seed)
		for _, path := range []string{result.SourcePath, result.AnswerKeyPath, result.PDFPath} {
			if path != "" {
				fmt.Fprintf(out, "wrote %s\n", path)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to generate worksheet: %w", err)
	}

	return nil
}
