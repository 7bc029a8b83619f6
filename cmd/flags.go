package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/metadata-generator/internal/converter"
)

// generateFlags are shared by the generate subcommands.
type generateFlags struct {
	input     string
	outputDir string
	delimiter string
	updates   bool
	source    string
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input CSV or XLSX file")
	cmd.Flags().StringVarP(&f.outputDir, "outputdir", "o", "", "output directory (default is output_dir from the config)")
	cmd.Flags().StringVarP(&f.delimiter, "delimiter", "d", "", "CSV delimiter: a literal string or tab, pipe, semicolon, comma (default is delimiter from the config)")
	cmd.Flags().BoolVarP(&f.updates, "updates", "u", false, "merge into files that already exist")
	_ = cmd.MarkFlagRequired("input")
}

// options fills unset flags from the loaded config.
func (f *generateFlags) options() converter.GenerateOptions {
	opts := converter.GenerateOptions{
		Input:     f.input,
		OutputDir: f.outputDir,
		Delimiter: f.delimiter,
		Updates:   f.updates,
		Source:    f.source,
	}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.OutputDir
	}
	if opts.Delimiter == "" {
		opts.Delimiter = cfg.Delimiter
	}
	return opts
}

// convertFlags are shared by the convert and template subcommands.
type convertFlags struct {
	source    string
	outputDir string
	format    string
}

func (f *convertFlags) register(cmd *cobra.Command, sourceUsage string) {
	if sourceUsage != "" {
		cmd.Flags().StringVarP(&f.source, "source", "s", "", sourceUsage)
		_ = cmd.MarkFlagRequired("source")
	}
	cmd.Flags().StringVarP(&f.outputDir, "outputdir", "o", "", "output directory (default is output_dir from the config)")
	cmd.Flags().StringVar(&f.format, "format", string(converter.FormatCSV), "output format: csv or xlsx")
}

func (f *convertFlags) options() (converter.ConvertOptions, error) {
	format, err := converter.ParseFormat(f.format)
	if err != nil {
		return converter.ConvertOptions{}, err
	}
	opts := converter.ConvertOptions{Source: f.source, OutputDir: f.outputDir, Format: format}
	if opts.OutputDir == "" {
		opts.OutputDir = cfg.OutputDir
	}
	return opts, nil
}
