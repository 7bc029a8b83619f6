package cmd

import (
	"github.com/spf13/cobra"
)

var (
	objectGenerate generateFlags
	objectConvert  convertFlags
	objectTemplate convertFlags
)

var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Generate or convert CustomObject metadata",
}

var objectGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate <fullName>/<fullName>.object-meta.xml files from a table",
	Long: `Generate one CustomObject directory and file per input row.

An object directory that already exists is reported as a failure unless
--updates is given. Run "metagen object template" for a sample table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := newConverter(cmd).GenerateObjects(objectGenerate.options())
		return err
	},
}

var objectConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert custom object directories back into a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := objectConvert.options()
		if err != nil {
			return err
		}
		_, err = newConverter(cmd).ConvertObjects(opts)
		return err
	},
}

var objectTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a sample object table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := objectTemplate.options()
		if err != nil {
			return err
		}
		_, err = newConverter(cmd).Template(opts.OutputDir, opts.Format)
		return err
	},
}

func init() {
	objectGenerate.register(objectGenerateCmd)
	objectConvert.register(objectConvertCmd, "directory holding one sub-directory per object")
	objectTemplate.register(objectTemplateCmd, "")

	objectCmd.AddCommand(objectGenerateCmd, objectConvertCmd, objectTemplateCmd)
	rootCmd.AddCommand(objectCmd)
}
