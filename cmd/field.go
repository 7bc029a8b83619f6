package cmd

import (
	"github.com/spf13/cobra"
)

var (
	fieldGenerate generateFlags
	fieldConvert  convertFlags
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Generate or convert CustomField metadata",
}

var fieldGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate <fullName>.field-meta.xml files from a table",
	Long: `Generate one CustomField file per input row in the output directory.

The table needs at least the fullName, label and type columns. Picklist
values are given as ';'-separated lists in picklistFullName and
picklistLabel.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := newConverter(cmd).GenerateFields(fieldGenerate.options())
		return err
	},
}

var fieldConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert custom field files back into a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := fieldConvert.options()
		if err != nil {
			return err
		}
		_, err = newConverter(cmd).ConvertFields(opts)
		return err
	},
}

func init() {
	fieldGenerate.register(fieldGenerateCmd)
	fieldConvert.register(fieldConvertCmd, "directory searched for *.field-meta.xml files")

	fieldCmd.AddCommand(fieldGenerateCmd, fieldConvertCmd)
	rootCmd.AddCommand(fieldCmd)
}
