package cmd

import (
	"github.com/spf13/cobra"
)

var (
	profileGenerate generateFlags
	profileConvert  convertFlags
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Apply or extract profile permissions",
}

var profileGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Apply permission rows to a profile",
	Long: `Apply every input row to the matching permission block of the source
profile and write the result under the same file name to the output
directory.

Each row names its block with the type column (for example
fieldPermissions) and the fullName column (the block key, such as
Account.Rating__c). Empty cells leave the existing value untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := newConverter(cmd).GenerateProfile(profileGenerate.options())
		return err
	},
}

var profileConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the permission blocks of a profile into a table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		opts, err := profileConvert.options()
		if err != nil {
			return err
		}
		_, err = newConverter(cmd).ConvertProfile(opts)
		return err
	},
}

func init() {
	profileGenerate.register(profileGenerateCmd)
	profileGenerateCmd.Flags().StringVarP(&profileGenerate.source, "source", "s", "", "profile file the permissions are applied to")
	_ = profileGenerateCmd.MarkFlagRequired("source")

	profileConvert.register(profileConvertCmd, "profile file to read")

	profileCmd.AddCommand(profileGenerateCmd, profileConvertCmd)
	rootCmd.AddCommand(profileCmd)
}
