package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCommand(v *viper.Viper, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration glyphfall would run with after the config
file, GLYPHFALL_* environment variables and flags are applied. The output
is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, opts)
			if err != nil {
				return err
			}
			return cfg.WriteTOML(cmd.OutOrStdout())
		},
	}
}
