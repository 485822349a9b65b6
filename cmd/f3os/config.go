package main

import (
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults, the config file and --root are merged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog := setupLogging(cmd, opts, true)
			defer closeLog()

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			ext := ".json"
			if asYAML {
				ext = ".yaml"
			}
			data, err := cfg.Marshal(ext)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of JSON")
	return cmd
}
