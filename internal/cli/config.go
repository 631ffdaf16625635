package cli

import (
	"fmt"

	"github.com/extkit-labs/extkit/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long:  `Read and write extkit configuration stored at ~/.extkit/config.yaml.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := config.Set(a.viper, key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !config.IsKey(args[0]) {
				return fmt.Errorf("unknown config key %q (known keys: %v)", args[0], config.Keys())
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.viper.GetString(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every resolved configuration value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range config.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, a.viper.GetString(key))
			}
			return nil
		},
	})

	return cmd
}
