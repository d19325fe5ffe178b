package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/marcus/dialogs/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func printConfig(w io.Writer, c *config.Config) {
	fmt.Fprintf(w, "dialog.close_delay: %s\n", c.Dialog.CloseDelay)

	keys := make([]string, 0, len(c.Dialog.Props))
	for k := range c.Dialog.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "dialog.props.%s: %v\n", k, c.Dialog.Props[k])
	}

	fmt.Fprintf(w, "log.level: %s\n", c.Log.Level)
	fmt.Fprintf(w, "log.format: %s\n", c.Log.Format)
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
