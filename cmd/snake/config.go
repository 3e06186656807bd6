package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-snake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rules configuration",
	Long: `Print the rules configuration that 'snake play' would use, as YAML.

The output is a complete file and can be saved as a starting point:
  snake config > ~/.neon-snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRules()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}
