package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the tuning configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a run would use: the loaded config file
(or the built-in defaults) with the --difficulty preset applied.

The output is a valid config file:
  tower config dump --difficulty hard > ~/.tower/configs/tower.yaml`,
	RunE: runConfigDump,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigDump(_ *cobra.Command, _ []string) error {
	data, err := config.Marshal(effectiveConfig(flagDifficulty))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigValidate(_ *cobra.Command, args []string) error {
	path := flagConfig
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := config.LoadTower(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Println("config OK")
	return nil
}
