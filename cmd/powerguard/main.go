package main

import (
	"os"

	"github.com/powerguard/autonomy-planner/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewPowerGuardCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewPowerGuardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "powerguard [flags] [options]",
		Short: "powerguard estimates how long backup power keeps your devices running.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdCalculate())
	cmd.AddCommand(cli.NewCmdCatalog())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
