package main

import (
	"github.com/calehh/dao-app/config"
	"github.com/spf13/cobra"
)

func homeFlag(cmd *cobra.Command, home *string) {
	cmd.Flags().StringVarP(home, "homedir", "d", config.DefaultHome(), "home directory")
}
