package main

import (
	"github.com/spf13/cobra"

	"github.com/zhuxining/skills-dev/pkg/config"
	"github.com/zhuxining/skills-dev/pkg/logger"
)

var (
	cfgPath string
	cfg     *config.Config
	log     *logger.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Stock analysis toolkit: candlesticks, indicators, watchlists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadWithEnv(cfgPath)
			if err != nil {
				return err
			}
			log, err = logger.New(&logger.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cfg.Log.Output,
			})
			return err
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "config/config.yaml", "config file path")

	root.AddCommand(newCandlesCmd())
	root.AddCommand(newGroupsCmd())
	root.AddCommand(newSkillCmd())
	root.AddCommand(newStreamCmd())
	return root
}
