package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhuxining/skills-dev/internal/longport"
	"github.com/zhuxining/skills-dev/pkg/logger"
	"github.com/zhuxining/skills-dev/pkg/util"
)

func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage brokerage watchlist groups",
	}
	cmd.AddCommand(newGroupsListCmd())
	cmd.AddCommand(newGroupsCreateCmd())
	cmd.AddCommand(newGroupsUpdateCmd())
	cmd.AddCommand(newGroupsSymbolsCmd())
	cmd.AddCommand(newGroupsClearCmd())
	return cmd
}

func newGroupsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all watchlist groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}
			groups, err := client.WatchlistGroups(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSYMBOLS")
			for _, g := range groups {
				fmt.Fprintf(w, "%d\t%s\t%d\n", g.ID, g.Name, len(g.Securities))
			}
			return w.Flush()
		},
	}
}

func newGroupsCreateCmd() *cobra.Command {
	var symbols string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a watchlist group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}
			members := util.NormalizeSymbols(util.SplitList(symbols))
			id, err := client.CreateGroup(ctx, args[0], members)
			if err != nil {
				return err
			}
			log.Info("group created",
				logger.String("name", args[0]),
				logger.Int64("id", id),
				logger.Int("symbols", len(members)))
			fmt.Println(id)
			return nil
		},
	}
	cmd.Flags().StringVar(&symbols, "symbols", "", "comma-separated initial member symbols")
	return cmd
}

func newGroupsUpdateCmd() *cobra.Command {
	var (
		symbols string
		mode    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Add, remove, or replace group members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseGroupID(args[0])
			if err != nil {
				return err
			}

			var m longport.UpdateMode
			switch mode {
			case "add":
				m = longport.UpdateAdd
			case "remove":
				m = longport.UpdateRemove
			case "replace":
				m = longport.UpdateReplace
			default:
				return fmt.Errorf("invalid mode %q: want add, remove, or replace", mode)
			}

			members := util.NormalizeSymbols(util.SplitList(symbols))
			if len(members) == 0 {
				return fmt.Errorf("--symbols is required")
			}

			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}
			if err := client.UpdateGroup(ctx, id, members, m); err != nil {
				return err
			}
			log.Info("group updated",
				logger.Int64("id", id),
				logger.String("mode", mode),
				logger.Strings("symbols", members))
			return nil
		},
	}
	cmd.Flags().StringVar(&symbols, "symbols", "", "comma-separated member symbols")
	cmd.Flags().StringVar(&mode, "mode", "add", "update mode: add, remove, or replace")
	return cmd
}

func newGroupsSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols <id>",
		Short: "Print the member symbols of a group, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseGroupID(args[0])
			if err != nil {
				return err
			}
			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}
			group, err := client.WatchlistGroup(ctx, id)
			if err != nil {
				return err
			}
			for _, s := range group.Symbols() {
				fmt.Println(s)
			}
			return nil
		},
	}
}

func newGroupsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id>",
		Short: "Remove every member from a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseGroupID(args[0])
			if err != nil {
				return err
			}
			client, err := newAPIClient(ctx)
			if err != nil {
				return err
			}
			if err := client.ClearGroup(ctx, id); err != nil {
				return err
			}
			log.Info("group cleared", logger.Int64("id", id))
			return nil
		},
	}
}

func parseGroupID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid group id %q", s)
	}
	return id, nil
}
