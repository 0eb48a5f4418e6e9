package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhuxining/skills-dev/internal/skill"
	"github.com/zhuxining/skills-dev/pkg/logger"
)

func newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Validate and package skill folders",
	}
	cmd.AddCommand(newSkillValidateCmd())
	cmd.AddCommand(newSkillPackageCmd())
	return cmd
}

func newSkillValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <folder>",
		Short: "Check a skill folder's SKILL.md frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fm, err := skill.Validate(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", fm.Name, fm.Description)
			return nil
		},
	}
}

func newSkillPackageCmd() *cobra.Command {
	var dist string

	cmd := &cobra.Command{
		Use:   "package <folder>",
		Short: "Copy a skill folder into the dist dir, dropping development files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := skill.Package(args[0], dist)
			if err != nil {
				return err
			}
			log.Info("skill packaged",
				logger.String("dest", res.Dest),
				logger.Int("copied", res.Copied),
				logger.Int("excluded", res.Excluded))
			fmt.Println(res.Dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&dist, "dist", "dist", "destination directory for packaged skills")
	return cmd
}
