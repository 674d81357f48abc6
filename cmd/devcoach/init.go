package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devcoach/devcoach/internal/project"
)

var initFlags struct {
	description     string
	descriptionFile string
	problem         string
	metrics         []string
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Initialize a devcoach project in the current directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if project.Exists() {
			return fmt.Errorf("project already initialized, %s exists", project.FileName)
		}

		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		if name == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("determine working directory: %w", err)
			}
			name = filepath.Base(wd)
		}

		description := initFlags.description
		if initFlags.descriptionFile != "" {
			data, err := os.ReadFile(initFlags.descriptionFile)
			switch {
			case err != nil:
				fmt.Println(warn("Could not read " + initFlags.descriptionFile + ", using the description flag instead"))
			case strings.TrimSpace(string(data)) == "":
				fmt.Println(warn(initFlags.descriptionFile + " is empty, using the description flag instead"))
			default:
				description = strings.TrimSpace(string(data))
			}
		}
		if description == "" {
			description = fmt.Sprintf("A project named %s", name)
		}

		proj := project.New(name, description, &globalCfg.LLM)
		if initFlags.problem != "" || len(initFlags.metrics) > 0 {
			proj.Meta.PRD = &project.PRD{
				Problem:        initFlags.problem,
				SuccessMetrics: initFlags.metrics,
			}
		}
		if err := proj.Validate(); err != nil {
			return err
		}
		if err := proj.Save(); err != nil {
			return err
		}
		fmt.Println(success("Created " + project.FileName))

		if err := scaffoldWorkspace(name); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(heading("Project initialized: " + name))
		fmt.Println(dim("Tech stack: " + proj.Meta.TechStackDescription()))
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  devcoach status")
		fmt.Println("  devcoach add-requirement \"describe what you want to build\"")
		fmt.Println("  devcoach list-backlog")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initFlags.description, "description", "", "short project description")
	initCmd.Flags().StringVar(&initFlags.descriptionFile, "description-file", "", "read the description from a file")
	initCmd.Flags().StringVar(&initFlags.problem, "problem", "", "problem statement for the PRD section")
	initCmd.Flags().StringSliceVar(&initFlags.metrics, "metric", nil, "success metric for the PRD section (repeatable)")
}
