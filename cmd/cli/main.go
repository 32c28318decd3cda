package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rpascope/domain/workflow"
	"rpascope/internal/config"
	"rpascope/internal/container"
	"rpascope/ports"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "rpascope",
		Short: "One-shot RPA workflow analysis from parsed structure files",
	}

	rootCmd.AddCommand(
		newReviewCmd(),
		newMigrateCmd(),
		newUsageCmd(),
		newRulesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCLIContainer assembles the in-memory application graph. The CLI never
// touches the database even when DATABASE_URL is set.
func newCLIContainer(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Database.URL = ""
	return container.New(ctx, cfg)
}

func loadStructure(ctx context.Context, c *container.Container, path string) (*workflow.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read structure file: %w", err)
	}
	var structure workflow.Structure
	if err := json.Unmarshal(data, &structure); err != nil {
		return nil, fmt.Errorf("failed to parse structure file: %w", err)
	}
	if err := c.StructureStore.Put(ctx, &structure); err != nil {
		return nil, err
	}
	return &structure, nil
}

func emit(data []byte) error {
	_, err := os.Stdout.Write(data)
	return err
}

func newReviewCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "review [structure.json]",
		Short: "Run a code review over a parsed workflow structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newCLIContainer(ctx)
			if err != nil {
				return err
			}
			structure, err := loadStructure(ctx, c, args[0])
			if err != nil {
				return err
			}

			rep, _, err := c.Reviews.RunCodeReview(ctx, structure.WorkflowID, "")
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				data, err := c.Exporter.AnalysisCSV(rep)
				if err != nil {
					return err
				}
				return emit(data)
			default:
				data, err := c.Exporter.JSON(rep)
				if err != nil {
					return err
				}
				return emit(data)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or csv")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var target string
	var format string

	cmd := &cobra.Command{
		Use:   "migrate [structure.json]",
		Short: "Assess migration compatibility toward a target platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newCLIContainer(ctx)
			if err != nil {
				return err
			}
			structure, err := loadStructure(ctx, c, args[0])
			if err != nil {
				return err
			}
			targetPlatform, err := workflow.ParsePlatform(target)
			if err != nil {
				return err
			}

			rep, _, err := c.Migrations.RunMigrationAnalysis(ctx, structure.WorkflowID, structure.Platform, targetPlatform)
			if err != nil {
				return err
			}

			switch format {
			case "csv":
				data, err := c.Exporter.MigrationCSV(rep)
				if err != nil {
					return err
				}
				return emit(data)
			default:
				data, err := c.Exporter.JSON(rep)
				if err != nil {
					return err
				}
				return emit(data)
			}
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Target platform: uipath or blueprism")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or csv")
	return cmd
}

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage [structure.json]",
		Short: "Analyze variable and argument usage of a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newCLIContainer(ctx)
			if err != nil {
				return err
			}
			structure, err := loadStructure(ctx, c, args[0])
			if err != nil {
				return err
			}

			rep, _, err := c.Usage.RunVariableAnalysis(ctx, structure.WorkflowID)
			if err != nil {
				return err
			}
			data, err := c.Exporter.JSON(rep)
			if err != nil {
				return err
			}
			return emit(data)
		},
	}
	return cmd
}

func newRulesCmd() *cobra.Command {
	var format string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Export the shipped rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newCLIContainer(ctx)
			if err != nil {
				return err
			}
			filter := ports.RuleFilter{ActiveOnly: activeOnly}

			switch format {
			case "csv":
				data, err := c.RuleAdmin.ExportCSV(ctx, filter)
				if err != nil {
					return err
				}
				return emit(data)
			default:
				data, err := c.RuleAdmin.ExportJSON(ctx, filter)
				if err != nil {
					return err
				}
				return emit(data)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or csv")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "Export only active rules")
	return cmd
}
