package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"hrdash/app"
	"hrdash/domain/employee"
	"hrdash/internal/config"
	"hrdash/internal/container"
	"hrdash/internal/render"
	"hrdash/internal/testkit"
)

// reportService is what the terminal report needs from the dashboard
type reportService interface {
	Render(ctx context.Context, sel employee.Selection) (*app.Dashboard, error)
	Options(ctx context.Context) (employee.FilterOptions, error)
	DefaultSelection(ctx context.Context) (employee.Selection, error)
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "hrdash-cli",
		Short: "Terminal reports over the HR attrition dataset",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newOptionsCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var departments, jobRoles, genders []string
	var exportDir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print key metrics and top attrition factors for a selection",
		Long: `Print key metrics and the top predictive factors of attrition.

Each filter defaults to every value in the dataset. Passing a filter flag
restricts that dimension to the given values.

Example: hrdash-cli report --department Sales --gender Female --export-dir charts/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, shutdown, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer shutdown()

			sel, err := svc.DefaultSelection(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("department") {
				sel.Departments = departments
			}
			if cmd.Flags().Changed("job-role") {
				sel.JobRoles = jobRoles
			}
			if cmd.Flags().Changed("gender") {
				sel.Genders = genders
			}

			return runReport(cmd.Context(), cmd.OutOrStdout(), svc, sel, exportDir)
		},
	}

	cmd.Flags().StringSliceVar(&departments, "department", nil, "Departments to include (repeatable)")
	cmd.Flags().StringSliceVar(&jobRoles, "job-role", nil, "Job roles to include (repeatable)")
	cmd.Flags().StringSliceVar(&genders, "gender", nil, "Genders to include (repeatable)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Write SVG files for exportable charts into this directory")

	return cmd
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the values available to each filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, shutdown, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			defer shutdown()

			return runOptions(cmd.Context(), cmd.OutOrStdout(), svc)
		},
	}
}

func newGenerateCmd() *cobra.Command {
	cfg := testkit.DefaultEmployeeConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic employee CSV with the attrition dataset's schema",
		Long: `Write a synthetic employee CSV for demos and load testing.

Example: hrdash-cli generate --out employees.csv --employees 1470 --leavers 237 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.LeaverCount > cfg.EmployeeCount {
				return fmt.Errorf("--leavers (%d) cannot exceed --employees (%d)", cfg.LeaverCount, cfg.EmployeeCount)
			}
			data := testkit.NewEmployeeDataGenerator(cfg).Generate()
			if err := os.WriteFile(out, testkit.CSV(data), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d employees (%d leavers) to %s\n", cfg.EmployeeCount, cfg.LeaverCount, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "employees.csv", "Output CSV path")
	cmd.Flags().IntVar(&cfg.EmployeeCount, "employees", cfg.EmployeeCount, "Number of employees")
	cmd.Flags().IntVar(&cfg.LeaverCount, "leavers", cfg.LeaverCount, "Number of employees with Attrition=Yes")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for deterministic output")

	return cmd
}

func newService(ctx context.Context) (reportService, func(), error) {
	appConfig, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	c, err := container.New(ctx, appConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create application container: %w", err)
	}
	return c.Dashboard, func() { _ = c.Shutdown(context.Background()) }, nil
}

func runReport(ctx context.Context, w io.Writer, svc reportService, sel employee.Selection, exportDir string) error {
	d, err := svc.Render(ctx, sel)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "📊 HR ATTRITION REPORT\n")
	fmt.Fprintf(w, "Source: %s\n", d.Source)
	fmt.Fprintf(w, "Departments: %s\n", strings.Join(d.Selection.Departments, ", "))
	fmt.Fprintf(w, "Job Roles: %s\n", strings.Join(d.Selection.JobRoles, ", "))
	fmt.Fprintf(w, "Genders: %s\n\n", strings.Join(d.Selection.Genders, ", "))

	if d.Empty {
		fmt.Fprintln(w, d.Advisory)
		return nil
	}

	metricsTable := tablewriter.NewWriter(w)
	metricsTable.SetHeader([]string{"Total Employees", "Attrition Count", "Attrition Rate", "Avg. Monthly Income"})
	metricsTable.Append([]string{
		strconv.Itoa(d.Metrics.Total),
		strconv.Itoa(d.Metrics.AttritionCount),
		fmt.Sprintf("%.1f%%", d.Metrics.AttritionRate),
		fmt.Sprintf("%.0f", d.Metrics.AvgMonthlyIncome),
	})
	metricsTable.Render()

	fmt.Fprintf(w, "\nTop Predictive Factors of Attrition\n")
	rankingTable := tablewriter.NewWriter(w)
	rankingTable.SetHeader([]string{"Rank", "Feature", "Importance"})
	for i, f := range d.Ranking {
		rankingTable.Append([]string{strconv.Itoa(i + 1), f.Feature, fmt.Sprintf("%.4f", f.Score)})
	}
	rankingTable.Render()

	if exportDir == "" {
		return nil
	}
	return exportCharts(w, d, exportDir)
}

// exportCharts writes one SVG per exportable, non-empty chart
func exportCharts(w io.Writer, d *app.Dashboard, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for _, spec := range d.Charts {
		if !render.Supported(spec.Kind) || spec.Empty() {
			continue
		}
		path := filepath.Join(dir, spec.ID+".svg")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		err = render.SVG(f, spec)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", spec.ID, err)
		}
		fmt.Fprintf(w, "Exported %s\n", path)
	}
	return nil
}

func runOptions(ctx context.Context, w io.Writer, svc reportService) error {
	opts, err := svc.Options(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Filter", "Values"})
	table.SetAutoWrapText(false)
	table.Append([]string{"Department", strings.Join(opts.Departments, "\n")})
	table.Append([]string{"Job Role", strings.Join(opts.JobRoles, "\n")})
	table.Append([]string{"Gender", strings.Join(opts.Genders, "\n")})
	table.Render()
	return nil
}
