package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/recipebox/internal/app"
	"github.com/vladimiradmaev/recipebox/internal/config"
	"github.com/vladimiradmaev/recipebox/internal/fetcher"
	"github.com/vladimiradmaev/recipebox/internal/logger"
	"github.com/vladimiradmaev/recipebox/internal/services"
	"github.com/vladimiradmaev/recipebox/internal/structured"
)

var (
	verbose    bool
	telegramID int64
	delay      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "recipebox",
	Short: "Import recipes from web pages into the recipe box",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logger.LevelInfo
		if verbose {
			level = logger.LevelDebug
		}
		return logger.InitWithConfig(logger.Config{Level: level, OutputPath: "stdout", Format: "text"})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import one recipe page for a Telegram user",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var reimportCmd = &cobra.Command{
	Use:   "reimport",
	Short: "Import every stored recipe again from its source page",
	Args:  cobra.NoArgs,
	RunE:  runReimport,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <url>",
	Short: "Show the structured data found on a page without saving anything",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	importCmd.Flags().Int64VarP(&telegramID, "telegram-id", "t", 0, "Telegram ID of the recipe owner (required)")
	_ = importCmd.MarkFlagRequired("telegram-id")

	reimportCmd.Flags().DurationVarP(&delay, "delay", "d", 0, "Delay between pages (default IMPORT_REIMPORT_DELAY)")

	rootCmd.AddCommand(importCmd, reimportCmd, inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func runImport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		user, err := a.Users.RegisterUser(ctx, telegramID, "", "", "")
		if err != nil {
			return err
		}

		recipe, err := a.Importer.Handle(ctx, args[0], user.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported #%d %q with %d ingredients\n", recipe.ID, recipe.Title, len(recipe.Ingredients))
		return nil
	})
}

func runReimport(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		d := delay
		if !cmd.Flags().Changed("delay") {
			d = a.Config.Import.ReimportDelay
		}

		report, err := a.Reimporter(d).ReimportAll(ctx)
		if report != nil {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: %d recipes, %d imported, %d skipped, %d failed\n",
				report.RunID, report.Total, report.Imported, report.Skipped, report.Failed())
			fmt.Fprintf(out, "  connection failures: %d\n  no structured data:  %d\n  other errors:        %d\n",
				report.ConnectionFailures, report.NoDataFailures, report.Errors)
		}
		return err
	})
}

// runInspect only needs the fetcher, so it works without a database
func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	page, err := fetcher.NewHTTPFetcher(cfg.Import).Fetch(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "HTTP %d %s\n", page.StatusCode, page.ContentType)

	extractor := structured.NewExtractor()
	body := services.DecodeBody(page)
	for _, f := range structured.Formats {
		items := extractor.ExtractFormat(f, body, page.URL)
		recipe := services.SelectRecipeItem(items)
		fmt.Fprintf(out, "%-10s %d items, recipe: %t\n", f, len(items), recipe != nil)
		if recipe != nil {
			fmt.Fprintf(out, "           name: %s\n           properties: %v\n", recipe.FirstText("name"), recipe.Names())
		}
	}
	return nil
}
