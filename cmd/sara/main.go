package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sara-cli/internal/app"
	"sara-cli/internal/tui"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	flagFile        string
	flagNoContext   bool
	flagInteractive bool
	flagPlain       bool
)

func main() {
	root := &cobra.Command{
		Use:   "sara [query]",
		Short: "Sara - local AI coding assistant",
		Long: "Sara chats with a model served by LM Studio, understands your workspace,\n" +
			"and applies the edits it proposes to your files after you confirm each one.\n\n" +
			"Use without arguments for an interactive session, or pass a query for a\n" +
			"single answer.",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigChan
				cancel()
			}()

			cfg, err := app.LoadConfig(app.DefaultConfigPath())
			if err != nil {
				return err
			}

			logger, closeLog := app.NewFileLogger(app.DefaultDataRoot())
			defer closeLog()

			application := app.NewApplication(cfg, logger)
			if err := application.Client.CheckConnection(ctx); err != nil {
				return fmt.Errorf("%w (is the LM Studio local server running?)", err)
			}

			opts := app.RunOptions{
				File:      flagFile,
				NoContext: flagNoContext,
				Decider:   tui.NewMenuDecider(os.Stdout, 100),
				In:        os.Stdin,
				Out:       os.Stdout,
			}
			if !flagPlain {
				opts.RenderMarkdown = func(content string, width int) string {
					return tui.RenderMarkdown(content)
				}
			}

			if len(args) > 0 && !flagInteractive {
				return application.RunOnce(ctx, strings.Join(args, " "), opts)
			}
			fmt.Printf("Sara v%s  •  model %s  •  %s\n", version, cfg.Model, cfg.BaseURL)
			fmt.Println("Type your question, or exit to leave.")
			return application.RunInteractive(ctx, opts)
		},
	}

	root.Flags().StringVarP(&flagFile, "file", "f", "", "File the query is about (becomes the default edit target)")
	root.Flags().BoolVar(&flagNoContext, "no-context", false, "Skip workspace context gathering")
	root.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Start an interactive session even with a query argument")
	root.Flags().BoolVar(&flagPlain, "plain", false, "Disable markdown rendering, stream raw text")

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List saved chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.NewHistoryStore("")
			records, err := store.List()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No saved sessions.")
				return nil
			}
			for _, rec := range records {
				fmt.Printf("%s  %s  %d messages  %s\n",
					rec.UpdatedAt.Format("2006-01-02 15:04"), rec.ID, len(rec.Messages), rec.WorkDir)
			}
			return nil
		},
	}
	root.AddCommand(historyCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the active configuration and its path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.DefaultConfigPath()
			cfg, err := app.LoadConfig(path)
			if err != nil {
				return err
			}
			fmt.Printf("Config file: %s\n", path)
			fmt.Printf("Base URL:    %s\n", cfg.BaseURL)
			fmt.Printf("Model:       %s\n", cfg.Model)
			fmt.Printf("Temperature: %.2f\n", cfg.Temperature)
			fmt.Printf("History:     %v\n", cfg.History)
			return nil
		},
	}
	root.AddCommand(configCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
