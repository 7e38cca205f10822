package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"spreadsheetPro/contracts"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

const DefaultSheet = "Sheet1"

var InvalidCellAssignmentError = errors.New("cell assignment should look like A1=5 or Sheet2!B3==A1*2")

func NewRootCommand() *cobra.Command {
	config := LoadConfigFromEnv()

	rootCmd := &cobra.Command{
		Use:           "spreadsheetPro",
		Short:         "Spreadsheet formula engine with a JSON API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ConfigureLogging(config)
		},
	}
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level: debug|info|notice|warning|error (env LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&config.LogLocal, "log-local", config.LogLocal, "human readable log output instead of structured entries")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return RunApp(ctx, config)
		},
	}
	serveCmd.Flags().StringVar(&config.DatabaseFilepath, "database", config.DatabaseFilepath, "bbolt database file (env DATABASE_FILEPATH)")
	serveCmd.Flags().StringVar(&config.ListenAddr, "listen", config.ListenAddr, "listen address (env LISTEN_ADDR)")
	serveCmd.Flags().IntVar(&config.WebhookWorkers, "webhook-workers", config.WebhookWorkers, "webhook delivery workers (env WEBHOOK_WORKERS)")
	serveCmd.Flags().DurationVar(&config.RecalculateInterval, "recalculate-interval", config.RecalculateInterval, "refresh NOW and TODAY formulas, 0 disables (env RECALCULATE_INTERVAL)")

	rootCmd.AddCommand(serveCmd, newEvalCommand(), newFunctionsCommand())
	return rootCmd
}

// newEvalCommand evaluates cells in a throwaway workbook:
//
//	spreadsheetPro eval --cell A1=5 --cell B1==A1*2 "=B1+1"
func newEvalCommand() *cobra.Command {
	var cells []string
	var sheet string

	evalCmd := &cobra.Command{
		Use:   "eval [formula]",
		Short: "Evaluate cells and an optional formula without a database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			workbook := NewWorkbook(NewExpressionExecutor(WallClock{}))
			for _, assignment := range cells {
				address, raw, err := parseCellAssignment(assignment, sheet)
				if err != nil {
					return err
				}
				workbook.SetCell(ctx, address, raw)
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				value := workbook.Evaluate(sheet, args[0])
				_, err := fmt.Fprintln(out, value.String())
				return err
			}

			for _, sheetName := range workbook.SheetNames() {
				for _, address := range workbook.Addresses(sheetName) {
					token := address.Sheet + SheetSeparator + FormatCellToken(address.Row, address.Col)
					if _, err := fmt.Fprintf(out, "%s\t%s\n", token, workbook.Get(address).String()); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	evalCmd.Flags().StringArrayVar(&cells, "cell", nil, "cell assignment, repeatable: A1=5, Sheet2!B1==A1*2")
	evalCmd.Flags().StringVar(&sheet, "sheet", DefaultSheet, "sheet for references without a sheet prefix")

	return evalCmd
}

func newFunctionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List supported formula functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := NewExpressionExecutor(nil).FunctionNames()
			slices.Sort(names)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return err
		},
	}
}

// parseCellAssignment splits "Sheet2!B1==A1*2" at the first "=" into the address and raw input
func parseCellAssignment(assignment string, currentSheet string) (contracts.CellAddress, string, error) {
	token, raw, found := strings.Cut(assignment, "=")
	if !found {
		return contracts.CellAddress{}, "", fmt.Errorf("%w: %q", InvalidCellAssignmentError, assignment)
	}

	address, ok := ParseCellReference(strings.TrimSpace(token), currentSheet)
	if !ok {
		return contracts.CellAddress{}, "", fmt.Errorf("%w: %q", InvalidCellAssignmentError, assignment)
	}

	return address, raw, nil
}
