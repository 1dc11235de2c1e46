package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"viagens/internal/catalog"
	"viagens/internal/cli"
	"viagens/internal/core"
	"viagens/internal/services"
)

var (
	flagEntryCategory    string
	flagEntryDescription string
	flagEntryTotal       string
	flagEntryDate        string
	flagEntryNotes       string
	flagSummary          bool
)

var ledgerCmd = &cobra.Command{
	Use:     "ledger",
	Aliases: []string{"orcamento"},
	Short:   "List the budget ledger",
	Args:    cobra.NoArgs,
	RunE:    runLedgerList,
}

var ledgerListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the budget ledger",
	Args:    cobra.NoArgs,
	RunE:    runLedgerList,
}

var ledgerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a manual entry",
	Args:  cobra.NoArgs,
	RunE:  runLedgerAdd,
}

var ledgerRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an entry by id",
	Args:    cobra.ExactArgs(1),
	RunE:    runLedgerRemove,
}

var ledgerTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Print the ledger total",
	Args:  cobra.NoArgs,
	RunE:  runLedgerTotal,
}

var ledgerQuickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Add a catalog item to the ledger",
}

var ledgerQuickBusCmd = &cobra.Command{
	Use:       "bus [direto_sp|via_leme]",
	Short:     "Add the bus legs of a scenario",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(catalog.ScenarioDirect), string(catalog.ScenarioViaLeme)},
	RunE:      runQuickBus,
}

var ledgerQuickFlightCmd = &cobra.Command{
	Use:   "flight",
	Short: "Add the regional JNB-CPT flight for both passengers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
			return printAdded(svc.AddRegionalFlight(ctx))
		})
	},
}

var ledgerQuickStayCmd = &cobra.Command{
	Use:   "stay <id>",
	Short: "Add a lodging option by id (see: viagens stays)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
			return printAdded(svc.AddStay(ctx, args[0]))
		})
	},
}

func init() {
	ledgerCmd.PersistentFlags().BoolVarP(&flagSummary, "summary", "s", false, "Also print totals per category")

	ledgerAddCmd.Flags().StringVarP(&flagEntryCategory, "category", "c", "", "Category: "+categoryList())
	ledgerAddCmd.Flags().StringVarP(&flagEntryDescription, "description", "d", "", "Description")
	ledgerAddCmd.Flags().StringVarP(&flagEntryTotal, "total", "t", "", "Amount in reais, e.g. 1.234,50")
	ledgerAddCmd.Flags().StringVar(&flagEntryDate, "date", "", "Date label, e.g. 25/01")
	ledgerAddCmd.Flags().StringVar(&flagEntryNotes, "notes", "", "Free-form notes")
	_ = ledgerAddCmd.MarkFlagRequired("category")
	_ = ledgerAddCmd.MarkFlagRequired("description")
	_ = ledgerAddCmd.MarkFlagRequired("total")

	ledgerQuickCmd.AddCommand(ledgerQuickBusCmd, ledgerQuickFlightCmd, ledgerQuickStayCmd)
	ledgerCmd.AddCommand(ledgerListCmd, ledgerAddCmd, ledgerRemoveCmd, ledgerTotalCmd, ledgerQuickCmd)
	rootCmd.AddCommand(ledgerCmd)
}

// withService opens the ledger for one command and closes it afterwards.
func withService(ctx context.Context, fn func(context.Context, *services.LedgerService) error) error {
	svc, deps, _, err := openService(ctx, appCfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()
	defer svc.Close()
	return fn(ctx, svc)
}

func runLedgerList(cmd *cobra.Command, _ []string) error {
	return withService(cmd.Context(), func(_ context.Context, svc *services.LedgerService) error {
		snap := svc.Snapshot()
		fmt.Print(cli.RenderLedger(snap.Entries, snap.Total))
		if flagSummary {
			fmt.Println()
			fmt.Print(cli.RenderSummary(svc.Summary()))
		}
		return nil
	})
}

func runLedgerAdd(cmd *cobra.Command, _ []string) error {
	category, err := core.ParseCategory(flagEntryCategory)
	if err != nil {
		return fmt.Errorf("%w (valid: %s)", err, categoryList())
	}
	total, err := core.ParseAmount(flagEntryTotal)
	if err != nil {
		return err
	}
	in := core.NewEntry{
		Category:    category,
		Description: flagEntryDescription,
		Date:        flagEntryDate,
		Total:       total,
		Notes:       flagEntryNotes,
	}
	return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
		return printAdded(svc.Add(ctx, in))
	})
}

func runLedgerRemove(cmd *cobra.Command, args []string) error {
	return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
		removed, err := svc.Remove(ctx, args[0])
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("  Nenhum lançamento com id %q\n", args[0])
			return nil
		}
		fmt.Printf("  Removido %s. Total: %s\n", args[0], core.FormatBRL(svc.Snapshot().Total))
		return nil
	})
}

func runLedgerTotal(cmd *cobra.Command, _ []string) error {
	return withService(cmd.Context(), func(_ context.Context, svc *services.LedgerService) error {
		fmt.Println(core.FormatBRL(svc.Snapshot().Total))
		return nil
	})
}

func runQuickBus(cmd *cobra.Command, args []string) error {
	var raw string
	if len(args) == 1 {
		raw = args[0]
	}
	scenario, err := catalog.ParseScenario(raw)
	if err != nil {
		return err
	}
	return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
		return printAdded(svc.AddBus(ctx, scenario))
	})
}

func printAdded(e core.BudgetEntry, err error) error {
	if err != nil {
		return err
	}
	fmt.Printf("  Adicionado %s (%s) %s, id %s\n", e.Description, e.Category, core.FormatBRL(e.Total), e.ID)
	return nil
}

func categoryList() string {
	cats := core.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
