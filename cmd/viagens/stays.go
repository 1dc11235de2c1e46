package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"viagens/internal/catalog"
	"viagens/internal/cli"
	"viagens/internal/lodging"
)

var flagStaysJSON bool

var staysCmd = &cobra.Command{
	Use:   "stays",
	Short: "Rank lodging by cost per rating point",
	Args:  cobra.NoArgs,
	RunE:  runStays,
}

func init() {
	staysCmd.Flags().BoolVar(&flagStaysJSON, "json", false, "Print JSON instead of tables")
	rootCmd.AddCommand(staysCmd)
}

func runStays(_ *cobra.Command, _ []string) error {
	cat, err := catalog.LoadFile(appCfg.CatalogFile)
	if err != nil {
		return err
	}
	sections := lodging.NewRanker(cat.Regions, cat.Accommodations, nil).Sections()

	if flagStaysJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sections)
	}
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HOSPEDAGENS (nota mínima %.1f)", lodging.MinRating)))
	fmt.Print(cli.RenderStays(sections))
	return nil
}
