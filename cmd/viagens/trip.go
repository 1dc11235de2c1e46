package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"viagens/internal/catalog"
	"viagens/internal/cli"
	"viagens/internal/core"
)

var flagTripScenario string

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Show flights, the GRU connection timeline and bus legs",
	Args:  cobra.NoArgs,
	RunE:  runTrip,
}

func init() {
	tripCmd.Flags().StringVar(&flagTripScenario, "scenario", string(catalog.DefaultScenario), "Bus scenario: direto_sp or via_leme")
	rootCmd.AddCommand(tripCmd)
}

func runTrip(_ *cobra.Command, _ []string) error {
	scenario, err := catalog.ParseScenario(flagTripScenario)
	if err != nil {
		return err
	}
	cat, err := catalog.LoadFile(appCfg.CatalogFile)
	if err != nil {
		return err
	}

	flights := cli.Table{Title: "VOOS", Headers: []string{"Trecho", "Voo", "Partida", "Chegada"}}
	for _, leg := range []catalog.FlightLeg{cat.Flights.Outbound, cat.Flights.Return} {
		flights.Rows = append(flights.Rows, []string{leg.Route, leg.Airline + " " + leg.Flight, leg.Departure, leg.Arrival})
	}
	fmt.Print(cli.RenderTable(flights))
	fmt.Println()

	timeline := cli.Table{Title: "CONEXÃO GRU", Headers: []string{"Tarefa", "Hora"}}
	for _, step := range cat.Timeline {
		task := step.Task
		if step.Warning {
			task = "! " + task
		}
		timeline.Rows = append(timeline.Rows, []string{task, step.Time})
	}
	fmt.Print(cli.RenderTable(timeline))
	fmt.Println()

	bus := cli.Table{
		Title:   fmt.Sprintf("ÔNIBUS (%s)", scenario),
		Headers: []string{"Trecho", "Data", "Hora", "Valor"},
	}
	for _, leg := range slices.Concat(cat.OutboundLegs(scenario), cat.Bus.Return) {
		bus.Rows = append(bus.Rows, []string{leg.From + " → " + leg.To, leg.Date, leg.Time, core.FormatBRL(leg.Price)})
	}
	bus.Rows = append(bus.Rows, []string{"---"}, []string{"Total casal", "", "", core.FormatBRL(cat.BusTotal(scenario))})
	fmt.Print(cli.RenderTable(bus))
	return nil
}
