package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"viagens/internal/cli"
	"viagens/internal/services"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the trip assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	return withService(cmd.Context(), func(ctx context.Context, svc *services.LedgerService) error {
		relay := newRelay(ctx, appCfg, svc, logger)
		reply, err := relay.Ask(ctx, question)
		if err != nil {
			return err
		}
		transcript := relay.Transcript()
		// skip the greeting
		for _, m := range transcript[1 : len(transcript)-1] {
			fmt.Print(cli.RenderReply(m))
		}
		fmt.Print(cli.RenderReply(reply))
		return nil
	})
}
