package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OCAP2/mailbox/pkg/mailbox"
	"github.com/OCAP2/mailbox/pkg/task"
)

var pingpongRounds int

var pingpongCmd = &cobra.Command{
	Use:   "pingpong",
	Short: "Measure round trips over a pair of rendezvous channels",
	Long: `Bounces a counter between two goroutines over two capacity-zero
channels and reports the average round-trip time.`,
	RunE: runPingpong,
}

func init() {
	pingpongCmd.Flags().IntVarP(&pingpongRounds, "rounds", "r", 100,
		"round trips to play")
	rootCmd.AddCommand(pingpongCmd)
}

func runPingpong(cmd *cobra.Command, args []string) error {
	if pingpongRounds < 1 {
		return fmt.Errorf("need at least one round, got %d", pingpongRounds)
	}

	ping, err := mailbox.New[int](0)
	if err != nil {
		return err
	}
	pong, err := mailbox.New[int](0)
	if err != nil {
		return err
	}

	task.Spawn(func() {
		for i := 0; i < pingpongRounds; i++ {
			pong.Send(ping.Receive() + 1)
		}
	})

	start := time.Now()
	for i := 0; i < pingpongRounds; i++ {
		ping.Send(i)
		if got := pong.Receive(); got != i+1 {
			return fmt.Errorf("round %d: expected %d, got %d", i, i+1, got)
		}
	}
	elapsed := time.Since(start)

	logger.Info().
		Int("rounds", pingpongRounds).
		Dur("elapsed", elapsed).
		Dur("perRound", elapsed/time.Duration(pingpongRounds)).
		Msg("pingpong complete")
	return nil
}
