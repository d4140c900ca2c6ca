package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OCAP2/mailbox/pkg/mailbox"
	"github.com/OCAP2/mailbox/pkg/task"
)

var rendezvousMessages int

var rendezvousCmd = &cobra.Command{
	Use:   "rendezvous",
	Short: "Hand messages through a capacity-zero channel",
	Long: `Sends messages through a capacity-zero channel, where every send
blocks until a receiver takes the message. Logs how long each message
waited for its receiver.`,
	RunE: runRendezvous,
}

func init() {
	rendezvousCmd.Flags().IntVarP(&rendezvousMessages, "messages", "n", 10,
		"messages to hand off")
	rootCmd.AddCommand(rendezvousCmd)
}

func runRendezvous(cmd *cobra.Command, args []string) error {
	if rendezvousMessages < 1 {
		return fmt.Errorf("need at least one message, got %d", rendezvousMessages)
	}

	ch, err := mailbox.New[string](0)
	if err != nil {
		return err
	}

	sent := make([]time.Time, rendezvousMessages)
	done := make(chan struct{})
	task.Spawn(func() {
		defer close(done)
		for i := 0; i < rendezvousMessages; i++ {
			sent[i] = time.Now()
			ch.Send(fmt.Sprintf("msg-%d", i))
		}
	})

	for i := 0; i < rendezvousMessages; i++ {
		v := ch.Receive()
		logger.Info().
			Str("message", v).
			Dur("waited", time.Since(sent[i])).
			Int("depth", ch.Len()).
			Msg("received")
	}
	<-done

	logger.Info().Int("messages", rendezvousMessages).Msg("rendezvous complete")
	return nil
}
