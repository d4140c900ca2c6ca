package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/OCAP2/mailbox/internal/config"
	"github.com/OCAP2/mailbox/internal/dispatcher"
	"github.com/OCAP2/mailbox/internal/logging"
	"github.com/OCAP2/mailbox/internal/monitor"
	"github.com/OCAP2/mailbox/internal/worker"
	"github.com/OCAP2/mailbox/pkg/core"
	"github.com/OCAP2/mailbox/pkg/mailbox"
	"github.com/OCAP2/mailbox/pkg/task"
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Run many producers against a worker pool",
	Long: `Runs the configured number of producers concurrently against a
worker pool over one bounded closable channel, with depth sampling and
per-producer progress events. Producer and worker counts, message
volume and channel capacity all come from the pipeline config section.`,
	RunE: runSoak,
}

func init() {
	rootCmd.AddCommand(soakCmd)
}

func runSoak(cmd *cobra.Command, args []string) error {
	pipe := config.GetPipelineConfig()

	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer closeBackend(backend)

	fluxMgr := openInflux()
	if fluxMgr != nil {
		defer fluxMgr.Close()
	}

	disp, err := dispatcher.New(logging.NewDispatcherLogger(logger))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	disp.Register("producer.done", func(e dispatcher.Event) (any, error) {
		logger.Info().Strs("args", e.Args).Msg("producer finished")
		return nil, nil
	}, dispatcher.Buffered(16), dispatcher.Logged())
	defer disp.Close()

	stream, err := mailbox.NewClosable[core.Transfer](pipe.Capacity)
	if err != nil {
		return err
	}

	mon := monitor.NewService(monitor.Dependencies{
		Logger:   logger,
		Influx:   fluxMgr,
		Interval: pipe.SampleInterval,
	})
	mon.Register("soak", stream)
	mon.Start()
	defer mon.Stop()

	runID := newRunID()
	started := time.Now()
	total := pipe.Producers * pipe.Messages
	logger.Info().
		Str("run", runID).
		Int("producers", pipe.Producers).
		Int("workers", pipe.Workers).
		Int("messages", total).
		Int("capacity", pipe.Capacity).
		Msg("soak run starting")

	mgr := worker.NewManager(worker.Dependencies{Logger: logger, Backend: backend})
	drained := make(chan error, 1)
	task.Spawn(func() {
		drained <- mgr.ProcessTransfers(stream, pipe.Workers)
	})

	g := new(errgroup.Group)
	for p := 0; p < pipe.Producers; p++ {
		producerID := strconv.Itoa(p)
		base := uint64(p * pipe.Messages)
		g.Go(func() error {
			for i := 0; i < pipe.Messages; i++ {
				stream.Send(core.Transfer{
					Run:     runID,
					Channel: "soak",
					Seq:     base + uint64(i),
					Payload: fmt.Sprintf("soak-%s-%d", producerID, i),
					Labels:  map[string]string{"producer": producerID},
					SentAt:  time.Now(),
				})
			}
			_, err := disp.Dispatch(dispatcher.Event{
				Command:   "producer.done",
				Args:      []string{producerID},
				Timestamp: time.Now(),
			})
			return err
		})
	}

	producerErr := g.Wait()
	stream.Close()
	if err := <-drained; err != nil {
		return fmt.Errorf("processing transfers: %w", err)
	}
	if producerErr != nil {
		return fmt.Errorf("producing transfers: %w", producerErr)
	}

	finished := time.Now()
	summary := core.RunSummary{
		Run:        runID,
		Scenario:   "soak",
		Messages:   total,
		Producers:  pipe.Producers,
		Consumers:  pipe.Workers,
		Capacity:   pipe.Capacity,
		StartedAt:  started,
		FinishedAt: finished,
		Duration:   finished.Sub(started),
	}
	if err := backend.RecordRun(&summary); err != nil {
		return fmt.Errorf("recording run summary: %w", err)
	}
	if fluxMgr != nil {
		fluxMgr.WriteThroughput(runID, "soak", total, summary.Duration)
	}

	logger.Info().
		Str("run", runID).
		Dur("duration", summary.Duration).
		Msg("soak run complete")
	return nil
}
