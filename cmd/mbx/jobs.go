package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OCAP2/mailbox/internal/config"
	"github.com/OCAP2/mailbox/internal/monitor"
	"github.com/OCAP2/mailbox/internal/worker"
	"github.com/OCAP2/mailbox/pkg/core"
	"github.com/OCAP2/mailbox/pkg/mailbox"
	"github.com/OCAP2/mailbox/pkg/task"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Run a single producer against a worker pool",
	Long: `Feeds transfers from one producer through a bounded closable
channel into a pool of workers that record each transfer to the
configured storage backend. The producer closes the channel when done
and the workers drain it to end of stream.`,
	RunE: runJobs,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
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

	jobs, err := mailbox.NewClosable[core.Transfer](pipe.Capacity)
	if err != nil {
		return err
	}

	mon := monitor.NewService(monitor.Dependencies{
		Logger:   logger,
		Influx:   fluxMgr,
		Interval: pipe.SampleInterval,
	})
	mon.Register("jobs", jobs)
	mon.Start()
	defer mon.Stop()

	runID := newRunID()
	started := time.Now()
	logger.Info().
		Str("run", runID).
		Int("messages", pipe.Messages).
		Int("workers", pipe.Workers).
		Int("capacity", pipe.Capacity).
		Msg("jobs run starting")

	task.Spawn(func() {
		for i := 0; i < pipe.Messages; i++ {
			jobs.Send(core.Transfer{
				Run:     runID,
				Channel: "jobs",
				Seq:     uint64(i),
				Payload: fmt.Sprintf("job-%d", i),
				SentAt:  time.Now(),
			})
		}
		jobs.Close()
	})

	mgr := worker.NewManager(worker.Dependencies{Logger: logger, Backend: backend})
	if err := mgr.ProcessTransfers(jobs, pipe.Workers); err != nil {
		return fmt.Errorf("processing transfers: %w", err)
	}

	finished := time.Now()
	summary := core.RunSummary{
		Run:        runID,
		Scenario:   "jobs",
		Messages:   pipe.Messages,
		Producers:  1,
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
		fluxMgr.WriteThroughput(runID, "jobs", summary.Messages, summary.Duration)
	}

	logger.Info().
		Str("run", runID).
		Dur("duration", summary.Duration).
		Msg("jobs run complete")
	return nil
}
