// Package core holds the plain data types shared between the demo
// pipelines, the storage backends and the monitor. It has no dependencies
// on the rest of the module.
package core

import "time"

// Transfer describes one message observed end to end through a channel:
// committed by a sender, picked up by a receiver.
type Transfer struct {
	Run     string            // run identifier, groups transfers of one scenario run
	Channel string            // channel name as registered with the monitor
	Seq     uint64            // sender-side sequence number, FIFO order
	Payload string            // message payload rendered as text
	Labels  map[string]string // free-form attributes (producer id, worker id)
	SentAt  time.Time         // when Send committed the message
	TakenAt time.Time         // when a receiver dequeued it
	Latency time.Duration     // TakenAt - SentAt
}

// RunSummary describes one completed scenario run.
type RunSummary struct {
	Run        string
	Scenario   string
	Messages   int
	Producers  int
	Consumers  int
	Capacity   int
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
}
