// Package task provides the two concurrency collaborators assumed by the
// mailbox package: spawning a unit of work concurrently, and scheduling a
// unit of work onto a designated single thread.
package task

import (
	"runtime"
	"sync"

	"github.com/OCAP2/mailbox/pkg/mailbox"
)

// Spawn runs fn concurrently with the caller. There is no ordering
// guarantee relative to the caller beyond "eventually runs".
func Spawn(fn func()) {
	go fn()
}

// primaryBacklog bounds how many scheduled tasks may be pending on a
// Primary before Run applies backpressure.
const primaryBacklog = 64

// Primary is a designated single-thread task runner: every task passed to
// Run executes on the same locked OS thread, one at a time, in submission
// order. It is the moral equivalent of a UI main thread.
type Primary struct {
	tasks *mailbox.Closable[func()]
	done  chan struct{}
}

// NewPrimary starts a primary runner. Callers own its lifecycle and should
// call Shutdown when done.
func NewPrimary() *Primary {
	tasks, _ := mailbox.NewClosable[func()](primaryBacklog)
	p := &Primary{
		tasks: tasks,
		done:  make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *Primary) loop() {
	runtime.LockOSThread()
	defer close(p.done)
	for fn := range p.tasks.All() {
		fn()
	}
}

// Run schedules fn to run on the primary thread, asynchronously with
// respect to the caller. Blocks only if the backlog is full. Calling Run
// after Shutdown is a caller error, same as sending on a closed channel.
func (p *Primary) Run(fn func()) {
	p.tasks.Send(fn)
}

// Shutdown stops the runner after draining already-scheduled tasks and
// waits for the loop to exit. Idempotent.
func (p *Primary) Shutdown() {
	p.tasks.Close()
	<-p.done
}

var (
	defaultPrimary     *Primary
	defaultPrimaryOnce sync.Once
)

// RunOnPrimary schedules fn onto a process-wide default Primary, starting
// it on first use. The default runner lives for the rest of the process.
func RunOnPrimary(fn func()) {
	defaultPrimaryOnce.Do(func() {
		defaultPrimary = NewPrimary()
	})
	defaultPrimary.Run(fn)
}
