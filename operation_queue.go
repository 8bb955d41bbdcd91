package stash

import "sync"

// CommandQueue holds deferred mutations in FIFO order. Deferral and flushing
// both need the queue's exclusive gate, so a flush can never race a system
// body that still holds a Commands handle.
type CommandQueue struct {
	gate     sync.Mutex
	commands []Command
}

func newCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

func (q *CommandQueue) Len() int {
	return len(q.commands)
}

// Flush drains the queue front to back, applying each command against the
// live storage and resources. The first failing command stops the drain and
// its error is returned; commands applied before it stay applied and the
// rest stay queued for a later flush.
func (q *CommandQueue) Flush(sto Storage, res *Resources) error {
	if !q.gate.TryLock() {
		return QueueBorrowedError{}
	}
	defer q.gate.Unlock()
	for len(q.commands) > 0 {
		command := q.commands[0]
		q.commands = q.commands[1:]
		if err := command(sto, res); err != nil {
			return err
		}
	}
	return nil
}

// deferred takes the queue's exclusive gate and hands out the deferral
// handle. The handle keeps the gate until released, which is what makes a
// flush attempted mid-body fail instead of draining under a live system.
func (q *CommandQueue) deferred() (*Commands, error) {
	if !q.gate.TryLock() {
		return nil, QueueBorrowedError{}
	}
	return &Commands{queue: q}, nil
}

// Commands is the deferral handle a system declares to queue mutations that
// need exclusivity unavailable mid-iteration: spawns, destroys, component
// edits across columns the system did not borrow, resource edits.
type Commands struct {
	queue    *CommandQueue
	released bool
}

// Defer appends a command to be applied, in enqueue order, after the system
// body returns.
func (c *Commands) Defer(command Command) {
	c.queue.commands = append(c.queue.commands, command)
}

func (c *Commands) release() {
	if c.released {
		return
	}
	c.released = true
	c.queue.gate.Unlock()
}
