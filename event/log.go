package event

import (
	"sync"

	"github.com/ontio/ontology-eventbus/actor"
	"github.com/saveio/themis/common/log"
)

// Log. append-only per-transaction event record. An optional actor PID
// receives every committed event for external observers.
type Log struct {
	entries []Event
	sinkPid *actor.PID
	lock    sync.RWMutex
}

func NewLog() *Log {
	return &Log{}
}

// SetSinkPid. register the observer actor, a global PID receiving
// fire-and-forget messages
func (this *Log) SetSinkPid(pid *actor.PID) {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.sinkPid = pid
}

// Append. record committed events, called once per successful command
func (this *Log) Append(events ...Event) {
	if len(events) == 0 {
		return
	}
	this.lock.Lock()
	this.entries = append(this.entries, events...)
	pid := this.sinkPid
	this.lock.Unlock()
	for _, ev := range events {
		log.Debugf("event emitted: %s %+v", ev.Name(), ev)
		if pid != nil {
			pid.Tell(ev)
		}
	}
}

// Entries. everything appended so far
func (this *Log) Entries() []Event {
	this.lock.RLock()
	defer this.lock.RUnlock()
	out := make([]Event, len(this.entries))
	copy(out, this.entries)
	return out
}

// TakeEntries. drain the log, used by tests and block builders
func (this *Log) TakeEntries() []Event {
	this.lock.Lock()
	defer this.lock.Unlock()
	out := this.entries
	this.entries = nil
	return out
}
