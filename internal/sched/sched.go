/*
 * nouwii - Fixed-pool event scheduler.
 *
 * Copyright 2025, noumidev
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package sched implements the fixed-size event pool and deadline-ordered
// queue described in §4.3: at most 16 live events, coupled to the CPU's
// remaining cycle budget rather than a free-running clock.
package sched

import "fmt"

// MaxEvents is the fixed event-pool capacity (§3); scheduling a 17th live
// event is fatal.
const MaxEvents = 16

// defaultSlice is the cycle budget handed to the CPU when the queue is
// empty (§4.3).
const defaultSlice = 128

// Callback receives the argument it was scheduled with.
type Callback func(arg int)

type event struct {
	inUse     bool
	name      string
	cb        Callback
	arg       int
	remaining int
}

// Scheduler owns the fixed event pool and the ascending-deadline queue of
// pointers into it.
type Scheduler struct {
	pool  [MaxEvents]event
	queue []*event

	// cycleBudget is the CPU's remaining-cycles-in-this-slice counter;
	// Schedule measures new deadlines relative to the end of the slice
	// currently in progress (§4.3: "events are measured from the end of
	// the current slice").
	cycleBudget *int
}

// New wires the scheduler to the CPU's live cycle-budget cell.
func New(cycleBudget *int) *Scheduler {
	return &Scheduler{cycleBudget: cycleBudget}
}

// Reset clears every event slot and the queue (§5: on reset, all event
// slots and queue entries are cleared).
func (s *Scheduler) Reset() {
	for i := range s.pool {
		s.pool[i] = event{}
	}
	s.queue = s.queue[:0]
}

// Schedule allocates a free slot and inserts it into the queue so that it
// sits after the first event with an equal-or-earlier deadline and before
// all later ones (stable insertion, §4.3).
func (s *Scheduler) Schedule(name string, cb Callback, arg int, cyclesFromNow int) {
	slot := s.alloc()
	slot.inUse = true
	slot.name = name
	slot.cb = cb
	slot.arg = arg
	slot.remaining = cyclesFromNow - *s.cycleBudget

	pos := len(s.queue)
	for i, e := range s.queue {
		if slot.remaining < e.remaining {
			pos = i
			break
		}
	}
	s.queue = append(s.queue, nil)
	copy(s.queue[pos+1:], s.queue[pos:])
	s.queue[pos] = slot
}

func (s *Scheduler) alloc() *event {
	for i := range s.pool {
		if !s.pool[i].inUse {
			return &s.pool[i]
		}
	}
	panic(fmt.Sprintf("sched: event pool exhausted (max %d)", MaxEvents))
}

// AnyEvent reports whether the queue is non-empty.
func (s *Scheduler) AnyEvent() bool {
	return len(s.queue) > 0
}

// NextSlice returns the cycle budget to hand the CPU for its next
// execution slice: the head event's remaining cycles, or the default slice
// if the queue is empty.
func (s *Scheduler) NextSlice() int {
	if len(s.queue) == 0 {
		return defaultSlice
	}
	return s.queue[0].remaining
}

// Fire pops the head event (if any) and runs its callback, freeing the
// slot. It does not itself advance the remaining deadlines of the other
// queued events (§4.3 design decision: coarse, sufficient for the small
// number of HLE timers in use).
func (s *Scheduler) Fire() {
	if len(s.queue) == 0 {
		return
	}
	head := s.queue[0]
	s.queue = s.queue[1:]
	head.inUse = false
	head.cb(head.arg)
}
