package waygate

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Guard decides whether a proposed navigation may proceed. It receives the
// destination route, the origin route, and the request's parameter mapping.
// Returning false, or any error, rejects the transition. Guards run
// strictly in registration order, one at a time, so a guard may rely on
// side effects of the guards registered before it.
type Guard func(ctx context.Context, to, from string, params Params) (bool, error)

// GuardHandle identifies one registration for removal. Registering the
// same function twice yields two handles, and the guard runs twice.
type GuardHandle uint64

type guardEntry struct {
	id GuardHandle
	fn Guard
}

// AddGuard appends a guard to the evaluation sequence and returns its
// removal handle.
func (p *Pipeline) AddGuard(g Guard) GuardHandle {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextGuard++
	p.guards = append(p.guards, guardEntry{id: p.nextGuard, fn: g})
	return p.nextGuard
}

// RemoveGuard removes the registration identified by h. Removing a handle
// that is not registered is a no-op.
func (p *Pipeline) RemoveGuard(h GuardHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.guards {
		if e.id == h {
			p.guards = append(p.guards[:i], p.guards[i+1:]...)
			return
		}
	}
}

// ClearGuards drops every registered guard.
func (p *Pipeline) ClearGuards() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.guards = nil
}

// evaluateGuards runs the sequence against a proposed transition.
// The sequence is snapshotted up front; registrations made while
// evaluation is in flight apply to the next navigation.
//
// The first falsy result short-circuits. A guard error or panic never
// propagates: it is logged and downgraded to a rejection.
func (p *Pipeline) evaluateGuards(ctx context.Context, to, from string, params Params) *GuardRejectedError {
	p.mu.Lock()
	entries := make([]guardEntry, len(p.guards))
	copy(entries, p.guards)
	p.mu.Unlock()

	for i, e := range entries {
		ok, err := runGuard(ctx, e.fn, to, from, params)
		if err != nil {
			p.logStep(logrus.Fields{"from": from, "to": to, "guard": i}, "guard error, rejecting: "+err.Error())
			return &GuardRejectedError{From: from, To: to, Guard: i, Cause: err}
		}
		if !ok {
			return &GuardRejectedError{From: from, To: to, Guard: i}
		}
	}
	return nil
}

// runGuard invokes one guard, converting a panic into an error result.
func runGuard(ctx context.Context, g Guard, to, from string, params Params) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("guard panic: %v", r)
		}
	}()
	return g(ctx, to, from, params)
}
