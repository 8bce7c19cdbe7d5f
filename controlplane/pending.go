// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package controlplane

import (
	"sync"
	"time"

	"github.com/Darkone83/XBOX-RGB/rgbconfig"
)

// configJob is a pending cfg-apply request: the raw overlay payload and
// whether it should persist (save) or not (preview).
type configJob struct {
	raw  []byte
	save bool
}

// Pending is the tagged-union coalescing queue from spec §4.8/§9: UDP and
// HTTP handlers enqueue at most one item per kind, overwriting older ones
// (latest-wins), and the Scheduler drains it via Process in priority order
// raw-deferred -> reset -> counts -> cfg.
type Pending struct {
	mu sync.Mutex

	deferred *configJob // arrived during a quiet window
	reset    bool
	counts   *[4]uint16
	cfg      *configJob
}

// QueueConfig enqueues a preview/save request, replacing any prior pending
// cfg job (latest-wins).
func (p *Pending) QueueConfig(raw []byte, save bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = &configJob{raw: raw, save: save}
}

// QueueDeferred enqueues a cfg job that arrived during a quiet window.
func (p *Pending) QueueDeferred(raw []byte, save bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deferred = &configJob{raw: raw, save: save}
}

// QueueCounts enqueues a setCounts request, replacing any prior one.
func (p *Pending) QueueCounts(c [4]uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts = &c
}

// QueueReset marks a reset as pending; reset is a boolean flag, not a
// queue, so repeated resets before the next Process collapse to one.
func (p *Pending) QueueReset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset = true
}

// Process performs at most one heavy item within budget, in priority order
// raw-deferred -> reset -> counts -> cfg, per spec §4.8. budget is accepted
// for interface parity with the spec's processPending(budget_us); every
// job this package performs is a single in-memory struct copy plus at most
// one file rename, comfortably inside any realistic budget, so it is not
// further subdivided.
func (p *Pending) Process(store *rgbconfig.Store, budget time.Duration) {
	p.mu.Lock()
	var job func()
	switch {
	case p.deferred != nil:
		d := p.deferred
		p.deferred = nil
		job = func() { applyConfigJob(store, d) }
	case p.reset:
		p.reset = false
		job = func() { store.Reset() }
	case p.counts != nil:
		c := *p.counts
		p.counts = nil
		job = func() { store.SetCounts(c) }
	case p.cfg != nil:
		d := p.cfg
		p.cfg = nil
		job = func() { applyConfigJob(store, d) }
	}
	p.mu.Unlock()
	if job != nil {
		job()
	}
}

func applyConfigJob(store *rgbconfig.Store, j *configJob) {
	if j.save {
		store.ApplySave(j.raw)
	} else {
		store.ApplyPreview(j.raw)
	}
}
