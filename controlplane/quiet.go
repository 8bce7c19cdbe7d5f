// Copyright 2026 The XBOX-RGB Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package controlplane

import (
	"sync/atomic"
	"time"
)

// QuietWindow is the single-reader (UDP handler), single-writer (bus
// driver) deadline flag from spec §5: while active, the UDP handler does
// not JSON-parse or apply, only queues the raw frame for after the window
// closes. A monotonic deadline in a single atomic int64 is sufficient, per
// spec's own suggestion, so no mutex is needed on the hot read path.
type QuietWindow struct {
	deadline atomic.Int64 // UnixNano; 0 or past means inactive
}

// Enter requests a quiet window of dur starting now, extending (never
// shortening) any window already in effect.
func (q *QuietWindow) Enter(now time.Time, dur time.Duration) {
	next := now.Add(dur).UnixNano()
	for {
		cur := q.deadline.Load()
		if cur >= next {
			return
		}
		if q.deadline.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Active reports whether the quiet window covers now.
func (q *QuietWindow) Active(now time.Time) bool {
	return now.UnixNano() < q.deadline.Load()
}
