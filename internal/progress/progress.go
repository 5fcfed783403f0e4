// Package progress logs window scan progress at a bounded rate.
package progress

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum time between two progress lines.
const DefaultInterval = 2 * time.Second

// Reporter logs scan progress. It satisfies window.Observer.
type Reporter struct {
	log   *slog.Logger
	label string
	every rate.Sometimes
	start time.Time
	now   func() time.Time
}

// New creates a Reporter that logs at most once per interval, plus the first
// and final reports. Elapsed time is measured from the call to New, so create
// it right before the scan starts.
func New(log *slog.Logger, label string, interval time.Duration) *Reporter {
	return newReporter(log, label, interval, time.Now)
}

func newReporter(log *slog.Logger, label string, interval time.Duration, now func() time.Time) *Reporter {
	return &Reporter{
		log:   log,
		label: label,
		every: rate.Sometimes{First: 1, Interval: interval},
		start: now(),
		now:   now,
	}
}

// Observe records that done of total positions have been scanned.
func (r *Reporter) Observe(done, total int) {
	if done >= total {
		r.log.Info(r.label+" complete",
			"windows", humanize.Comma(int64(total)),
			"elapsed", r.now().Sub(r.start).Round(time.Millisecond),
		)
		return
	}
	r.every.Do(func() {
		r.log.Info(r.label,
			"done", humanize.Comma(int64(done)),
			"total", humanize.Comma(int64(total)),
			"percent", humanize.FtoaWithDigits(100*float64(done)/float64(total), 1),
		)
	})
}
