package progress

import (
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/sirupsen/logrus"
)

// Reporter counts work items across concurrent workers and logs progress
// without flooding the output. Lines are debounced, so bursts of Inc calls
// collapse into an occasional line plus the final one from Done.
type Reporter struct {
	label string
	total uint64
	count uint64
	emit  func(func())
}

func New(label string, total int) *Reporter {
	return &Reporter{
		label: label,
		total: uint64(total),
		emit:  debounce.New(200 * time.Millisecond),
	}
}

// Inc is safe to call from any goroutine.
func (r *Reporter) Inc() {
	atomic.AddUint64(&r.count, 1)
	r.emit(r.report)
}

// Done logs the final tally.
func (r *Reporter) Done() {
	logrus.Infof("%v: %v/%v done", r.label, atomic.LoadUint64(&r.count), r.total)
}

func (r *Reporter) report() {
	logrus.Infof("%v: %v/%v", r.label, atomic.LoadUint64(&r.count), r.total)
}
