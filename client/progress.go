package client

import "github.com/google/uuid"

// Phase identifies a pipeline stage in a progress event.
type Phase string

const (
	PhaseEncrypting  Phase = "encrypting"
	PhaseUploading   Phase = "uploading"
	PhaseRegistering Phase = "registering"
	PhaseDownloading Phase = "downloading"
	PhaseDecrypting  Phase = "decrypting"
	PhaseComplete    Phase = "complete"
)

// ProgressEvent reports pipeline progress. Within a phase, Percent is
// non-decreasing; phases arrive in pipeline order and none is skipped when it
// applies. OperationID correlates all events of one Upload or Download call.
type ProgressEvent struct {
	OperationID string
	Phase       Phase
	Percent     float64
	BytesDone   int64
	BytesTotal  int64
}

// ProgressFunc receives progress events for one operation. It is invoked
// synchronously from the pipeline goroutine and should return quickly.
type ProgressFunc func(ProgressEvent)

// emitter produces the progress event sequence for one operation, enforcing
// the monotonic-percent-within-phase guarantee.
type emitter struct {
	opID    string
	fn      ProgressFunc
	phase   Phase
	percent float64
}

func newEmitter(fn ProgressFunc) *emitter {
	return &emitter{opID: uuid.NewString(), fn: fn}
}

// emit sends one event, clamping percent so it never exceeds 100 or moves
// backwards within the current phase.
func (e *emitter) emit(phase Phase, percent float64, done, total int64) {
	if phase == e.phase && percent < e.percent {
		percent = e.percent
	}
	if percent > 100 {
		percent = 100
	}
	e.phase = phase
	e.percent = percent

	if e.fn != nil {
		e.fn(ProgressEvent{
			OperationID: e.opID,
			Phase:       phase,
			Percent:     percent,
			BytesDone:   done,
			BytesTotal:  total,
		})
	}
}

// emitBytes converts transport byte counters into a percent event. When the
// total is unknown the percent holds at its current value; the phase's
// closing emit carries it to 100.
func (e *emitter) emitBytes(phase Phase, done, total int64) {
	if total > 0 {
		e.emit(phase, float64(done)/float64(total)*100, done, total)
		return
	}
	e.emit(phase, e.percent, done, total)
}
