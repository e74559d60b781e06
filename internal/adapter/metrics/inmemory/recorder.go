package inmemory

import "sync"

type Snapshot struct {
	CommandTotal    uint64            `json:"command_total"`
	CommandSuccess  uint64            `json:"command_success"`
	CommandConflict uint64            `json:"command_conflict"`
	CommandFailure  uint64            `json:"command_failure"`
	ByResultCode    map[string]uint64 `json:"by_result_code"`
}

type Recorder struct {
	mu       sync.Mutex
	success  uint64
	conflict uint64
	failure  uint64
	byResult map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(resultCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byResult[resultCode]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CommandSuccess:  r.success,
		CommandConflict: r.conflict,
		CommandFailure:  r.failure,
		CommandTotal:    r.success + r.conflict + r.failure,
		ByResultCode:    make(map[string]uint64, len(r.byResult)),
	}
	for k, v := range r.byResult {
		out.ByResultCode[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
