package task

import (
	"strings"
	"sync"
	"time"

	"github.com/yulcat/help-rota/internal/store"
)

const docName = "tasks"

// FileRepo is a persistent task repository. The task list is kept in memory
// newest-first and rewritten to disk in full on every mutation.
type FileRepo struct {
	mu    sync.RWMutex
	st    *store.Store
	pub   Publisher
	tasks []Task
}

func NewFileRepo(st *store.Store, pub Publisher) *FileRepo {
	r := &FileRepo{st: st, pub: pub, tasks: []Task{}}
	r.st.Load(docName, &r.tasks)
	if r.tasks == nil {
		r.tasks = []Task{}
	}
	return r
}

func (r *FileRepo) snapshotLocked() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// commitLocked persists the list and returns the snapshot to broadcast.
func (r *FileRepo) commitLocked() ([]Task, error) {
	if err := r.st.Save(docName, r.tasks); err != nil {
		return nil, err
	}
	return r.snapshotLocked(), nil
}

// publish runs outside the repo mutex so a subscriber snapshot taken under
// the hub lock can never wait on a mutation that is waiting on the hub.
func (r *FileRepo) publish(snap []Task) {
	if r.pub == nil {
		return
	}
	r.pub.Publish(Channel, snap)
}

func (r *FileRepo) indexLocked(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *FileRepo) List() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *FileRepo) Create(in CreateInput) (Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Task{}, ErrEmptyTitle
	}

	t := Task{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		DesiredDate: in.DesiredDate,
		DesiredTime: in.DesiredTime,
		Twin:        in.Twin,
		Status:      StatusWaiting,
		CreatedAt:   time.Now(),
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}

	r.mu.Lock()
	// Newest first.
	r.tasks = append([]Task{t}, r.tasks...)
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return Task{}, err
	}
	r.publish(snap)
	return t, nil
}

func (r *FileRepo) Update(id string, p Patch) (Task, error) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return Task{}, ErrNotFound
	}
	applyPatch(&r.tasks[i], p)
	t := r.tasks[i]
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return Task{}, err
	}
	r.publish(snap)
	return t, nil
}

// Delete is idempotent: removing an absent id succeeds without saving.
func (r *FileRepo) Delete(id string) error {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return nil
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.publish(snap)
	return nil
}

// Claim reserves the task for helperName regardless of its current status.
// Concurrent claims are last write wins, not rejected.
func (r *FileRepo) Claim(id, helperName string) (Task, error) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return Task{}, ErrNotFound
	}
	now := time.Now()
	r.tasks[i].Status = StatusReserved
	r.tasks[i].ClaimedBy = &helperName
	r.tasks[i].ClaimedAt = &now
	t := r.tasks[i]
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return Task{}, err
	}
	r.publish(snap)
	return t, nil
}

// Unclaim returns the task to waiting and clears the claim fields. A done
// task may be unclaimed too; its completedAt is left as-is.
func (r *FileRepo) Unclaim(id string) (Task, error) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return Task{}, ErrNotFound
	}
	r.tasks[i].Status = StatusWaiting
	r.tasks[i].ClaimedBy = nil
	r.tasks[i].ClaimedAt = nil
	t := r.tasks[i]
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return Task{}, err
	}
	r.publish(snap)
	return t, nil
}

// Complete marks the task done, leaving claimedBy untouched.
func (r *FileRepo) Complete(id string) (Task, error) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return Task{}, ErrNotFound
	}
	now := time.Now()
	r.tasks[i].Status = StatusDone
	r.tasks[i].CompletedAt = &now
	t := r.tasks[i]
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return Task{}, err
	}
	r.publish(snap)
	return t, nil
}
