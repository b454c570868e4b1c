package visit

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yulcat/help-rota/internal/store"
)

const docName = "visits"

var (
	ErrNotFound      = errors.New("visit not found")
	ErrAlreadyBooked = errors.New("visit already booked")
)

type CreateInput struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type Repo interface {
	List() []Visit
	Create(in CreateInput) (Visit, error)
	Book(id, helperName string) (Visit, error)
	Unbook(id string) (Visit, error)
	Delete(id string) error
}

type Publisher interface {
	Publish(channel string, payload any)
}

func newID() string {
	return "visit_" + uuid.NewString()
}

// FileRepo is a persistent visit repository, insertion-ordered.
type FileRepo struct {
	mu     sync.RWMutex
	st     *store.Store
	pub    Publisher
	visits []Visit
}

func NewFileRepo(st *store.Store, pub Publisher) *FileRepo {
	r := &FileRepo{st: st, pub: pub, visits: []Visit{}}
	r.st.Load(docName, &r.visits)
	if r.visits == nil {
		r.visits = []Visit{}
	}
	return r
}

func (r *FileRepo) snapshotLocked() []Visit {
	out := make([]Visit, len(r.visits))
	copy(out, r.visits)
	return out
}

// commitLocked persists the list and returns the snapshot to broadcast.
func (r *FileRepo) commitLocked() ([]Visit, error) {
	if err := r.st.Save(docName, r.visits); err != nil {
		return nil, err
	}
	return r.snapshotLocked(), nil
}

// publish runs outside the repo mutex so a subscriber snapshot taken under
// the hub lock can never wait on a mutation that is waiting on the hub.
func (r *FileRepo) publish(snap []Visit) {
	if r.pub == nil {
		return
	}
	r.pub.Publish(Channel, snap)
}

func (r *FileRepo) indexLocked(id string) int {
	for i := range r.visits {
		if r.visits[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *FileRepo) List() []Visit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *FileRepo) Create(in CreateInput) (Visit, error) {
	v := Visit{
		ID:        newID(),
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.visits = append(r.visits, v)
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return Visit{}, err
	}
	r.publish(snap)
	return v, nil
}

// Book is first-booker-wins: a slot that already has a booker is never
// overwritten.
func (r *FileRepo) Book(id, helperName string) (Visit, error) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return Visit{}, ErrNotFound
	}
	if r.visits[i].BookedBy != nil {
		r.mu.Unlock()
		return Visit{}, ErrAlreadyBooked
	}
	now := time.Now()
	r.visits[i].BookedBy = &helperName
	r.visits[i].BookedAt = &now
	v := r.visits[i]
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return Visit{}, err
	}
	r.publish(snap)
	return v, nil
}

func (r *FileRepo) Unbook(id string) (Visit, error) {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return Visit{}, ErrNotFound
	}
	r.visits[i].BookedBy = nil
	r.visits[i].BookedAt = nil
	v := r.visits[i]
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return Visit{}, err
	}
	r.publish(snap)
	return v, nil
}

// Delete is idempotent: removing an absent id succeeds without saving.
func (r *FileRepo) Delete(id string) error {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return nil
	}
	r.visits = append(r.visits[:i], r.visits[i+1:]...)
	snap, err := r.commitLocked()
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.publish(snap)
	return nil
}
