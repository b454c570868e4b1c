package helper

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yulcat/help-rota/internal/store"
)

const docName = "helpers"

var ErrBlankName = errors.New("helper name is required")

type Repo interface {
	List() []Helper
	Register(name string) (Helper, error)
}

type Publisher interface {
	Publish(channel string, payload any)
}

func newID() string {
	return "helper_" + uuid.NewString()
}

// FileRepo is a persistent helper roster, insertion-ordered.
type FileRepo struct {
	mu      sync.RWMutex
	st      *store.Store
	pub     Publisher
	helpers []Helper
}

func NewFileRepo(st *store.Store, pub Publisher) *FileRepo {
	r := &FileRepo{st: st, pub: pub, helpers: []Helper{}}
	r.st.Load(docName, &r.helpers)
	if r.helpers == nil {
		r.helpers = []Helper{}
	}
	return r
}

func (r *FileRepo) snapshotLocked() []Helper {
	out := make([]Helper, len(r.helpers))
	copy(out, r.helpers)
	return out
}

func (r *FileRepo) List() []Helper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Register creates a helper for a new trimmed name. Re-registering an
// existing name returns the existing record unchanged: no save, no
// broadcast.
func (r *FileRepo) Register(name string) (Helper, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Helper{}, ErrBlankName
	}

	r.mu.Lock()
	for _, h := range r.helpers {
		if h.Name == name {
			r.mu.Unlock()
			return h, nil
		}
	}

	h := Helper{
		ID:       newID(),
		Name:     name,
		JoinedAt: time.Now(),
	}
	r.helpers = append(r.helpers, h)
	err := r.st.Save(docName, r.helpers)
	snap := r.snapshotLocked()
	r.mu.Unlock()
	if err != nil {
		return Helper{}, err
	}
	// Publish outside the repo mutex so a subscriber snapshot taken under
	// the hub lock can never wait on a mutation that is waiting on the hub.
	if r.pub != nil {
		r.pub.Publish(Channel, snap)
	}
	return h, nil
}
