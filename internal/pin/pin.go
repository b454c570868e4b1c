// Package pin holds the shared PIN used to gate writes from the page shell.
// It is a plain string-equality check, not a security mechanism.
package pin

import (
	"errors"
	"sync"

	"github.com/yulcat/help-rota/internal/store"
)

const docName = "config"

var ErrPinMismatch = errors.New("pin mismatch")

type document struct {
	PIN string `json:"pin"`
}

type Gate struct {
	mu  sync.RWMutex
	st  *store.Store
	doc document
}

// NewGate loads the stored PIN, seeding defaultPIN on first run. A stored
// document always wins, even one holding an empty PIN.
func NewGate(st *store.Store, defaultPIN string) *Gate {
	g := &Gate{st: st}
	if !g.st.Load(docName, &g.doc) {
		g.doc.PIN = defaultPIN
	}
	return g
}

// Verify is a pure check with no side effects.
func (g *Gate) Verify(candidate string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return candidate == g.doc.PIN
}

// Set replaces the PIN when oldPIN matches the current one. The PIN is not
// a subscribed channel, so there is no broadcast.
func (g *Gate) Set(oldPIN, newPIN string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if oldPIN != g.doc.PIN {
		return ErrPinMismatch
	}
	g.doc.PIN = newPIN
	return g.st.Save(docName, g.doc)
}
