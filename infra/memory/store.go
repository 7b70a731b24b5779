// Package memory provides a process local UnitOfWork. It backs the service
// and handler tests and the DATABASE_DRIVER=memory mode of the server.
package memory

import (
	"sync"

	"github.com/amirasaad/bankoffice/pkg/domain/account"
	"github.com/amirasaad/bankoffice/pkg/domain/client"
)

// state is one consistent version of every table.
type state struct {
	seq          uint
	accounts     map[uint]*account.Account
	transactions map[uint]*account.Transaction
	clients      map[uint]*client.Client
}

func newState() *state {
	return &state{
		accounts:     make(map[uint]*account.Account),
		transactions: make(map[uint]*account.Transaction),
		clients:      make(map[uint]*client.Client),
	}
}

func (s *state) nextID() uint {
	s.seq++
	return s.seq
}

func (s *state) clone() *state {
	c := &state{
		seq:          s.seq,
		accounts:     make(map[uint]*account.Account, len(s.accounts)),
		transactions: make(map[uint]*account.Transaction, len(s.transactions)),
		clients:      make(map[uint]*client.Client, len(s.clients)),
	}
	for id, a := range s.accounts {
		c.accounts[id] = copyAccount(a)
	}
	for id, tx := range s.transactions {
		c.transactions[id] = copyTransaction(tx)
	}
	for id, cl := range s.clients {
		c.clients[id] = copyClient(cl)
	}
	return c
}

// Store owns the committed state. Writes made inside UoW.Do are applied to a
// private copy that replaces the committed state only when fn succeeds.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

func copyAccount(a *account.Account) *account.Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.ClientID != nil {
		id := *a.ClientID
		c.ClientID = &id
	}
	if a.ClosedOn != nil {
		day := *a.ClosedOn
		c.ClosedOn = &day
	}
	return &c
}

func copyTransaction(tx *account.Transaction) *account.Transaction {
	c := *tx
	return &c
}

func copyClient(cl *client.Client) *client.Client {
	c := *cl
	if cl.MainClientID != nil {
		id := *cl.MainClientID
		c.MainClientID = &id
	}
	c.Account = nil
	return &c
}
