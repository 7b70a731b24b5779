package memory

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/bankoffice/pkg/repository"
)

// UoW implements repository.UnitOfWork over a Store. Do holds the store lock
// for its whole duration, so units of work are serialized.
type UoW struct {
	store        *Store
	tx           *state
	repoRegistry map[reflect.Type]func(*UoW) any
}

// NewUoW creates a UnitOfWork backed by store.
func NewUoW(store *Store) *UoW {
	return &UoW{
		store: store,
		repoRegistry: map[reflect.Type]func(*UoW) any{
			repository.AccountRepositoryType:     func(u *UoW) any { return &accountRepository{u: u} },
			repository.TransactionRepositoryType: func(u *UoW) any { return &transactionRepository{u: u} },
			repository.ClientRepositoryType:      func(u *UoW) any { return &clientRepository{u: u} },
		},
	}
}

// Do runs fn against a private copy of the store and commits it when fn
// returns nil. A nested Do joins the enclosing unit of work.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	txnUow := &UoW{store: u.store, tx: u.store.state.clone(), repoRegistry: u.repoRegistry}
	if err := fn(txnUow); err != nil {
		return err
	}
	u.store.state = txnUow.tx
	return nil
}

// GetRepository returns a repository bound to the current unit of work.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u), nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	repo, err := u.GetRepository(repository.AccountRepositoryType)
	if err != nil {
		return nil, err
	}
	return repo.(repository.AccountRepository), nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	repo, err := u.GetRepository(repository.TransactionRepositoryType)
	if err != nil {
		return nil, err
	}
	return repo.(repository.TransactionRepository), nil
}

// ClientRepository implements repository.UnitOfWork.
func (u *UoW) ClientRepository() (repository.ClientRepository, error) {
	repo, err := u.GetRepository(repository.ClientRepositoryType)
	if err != nil {
		return nil, err
	}
	return repo.(repository.ClientRepository), nil
}

// view runs fn on the state visible to u. Outside Do the store lock is taken
// for the single call.
func (u *UoW) view(fn func(s *state) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(u.store.state)
}

var _ repository.UnitOfWork = (*UoW)(nil)
