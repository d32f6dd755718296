// Package store holds the application state shared by the dashboard
// surface: the authenticated session, the profile document, the product
// catalog, and the cached sales/commission/notification lists. The state is
// only mutated through a closed set of actions applied by a pure reducer;
// each action replaces exactly its own slice.
package store

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/viva4all/viva4all_backend/models"
	"github.com/viva4all/viva4all_backend/utils"
)

// AppState is the full application state. Slices are replaced wholesale on
// refetch; there is no finer-grained invalidation.
type AppState struct {
	AuthUser      *models.AuthSession
	UserData      *models.User
	User          *models.User
	Products      []models.Product
	Loading       bool
	Notifications []models.Notification
	Sales         []models.Sale
	Commissions   []models.Commission
}

// Action is the closed set of state transitions. The unexported method seals
// the interface so the reducer's type switch covers every variant.
type Action interface {
	isAction()
}

type SetAuthUser struct{ Session *models.AuthSession }
type SetUserData struct{ User *models.User }
type SetUser struct{ User *models.User }
type SetProducts struct{ Products []models.Product }
type SetLoading struct{ Loading bool }
type AddNotification struct{ Notification models.Notification }
type RemoveNotification struct{ ID string }
type SetSales struct{ Sales []models.Sale }
type SetCommissions struct{ Commissions []models.Commission }

func (SetAuthUser) isAction()        {}
func (SetUserData) isAction()        {}
func (SetUser) isAction()            {}
func (SetProducts) isAction()        {}
func (SetLoading) isAction()         {}
func (AddNotification) isAction()    {}
func (RemoveNotification) isAction() {}
func (SetSales) isAction()           {}
func (SetCommissions) isAction()     {}

// reduce is the pure transition function. It returns a new state; the input
// is never mutated.
func reduce(s AppState, a Action) AppState {
	switch action := a.(type) {
	case SetAuthUser:
		s.AuthUser = action.Session
	case SetUserData:
		s.UserData = action.User
	case SetUser:
		s.User = action.User
	case SetProducts:
		s.Products = action.Products
	case SetLoading:
		s.Loading = action.Loading
	case AddNotification:
		notifications := make([]models.Notification, 0, len(s.Notifications)+1)
		notifications = append(notifications, s.Notifications...)
		notifications = append(notifications, action.Notification)
		s.Notifications = notifications
	case RemoveNotification:
		notifications := make([]models.Notification, 0, len(s.Notifications))
		for _, n := range s.Notifications {
			if n.ID.Hex() != action.ID {
				notifications = append(notifications, n)
			}
		}
		s.Notifications = notifications
	case SetSales:
		s.Sales = action.Sales
	case SetCommissions:
		s.Commissions = action.Commissions
	}
	return s
}

// Store serializes dispatches over the state. It is constructed once at
// application start and passed by reference; there is no ambient singleton.
type Store struct {
	mu    sync.RWMutex
	state AppState
}

// New returns an empty store
func New() *Store {
	return &Store{}
}

// Dispatch applies an action through the reducer
func (st *Store) Dispatch(a Action) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = reduce(st.state, a)
}

// State returns a snapshot of the current state
func (st *Store) State() AppState {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Rehydrate restores the session and profile slices from the Redis mirror.
// A corrupt mirror is cleared and reported via utils.ErrCorruptCache so the
// caller can force a fresh login.
func (st *Store) Rehydrate(ctx context.Context, rdb *redis.Client, userID string) error {
	session, user, err := utils.LoadSession(ctx, rdb, userID)
	if err != nil {
		return err
	}
	if session == nil || user == nil {
		return nil
	}

	st.Dispatch(SetAuthUser{Session: session})
	st.Dispatch(SetUserData{User: user})
	return nil
}
