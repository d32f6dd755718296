package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/viva4all/viva4all_backend/models"
)

func TestDispatchSetAuthUser(t *testing.T) {
	st := New()

	session := &models.AuthSession{UserID: "abc", Email: "ama@example.com", Role: models.RoleMarketer}
	st.Dispatch(SetAuthUser{Session: session})
	assert.Equal(t, session, st.State().AuthUser)

	st.Dispatch(SetAuthUser{Session: nil})
	assert.Nil(t, st.State().AuthUser)
}

func TestDispatchReplacesOnlyItsSlice(t *testing.T) {
	st := New()

	products := []models.Product{{Name: "Starter Pack", Price: 150}}
	sales := []models.Sale{{Total: 99}}

	st.Dispatch(SetProducts{Products: products})
	st.Dispatch(SetSales{Sales: sales})

	state := st.State()
	assert.Equal(t, products, state.Products)
	assert.Equal(t, sales, state.Sales)
	assert.Nil(t, state.Commissions)

	st.Dispatch(SetSales{Sales: []models.Sale{}})
	state = st.State()
	assert.Empty(t, state.Sales)
	assert.Equal(t, products, state.Products)
}

func TestAddAndRemoveNotification(t *testing.T) {
	st := New()

	first := models.Notification{ID: primitive.NewObjectID(), Type: models.NotificationInfo, Message: "one"}
	second := models.Notification{ID: primitive.NewObjectID(), Type: models.NotificationSuccess, Message: "two"}

	st.Dispatch(AddNotification{Notification: first})
	st.Dispatch(AddNotification{Notification: second})
	assert.Len(t, st.State().Notifications, 2)

	st.Dispatch(RemoveNotification{ID: first.ID.Hex()})
	remaining := st.State().Notifications
	assert.Len(t, remaining, 1)
	assert.Equal(t, "two", remaining[0].Message)

	st.Dispatch(RemoveNotification{ID: "does-not-exist"})
	assert.Len(t, st.State().Notifications, 1)
}

func TestAddNotificationDoesNotMutateSnapshots(t *testing.T) {
	st := New()

	st.Dispatch(AddNotification{Notification: models.Notification{ID: primitive.NewObjectID(), Message: "one"}})
	snapshot := st.State()

	st.Dispatch(AddNotification{Notification: models.Notification{ID: primitive.NewObjectID(), Message: "two"}})

	assert.Len(t, snapshot.Notifications, 1)
	assert.Len(t, st.State().Notifications, 2)
}

func TestSetLoading(t *testing.T) {
	st := New()
	assert.False(t, st.State().Loading)

	st.Dispatch(SetLoading{Loading: true})
	assert.True(t, st.State().Loading)

	st.Dispatch(SetLoading{Loading: false})
	assert.False(t, st.State().Loading)
}
