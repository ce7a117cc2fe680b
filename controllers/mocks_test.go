package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-delivery-api/middleware"
	"food-delivery-api/models"
	"food-delivery-api/store"
)

type mockUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	clone.Cart = make([]models.CartLine, len(u.Cart))
	copy(clone.Cart, u.Cart)
	clone.Favourites = make([]primitive.ObjectID, len(u.Favourites))
	copy(clone.Favourites, u.Favourites)
	return &clone
}

func (m *mockUserStore) Insert(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *mockUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(user), nil
}

func (m *mockUserStore) Update(_ context.Context, id primitive.ObjectID, mutate func(*models.User) error) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	updated := cloneUser(user)
	if err := mutate(updated); err != nil {
		return nil, err
	}
	updated.Version++
	m.users[id] = cloneUser(updated)
	return updated, nil
}

// seed adds a user directly, bypassing registration.
func (m *mockUserStore) seed(user models.User) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = cloneUser(&user)
	return user.ID
}

// get returns the stored state of a user.
func (m *mockUserStore) get(t *testing.T, id primitive.ObjectID) *models.User {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	require.True(t, ok, "user %s not in store", id.Hex())
	return cloneUser(user)
}

type mockOrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func (m *mockOrderStore) Insert(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = primitive.NewObjectID()
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockOrderStore) FindByUser(_ context.Context, user primitive.ObjectID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var found []models.Order
	for _, order := range m.orders {
		if order.User == user {
			found = append(found, order)
		}
	}
	return found, nil
}

type mockFoodStore struct {
	mu    sync.Mutex
	foods map[primitive.ObjectID]models.Food
}

func newMockFoodStore(foods ...models.Food) *mockFoodStore {
	m := &mockFoodStore{foods: map[primitive.ObjectID]models.Food{}}
	for _, food := range foods {
		m.foods[food.ID] = food
	}
	return m
}

func (m *mockFoodStore) Insert(_ context.Context, foods []models.Food) ([]models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range foods {
		if foods[i].ID.IsZero() {
			foods[i].ID = primitive.NewObjectID()
		}
		m.foods[foods[i].ID] = foods[i]
	}
	return foods, nil
}

func (m *mockFoodStore) Find(_ context.Context, _ []string, _ string) ([]models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.Food
	for _, food := range m.foods {
		all = append(all, food)
	}
	return all, nil
}

func (m *mockFoodStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	food, ok := m.foods[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &food, nil
}

func (m *mockFoodStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := map[primitive.ObjectID]models.Food{}
	for _, id := range ids {
		if food, ok := m.foods[id]; ok {
			found[id] = food
		}
	}
	return found, nil
}

// authedRequest builds a JSON request carrying an authenticated user id in
// its context, the way the auth middleware would.
func authedRequest(t *testing.T, method, target string, body interface{}, userID primitive.ObjectID) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	return httptest.NewRequest(method, target, &buf)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}
