package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-service/internal/auth"
	"user-service/internal/entity"
	"user-service/internal/repository"
)

type fakeStore struct {
	users    map[int]*entity.User
	nextID   int
	getCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[int]*entity.User{}, nextID: 1}
}

func (f *fakeStore) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	f.getCalls++
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	stored, ok := f.users[user.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.Age = user.Age
	return stored, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeCache struct {
	entries     map[int]*entity.User
	invalidated []int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int]*entity.User{}}
}

func (f *fakeCache) Get(ctx context.Context, id int) (*entity.User, bool) {
	user, ok := f.entries[id]
	return user, ok
}

func (f *fakeCache) Set(ctx context.Context, user *entity.User) {
	f.entries[user.ID] = user
}

func (f *fakeCache) Invalidate(ctx context.Context, id int) {
	delete(f.entries, id)
	f.invalidated = append(f.invalidated, id)
}

type fakePublisher struct {
	actions []string
}

func (f *fakePublisher) PublishUserEvent(ctx context.Context, user *entity.User, action string) error {
	f.actions = append(f.actions, action)
	return nil
}

func TestUserService_CreateUserHashesPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	hasher := auth.NewHasher("hash-secret")
	pub := &fakePublisher{}
	svc := NewUserService(store, hasher, nil, pub)

	created, err := svc.CreateUser(context.Background(), &entity.User{Email: "a@x.com"}, "secret1")
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)

	assert.NotEqual(t, "secret1", created.PasswordHash)
	ok, err := hasher.Verify("secret1", created.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []string{"created"}, pub.actions)
}

func TestUserService_CreateUserMissingPassword(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeStore(), auth.NewHasher("hash-secret"), nil, nil)

	_, err := svc.CreateUser(context.Background(), &entity.User{Email: "a@x.com"}, "")
	assert.ErrorIs(t, err, ErrMissingPassword)
}

func TestUserService_GetUserByIDUsesCache(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users[5] = &entity.User{ID: 5, Email: "a@x.com"}
	store.nextID = 6
	c := newFakeCache()
	svc := NewUserService(store, auth.NewHasher("hash-secret"), c, nil)

	user, err := svc.GetUserByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, user.ID)
	assert.Equal(t, 1, store.getCalls)

	// Second read is served from cache.
	_, err = svc.GetUserByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, store.getCalls)
}

func TestUserService_GetUserByIDNotFound(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeStore(), auth.NewHasher("hash-secret"), nil, nil)

	_, err := svc.GetUserByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserService_UpdateUserInvalidatesCache(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users[5] = &entity.User{ID: 5, Email: "a@x.com"}
	store.nextID = 6
	c := newFakeCache()
	c.Set(context.Background(), store.users[5])
	pub := &fakePublisher{}
	svc := NewUserService(store, auth.NewHasher("hash-secret"), c, pub)

	_, err := svc.UpdateUser(context.Background(), &entity.User{ID: 5, FirstName: "Grace", Email: "g@x.com"})
	require.NoError(t, err)

	assert.Equal(t, []int{5}, c.invalidated)
	assert.Equal(t, []string{"updated"}, pub.actions)
}

func TestUserService_DeleteUserInvalidatesAndPublishes(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users[5] = &entity.User{ID: 5, Email: "a@x.com"}
	store.nextID = 6
	c := newFakeCache()
	pub := &fakePublisher{}
	svc := NewUserService(store, auth.NewHasher("hash-secret"), c, pub)

	require.NoError(t, svc.DeleteUser(context.Background(), 5))

	assert.Equal(t, []int{5}, c.invalidated)
	assert.Equal(t, []string{"deleted"}, pub.actions)
	assert.Empty(t, store.users)
}

func TestUserService_DeleteUserNotFound(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeStore(), auth.NewHasher("hash-secret"), nil, nil)

	err := svc.DeleteUser(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
