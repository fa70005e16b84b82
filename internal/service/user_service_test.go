package service

import (
	"context"
	"testing"

	"expensetracker/internal/model"
	"expensetracker/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedUser() *model.User {
	return &model.User{
		ID:        uuid.New(),
		Username:  "bob",
		Email:     "bob@x.com",
		Role:      model.RoleUser,
		FirstName: "Bob",
		LastName:  "Jones",
		Gender:    "male",
		Phone:     "0987654321",
	}
}

func updateReq() model.UpdateUserRequest {
	return model.UpdateUserRequest{
		Username:  "Bobby",
		Email:     "Bobby@X.com",
		Role:      model.RoleUser,
		FirstName: "Bobby",
		LastName:  "Jones",
		Gender:    "male",
		Phone:     "0987654321",
	}
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)
	id := uuid.New()

	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetUserByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateUser_NormalizesIdentity(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)
	user := storedUser()

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	got, err := svc.UpdateUser(context.Background(), user.ID, updateReq())

	require.NoError(t, err)
	assert.Equal(t, "bobby", got.Username)
	assert.Equal(t, "bobby@x.com", got.Email)
	assert.Equal(t, "Bobby", got.FirstName)
}

func TestUserService_UpdateUser_Conflict(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)
	user := storedUser()

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	_, err := svc.UpdateUser(context.Background(), user.ID, updateReq())

	assert.ErrorIs(t, err, ErrUserConflict)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)
	id := uuid.New()

	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.UpdateUser(context.Background(), id, updateReq())

	assert.ErrorIs(t, err, ErrUserNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)
	user := storedUser()

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Delete", mock.Anything, user.ID).Return(nil)

	err := svc.DeleteUser(context.Background(), user.ID, uuid.New())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUserService_DeleteUser_Self(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)
	id := uuid.New()

	err := svc.DeleteUser(context.Background(), id, id)

	assert.ErrorIs(t, err, ErrSelfDelete)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)
	id := uuid.New()

	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	err := svc.DeleteUser(context.Background(), id, uuid.New())

	assert.ErrorIs(t, err, ErrUserNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
