package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/user"
	"github.com/fekuna/omnipos-retail-service/internal/user/dto"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockRepo) FindAll(ctx context.Context, f *dto.UserFilters) ([]model.User, int, error) {
	args := m.Called(ctx, f)
	u, _ := args.Get(0).([]model.User)
	return u, args.Int(1), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newUseCase(repo *mockRepo) user.UseCase {
	return NewUserUseCase(repo, logger.NewNop(), WithHashCost(bcrypt.MinCost))
}

func TestCreateUser_HashesPassword(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByEmail", mock.Anything, "dewi@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	u, err := newUseCase(repo).CreateUser(context.Background(), &dto.CreateUserInput{
		Name: " Dewi ", Email: "dewi@example.com", Phone: "0812", Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Dewi", u.Name)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")))
	repo.AssertExpectations(t)
}

func TestCreateUser_Validation(t *testing.T) {
	repo := new(mockRepo)
	uc := newUseCase(repo)

	cases := []dto.CreateUserInput{
		{Email: "a@b.c", Phone: "1", Password: "x"},
		{Name: "A", Phone: "1", Password: "x"},
		{Name: "A", Email: "a@b.c", Password: "x"},
		{Name: "A", Email: "a@b.c", Phone: "1"},
		{Name: "A", Email: "not-an-email", Phone: "1", Password: "x"},
		{Name: "A", Email: "a@b.c", Phone: "1", Password: strings.Repeat("x", 73)},
	}
	for _, in := range cases {
		repo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
		_, err := uc.CreateUser(context.Background(), &in)
		assert.ErrorIs(t, err, user.ErrInvalidUser, "%+v", in)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_DuplicateEmailAnyCase(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByEmail", mock.Anything, "DEWI@example.com").Return(&model.User{BaseModel: model.BaseModel{ID: "u1"}, Email: "dewi@example.com"}, nil)

	_, err := newUseCase(repo).CreateUser(context.Background(), &dto.CreateUserInput{
		Name: "Dewi", Email: "DEWI@example.com", Phone: "0812", Password: "pw",
	})
	assert.ErrorIs(t, err, user.ErrEmailExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateUser_Partial(t *testing.T) {
	repo := new(mockRepo)
	existing := &model.User{BaseModel: model.BaseModel{ID: "u1"}, Name: "Dewi", Email: "dewi@example.com", Phone: "0812", PasswordHash: "old"}
	repo.On("FindByID", mock.Anything, "u1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "Dewi" && u.Phone == "0899" && u.PasswordHash == "old"
	})).Return(nil)

	phone := "0899"
	u, err := newUseCase(repo).UpdateUser(context.Background(), &dto.UpdateUserInput{ID: "u1", Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "0899", u.Phone)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUpdateUser_EmailRechecked(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", mock.Anything, "u1").Return(&model.User{BaseModel: model.BaseModel{ID: "u1"}, Email: "dewi@example.com"}, nil)
	repo.On("FindByEmail", mock.Anything, "budi@example.com").Return(&model.User{BaseModel: model.BaseModel{ID: "u2"}}, nil)

	email := "budi@example.com"
	_, err := newUseCase(repo).UpdateUser(context.Background(), &dto.UpdateUserInput{ID: "u1", Email: &email})
	assert.ErrorIs(t, err, user.ErrEmailExists)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUser_ChangesPassword(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", mock.Anything, "u1").Return(&model.User{BaseModel: model.BaseModel{ID: "u1"}, PasswordHash: "old"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	pw := "n3w"
	u, err := newUseCase(repo).UpdateUser(context.Background(), &dto.UpdateUserInput{ID: "u1", Password: &pw})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("n3w")))
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := newUseCase(repo).UpdateUser(context.Background(), &dto.UpdateUserInput{ID: "ghost"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Delete", mock.Anything, "u1").Return(nil)
	repo.On("Delete", mock.Anything, "ghost").Return(user.ErrUserNotFound)

	uc := newUseCase(repo)
	assert.NoError(t, uc.DeleteUser(context.Background(), "u1"))
	assert.ErrorIs(t, uc.DeleteUser(context.Background(), "ghost"), user.ErrUserNotFound)
}
