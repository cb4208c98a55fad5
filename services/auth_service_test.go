package services_test

import (
	"context"
	"testing"

	"motogear-backend/models"
	"motogear-backend/repository"
	"motogear-backend/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// --- Mock Repository ---

type mockUserRepo struct {
	users  map[string]*models.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, u *models.User) error {
	if _, exists := m.users[u.Email]; exists {
		return repository.ErrDuplicateKey
	}
	u.ID = m.nextID
	m.nextID++
	stored := *u
	m.users[u.Email] = &stored
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- Helpers ---

var testSecret = []byte("test-secret")

func newAuthService(repo repository.UserRepository) services.AuthService {
	return services.NewAuthService(repo, testSecret, zap.NewNop())
}

func sampleRegister() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:           "rider@example.com",
		Password:        "s3cret-pass",
		PasswordConfirm: "s3cret-pass",
		Name:            "Rider",
		Phone:           "010-1234-5678",
		Birthdate:       "1990-05-14",
		Gender:          models.UserGenderMale,
	}
}

// --- Tests ---

func TestRegister(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	user, svcErr := svc.Register(context.Background(), sampleRegister())
	assert.Nil(t, svcErr)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.Password)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	req := sampleRegister()
	req.PasswordConfirm = "different"
	_, svcErr := svc.Register(context.Background(), req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindValidation, svcErr.Kind)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, svcErr := svc.Register(context.Background(), sampleRegister())
	assert.Nil(t, svcErr)

	_, svcErr = svc.Register(context.Background(), sampleRegister())
	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindConflict, svcErr.Kind)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	registered, svcErr := svc.Register(context.Background(), sampleRegister())
	assert.Nil(t, svcErr)

	user, token, svcErr := svc.Login(context.Background(), &models.LoginRequest{
		Email: "rider@example.com", Password: "s3cret-pass",
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(registered.ID), claims["user_id"])
	assert.Equal(t, "rider@example.com", claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, svcErr := svc.Register(context.Background(), sampleRegister())
	assert.Nil(t, svcErr)

	_, _, svcErr = svc.Login(context.Background(), &models.LoginRequest{
		Email: "rider@example.com", Password: "wrong",
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindInvalidCredentials, svcErr.Kind)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, svcErr := svc.Register(context.Background(), sampleRegister())
	assert.Nil(t, svcErr)

	_, _, wrongPass := svc.Login(context.Background(), &models.LoginRequest{
		Email: "rider@example.com", Password: "wrong",
	})
	_, _, unknown := svc.Login(context.Background(), &models.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})

	// Unknown account and wrong password must be indistinguishable.
	assert.NotNil(t, wrongPass)
	assert.NotNil(t, unknown)
	assert.Equal(t, wrongPass.Kind, unknown.Kind)
	assert.Equal(t, wrongPass.Message, unknown.Message)
}

func TestGetMe(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	registered, svcErr := svc.Register(context.Background(), sampleRegister())
	assert.Nil(t, svcErr)

	user, svcErr := svc.GetMe(context.Background(), registered.ID)
	assert.Nil(t, svcErr)
	assert.Equal(t, "rider@example.com", user.Email)

	_, svcErr = svc.GetMe(context.Background(), 99)
	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindNotFound, svcErr.Kind)
}
