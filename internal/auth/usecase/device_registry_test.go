package usecase_test

import (
	"testing"
	"time"

	authdomain "moodchat-backend/internal/auth/domain"
	"moodchat-backend/internal/auth/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repository
type MockDeviceTokenRepo struct {
	mock.Mock
}

func (m *MockDeviceTokenRepo) Upsert(token *authdomain.DeviceToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockDeviceTokenRepo) Save(token *authdomain.DeviceToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockDeviceTokenRepo) FindByToken(token string) (*authdomain.DeviceToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authdomain.DeviceToken), args.Error(1)
}

func (m *MockDeviceTokenRepo) ListByOwner(ownerID string) ([]authdomain.DeviceToken, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]authdomain.DeviceToken), args.Error(1)
}

func (m *MockDeviceTokenRepo) ActiveByOwner(ownerID string) ([]authdomain.DeviceToken, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]authdomain.DeviceToken), args.Error(1)
}

func (m *MockDeviceTokenRepo) Delete(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func tokensNamed(names ...string) []authdomain.DeviceToken {
	tokens := make([]authdomain.DeviceToken, 0, len(names))
	for i, n := range names {
		tokens = append(tokens, authdomain.DeviceToken{
			Token:      n,
			LastUsedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	return tokens
}

func TestRegisterToken_UpsertsAndKeepsCapacity(t *testing.T) {
	repo := new(MockDeviceTokenRepo)
	registry := usecase.NewDeviceRegistry(repo)

	repo.On("Upsert", mock.MatchedBy(func(dt *authdomain.DeviceToken) bool {
		return dt.OwnerID == "user-1" && dt.Token == "tok-6" && dt.IsActive
	})).Return(nil)
	// six tokens after the upsert, newest first: the stalest one goes
	repo.On("ListByOwner", "user-1").Return(tokensNamed("tok-6", "tok-5", "tok-4", "tok-3", "tok-2", "tok-1"), nil)
	repo.On("Delete", "tok-1").Return(nil)

	err := registry.RegisterToken("user-1", "tok-6", authdomain.DeviceWeb)
	require.NoError(t, err)

	repo.AssertCalled(t, "Delete", "tok-1")
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestRegisterToken_UnderCapacityEvictsNothing(t *testing.T) {
	repo := new(MockDeviceTokenRepo)
	registry := usecase.NewDeviceRegistry(repo)

	repo.On("Upsert", mock.Anything).Return(nil)
	repo.On("ListByOwner", "user-1").Return(tokensNamed("tok-3", "tok-2", "tok-1"), nil)

	err := registry.RegisterToken("user-1", "tok-3", authdomain.DeviceAndroid)
	require.NoError(t, err)

	repo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestRegisterToken_ReRegisterIsUpsertNotInsert(t *testing.T) {
	repo := new(MockDeviceTokenRepo)
	registry := usecase.NewDeviceRegistry(repo)

	// Re-registering an existing token value goes through the same upsert:
	// the repository dedupes by token value, no duplicate row appears.
	repo.On("Upsert", mock.MatchedBy(func(dt *authdomain.DeviceToken) bool {
		return dt.Token == "existing" && dt.IsActive && !dt.LastUsedAt.IsZero()
	})).Return(nil)
	repo.On("ListByOwner", "user-1").Return(tokensNamed("existing"), nil)

	err := registry.RegisterToken("user-1", "existing", authdomain.DeviceIOS)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestRegisterToken_RejectsBadInput(t *testing.T) {
	repo := new(MockDeviceTokenRepo)
	registry := usecase.NewDeviceRegistry(repo)

	assert.Error(t, registry.RegisterToken("user-1", "", authdomain.DeviceWeb))
	assert.Error(t, registry.RegisterToken("user-1", "tok", "toaster"))
	repo.AssertNotCalled(t, "Upsert", mock.Anything)
}

func TestMarkInvalid_DeactivatesWithoutDeleting(t *testing.T) {
	repo := new(MockDeviceTokenRepo)
	registry := usecase.NewDeviceRegistry(repo)

	repo.On("FindByToken", "tok-1").Return(&authdomain.DeviceToken{Token: "tok-1", IsActive: true}, nil)
	repo.On("Save", mock.MatchedBy(func(dt *authdomain.DeviceToken) bool {
		return dt.Token == "tok-1" && !dt.IsActive
	})).Return(nil)

	require.NoError(t, registry.MarkInvalid("tok-1"))

	repo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestMarkInvalid_UnknownTokenIsNoop(t *testing.T) {
	repo := new(MockDeviceTokenRepo)
	registry := usecase.NewDeviceRegistry(repo)

	repo.On("FindByToken", "ghost").Return(nil, nil)

	require.NoError(t, registry.MarkInvalid("ghost"))
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestTouch_ReactivatesAndBumpsLastUsed(t *testing.T) {
	repo := new(MockDeviceTokenRepo)
	registry := usecase.NewDeviceRegistry(repo)

	stale := time.Now().Add(-24 * time.Hour)
	repo.On("FindByToken", "tok-1").Return(&authdomain.DeviceToken{Token: "tok-1", IsActive: false, LastUsedAt: stale}, nil)
	repo.On("Save", mock.MatchedBy(func(dt *authdomain.DeviceToken) bool {
		return dt.IsActive && dt.LastUsedAt.After(stale)
	})).Return(nil)

	require.NoError(t, registry.Touch("tok-1"))
}

func TestActiveTokens_ReturnsValuesOnly(t *testing.T) {
	repo := new(MockDeviceTokenRepo)
	registry := usecase.NewDeviceRegistry(repo)

	repo.On("ActiveByOwner", "user-1").Return(tokensNamed("tok-2", "tok-1"), nil)

	tokens, err := registry.ActiveTokens("user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tok-2", "tok-1"}, tokens)
}
