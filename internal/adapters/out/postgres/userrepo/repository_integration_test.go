package userrepo_test

import (
	"context"
	"testing"
	"time"

	"sibcargo/internal/adapters/out/postgres/userrepo"
	"sibcargo/internal/core/domain/model/user"
	"sibcargo/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// UserRepositoryIntegrationTestSuite provides integration tests for UserRepository
// using PostgreSQL containers to verify database persistence behavior.
type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *userrepo.GormUserRepository
	tracker    *MockAggregateTracker
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&userrepo.UserDTO{})
	suite.Require().NoError(err)
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE users").Error
	suite.Require().NoError(err)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = userrepo.NewGormUserRepository(suite.db, suite.tracker)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_ValidUser_Success() {
	ctx := context.Background()
	testUser := suite.createTestUser(42)

	err := suite.repository.Add(ctx, testUser)

	suite.Require().NoError(err)
	suite.assertUserCount(1)
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_UnconstructedUser_Fails() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, &user.User{})

	suite.Require().Error(err)
	suite.assertUserCount(0)
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_ExistingUser_RoundTrips() {
	ctx := context.Background()
	testUser := suite.createTestUser(42)
	testUser.SetPhone("+79130000000")

	err := suite.repository.Add(ctx, testUser)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, 42)

	suite.Require().NoError(err)
	suite.Equal(int64(42), retrieved.TelegramID())
	suite.Equal("test_user", retrieved.Username())
	suite.Equal("Иван", retrieved.FirstName())
	suite.Equal("Петров", retrieved.LastName())
	suite.Equal("+79130000000", retrieved.Phone())
	suite.False(retrieved.IsManager())
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_NonExistentUser_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, 9999)

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_ProfileChanges_RoundTrip() {
	ctx := context.Background()
	testUser := suite.createTestUser(42)

	err := suite.repository.Add(ctx, testUser)
	suite.Require().NoError(err)

	changed := testUser.RefreshProfile("new_handle", "Пётр", "Сидоров")
	suite.True(changed)
	testUser.PromoteToManager()

	err = suite.repository.Update(ctx, testUser)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, 42)
	suite.Require().NoError(err)
	suite.Equal("new_handle", retrieved.Username())
	suite.Equal("Пётр", retrieved.FirstName())
	suite.Equal("Сидоров", retrieved.LastName())
	suite.True(retrieved.IsManager())
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_NonExistentUser_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestUser(42))

	suite.Require().Error(err)
	suite.Contains(err.Error(), "record not found")
}

// createTestUser creates a valid customer profile for testing purposes.
func (suite *UserRepositoryIntegrationTestSuite) createTestUser(telegramID int64) *user.User {
	testUser, err := user.NewUser(telegramID, "test_user", "Иван", "Петров")
	suite.Require().NoError(err)
	return testUser
}

// assertUserCount verifies the number of users in the database.
func (suite *UserRepositoryIntegrationTestSuite) assertUserCount(expected int) {
	var count int64
	err := suite.db.Model(&userrepo.UserDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
