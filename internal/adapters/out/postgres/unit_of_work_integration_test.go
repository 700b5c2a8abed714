package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "sibcargo/internal/adapters/out/postgres"
	"sibcargo/internal/adapters/out/postgres/orderrepo"
	"sibcargo/internal/adapters/out/postgres/userrepo"
	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"
	"sibcargo/internal/core/domain/model/user"
	"sibcargo/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration tests for the GORM-based
// unit of work implementation against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &userrepo.UserDTO{})
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, users").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestFactory_Create verifies the factory creates isolated unit of work
// instances with access to both repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.UserRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow2.UserRepository())
	suite.NotNil(uow2.OrderRepository())
}

// TestTransactionLifecycle verifies begin, commit and rollback transitions,
// including error reporting when no transaction is active.
func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Repeated begin should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().Error(err, "Commit without active transaction should fail")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Rollback without active transaction should fail")
}

// TestCommit_PersistsChanges verifies changes made inside a transaction
// become visible to other unit of work instances after commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(42)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err, "Transaction should see its own changes")
	suite.True(retrieved.ID().IsEqual(testOrder.ID()))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(testOrder.ID()))
}

// TestRollback_DiscardsChanges verifies rollback discards writes made through
// both repositories within the same transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testUser := createTestUser(42)
	testOrder := createTestOrder(testUser.TelegramID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.UserRepository().Add(ctx, testUser)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	_, err = uow.UserRepository().Get(ctx, testUser.TelegramID())
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.UserRepository().Get(ctx, testUser.TelegramID())
	suite.Require().Error(err, "User should not exist after rollback")

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")
}

// TestOrderConfirmationWorkflow exercises the full confirmation path: a user
// is registered and an order is created for them atomically, then the order
// status is advanced through the delivery lifecycle.
func (suite *UnitOfWorkIntegrationTestSuite) TestOrderConfirmationWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	testUser := createTestUser(42)
	err = uow.UserRepository().Add(ctx, testUser)
	suite.Require().NoError(err)

	testOrder := createTestOrder(testUser.TelegramID())
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Manager confirms the order in a follow-up transaction.
	confirmUow := suite.factory.Create()
	err = confirmUow.Begin(ctx)
	suite.Require().NoError(err)

	stored, err := confirmUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = stored.ChangeStatus(order.StatusConfirmed, "Водитель назначен")
	suite.Require().NoError(err)

	err = confirmUow.OrderRepository().Update(ctx, stored)
	suite.Require().NoError(err)

	err = confirmUow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	retrievedUser, err := newUow.UserRepository().Get(ctx, testUser.TelegramID())
	suite.Require().NoError(err)
	suite.Equal(testUser.TelegramID(), retrievedUser.TelegramID())

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrievedOrder.Status())
	suite.Equal("Водитель назначен", retrievedOrder.ManagerComment())
	suite.Equal(testUser.TelegramID(), retrievedOrder.UserID())
}

// TestTransactionIsolation verifies concurrent transactions only see their
// own uncommitted changes.
func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder(42)
	order2 := createTestOrder(77)

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestWithoutTransaction verifies repositories auto-commit when no explicit
// transaction is active.
func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testUser := createTestUser(42)

	err := uow.UserRepository().Add(ctx, testUser)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.UserRepository().Get(ctx, testUser.TelegramID())
	suite.Require().NoError(err)
	suite.Equal(testUser.TelegramID(), retrieved.TelegramID())
}

// TestUserProfileRefreshInTransaction verifies aggregate updates made inside
// a transaction survive a commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUserProfileRefreshInTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testUser := createTestUser(42)
	err := uow.UserRepository().Add(ctx, testUser)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	stored, err := uow.UserRepository().Get(ctx, testUser.TelegramID())
	suite.Require().NoError(err)

	changed := stored.RefreshProfile("new_handle", "Пётр", "Иванов")
	suite.True(changed)

	err = uow.UserRepository().Update(ctx, stored)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.UserRepository().Get(ctx, testUser.TelegramID())
	suite.Require().NoError(err)
	suite.Equal("new_handle", retrieved.Username())
	suite.Equal("Пётр", retrieved.FirstName())
	suite.Equal("Иванов", retrieved.LastName())
}

// createTestOrder creates a pending test order owned by the given user.
func createTestOrder(userID int64) *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		userID,
		time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		order.Waypoint{Address: "Новосибирск Кирова 10"},
		order.Waypoint{Address: "Барнаул Ленина 5"},
		500,
		190.5,
		7170,
	)
	if err != nil {
		panic(err)
	}
	return testOrder
}

// createTestUser creates a valid customer profile for testing purposes.
func createTestUser(telegramID int64) *user.User {
	testUser, err := user.NewUser(telegramID, "test_user", "Иван", "Петров")
	if err != nil {
		panic(err)
	}
	return testUser
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
