package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "lastmile/internal/adapters/out/postgres"
	"lastmile/internal/adapters/out/postgres/orderrepo"
	"lastmile/internal/adapters/out/postgres/regionrepo"
	"lastmile/internal/adapters/out/postgres/userrepo"
	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var uowNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite verifies transaction boundaries across the
// order, user and region repositories with a real PostgreSQL database.
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
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &userrepo.UserDTO{}, &regionrepo.RegionDTO{})
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, users, regions").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(phone string) *order.Order {
	customer, err := order.NewCustomer("Алишер", phone, "ул. Навои 15", "")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), "#2405101234", customer, nil, 250000, order.PaymentCash,
		kernel.DateOf(uowNow), "", "", kernel.NewUUID(), kernel.NewUUID(), "", uowNow,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) seedUser(role account.Role) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&userrepo.UserDTO{
		ID:          id.Bytes(),
		ChatID:      "chat-" + id.String(),
		DisplayName: "Seeded User",
		Role:        role.String(),
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	aggregate := suite.newOrder("+998901234567")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	aggregate := suite.newOrder("+998901234567")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err := verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesShareTransaction() {
	ctx := context.Background()
	aggregate := suite.newOrder("+998901234567")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))

	// Visible inside the transaction before commit.
	loaded, err := uow.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(aggregate))

	// Invisible outside of it.
	outside := suite.factory.Create()
	_, err = outside.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUserRepository_ReadsSeededRows() {
	ctx := context.Background()

	operatorID := suite.seedUser(account.RoleOperator)
	suite.seedUser(account.RoleCourier)
	suite.seedUser(account.RoleOperator)

	uow := suite.factory.Create()

	user, err := uow.UserRepository().Get(ctx, operatorID)
	suite.Require().NoError(err)
	suite.Equal(account.RoleOperator, user.Role())

	operators, err := uow.UserRepository().GetAllInRole(ctx, account.RoleOperator)
	suite.Require().NoError(err)
	suite.Len(operators, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRegionRepository_ReadsSeededRows() {
	ctx := context.Background()

	id := kernel.NewUUID()
	err := suite.db.Create(&regionrepo.RegionDTO{
		ID:              id.Bytes(),
		Name:            "Tashkent",
		ChatID:          "-100123",
		TodayTopicID:    "11",
		TomorrowTopicID: "12",
	}).Error
	suite.Require().NoError(err)

	uow := suite.factory.Create()

	loaded, err := uow.RegionRepository().Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("Tashkent", loaded.Name())
	suite.Equal("11", loaded.TodayTopicID())

	all, err := uow.RegionRepository().GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 1)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
