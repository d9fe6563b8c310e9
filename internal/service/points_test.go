package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/repository"
	"github.com/rdfzsc/campus-api/internal/repository/dao"
	"github.com/rdfzsc/campus-api/internal/service"
	"github.com/rdfzsc/campus-api/internal/testutil"
)

type PointsServiceTestSuite struct {
	suite.Suite

	testDB *testutil.TestDatabase
	uRepo  *repository.UserRepository
	svc    *service.PointsService

	admin  domain.User
	member domain.User
	other  domain.User
}

func (s *PointsServiceTestSuite) SetupTest() {
	s.testDB = testutil.SetupTestDatabase(s.T())

	s.uRepo = repository.NewUserRepository(dao.NewUserDAO(s.testDB.DB))
	pRepo := repository.NewPointsRepository(dao.NewPointsDAO(s.testDB.DB))
	s.svc = service.NewPointsService(pRepo, s.uRepo)

	s.admin = s.asDomain(testutil.CreateUser(s.T(), s.testDB.DB, "admin", "admin"))
	s.member = s.asDomain(testutil.CreateUser(s.T(), s.testDB.DB, "member", "member"))
	s.other = s.asDomain(testutil.CreateUser(s.T(), s.testDB.DB, "other", "member"))
}

func (s *PointsServiceTestSuite) asDomain(u dao.User) domain.User {
	return domain.User{ID: u.ID, Username: u.Username, Role: domain.Role(u.Role)}
}

func TestPointsService(t *testing.T) {
	suite.Run(t, new(PointsServiceTestSuite))
}

func (s *PointsServiceTestSuite) TestAddPoints_MovesBalanceAndAppendsLedger() {
	_, err := s.svc.AddPoints(context.Background(), s.admin, domain.PointRecord{
		UserID:      s.member.ID,
		Points:      10,
		Description: "tournament win",
	})
	s.Require().NoError(err)

	_, err = s.svc.AddPoints(context.Background(), s.admin, domain.PointRecord{
		UserID:      s.member.ID,
		Points:      -3,
		Description: "late cancellation",
	})
	s.Require().NoError(err)

	user, err := s.uRepo.FindByID(context.Background(), s.member.ID)
	s.Require().NoError(err)
	s.Equal(7, user.Points)

	records, total, err := s.svc.ListRecords(context.Background(), s.admin, s.member.ID, 1, 10)
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Require().Len(records, 2)
	s.Equal(-3, records[0].Points)
	s.Equal(10, records[1].Points)
}

func (s *PointsServiceTestSuite) TestAddPoints_AdminOnly() {
	_, err := s.svc.AddPoints(context.Background(), s.member, domain.PointRecord{
		UserID:      s.other.ID,
		Points:      5,
		Description: "helping hand",
	})
	s.Require().ErrorIs(err, service.ErrPermissionDenied)
}

func (s *PointsServiceTestSuite) TestAddPoints_DeletedTarget() {
	ghost := testutil.CreateUser(s.T(), s.testDB.DB, "ghost", "deleted")

	_, err := s.svc.AddPoints(context.Background(), s.admin, domain.PointRecord{
		UserID:      ghost.ID,
		Points:      5,
		Description: "orphaned award",
	})
	s.Require().ErrorIs(err, service.ErrUserNotFound)
}

func (s *PointsServiceTestSuite) TestAddPoints_UnknownTarget() {
	_, err := s.svc.AddPoints(context.Background(), s.admin, domain.PointRecord{
		UserID:      9999,
		Points:      5,
		Description: "nobody home",
	})
	s.Require().ErrorIs(err, service.ErrUserNotFound)
}

func (s *PointsServiceTestSuite) TestListRecords_OwnerOrAdmin() {
	_, err := s.svc.AddPoints(context.Background(), s.admin, domain.PointRecord{
		UserID:      s.member.ID,
		Points:      4,
		Description: "clean-up duty",
	})
	s.Require().NoError(err)

	_, _, err = s.svc.ListRecords(context.Background(), s.other, s.member.ID, 1, 10)
	s.Require().ErrorIs(err, service.ErrPermissionDenied)

	records, total, err := s.svc.ListRecords(context.Background(), s.member, s.member.ID, 1, 10)
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Require().Len(records, 1)
	s.Equal(s.member.ID, records[0].UserID)
}
