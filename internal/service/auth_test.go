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

type AuthServiceTestSuite struct {
	suite.Suite

	testDB *testutil.TestDatabase
	repo   *repository.UserRepository
	svc    *service.AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.repo = repository.NewUserRepository(dao.NewUserDAO(s.testDB.DB))
	s.svc = service.NewAuthService(s.repo)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestRegister_CreatesUnverifiedMember() {
	created, err := s.svc.Register(context.Background(), domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123",
		Grade:    "11",
	})
	s.Require().NoError(err)

	s.Equal(domain.RoleMember, created.Role)
	s.False(created.IsVerified)
	s.Zero(created.Points)
	s.NotEqual("Password123", created.Password)

	loggedIn, err := s.svc.Login(context.Background(), "alice@example.com", "Password123")
	s.Require().NoError(err)
	s.Equal(created.ID, loggedIn.ID)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	testutil.CreateUser(s.T(), s.testDB.DB, "alice", "member")

	_, err := s.svc.Register(context.Background(), domain.User{
		Username: "alice",
		Email:    "other@example.com",
		Password: "Password123",
	})
	s.Require().ErrorIs(err, service.ErrUsernameExists)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	testutil.CreateUser(s.T(), s.testDB.DB, "alice", "member")

	_, err := s.svc.Register(context.Background(), domain.User{
		Username: "somebody",
		Email:    "alice@example.com",
		Password: "Password123",
	})
	s.Require().ErrorIs(err, service.ErrEmailExists)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	testutil.CreateUser(s.T(), s.testDB.DB, "alice", "member")

	_, err := s.svc.Login(context.Background(), "alice@example.com", "nope12345")
	s.Require().ErrorIs(err, service.ErrWrongPassword)
}

func (s *AuthServiceTestSuite) TestLogin_DeletedLooksUnknown() {
	testutil.CreateUser(s.T(), s.testDB.DB, "ghost", "deleted")

	_, err := s.svc.Login(context.Background(), "ghost@example.com", testutil.DefaultPassword)
	s.Require().ErrorIs(err, service.ErrUserNotFound)
}

func (s *AuthServiceTestSuite) TestLogin_Banned() {
	testutil.CreateUser(s.T(), s.testDB.DB, "troll", "banned")

	_, err := s.svc.Login(context.Background(), "troll@example.com", testutil.DefaultPassword)
	s.Require().ErrorIs(err, service.ErrUserBanned)
}

func (s *AuthServiceTestSuite) TestLogin_RecordsLastLogin() {
	created := testutil.CreateUser(s.T(), s.testDB.DB, "alice", "member")

	loggedIn, err := s.svc.Login(context.Background(), "alice@example.com", testutil.DefaultPassword)
	s.Require().NoError(err)
	s.False(loggedIn.LastLoginAt.IsZero())

	stored, err := s.repo.FindByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.False(stored.LastLoginAt.IsZero())
}

func (s *AuthServiceTestSuite) TestChangePassword() {
	created := testutil.CreateUser(s.T(), s.testDB.DB, "alice", "member")

	err := s.svc.ChangePassword(context.Background(), created.ID, "wrong-old", "NewPassword1")
	s.Require().ErrorIs(err, service.ErrWrongPassword)

	err = s.svc.ChangePassword(context.Background(), created.ID, testutil.DefaultPassword, "NewPassword1")
	s.Require().NoError(err)

	_, err = s.svc.Login(context.Background(), "alice@example.com", testutil.DefaultPassword)
	s.Require().ErrorIs(err, service.ErrWrongPassword)

	_, err = s.svc.Login(context.Background(), "alice@example.com", "NewPassword1")
	s.Require().NoError(err)
}
