package services

import (
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/models"
)

func (suite *ServiceTestSuite) TestRegister() {
	user, err := suite.auth.Register(suite.ctx, RegisterInput{Name: "Ann", Email: " Ann@Example.com ", Password: "secret1"})
	suite.Require().NoError(err)
	suite.Equal("ann@example.com", user.Email)
	suite.Equal(models.RoleTeamMember, user.Role)
	suite.NotEqual("secret1", user.PasswordHash)

	_, err = suite.auth.Register(suite.ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	suite.ErrorIs(err, ErrEmailTaken)
	suite.ErrorIs(err, ErrConflict)

	_, err = suite.auth.Register(suite.ctx, RegisterInput{Name: "Bo", Email: "bo@example.com", Password: "short"})
	suite.ErrorIs(err, ErrPasswordTooShort)

	_, err = suite.auth.Register(suite.ctx, RegisterInput{Name: "Bo", Password: "secret1"})
	suite.ErrorIs(err, ErrEmailRequired)

	_, err = suite.auth.Register(suite.ctx, RegisterInput{Email: "bo@example.com", Password: "secret1"})
	suite.ErrorIs(err, ErrNameRequired)
}

func (suite *ServiceTestSuite) TestLoginAndAuthenticate() {
	registered, err := suite.auth.Register(suite.ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	suite.Require().NoError(err)

	_, _, err = suite.auth.Login(suite.ctx, LoginInput{Email: "ann@example.com", Password: "wrong-pass"})
	suite.ErrorIs(err, ErrInvalidCredentials)
	_, _, err = suite.auth.Login(suite.ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	user, token, err := suite.auth.Login(suite.ctx, LoginInput{Email: "ANN@example.com", Password: "secret1"})
	suite.Require().NoError(err)
	suite.Equal(registered.ID, user.ID)
	suite.NotEmpty(token)

	principal, err := suite.auth.Authenticate(suite.ctx, token)
	suite.Require().NoError(err)
	suite.Equal(user.ID, principal.ID)
	suite.Equal(models.RoleTeamMember, principal.Role)

	// a promotion takes effect without a new token
	role := models.RoleProjectManager
	_, err = suite.users.Update(suite.ctx, user.ID, UpdateUserInput{Role: &role})
	suite.Require().NoError(err)
	principal, err = suite.auth.Authenticate(suite.ctx, token)
	suite.Require().NoError(err)
	suite.Equal(models.RoleProjectManager, principal.Role)

	_, err = suite.auth.Authenticate(suite.ctx, token+"x")
	suite.ErrorIs(err, ErrInvalidToken)
	suite.ErrorIs(err, ErrUnauthorized)

	other := NewAuthService(suite.userRepo, "other-secret", time.Hour)
	_, err = other.Authenticate(suite.ctx, token)
	suite.ErrorIs(err, ErrInvalidToken)
}

func (suite *ServiceTestSuite) TestAuthenticate_ExpiredAndDeleted() {
	user, err := suite.auth.Register(suite.ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	suite.Require().NoError(err)

	token, err := suite.auth.IssueToken(user)
	suite.Require().NoError(err)

	suite.auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = suite.auth.Authenticate(suite.ctx, token)
	suite.ErrorIs(err, ErrInvalidToken)
	suite.auth.now = time.Now

	admin := suite.createUser("admin", models.RoleAdmin)
	suite.Require().NoError(suite.users.Delete(suite.ctx, admin, user.ID))
	_, err = suite.auth.Authenticate(suite.ctx, token)
	suite.ErrorIs(err, ErrInvalidToken)
}

func (suite *ServiceTestSuite) TestEnsureAdmin_Idempotent() {
	admin, created, err := suite.auth.EnsureAdmin(suite.ctx, "root@example.com", "rootpass", "")
	suite.Require().NoError(err)
	suite.True(created)
	suite.Equal(models.RoleAdmin, admin.Role)
	suite.Equal("Administrator", admin.Name)

	again, created, err := suite.auth.EnsureAdmin(suite.ctx, "root@example.com", "different", "Root")
	suite.Require().NoError(err)
	suite.False(created)
	suite.Equal(admin.ID, again.ID)

	_, _, err = suite.auth.Login(suite.ctx, LoginInput{Email: "root@example.com", Password: "rootpass"})
	suite.NoError(err)

	// an existing non-admin account is promoted
	_, err = suite.auth.Register(suite.ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	suite.Require().NoError(err)
	promoted, created, err := suite.auth.EnsureAdmin(suite.ctx, "ann@example.com", "ignored1", "")
	suite.Require().NoError(err)
	suite.False(created)
	suite.Equal(models.RoleAdmin, promoted.Role)
}
