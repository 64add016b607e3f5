package services

import (
	"net/url"

	"github.com/jaydipchangani/project-management-backend/internal/models"
)

func (suite *ServiceTestSuite) TestUserList() {
	suite.createUser("alice", models.RoleTeamMember)
	suite.createUser("bob", models.RoleTeamMember)
	suite.createUser("carol", models.RoleProjectManager)

	page, err := suite.users.List(suite.ctx, url.Values{"role": {"TeamMember"}, "sort": {"name"}})
	suite.Require().NoError(err)
	suite.Equal(int64(2), page.Total)
	suite.Equal("alice", page.Items[0].Name)

	page, err = suite.users.List(suite.ctx, url.Values{"search": {"CAROL@"}})
	suite.Require().NoError(err)
	suite.Equal(int64(1), page.Total)

	_, err = suite.users.List(suite.ctx, url.Values{"role": {"Owner"}})
	suite.Error(err)

	_, err = suite.users.List(suite.ctx, url.Values{"password_hash": {"x"}})
	suite.Error(err)
}

func (suite *ServiceTestSuite) TestUserUpdate() {
	alice := suite.createUser("alice", models.RoleTeamMember)
	suite.createUser("bob", models.RoleTeamMember)

	name := "Alice A."
	updated, err := suite.users.Update(suite.ctx, alice.ID, UpdateUserInput{Name: &name})
	suite.Require().NoError(err)
	suite.Equal("Alice A.", updated.Name)
	suite.Equal("alice@example.com", updated.Email)

	taken := "BOB@example.com"
	_, err = suite.users.Update(suite.ctx, alice.ID, UpdateUserInput{Email: &taken})
	suite.ErrorIs(err, ErrEmailTaken)

	own := "alice@example.com"
	_, err = suite.users.Update(suite.ctx, alice.ID, UpdateUserInput{Email: &own})
	suite.NoError(err)

	bad := models.Role("Owner")
	_, err = suite.users.Update(suite.ctx, alice.ID, UpdateUserInput{Role: &bad})
	suite.ErrorIs(err, ErrValidation)

	_, err = suite.users.Update(suite.ctx, 999, UpdateUserInput{Name: &name})
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestUserDelete() {
	admin := suite.createUser("admin", models.RoleAdmin)
	alice := suite.createUser("alice", models.RoleTeamMember)

	suite.ErrorIs(suite.users.Delete(suite.ctx, admin, admin.ID), ErrCannotDeleteSelf)
	suite.Require().NoError(suite.users.Delete(suite.ctx, admin, alice.ID))

	_, err := suite.users.Get(suite.ctx, alice.ID)
	suite.ErrorIs(err, ErrUserNotFound)
	suite.ErrorIs(suite.users.Delete(suite.ctx, admin, alice.ID), ErrUserNotFound)
}
