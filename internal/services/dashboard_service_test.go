package services

import (
	"github.com/jaydipchangani/project-management-backend/internal/models"
)

func (suite *ServiceTestSuite) TestDashboardOverview_CountsPerRole() {
	admin := suite.createUser("admin", models.RoleAdmin)
	pm := suite.createUser("pm", models.RoleProjectManager)
	otherPM := suite.createUser("otherpm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)

	apollo := suite.createProject(pm, "Apollo", alice)
	gemini := suite.createProject(pm, "Gemini")
	mercury := suite.createProject(otherPM, "Mercury")

	completed := models.ProjectStatusCompleted
	_, err := suite.projects.Update(suite.ctx, pm, gemini.ID, UpdateProjectInput{Status: &completed})
	suite.Require().NoError(err)

	t1 := suite.createTask(pm, apollo.ID, "one", alice)
	suite.createTask(pm, apollo.ID, "two", alice)
	suite.createTask(otherPM, mercury.ID, "three", alice)

	done := models.TaskStatusCompleted
	_, err = suite.tasks.Update(suite.ctx, alice, t1.ID, UpdateTaskInput{Status: &done})
	suite.Require().NoError(err)

	summary, err := suite.dashboard.Overview(suite.ctx, admin)
	suite.Require().NoError(err)
	suite.Equal(models.RoleAdmin, summary.Role)
	suite.Equal(ProjectCounts{Total: 3, Active: 2, Completed: 1}, summary.Projects)
	suite.Equal(TaskCounts{Total: 3, Completed: 1, Pending: 2}, summary.Tasks)
	suite.Len(summary.RecentProjects, 3)
	suite.Equal("Mercury", summary.RecentProjects[0].Name)

	summary, err = suite.dashboard.Overview(suite.ctx, pm)
	suite.Require().NoError(err)
	suite.Equal(ProjectCounts{Total: 2, Active: 1, Completed: 1}, summary.Projects)
	suite.Equal(TaskCounts{Total: 2, Completed: 1, Pending: 1}, summary.Tasks)

	summary, err = suite.dashboard.Overview(suite.ctx, alice)
	suite.Require().NoError(err)
	suite.Equal(ProjectCounts{Total: 1, Active: 1}, summary.Projects)
	suite.Equal(TaskCounts{Total: 3, Completed: 1, Pending: 2}, summary.Tasks)
	suite.Len(summary.RecentTasks, 3)
	suite.Equal("three", summary.RecentTasks[0].Title)
}

func (suite *ServiceTestSuite) TestDashboardOverview_RecentLimited() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		suite.createProject(pm, name)
	}

	summary, err := suite.dashboard.Overview(suite.ctx, pm)
	suite.Require().NoError(err)
	suite.Equal(int64(7), summary.Projects.Total)
	suite.Require().Len(summary.RecentProjects, 5)
	suite.Equal("g", summary.RecentProjects[0].Name)
}
