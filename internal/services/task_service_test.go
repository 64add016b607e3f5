package services

import (
	"errors"
	"net/url"
	"time"

	"github.com/jaydipchangani/project-management-backend/internal/models"
)

func (suite *ServiceTestSuite) TestTaskCreate_RoundTrip() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo", alice)

	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	created, err := suite.tasks.Create(suite.ctx, pm, CreateTaskInput{
		ProjectID:   project.ID,
		Title:       "Design",
		Description: "Draw it",
		AssignedTo:  alice.ID,
		Status:      models.TaskStatusInProgress,
		Priority:    models.TaskPriorityHigh,
		DueDate:     &due,
	})
	suite.Require().NoError(err)

	fetched, err := suite.tasks.GetByID(suite.ctx, created.ID)
	suite.Require().NoError(err)
	suite.Equal("Design", fetched.Title)
	suite.Equal(models.TaskStatusInProgress, fetched.Status)
	suite.Equal(models.TaskPriorityHigh, fetched.Priority)
	suite.Require().NotNil(fetched.DueDate)
	suite.True(due.Equal(*fetched.DueDate))
	suite.Equal(alice.ID, fetched.AssignedTo.ID)
	suite.Equal(project.ID, fetched.Project.ID)

	suite.Equal([]string{`Task "Design" created`, "Project created"}, suite.actions(project.ID))
}

func (suite *ServiceTestSuite) TestTaskCreate_Defaults() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo")

	task := suite.createTask(pm, project.ID, "Build", alice)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.Nil(task.DueDate)
}

func (suite *ServiceTestSuite) TestTaskCreate_Rejections() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	otherPM := suite.createUser("otherpm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo")

	_, err := suite.tasks.Create(suite.ctx, pm, CreateTaskInput{ProjectID: 999, Title: "x", AssignedTo: alice.ID})
	suite.ErrorIs(err, ErrProjectNotFound)

	_, err = suite.tasks.Create(suite.ctx, otherPM, CreateTaskInput{ProjectID: project.ID, Title: "x", AssignedTo: alice.ID})
	suite.ErrorIs(err, ErrTaskCreateForbidden)

	_, err = suite.tasks.Create(suite.ctx, pm, CreateTaskInput{ProjectID: project.ID, Title: " ", AssignedTo: alice.ID})
	suite.ErrorIs(err, ErrTitleRequired)

	_, err = suite.tasks.Create(suite.ctx, pm, CreateTaskInput{ProjectID: project.ID, Title: "x", AssignedTo: 999})
	suite.ErrorIs(err, ErrInvalidTaskAssignee)

	_, err = suite.tasks.Create(suite.ctx, pm, CreateTaskInput{ProjectID: project.ID, Title: "x", AssignedTo: alice.ID, Status: "Done"})
	suite.ErrorIs(err, ErrValidation)

	_, err = suite.tasks.Create(suite.ctx, pm, CreateTaskInput{ProjectID: project.ID, Title: "x", AssignedTo: alice.ID, Priority: "Urgent"})
	suite.ErrorIs(err, ErrValidation)
}

func (suite *ServiceTestSuite) TestTaskUpdate_AssigneeMayUpdate() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	bob := suite.createUser("bob", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo")

	due := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	task, err := suite.tasks.Create(suite.ctx, pm, CreateTaskInput{
		ProjectID: project.ID, Title: "Build", AssignedTo: alice.ID, DueDate: &due,
	})
	suite.Require().NoError(err)

	status := models.TaskStatusCompleted
	updated, err := suite.tasks.Update(suite.ctx, alice, task.ID, UpdateTaskInput{Status: &status, ClearDueDate: true})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, updated.Status)
	suite.Equal("Build", updated.Title)
	suite.Nil(updated.DueDate)

	_, err = suite.tasks.Update(suite.ctx, bob, task.ID, UpdateTaskInput{Status: &status})
	suite.ErrorIs(err, ErrTaskPermissionDenied)

	empty := ""
	_, err = suite.tasks.Update(suite.ctx, pm, task.ID, UpdateTaskInput{Title: &empty})
	suite.ErrorIs(err, ErrTitleEmpty)

	missing := uint64(999)
	_, err = suite.tasks.Update(suite.ctx, pm, task.ID, UpdateTaskInput{AssignedTo: &missing})
	suite.ErrorIs(err, ErrInvalidTaskAssignee)

	// reassigning moves update rights to the new assignee
	updated, err = suite.tasks.Update(suite.ctx, pm, task.ID, UpdateTaskInput{AssignedTo: &bob.ID})
	suite.Require().NoError(err)
	suite.Equal(bob.ID, updated.AssignedTo.ID)

	_, err = suite.tasks.Update(suite.ctx, alice, task.ID, UpdateTaskInput{Status: &status})
	suite.ErrorIs(err, ErrForbidden)

	suite.Contains(suite.actions(project.ID), `Task "Build" updated`)
}

func (suite *ServiceTestSuite) TestTaskUpdate_EmptyPatchKeepsFields() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo")
	task := suite.createTask(pm, project.ID, "Build", alice)

	updated, err := suite.tasks.Update(suite.ctx, pm, task.ID, UpdateTaskInput{})
	suite.Require().NoError(err)
	suite.Equal(task.Title, updated.Title)
	suite.Equal(task.Description, updated.Description)
	suite.Equal(task.Status, updated.Status)
	suite.Equal(task.Priority, updated.Priority)
	suite.Equal(task.AssignedToID, updated.AssignedToID)
	suite.Equal(task.DueDate, updated.DueDate)
}

func (suite *ServiceTestSuite) TestTaskDelete_LogsBeforeDelete() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo")
	task := suite.createTask(pm, project.ID, "Build", alice)

	suite.ErrorIs(suite.tasks.Delete(suite.ctx, alice, task.ID), ErrNotTaskCreator)

	suite.Require().NoError(suite.tasks.Delete(suite.ctx, pm, task.ID))
	_, err := suite.tasks.GetByID(suite.ctx, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
	suite.Equal(`Task "Build" deleted`, suite.actions(project.ID)[0])

	suite.ErrorIs(suite.tasks.Delete(suite.ctx, pm, task.ID), ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestTaskDelete_LogFailureKeepsTask() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo")
	task := suite.createTask(pm, project.ID, "Build", alice)

	writeErr := errors.New("log unavailable")
	broken := NewTaskService(suite.taskRepo, suite.projectRepo, suite.userRepo, NewActivityService(failingActivityRepo{err: writeErr}))

	err := broken.Delete(suite.ctx, pm, task.ID)
	suite.ErrorIs(err, writeErr)

	_, err = suite.tasks.GetByID(suite.ctx, task.ID)
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestTaskList_ScopesAndAssignedTo() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	otherPM := suite.createUser("otherpm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	bob := suite.createUser("bob", models.RoleTeamMember)
	admin := suite.createUser("admin", models.RoleAdmin)

	apollo := suite.createProject(pm, "Apollo")
	mercury := suite.createProject(otherPM, "Mercury")
	suite.createTask(pm, apollo.ID, "alpha one", alice)
	suite.createTask(pm, apollo.ID, "beta two", bob)
	suite.createTask(otherPM, mercury.ID, "alpha three", alice)

	page, err := suite.tasks.List(suite.ctx, alice, url.Values{})
	suite.Require().NoError(err)
	suite.Equal(int64(2), page.Total)

	page, err = suite.tasks.List(suite.ctx, pm, url.Values{"search": {"ALPHA"}})
	suite.Require().NoError(err)
	suite.Equal(int64(1), page.Total)
	suite.Equal("alpha one", page.Items[0].Title)

	page, err = suite.tasks.ListAssignedTo(suite.ctx, admin, alice.ID, url.Values{"sort": {"title"}})
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 2)
	suite.Equal("alpha one", page.Items[0].Title)
	suite.Equal("alpha three", page.Items[1].Title)

	// the role scope still applies on top of the assignee filter
	page, err = suite.tasks.ListAssignedTo(suite.ctx, bob, alice.ID, url.Values{})
	suite.Require().NoError(err)
	suite.Zero(page.Total)

	_, err = suite.tasks.List(suite.ctx, admin, url.Values{"status": {"Done"}})
	suite.Error(err)
}
