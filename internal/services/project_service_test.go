package services

import (
	"fmt"
	"net/url"

	"github.com/jaydipchangani/project-management-backend/internal/access"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/storage"
)

func (suite *ServiceTestSuite) TestProjectCreate_AdminCreatesAndLogs() {
	admin := suite.createUser("admin", models.RoleAdmin)
	member := suite.createUser("member", models.RoleTeamMember)

	project, err := suite.projects.Create(suite.ctx, admin, CreateProjectInput{
		Name:        "Apollo",
		Description: "Moon",
		TeamMembers: []uint64{member.ID, member.ID},
		Files:       []storage.Upload{upload("plan.pdf", "%PDF")},
	})
	suite.Require().NoError(err)

	suite.Equal("Apollo", project.Name)
	suite.Equal(models.ProjectStatusActive, project.Status)
	suite.Equal(admin.ID, project.CreatedBy.ID)
	suite.Require().Len(project.TeamMembers, 1)
	suite.Equal(member.ID, project.TeamMembers[0].ID)
	suite.Require().Len(project.Documents, 1)
	suite.Equal("plan.pdf", project.Documents[0].Filename)
	suite.Contains(project.Documents[0].URL, "/uploads/projects/files-")

	suite.Equal([]string{"Project created"}, suite.actions(project.ID))
}

func (suite *ServiceTestSuite) TestProjectCreate_Rejections() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	member := suite.createUser("member", models.RoleTeamMember)

	_, err := suite.projects.Create(suite.ctx, member, CreateProjectInput{Name: "Nope"})
	suite.ErrorIs(err, ErrForbidden)

	_, err = suite.projects.Create(suite.ctx, pm, CreateProjectInput{Name: "   "})
	suite.ErrorIs(err, ErrProjectNameRequired)
	suite.ErrorIs(err, ErrValidation)

	_, err = suite.projects.Create(suite.ctx, pm, CreateProjectInput{Name: "Apollo", Status: "Archived"})
	suite.ErrorIs(err, ErrValidation)

	_, err = suite.projects.Create(suite.ctx, pm, CreateProjectInput{Name: "Apollo", TeamMembers: []uint64{999}})
	suite.ErrorIs(err, ErrInvalidTeamMember)

	_, err = suite.projects.Create(suite.ctx, pm, CreateProjectInput{
		Name:  "Apollo",
		Files: []storage.Upload{upload("ok.pdf", "x"), upload("run.exe", "x")},
	})
	suite.ErrorIs(err, storage.ErrInvalidFileType)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Project{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestProjectUpdate_OtherManagerForbidden() {
	pmA := suite.createUser("pma", models.RoleProjectManager)
	pmB := suite.createUser("pmb", models.RoleProjectManager)
	project := suite.createProject(pmA, "Apollo")

	name := "Hijacked"
	_, err := suite.projects.Update(suite.ctx, pmB, project.ID, UpdateProjectInput{Name: &name})
	suite.ErrorIs(err, ErrNotProjectOwner)
	suite.ErrorIs(err, ErrForbidden)

	_, err = suite.projects.Update(suite.ctx, pmB, 999, UpdateProjectInput{Name: &name})
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ServiceTestSuite) TestProjectUpdate_EmptyPatchKeepsFields() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	member := suite.createUser("member", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo", member)

	updated, err := suite.projects.Update(suite.ctx, pm, project.ID, UpdateProjectInput{})
	suite.Require().NoError(err)

	suite.Equal(project.Name, updated.Name)
	suite.Equal(project.Description, updated.Description)
	suite.Equal(project.Status, updated.Status)
	suite.Len(updated.TeamMembers, 1)
	suite.False(updated.UpdatedAt.Before(project.UpdatedAt))
}

func (suite *ServiceTestSuite) TestProjectUpdate_PartialWithFiles() {
	admin := suite.createUser("admin", models.RoleAdmin)
	pm := suite.createUser("pm", models.RoleProjectManager)
	member := suite.createUser("member", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo", member)

	status := models.ProjectStatusOnHold
	noMembers := []uint64{}
	updated, err := suite.projects.Update(suite.ctx, admin, project.ID, UpdateProjectInput{
		Status:      &status,
		TeamMembers: &noMembers,
		Files:       []storage.Upload{upload("brief.docx", "doc")},
	})
	suite.Require().NoError(err)

	suite.Equal("Apollo", updated.Name)
	suite.Equal(models.ProjectStatusOnHold, updated.Status)
	suite.Empty(updated.TeamMembers)
	suite.Len(updated.Documents, 1)
	suite.Equal([]string{
		"Uploaded new document: brief.docx",
		"Project updated",
		"Project created",
	}, suite.actions(project.ID))

	bad := models.ProjectStatus("Archived")
	_, err = suite.projects.Update(suite.ctx, pm, project.ID, UpdateProjectInput{Status: &bad})
	suite.ErrorIs(err, ErrValidation)
}

func (suite *ServiceTestSuite) TestProjectUploadDocuments() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	project := suite.createProject(pm, "Apollo")

	files := []storage.Upload{upload("a.pdf", "a"), upload("b.png", "b"), upload("c.xlsx", "c")}
	updated, err := suite.projects.UploadDocuments(suite.ctx, pm, project.ID, files)
	suite.Require().NoError(err)
	suite.Len(updated.Documents, 3)

	logs, err := suite.projects.ListLogs(suite.ctx, project.ID)
	suite.Require().NoError(err)
	suite.Require().Len(logs, 4)
	filenames := map[string]bool{}
	for _, l := range logs[:3] {
		filenames[l.Metadata["filename"].(string)] = true
		suite.Contains(l.Action, "Uploaded document: ")
	}
	suite.Equal(map[string]bool{"a.pdf": true, "b.png": true, "c.xlsx": true}, filenames)

	_, err = suite.projects.UploadDocuments(suite.ctx, pm, project.ID, nil)
	suite.ErrorIs(err, ErrNoFilesUploaded)

	many := make([]storage.Upload, 11)
	for i := range many {
		many[i] = upload(fmt.Sprintf("f%d.pdf", i), "x")
	}
	_, err = suite.projects.UploadDocuments(suite.ctx, pm, project.ID, many)
	suite.ErrorIs(err, ErrTooManyFiles)
	suite.ErrorIs(err, ErrBadRequest)

	stranger := suite.createUser("stranger", models.RoleProjectManager)
	_, err = suite.projects.UploadDocuments(suite.ctx, stranger, project.ID, files)
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *ServiceTestSuite) TestProjectDelete_LogsAfterDelete() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	member := suite.createUser("member", models.RoleTeamMember)
	project := suite.createProject(pm, "Apollo")

	suite.ErrorIs(suite.projects.Delete(suite.ctx, member, project.ID), ErrForbidden)
	suite.Require().NoError(suite.projects.Delete(suite.ctx, pm, project.ID))

	_, err := suite.projects.GetByID(suite.ctx, project.ID)
	suite.ErrorIs(err, ErrProjectNotFound)
	suite.Equal([]string{"Project deleted", "Project created"}, suite.actions(project.ID))
}

func (suite *ServiceTestSuite) TestProjectList_ScopedByRole() {
	pm := suite.createUser("pm", models.RoleProjectManager)
	otherPM := suite.createUser("otherpm", models.RoleProjectManager)
	alice := suite.createUser("alice", models.RoleTeamMember)
	admin := suite.createUser("admin", models.RoleAdmin)

	suite.createProject(pm, "Apollo", alice)
	suite.createProject(pm, "Gemini")
	suite.createProject(otherPM, "Mercury", alice)

	cases := []struct {
		name      string
		principal access.Principal
		total     int64
	}{
		{"admin", admin, 3},
		{"owner", pm, 2},
		{"other manager", otherPM, 1},
		{"team member", alice, 2},
	}

	for _, tc := range cases {
		page, err := suite.projects.List(suite.ctx, tc.principal, url.Values{})
		suite.Require().NoError(err, tc.name)
		suite.Equal(tc.total, page.Total, tc.name)
		suite.Len(page.Items, int(tc.total), tc.name)
	}

	page, err := suite.projects.List(suite.ctx, admin, url.Values{"search": {"gem"}, "limit": {"500"}})
	suite.Require().NoError(err)
	suite.Equal(int64(1), page.Total)
	suite.Equal(100, page.Limit)

	_, err = suite.projects.List(suite.ctx, admin, url.Values{"name[regex]": {"x"}})
	suite.ErrorContains(err, "regex")
}

func (suite *ServiceTestSuite) TestProjectCreate_SaveFailureRemovesWrittenFiles() {
	admin := suite.createUser("admin", models.RoleAdmin)
	projects := NewProjectService(suite.projectRepo, suite.userRepo, suite.activity, &flakyStore{Store: suite.store, failAfter: 2})

	_, err := projects.Create(suite.ctx, admin, CreateProjectInput{
		Name:  "Apollo",
		Files: []storage.Upload{upload("a.pdf", "a"), upload("b.pdf", "b"), upload("c.pdf", "c")},
	})
	suite.Require().Error(err)

	suite.Empty(suite.storedFiles())
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Project{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestProjectUploadDocuments_AttachFailureRemovesWrittenFiles() {
	admin := suite.createUser("admin", models.RoleAdmin)
	project := suite.createProject(admin, "Apollo")
	projects := NewProjectService(brokenDocumentsRepo{suite.projectRepo}, suite.userRepo, suite.activity, suite.store)

	_, err := projects.UploadDocuments(suite.ctx, admin, project.ID, []storage.Upload{upload("a.pdf", "a"), upload("b.png", "b")})
	suite.Require().Error(err)

	suite.Empty(suite.storedFiles())
	suite.Equal([]string{"Project created"}, suite.actions(project.ID))

	_, err = projects.Update(suite.ctx, admin, project.ID, UpdateProjectInput{Files: []storage.Upload{upload("c.docx", "c")}})
	suite.Require().Error(err)
	suite.Empty(suite.storedFiles())
}
