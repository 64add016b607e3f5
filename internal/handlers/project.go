package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/dto"
	apierrors "github.com/jaydipchangani/project-management-backend/internal/errors"
	"github.com/jaydipchangani/project-management-backend/internal/models"
	"github.com/jaydipchangani/project-management-backend/internal/services"
	"github.com/jaydipchangani/project-management-backend/internal/storage"
	"github.com/jaydipchangani/project-management-backend/internal/utils"
)

// ProjectHandler serves the project endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// projectRequest is the body of a project create or update. Absent fields are nil.
type projectRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	TeamMembers *[]uint64 `json:"team_members"`
}

// ListProjects returns the projects visible to the current user
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	page, err := h.projectService.List(c.Request.Context(), principal, c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.List(dto.Map(page.Items, dto.ToProjectDTO), page.Page, page.Total))
}

// GetProject returns a project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToProjectDTO(*project)))
}

// CreateProject creates a project from a JSON or multipart body
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	req, files, done, err := bindProjectRequest(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	defer done()

	input := services.CreateProjectInput{Files: files}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Status != nil {
		input.Status = models.ProjectStatus(*req.Status)
	}
	if req.TeamMembers != nil {
		input.TeamMembers = *req.TeamMembers
	}

	project, err := h.projectService.Create(c.Request.Context(), principal, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Created("Project created successfully", dto.ToProjectDTO(*project)))
}

// UpdateProject applies a partial update; uploaded files are appended
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	req, files, done, err := bindProjectRequest(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	defer done()

	input := services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		TeamMembers: req.TeamMembers,
		Files:       files,
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		input.Status = &status
	}

	project, err := h.projectService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Project updated successfully", Data: dto.ToProjectDTO(*project)})
}

// DeleteProject soft deletes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Project deleted successfully"})
}

// UploadDocuments attaches the multipart files to a project
func (h *ProjectHandler) UploadDocuments(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	files, done, err := utils.FormUploads(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	defer done()

	project, err := h.projectService.UploadDocuments(c.Request.Context(), principal, id, files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Documents uploaded successfully", Data: dto.ToProjectDTO(*project)})
}

// ListLogs returns the activity log of a project
func (h *ProjectHandler) ListLogs(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	logs, err := h.projectService.ListLogs(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.Map(logs, dto.ToActivityLogDTO)))
}

// bindProjectRequest reads a project body sent as multipart form or JSON.
// The returned function releases the opened uploads.
func bindProjectRequest(c *gin.Context) (projectRequest, []storage.Upload, func(), error) {
	var req projectRequest

	if !utils.IsMultipart(c) {
		if c.Request.ContentLength == 0 {
			return req, nil, func() {}, nil
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, nil, func() {}, errInvalidBody
		}
		return req, nil, func() {}, nil
	}

	files, done, err := utils.FormUploads(c)
	if err != nil {
		return req, nil, func() {}, err
	}

	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		req.Description = &v
	}
	if v, ok := c.GetPostForm("status"); ok {
		req.Status = &v
	}

	members, ok := c.GetPostForm("team_members")
	if !ok {
		members, ok = c.GetPostForm("teamMembers")
	}
	if ok {
		ids, err := utils.ParseIDList(members)
		if err != nil {
			done()
			return req, nil, func() {}, err
		}
		req.TeamMembers = &ids
	}

	return req, files, done, nil
}
