package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/access"
	apierrors "github.com/jaydipchangani/project-management-backend/internal/errors"
	"github.com/jaydipchangani/project-management-backend/internal/middleware"
	"github.com/jaydipchangani/project-management-backend/internal/query"
	"github.com/jaydipchangani/project-management-backend/internal/services"
	"github.com/jaydipchangani/project-management-backend/internal/storage"
)

// respondError maps service, query and storage errors to API error responses
func respondError(c *gin.Context, err error) {
	var verr *query.ValidationError

	switch {
	case errors.As(err, &verr):
		apierrors.Validation(c, verr.Error(), gin.H{"param": verr.Param, "reason": verr.Reason})
	case errors.Is(err, services.ErrValidation):
		apierrors.Validation(c, message(err, services.ErrValidation), nil)
	case errors.Is(err, storage.ErrInvalidFileType):
		apierrors.InvalidFileType(c, err.Error())
	case errors.Is(err, storage.ErrFileTooLarge):
		apierrors.FileTooLarge(c, err.Error())
	case errors.Is(err, storage.ErrEmptyFilename):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, message(err, services.ErrForbidden))
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, message(err, services.ErrUnauthorized))
	case errors.Is(err, services.ErrBadRequest):
		apierrors.BadRequest(c, message(err, services.ErrBadRequest))
	case errors.Is(err, services.ErrConflict):
		apierrors.Conflict(c, message(err, services.ErrConflict))
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, "")
	}
}

// message drops the category prefix from a wrapped sentinel's text
func message(err, category error) string {
	return strings.TrimPrefix(err.Error(), category.Error()+": ")
}

// requirePrincipal returns the authenticated principal or responds 401
func requirePrincipal(c *gin.Context) (access.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return access.Principal{}, false
	}
	return p, true
}

var errInvalidBody = errors.New("invalid request body")
