// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookxchange/backend/internal/services"
	"github.com/bookxchange/backend/internal/utils"
)

// respondError writes the envelope for err: validation 400, not found 404,
// conflict 409, everything else 500.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		conflictErr   *services.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, validationErr.Message, validationErr.Fields)
	case errors.As(err, &notFoundErr):
		utils.NotFoundResponse(c, notFoundErr.Resource)
	case errors.As(err, &conflictErr):
		utils.ConflictResponse(c, conflictErr.Message)
	default:
		_ = c.Error(err)
		log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// requireUser returns the authenticated caller or writes a 401.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return userID, ok
}
