package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/utils"
)

// respondCoreError maps the core error kinds onto HTTP statuses:
// validation to 400, not found to 404, anything else to 500.
func respondCoreError(c *gin.Context, err error) {
	switch {
	case clinic.IsValidation(err):
		utils.BadRequest(c, err.Error())
	case clinic.IsNotFound(err):
		utils.NotFound(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
