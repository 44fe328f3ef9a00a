package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhis2/approval-backend/dto"
	"github.com/dhis2/approval-backend/models"
	"github.com/dhis2/approval-backend/usecases"
)

func handleDeletionCheck(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var query dto.DeletionCheckQuery
		if err := c.ShouldBindQuery(&query); presentError(ctx, c, bindingError(err)) {
			return
		}

		manager := uc.NewDeletionManager()
		check, err := manager.Check(ctx, models.DeletableObject{
			Kind: models.DeletableKindFromString(query.Kind),
			Id:   query.Id,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"deletion_check": dto.AdaptDeletionCheckDto(check)})
	}
}
