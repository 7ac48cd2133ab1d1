package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scentbase/perfume-catalog-api/internal/constants"
	"github.com/scentbase/perfume-catalog-api/internal/database"
	apierrors "github.com/scentbase/perfume-catalog-api/internal/errors"
	"github.com/scentbase/perfume-catalog-api/internal/models"
)

// RequirePerfumeAccess loads the perfume addressed by the :id parameter,
// scoped to the authenticated owner, and stores it in the context with its
// tags preloaded.
func RequirePerfumeAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		perfumeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid perfume ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// A perfume owned by someone else answers 404, same as a missing
		// row, so the response never confirms that the id exists
		var perfume models.Perfume
		if err := database.GetDB().
			Scopes(database.OwnedBy(userID)).
			Preload("Notes").
			Preload("Designers").
			First(&perfume, perfumeID).Error; err != nil {
			apierrors.NotFound(c, "Perfume not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPerfume, perfume)
		c.Next()
	}
}

// GetPerfume retrieves the perfume loaded by RequirePerfumeAccess
func GetPerfume(c *gin.Context) (models.Perfume, bool) {
	value, exists := c.Get(constants.ContextKeyPerfume)
	if !exists {
		return models.Perfume{}, false
	}

	perfume, ok := value.(models.Perfume)
	return perfume, ok
}
