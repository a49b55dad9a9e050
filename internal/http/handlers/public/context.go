package public

import (
	handlershared "github.com/foodgram-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

const (
	userIDContextKey      = "user_id"
	userIsStaffContextKey = "user_is_staff"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, userIDContextKey, "error.user_id_invalid", "error.user_id_type_invalid")
}

// viewerID 可选登录态下的当前用户，游客为 0
func viewerID(c *gin.Context) uint {
	return handlershared.OptionalContextUint(c, userIDContextKey)
}

func isStaff(c *gin.Context) bool {
	return handlershared.ContextBool(c, userIsStaffContextKey)
}
