package handlers

import "github.com/gin-gonic/gin"

// getUserID extracts the user ID from gin context.
func getUserID(c *gin.Context) uint64 {
	val, exists := c.Get("userID")
	if !exists {
		return 0
	}
	switch v := val.(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case int:
		return uint64(v)
	default:
		return 0
	}
}

// getUserRole extracts the role string from gin context.
func getUserRole(c *gin.Context) string {
	val, exists := c.Get("userRole")
	if !exists {
		return ""
	}
	role, ok := val.(string)
	if !ok {
		return ""
	}
	return role
}

// hasRole reports whether the caller's role is one of the allowed roles.
func hasRole(c *gin.Context, allowed ...string) bool {
	role := getUserRole(c)
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}
