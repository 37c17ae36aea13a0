package quota

import "github.com/nansinho/innovtec-v2/internal/models"

// DefaultMonthlyLimit applies to unrecognized roles.
const DefaultMonthlyLimit int64 = 30

// roleLimits maps each role to its monthly AI credit allowance. The admin
// value is a sentinel for effectively unlimited use.
var roleLimits = map[string]int64{
	models.RoleAdmin:          999999,
	models.RoleRH:             100,
	models.RoleResponsableQSE: 100,
	models.RoleChefChantier:   50,
	models.RoleTechnicien:     30,
}

// LimitForRole returns the monthly credit limit for a role.
func LimitForRole(role string) int64 {
	if limit, ok := roleLimits[role]; ok {
		return limit
	}
	return DefaultMonthlyLimit
}
