package auth

import (
	"github.com/labstack/echo/v4"

	"eventhub/internal/model"
)

// principalKey is the echo context key the authenticated principal is stored
// under for the remainder of the request pipeline.
const principalKey = "auth.principal"

// Principal is the request-scoped authenticated identity. It is a value
// object built from the persisted user record; it deliberately does not
// embed the record itself.
type Principal struct {
	UserID   uint
	Username string
	Role     model.Role
}

// HasAnyRole reports whether the principal's role is in the given set.
func (p *Principal) HasAnyRole(roles ...model.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// SetPrincipal attaches the authenticated principal to the request context.
func SetPrincipal(c echo.Context, p *Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the authenticated principal for the request, if any.
func PrincipalFrom(c echo.Context) (*Principal, bool) {
	p, ok := c.Get(principalKey).(*Principal)
	return p, ok && p != nil
}
