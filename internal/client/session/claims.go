package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode is returned when there is no token or it is not a
// structurally valid JWT.
var ErrDecode = errors.New("cannot decode session token")

// RoleGuard is the role claim of campus security staff (satpam).
const RoleGuard = "Satpam"

// Claims is the part of the token payload the UI reads.
type Claims struct {
	jwt.RegisteredClaims

	UserID models.FlexString `json:"id_user"`
	Role   string            `json:"role"`
	Name   string            `json:"nama_lengkap"`
	NPM    models.FlexString `json:"npm"`
	Email  string            `json:"email"`
}

// IsGuard reports whether the token carries the security-staff role.
func (c *Claims) IsGuard() bool {
	return strings.EqualFold(c.Role, RoleGuard)
}

// Identity returns the user id claim, falling back to the subject.
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return string(c.UserID)
	}
	return c.Subject
}

// DecodeClaims parses token without verifying its signature or expiry.
func DecodeClaims(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty token", ErrDecode)
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return claims, nil
}
