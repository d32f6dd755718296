package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckAccess(t *testing.T) {
	tests := []struct {
		name         string
		claims       *JwtCustomClaims
		requiredRole string
		wantAllow    bool
		wantRedirect string
	}{
		{
			name:         "no session redirects to login",
			claims:       nil,
			requiredRole: "marketer",
			wantRedirect: LoginPath,
		},
		{
			name:         "empty user id redirects to login",
			claims:       &JwtCustomClaims{Role: "marketer"},
			requiredRole: "marketer",
			wantRedirect: LoginPath,
		},
		{
			name:         "wrong role redirects to root",
			claims:       &JwtCustomClaims{UserID: "abc", Role: "marketer"},
			requiredRole: "admin",
			wantRedirect: RootPath,
		},
		{
			name:         "matching role is allowed",
			claims:       &JwtCustomClaims{UserID: "abc", Role: "admin"},
			requiredRole: "admin",
			wantAllow:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := CheckAccess(tt.claims, tt.requiredRole)
			assert.Equal(t, tt.wantAllow, decision.Allow)
			assert.Equal(t, tt.wantRedirect, decision.Redirect)
		})
	}
}
