package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type tokens bool

func (t tokens) HasToken(context.Context) bool { return bool(t) }

func TestIsConfirmationPath(t *testing.T) {
	assert.True(t, isConfirmationPath("/12/confirmation"))
	assert.True(t, isConfirmationPath("/abc/confirmation/"))
	assert.False(t, isConfirmationPath("/confirmation"))
	assert.False(t, isConfirmationPath("/a/b/confirmation"))
	assert.False(t, isConfirmationPath("/"))
}

func TestNavigator(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		signedIn bool
		path     string
		want     string
	}{
		{"home is public", false, "/", "/"},
		{"login anonymous", false, "/login", "/login"},
		{"login signed in", true, "/login", "/"},
		{"register signed in", true, "/register", "/"},
		{"confirmation anonymous", false, "/7/confirmation", "/login"},
		{"confirmation signed in", true, "/7/confirmation", "/7/confirmation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNavigator(tokens(tt.signedIn))
			assert.Equal(t, tt.want, n.navigate(ctx, tt.path))
			assert.Equal(t, tt.want, n.location)
		})
	}
}
