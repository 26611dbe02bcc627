package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
)

var (
	anonymous = Actor{}
	plainUser = Actor{ID: 1, Role: models.RoleUser, Authenticated: true}
	moderator = Actor{ID: 2, Role: models.RoleModerator, Authenticated: true}
	admin     = Actor{ID: 3, Role: models.RoleAdmin, Authenticated: true}
)

func TestAdminOrReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		method Method
		want   bool
	}{
		{"anonymous list", anonymous, List, true},
		{"anonymous retrieve", anonymous, Retrieve, true},
		{"anonymous create", anonymous, Create, false},
		{"user create", plainUser, Create, false},
		{"user delete", plainUser, Delete, false},
		{"moderator create", moderator, Create, false},
		{"admin create", admin, Create, true},
		{"admin delete", admin, Delete, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdminOrReadOnly(AuthContext{Actor: tt.actor, Method: tt.method})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	assert.False(t, AdminOnly(AuthContext{Actor: anonymous, Method: List}))
	assert.False(t, AdminOnly(AuthContext{Actor: plainUser, Method: Retrieve}))
	assert.False(t, AdminOnly(AuthContext{Actor: moderator, Method: List}))
	assert.True(t, AdminOnly(AuthContext{Actor: admin, Method: List}))
	assert.True(t, AdminOnly(AuthContext{Actor: admin, Method: Delete}))
}

func TestCreateOnceOrReadOnly(t *testing.T) {
	owned := &Resource{OwnerID: plainUser.ID}
	foreign := &Resource{OwnerID: 99}

	tests := []struct {
		name     string
		actor    Actor
		method   Method
		resource *Resource
		want     bool
	}{
		{"anonymous list", anonymous, List, nil, true},
		{"anonymous create", anonymous, Create, nil, false},
		{"user create", plainUser, Create, nil, true},
		{"author update own", plainUser, Update, owned, true},
		{"author delete own", plainUser, Delete, owned, true},
		{"user update foreign", plainUser, Update, foreign, false},
		{"moderator update foreign", moderator, Update, foreign, true},
		{"moderator delete foreign", moderator, Delete, foreign, true},
		{"admin update foreign", admin, Update, foreign, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CreateOnceOrReadOnly(AuthContext{Actor: tt.actor, Method: tt.method, Resource: tt.resource})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorOrModerAdminOrReadOnly(t *testing.T) {
	foreign := &Resource{OwnerID: 99}

	assert.True(t, AuthorOrModerAdminOrReadOnly(AuthContext{Actor: anonymous, Method: Retrieve, Resource: foreign}))
	assert.False(t, AuthorOrModerAdminOrReadOnly(AuthContext{Actor: anonymous, Method: Create}))
	assert.True(t, AuthorOrModerAdminOrReadOnly(AuthContext{Actor: plainUser, Method: Create}))
	assert.False(t, AuthorOrModerAdminOrReadOnly(AuthContext{Actor: plainUser, Method: Delete, Resource: foreign}))
	assert.True(t, AuthorOrModerAdminOrReadOnly(AuthContext{Actor: plainUser, Method: Delete, Resource: &Resource{OwnerID: plainUser.ID}}))
	assert.True(t, AuthorOrModerAdminOrReadOnly(AuthContext{Actor: moderator, Method: Delete, Resource: foreign}))
	assert.True(t, AuthorOrModerAdminOrReadOnly(AuthContext{Actor: admin, Method: Update, Resource: foreign}))
}

func TestAuthorOrReadOnly(t *testing.T) {
	owned := &Resource{OwnerID: plainUser.ID}
	foreign := &Resource{OwnerID: 99}

	assert.True(t, AuthorOrReadOnly(AuthContext{Actor: anonymous, Method: List}))
	assert.True(t, AuthorOrReadOnly(AuthContext{Actor: plainUser, Method: Update, Resource: owned}))
	assert.False(t, AuthorOrReadOnly(AuthContext{Actor: plainUser, Method: Update, Resource: foreign}))
	assert.False(t, AuthorOrReadOnly(AuthContext{Actor: admin, Method: Update, Resource: foreign}))
}

func TestDecideErrorKinds(t *testing.T) {
	// Anonymous denial reads as "authenticate first".
	err := Decide(AdminOrReadOnly, AuthContext{Actor: anonymous, Method: Create})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))

	// Authenticated denial is a plain 403, never 404.
	err = Decide(AdminOrReadOnly, AuthContext{Actor: plainUser, Method: Create})
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	assert.NoError(t, Decide(AdminOrReadOnly, AuthContext{Actor: admin, Method: Create}))
	assert.NoError(t, Decide(AdminOrReadOnly, AuthContext{Actor: anonymous, Method: List}))
}
