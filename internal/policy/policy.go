// Package policy decides, per request, whether a caller may act on a
// resource. Decisions are pure functions of an explicit AuthContext; nothing
// in here touches the request, the database or any global state.
package policy

import (
	"github.com/oguzhanyilmaz/reviewdb/internal/apperr"
	"github.com/oguzhanyilmaz/reviewdb/internal/models"
)

// Method classifies an operation. List and Retrieve are the safe methods:
// they have no side effects and are generally open to anonymous callers.
type Method int

const (
	List Method = iota
	Retrieve
	Create
	Update
	Delete
)

func (m Method) Safe() bool {
	return m == List || m == Retrieve
}

// Actor is the resolved caller. The zero value is the anonymous actor.
type Actor struct {
	ID            uint
	Role          models.Role
	Authenticated bool
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated && a.Role == models.RoleAdmin
}

func (a Actor) IsModerator() bool {
	return a.Authenticated && a.Role == models.RoleModerator
}

// Resource identifies the target of an object-level check. Nil means the
// operation has no single target (list, create).
type Resource struct {
	OwnerID uint
}

// AuthContext carries everything a rule may look at.
type AuthContext struct {
	Actor    Actor
	Method   Method
	Resource *Resource
}

func (ctx AuthContext) isOwner() bool {
	return ctx.Resource != nil && ctx.Actor.Authenticated && ctx.Actor.ID == ctx.Resource.OwnerID
}

// Rule maps an AuthContext to allow (true) or deny (false).
type Rule func(AuthContext) bool

// AdminOrReadOnly: reads are open, writes need an admin. Used for the
// catalog and for titles.
func AdminOrReadOnly(ctx AuthContext) bool {
	if ctx.Method.Safe() {
		return true
	}
	return ctx.Actor.IsAdmin()
}

// AdminOnly: every method needs an admin. Used for the general user
// resource surface; /users/me bypasses it deliberately.
func AdminOnly(ctx AuthContext) bool {
	return ctx.Actor.IsAdmin()
}

// CreateOnceOrReadOnly: reads are open, create needs any authenticated
// caller, update/delete need the author or a moderator. Used for reviews;
// the once-per-title part is enforced by the review service, not here.
func CreateOnceOrReadOnly(ctx AuthContext) bool {
	if ctx.Method.Safe() {
		return true
	}
	if ctx.Method == Create {
		return ctx.Actor.Authenticated
	}
	return ctx.isOwner() || ctx.Actor.IsModerator()
}

// AuthorOrModerAdminOrReadOnly: like CreateOnceOrReadOnly but admins may
// also mutate. Used for comments.
func AuthorOrModerAdminOrReadOnly(ctx AuthContext) bool {
	if ctx.Method.Safe() {
		return true
	}
	if ctx.Method == Create {
		return ctx.Actor.Authenticated
	}
	return ctx.isOwner() || ctx.Actor.IsModerator() || ctx.Actor.IsAdmin()
}

// AuthorOrReadOnly: reads are open, writes need the owner.
func AuthorOrReadOnly(ctx AuthContext) bool {
	if ctx.Method.Safe() {
		return true
	}
	return ctx.isOwner()
}

// Decide evaluates a rule and converts a denial into the right error kind:
// 401 for an anonymous caller, 403 for an authenticated one. A denial is
// never masked as 404.
func Decide(rule Rule, ctx AuthContext) error {
	if rule(ctx) {
		return nil
	}
	if !ctx.Actor.Authenticated {
		return apperr.Unauthenticated("authentication required")
	}
	return apperr.Forbidden("you do not have permission to perform this action")
}
