// Package authz implements per-operation authorization rules.
//
// Rules are evaluated explicitly per (actor, action, resource) instead of
// being attached to handler types. Two composable rules cover the whole API:
// a read-mostly rule (reads need authentication, bare writes need staff) and
// an ownership rule (mutating a resource needs the owner or an admin).
package authz

import "ripple/internal/models"

// Action identifies the operation being authorized.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDestroy  Action = "destroy"
)

// Actor describes the requesting principal. A zero Actor is an anonymous
// caller.
type Actor struct {
	ID            uint
	Authenticated bool
	Staff         bool
	Superuser     bool
}

// ActorFromUser builds an Actor from an authenticated user record.
func ActorFromUser(u *models.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{
		ID:            u.ID,
		Authenticated: true,
		Staff:         u.IsStaff,
		Superuser:     u.IsSuperuser,
	}
}

// Admin reports whether the actor bypasses ownership checks.
func (a Actor) Admin() bool {
	return a.Staff || a.Superuser
}

func (a Action) isRead() bool {
	return a == ActionList || a == ActionRetrieve
}

// ReadMostly is the base rule: read actions require authentication, write
// actions require staff privilege. Resource policies override it for
// ownership-scoped writes.
func ReadMostly(actor Actor, action Action) error {
	if !actor.Authenticated {
		return models.NewUnauthorizedError("Authentication required")
	}
	if action.isRead() {
		return nil
	}
	if !actor.Admin() {
		return models.NewForbiddenError("Staff privilege required")
	}
	return nil
}

// OwnerOrAdmin is the ownership rule: the resource owner and admins pass,
// everyone else is denied.
func OwnerOrAdmin(actor Actor, ownerID uint) error {
	if !actor.Authenticated {
		return models.NewUnauthorizedError("Authentication required")
	}
	if actor.ID == ownerID || actor.Admin() {
		return nil
	}
	return models.NewForbiddenError("You do not have permission to modify this resource")
}

// ForUser authorizes an action against a user record. The record itself is
// the owned resource, so updates fall under the ownership rule.
func ForUser(actor Actor, action Action, targetUserID uint) error {
	if action == ActionUpdate {
		return OwnerOrAdmin(actor, targetUserID)
	}
	return ReadMostly(actor, action)
}

// ForPost authorizes an action against a post. Any authenticated user may
// create; update and destroy are owner-or-admin; reads need authentication.
func ForPost(actor Actor, action Action, authorID uint) error {
	switch action {
	case ActionCreate:
		if !actor.Authenticated {
			return models.NewUnauthorizedError("Authentication required")
		}
		return nil
	case ActionUpdate, ActionDestroy:
		return OwnerOrAdmin(actor, authorID)
	default:
		return ReadMostly(actor, action)
	}
}

// ForFollowEdge authorizes an action against a follow edge. Creating an edge
// needs authentication only; destroying one is reserved to the edge's
// follower (or an admin) so users can always unfollow on their own.
func ForFollowEdge(actor Actor, action Action, followerID uint) error {
	switch action {
	case ActionCreate:
		if !actor.Authenticated {
			return models.NewUnauthorizedError("Authentication required")
		}
		return nil
	case ActionDestroy:
		return OwnerOrAdmin(actor, followerID)
	default:
		return ReadMostly(actor, action)
	}
}
