// Package authz holds the role and tenant access rules in one place.
// Every service consults Can before touching a row, so the role x
// resource x action matrix lives here instead of being repeated per
// handler.
package authz

import (
	"errors"

	"github.com/formhub/formhub-go/models"
)

var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrSiteRequired  = errors.New("role requires a site")
	ErrSiteForbidden = errors.New("super admin cannot belong to a site")
)

// Actor is the authenticated principal a request acts as.
type Actor struct {
	ID     uint
	Role   models.UserRole
	SiteID *uint
}

// NewActor validates the role and its site-scope invariant:
// site_admin and user must belong to exactly one site, super_admin to
// none.
func NewActor(id uint, role models.UserRole, siteID *uint) (Actor, error) {
	if !role.Valid() {
		return Actor{}, ErrUnknownRole
	}
	if role.RequiresSite() && siteID == nil {
		return Actor{}, ErrSiteRequired
	}
	if role == models.RoleSuperAdmin && siteID != nil {
		return Actor{}, ErrSiteForbidden
	}
	return Actor{ID: id, Role: role, SiteID: siteID}, nil
}

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Kind string

const (
	KindSite         Kind = "site"
	KindUser         Kind = "user"
	KindForm         Kind = "form"
	KindFormResponse Kind = "form_response"
	KindMessage      Kind = "message"
	KindTicket       Kind = "ticket"
)

// Target describes the resource being acted on. SiteID is nil for
// global resources. OwnerID is the subject or owning user where the
// rules distinguish "own" from "someone else's". TargetRole is set for
// KindUser targets.
type Target struct {
	Kind       Kind
	SiteID     *uint
	OwnerID    uint
	TargetRole models.UserRole
}

// Decision is a typed authorization outcome. NotFound hides the
// existence of rows the actor may not see; Forbidden marks operations
// the actor's role can never perform.
type Decision int

const (
	Allow Decision = iota
	NotFound
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case NotFound:
		return "not_found"
	default:
		return "forbidden"
	}
}

// Can is the single capability check. Cross-site access collapses to
// NotFound for everyone below super admin.
func Can(actor Actor, action Action, t Target) Decision {
	if actor.Role == models.RoleSuperAdmin {
		return Allow
	}

	// Sites are global rows; everything else is tenant-scoped.
	if t.Kind == KindSite {
		return canSite(actor, action, t)
	}

	if t.SiteID == nil || actor.SiteID == nil || *t.SiteID != *actor.SiteID {
		return NotFound
	}

	switch actor.Role {
	case models.RoleSiteAdmin:
		return canSiteAdmin(actor, action, t)
	case models.RoleUser:
		return canUser(actor, action, t)
	}
	return Forbidden
}

func canSite(actor Actor, action Action, t Target) Decision {
	// A site admin may read its own site; all other site operations
	// are reserved to the super admin.
	if action == ActionRead && actor.Role == models.RoleSiteAdmin &&
		actor.SiteID != nil && t.SiteID != nil && *actor.SiteID == *t.SiteID {
		return Allow
	}
	return Forbidden
}

func canSiteAdmin(actor Actor, action Action, t Target) Decision {
	if t.Kind == KindUser && t.TargetRole == models.RoleSiteAdmin && actor.ID != t.OwnerID {
		// Peers manage themselves; only the super admin manages admins.
		if action == ActionRead {
			return Allow
		}
		return Forbidden
	}
	return Allow
}

func canUser(actor Actor, action Action, t Target) Decision {
	switch t.Kind {
	case KindUser:
		if t.OwnerID != actor.ID {
			return NotFound
		}
		if action == ActionDelete {
			return Forbidden
		}
		return Allow
	case KindForm:
		if action == ActionRead {
			return Allow
		}
		return Forbidden
	case KindFormResponse:
		switch action {
		case ActionCreate:
			return Allow
		case ActionRead:
			if t.OwnerID == actor.ID {
				return Allow
			}
			return NotFound
		}
		return Forbidden
	case KindTicket:
		switch action {
		case ActionCreate:
			return Allow
		case ActionRead, ActionUpdate:
			if t.OwnerID == actor.ID {
				return Allow
			}
			return NotFound
		}
		return Forbidden
	case KindMessage:
		// Participant checks are done by the message rules below.
		if t.OwnerID == actor.ID {
			return Allow
		}
		return NotFound
	}
	return Forbidden
}

// CanMessage applies the recipient matrix: users may only write to
// their site admin, site admins to their own users or super admins,
// super admins to anyone.
func CanMessage(sender Actor, recipient *models.User) bool {
	switch sender.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleSiteAdmin:
		if recipient.Role == models.RoleSuperAdmin {
			return true
		}
		return recipient.Role == models.RoleUser &&
			recipient.SiteID != nil && sender.SiteID != nil &&
			*recipient.SiteID == *sender.SiteID
	case models.RoleUser:
		return recipient.Role == models.RoleSiteAdmin &&
			recipient.SiteID != nil && sender.SiteID != nil &&
			*recipient.SiteID == *sender.SiteID
	}
	return false
}
