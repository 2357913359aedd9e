package object

import "github.com/iov-one/idm"

// Names of the events emitted by the registry.
const (
	EventOwnerAdded        = "ownerAdded"
	EventAdminAdded        = "adminAdded"
	EventSystemAdded       = "systemAdded"
	EventUserWalletAdded   = "userWalletAdded"
	EventObjectActivated   = "objectActivated"
	EventObjectDeactivated = "objectDeactivated"
	EventUserUpdated       = "userUpdated"
	EventOwnerUpdated      = "ownerUpdated"
	EventAdminUpdated      = "adminUpdated"
	EventSystemUpdated     = "systemUpdated"
)

// AddedEvent returns the event emitted when an object of the given role is
// registered.
func AddedEvent(actor idm.Address, obj *IdentityObject) idm.Event {
	var name string
	switch obj.Role {
	case Role_Owner:
		name = EventOwnerAdded
	case Role_Admin:
		name = EventAdminAdded
	case Role_System:
		name = EventSystemAdded
	case Role_User:
		name = EventUserWalletAdded
	}
	return idm.NewAddressEvent(name, actor, obj.Address)
}

// UpdatedEvent returns the event emitted when the profile of an object of
// the given role is updated. Each role has its own event.
func UpdatedEvent(actor idm.Address, obj *IdentityObject) idm.Event {
	var name string
	switch obj.Role {
	case Role_Owner:
		name = EventOwnerUpdated
	case Role_Admin:
		name = EventAdminUpdated
	case Role_System:
		name = EventSystemUpdated
	case Role_User:
		name = EventUserUpdated
	}
	return idm.NewAddressEvent(name, actor, obj.Address)
}

// ActivationEvent returns the event emitted when the active flag of an
// object changes.
func ActivationEvent(actor idm.Address, obj *IdentityObject) idm.Event {
	if obj.Active {
		return idm.NewAddressEvent(EventObjectActivated, actor, obj.Address)
	}
	return idm.NewAddressEvent(EventObjectDeactivated, actor, obj.Address)
}
