package idm

import (
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification about a committed state transition. Events are
// consumed by external observers (indexers, user interfaces) and never feed
// back into the application logic.
type Event struct {
	// Name of the state transition, for example "MSTSigned".
	Name string `json:"name"`
	// Actor is the authenticated address that caused the transition.
	Actor Address `json:"actor"`
	// Subject identifies the affected entity, an address or an id.
	Subject string `json:"subject"`
}

// NewAddressEvent returns an event about the object with the given address.
func NewAddressEvent(name string, actor, subject Address) Event {
	return Event{Name: name, Actor: actor, Subject: subject.String()}
}

// NewIDEvent returns an event about the entity with the given sequence id.
func NewIDEvent(name string, actor Address, id uint64) Event {
	return Event{Name: name, Actor: actor, Subject: strconv.FormatUint(id, 10)}
}

// Tags renders the event into tendermint tags so that the transaction can be
// found by the event name, the actor or the subject.
func (e Event) Tags() []common.KVPair {
	return []common.KVPair{
		{Key: []byte("event"), Value: []byte(e.Name)},
		{Key: []byte(e.Name + ".actor"), Value: []byte(e.Actor.String())},
		{Key: []byte(e.Name + ".subject"), Value: []byte(e.Subject)},
	}
}
