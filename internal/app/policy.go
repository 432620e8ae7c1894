package app

import (
	"chatz/internal/core"
	"chatz/internal/domain"
)

type DeliveryAction int

const (
	NoAction DeliveryAction = iota
	DropEvent
	KickSession
)

// Policy decides what happens to a recipient that could not take a
// delivery (closed endpoint or full send buffer).
type Policy interface {
	OnDeliveryFailure(room domain.RoomID, sid core.SessionID) DeliveryAction
}

// SimplePolicy drops the single event and keeps the session; a failed
// delivery is never surfaced and never retried.
type SimplePolicy struct{}

func (SimplePolicy) OnDeliveryFailure(domain.RoomID, core.SessionID) DeliveryAction {
	return DropEvent
}
