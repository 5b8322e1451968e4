package btecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	bt "github.com/kestrel-ai/behaviortree"
)

// EventType distinguishes the three notifications a WorldSink publishes.
type EventType int

const (
	EventTreeEntered EventType = iota
	EventTreeLeft
	EventNodeUpdated
)

// Notification is the Donburi event type a WorldSink publishes. Subscribe
// to NotificationEventType in an ECS system to receive these.
type Notification struct {
	Type   EventType
	Tree   *bt.Tree
	Node   bt.Node
	Status bt.Status // only meaningful for EventNodeUpdated
}

// NotificationEventType is the Donburi event type for WorldSink
// notifications.
var NotificationEventType = events.NewEventType[Notification]()

// WorldSink is a bt.DebugPreview backed by a Donburi world. Every tree
// entry/exit and node update is published as a Notification; subscribers
// process them with events.ProcessEvents or events.ProcessAllEvents.
type WorldSink struct {
	world donburi.World
}

// NewWorldSink creates a WorldSink that publishes into world.
func NewWorldSink(world donburi.World) *WorldSink {
	return &WorldSink{world: world}
}

func (s *WorldSink) BeforeEnterTree(t *bt.Tree) {}

func (s *WorldSink) AfterEnterTree(t *bt.Tree) {
	NotificationEventType.Publish(s.world, Notification{Type: EventTreeEntered, Tree: t})
}

func (s *WorldSink) BeforeLeaveTree(t *bt.Tree) {}

func (s *WorldSink) AfterLeaveTree(t *bt.Tree) {
	NotificationEventType.Publish(s.world, Notification{Type: EventTreeLeft, Tree: t})
}

func (s *WorldSink) BeforeUpdateNode(n bt.Node) {}

func (s *WorldSink) AfterUpdateNode(n bt.Node, status bt.Status) {
	NotificationEventType.Publish(s.world, Notification{
		Type:   EventNodeUpdated,
		Tree:   n.Tree(),
		Node:   n,
		Status: status,
	})
}
