// Package btecs adapts a behavior tree's debug preview stream into Donburi
// ECS events, so ECS systems can react to tree activity without polling.
package btecs
