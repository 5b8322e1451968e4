// Package btbuild is a fluent authoring surface for behaviortree.Tree: a
// Builder that lets callers lay out a tree as a chain of Root/Child/
// Begin/End calls instead of calling Tree.SetRoot/AddChild directly.
package btbuild
