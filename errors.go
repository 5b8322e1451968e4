package behaviortree

import "errors"

// ErrContractViolation marks a programmer error: double-attaching a node,
// wiring against a node the tree doesn't own, or ticking with no active
// tree frame. These are bugs in authoring or driver code, not
// application-level tick outcomes. Frame leaves are internal to the
// executor and always paired with an enter, so no error is produced for
// an unbalanced leave.
var ErrContractViolation = errors.New("behaviortree: contract violation")

// ErrMissingProperty is returned by Get when a reference has no usable
// value in the state: the slot was never set, was unset, or holds a bare
// reservation (Reserve, with no value assigned yet). Has reports false in
// exactly the same cases.
var ErrMissingProperty = errors.New("behaviortree: missing property")
