package behaviortree

// TreeProxy ticks a fixed sub-tree, authored in at tree-build time. Added
// via Tree.AddSubtree.
type TreeProxy struct {
	Base
	target *Tree
}

// NewTreeProxy creates a proxy that ticks target on every Update.
func NewTreeProxy(target *Tree) *TreeProxy {
	return &TreeProxy{target: target}
}

// Target returns the sub-tree this proxy ticks.
func (p *TreeProxy) Target() *Tree { return p.target }

func (p *TreeProxy) Update(ex *Executor) (Status, error) {
	return p.target.Execute(ex)
}

// ChannelProxy ticks whichever sub-tree is currently assigned to its
// channel, looked up on the owning tree at tick time. Failure if the
// channel has no assignment. Added via Tree.AddChannel.
type ChannelProxy struct {
	Base
	channel int
}

// NewChannelProxy creates a proxy bound to channel.
func NewChannelProxy(channel int) *ChannelProxy {
	return &ChannelProxy{channel: channel}
}

// Channel returns the channel identifier this proxy dispatches through.
func (p *ChannelProxy) Channel() int { return p.channel }

func (p *ChannelProxy) Update(ex *Executor) (Status, error) {
	sub := p.Tree().ChannelAssignment(p.channel)
	if sub == nil {
		return StatusFailure, nil
	}
	return sub.Execute(ex)
}
