package tween

// Group runs several animations from a shared start and reports one
// aggregate completion. Members may carry their own Delay as an offset from
// the group start.
type Group struct {
	members []Animation
	done    bool

	// OnComplete runs once, after the last member finished.
	OnComplete func()
}

// NewGroup creates a group of members.
func NewGroup(members ...Animation) *Group {
	return &Group{members: members}
}

// Add appends a member. Members added after completion are ignored.
func (g *Group) Add(a Animation) {
	if g.done {
		return
	}
	g.members = append(g.members, a)
}

// Done reports whether the aggregate completion has fired.
func (g *Group) Done() bool {
	return g.done
}

// Update implements Animation.
func (g *Group) Update(dt float32) bool {
	if g.done {
		return true
	}
	all := true
	for _, m := range g.members {
		if !m.Update(dt) {
			all = false
		}
	}
	if !all {
		return false
	}
	g.done = true
	if g.OnComplete != nil {
		g.OnComplete()
	}
	return true
}
