package display

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_Defaults(t *testing.T) {
	n := NewContainer("root")

	assert.Equal(t, "root", n.Name)
	assert.Equal(t, 1.0, n.Alpha)
	assert.Equal(t, 1.0, n.ScaleX)
	assert.Equal(t, 1.0, n.ScaleY)
	assert.True(t, n.Visible)
	assert.Equal(t, ColorWhite, n.Tint)
	assert.False(t, n.IsDisposed())
}

func TestRGB(t *testing.T) {
	c := RGB(0x2ECC71)
	assert.InDelta(t, 0x2E/255.0, c.R, 1e-9)
	assert.InDelta(t, 0xCC/255.0, c.G, 1e-9)
	assert.InDelta(t, 0x71/255.0, c.B, 1e-9)
	assert.Equal(t, 1.0, c.A)
}

func TestNode_AddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")

	a.AddChild(child)
	b.AddChild(child)

	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, 1, b.NumChildren())
	assert.Same(t, b, child.Parent)
}

func TestNode_RemoveChildIgnoresStrangers(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)

	b.RemoveChild(child)
	assert.Same(t, a, child.Parent)

	child.RemoveFromParent()
	assert.Nil(t, child.Parent)
	assert.Equal(t, 0, a.NumChildren())
}

func TestNode_DisposeReleasesSubtree(t *testing.T) {
	stage := NewContainer("stage")
	root := NewContainer("scene")
	leaf := NewContainer("leaf")
	root.AddChild(leaf)
	stage.AddChild(root)

	root.Dispose()

	assert.True(t, root.IsDisposed())
	assert.True(t, leaf.IsDisposed())
	assert.Nil(t, root.Parent)
	assert.Equal(t, 0, stage.NumChildren())
	assert.Equal(t, 0, root.NumChildren())

	// Second dispose and late adds are harmless.
	root.Dispose()
	root.AddChild(NewContainer("late"))
	assert.Equal(t, 0, root.NumChildren())
	stage.AddChild(root)
	assert.Equal(t, 0, stage.NumChildren())
}

func TestNode_ToLocal(t *testing.T) {
	parent := NewContainer("parent")
	parent.X, parent.Y = 100, 50
	child := NewContainer("child")
	child.X = 10
	child.SetScale(2)
	parent.AddChild(child)

	x, y := child.ToLocal(130, 70)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)
}

func TestNode_DrawComposesAlphaAndSkipsHidden(t *testing.T) {
	var seen []float64
	record := func(_ *ebiten.Image, _ ebiten.GeoM, alpha float64) { seen = append(seen, alpha) }

	root := NewContainer("root")
	root.Alpha = 0.5
	p := NewPainter("p", record)
	p.Alpha = 0.5
	root.AddChild(p)
	hidden := NewPainter("hidden", record)
	hidden.Visible = false
	root.AddChild(hidden)
	transparent := NewPainter("transparent", record)
	transparent.Alpha = 0
	root.AddChild(transparent)

	root.Draw(nil)

	require.Len(t, seen, 1)
	assert.InDelta(t, 0.25, seen[0], 1e-9)
}

func TestNode_DrawOrdersByZIndex(t *testing.T) {
	var order []string
	mk := func(name string, z int) *Node {
		n := NewPainter(name, func(*ebiten.Image, ebiten.GeoM, float64) { order = append(order, name) })
		n.ZIndex = z
		return n
	}
	root := NewContainer("root")
	root.AddChild(mk("top", 999))
	root.AddChild(mk("bottom", 0))
	root.AddChild(mk("middle", 5))

	root.Draw(nil)

	assert.Equal(t, []string{"bottom", "middle", "top"}, order)
	assert.Equal(t, "top", root.Children()[0].Name, "draw order must not reorder children")
}

func TestNode_HitTest(t *testing.T) {
	root := NewContainer("root")
	root.Y = 100
	s := NewSprite("subject", ebiten.NewImage(40, 20))
	s.X = 50
	root.AddChild(s)

	assert.True(t, s.HitTest(50, 100))
	assert.True(t, s.HitTest(31, 91))
	assert.False(t, s.HitTest(50, 0), "parent offset applies")
	assert.False(t, s.HitTest(75, 100))

	s.SetScale(2)
	assert.True(t, s.HitTest(75, 100))

	s.Dispose()
	assert.False(t, s.HitTest(50, 100))
}
