// Package display is a minimal retained scene graph drawn with ebiten.
//
// A Node is a single flat struct for every kind of visual: containers,
// sprites, text and procedural painters. Transforms and alpha are local and
// compose down the tree at draw time. Nodes are not safe for concurrent use;
// everything happens on the ebiten update/draw thread.
package display

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Color is an RGBA tint with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGB builds an opaque tint from a 0xRRGGBB value.
func RGB(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// PaintFunc draws procedural content. geo maps node-local coordinates to the
// destination and alpha is the accumulated opacity.
type PaintFunc func(dst *ebiten.Image, geo ebiten.GeoM, alpha float64)

// Node is the scene graph element.
type Node struct {
	Name string

	Parent   *Node
	children []*Node

	// Local transform
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	PivotX, PivotY float64

	// Anchor positions the image or text relative to the node origin,
	// (0.5, 0.5) centers it.
	AnchorX, AnchorY float64

	Alpha   float64
	Visible bool
	Tint    Color
	ZIndex  int
	Blend   ebiten.Blend

	Image *ebiten.Image
	Text  string
	Face  text.Face
	Paint PaintFunc

	disposed bool
}

func nodeDefaults(n *Node) {
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Visible = true
	n.Tint = ColorWhite
	n.Blend = ebiten.BlendSourceOver
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewSprite creates a node that draws img centered on its origin.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Image: img, AnchorX: 0.5, AnchorY: 0.5}
	nodeDefaults(n)
	return n
}

// NewText creates a node that draws a centered string.
func NewText(name, str string, face text.Face) *Node {
	n := &Node{Name: name, Text: str, Face: face, AnchorX: 0.5, AnchorY: 0.5}
	nodeDefaults(n)
	return n
}

// NewPainter creates a node whose content is drawn by fn each frame.
func NewPainter(name string, fn PaintFunc) *Node {
	n := &Node{Name: name, Paint: fn}
	nodeDefaults(n)
	return n
}

// SetScale sets both scale axes.
func (n *Node) SetScale(s float64) {
	n.ScaleX = s
	n.ScaleY = s
}

// AddChild appends child, detaching it from its previous parent first.
// Adding a disposed node is ignored.
func (n *Node) AddChild(child *Node) {
	if child == nil || child.disposed || n.disposed {
		return
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child if it belongs to n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent != n {
		return
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the child list. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Dispose detaches n and releases it with its whole subtree.
// Disposed nodes are never drawn and reject new children.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, c := range n.children {
		c.Parent = nil
		c.dispose()
	}
	n.children = nil
	n.Image = nil
	n.Paint = nil
}

// IsDisposed reports whether Dispose has been called on n or an ancestor.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// LocalTransform returns the node's transform relative to its parent.
func (n *Node) LocalTransform() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-n.PivotX, -n.PivotY)
	g.Scale(n.ScaleX, n.ScaleY)
	if n.Rotation != 0 {
		g.Rotate(n.Rotation)
	}
	g.Translate(n.X, n.Y)
	return g
}

// WorldTransform returns the composed transform from n to the root.
func (n *Node) WorldTransform() ebiten.GeoM {
	g := n.LocalTransform()
	for p := n.Parent; p != nil; p = p.Parent {
		g.Concat(p.LocalTransform())
	}
	return g
}

// ToLocal converts a root-space point into n's local space.
func (n *Node) ToLocal(x, y float64) (float64, float64) {
	g := n.WorldTransform()
	if !g.IsInvertible() {
		return x, y
	}
	g.Invert()
	return g.Apply(x, y)
}

// HitTest reports whether the root-space point (x, y) lies on n's image.
func (n *Node) HitTest(x, y float64) bool {
	if n.Image == nil || n.disposed {
		return false
	}
	lx, ly := n.ToLocal(x, y)
	b := n.Image.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	lx += w * n.AnchorX
	ly += h * n.AnchorY
	return lx >= 0 && ly >= 0 && lx < w && ly < h
}

// Draw renders n and its subtree onto dst.
func (n *Node) Draw(dst *ebiten.Image) {
	n.draw(dst, ebiten.GeoM{}, 1)
}

func (n *Node) draw(dst *ebiten.Image, parent ebiten.GeoM, parentAlpha float64) {
	if n.disposed || !n.Visible {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	geo := n.LocalTransform()
	geo.Concat(parent)

	switch {
	case n.Image != nil:
		n.drawImage(dst, geo, alpha)
	case n.Face != nil && n.Text != "":
		n.drawText(dst, geo, alpha)
	case n.Paint != nil:
		n.Paint(dst, geo, alpha)
	}

	for _, c := range n.sortedChildren() {
		c.draw(dst, geo, alpha)
	}
}

func (n *Node) drawImage(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	b := n.Image.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())*n.AnchorX, -float64(b.Dy())*n.AnchorY)
	op.GeoM.Concat(geo)
	n.applyTint(&op.ColorScale, alpha)
	op.Blend = n.Blend
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(n.Image, op)
}

func (n *Node) drawText(dst *ebiten.Image, geo ebiten.GeoM, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM = geo
	n.applyTint(&op.ColorScale, alpha)
	op.PrimaryAlign = alignFor(n.AnchorX)
	op.SecondaryAlign = alignFor(n.AnchorY)
	text.Draw(dst, n.Text, n.Face, op)
}

func (n *Node) applyTint(cs *ebiten.ColorScale, alpha float64) {
	a := n.Tint.A * alpha
	cs.Scale(float32(n.Tint.R*a), float32(n.Tint.G*a), float32(n.Tint.B*a), float32(a))
}

func alignFor(anchor float64) text.Align {
	switch {
	case anchor >= 0.75:
		return text.AlignEnd
	case anchor >= 0.25:
		return text.AlignCenter
	default:
		return text.AlignStart
	}
}

func (n *Node) sortedChildren() []*Node {
	sorted := true
	for i := 1; i < len(n.children); i++ {
		if n.children[i].ZIndex < n.children[i-1].ZIndex {
			sorted = false
			break
		}
	}
	if sorted {
		return n.children
	}
	out := slices.Clone(n.children)
	slices.SortStableFunc(out, func(a, b *Node) int { return a.ZIndex - b.ZIndex })
	return out
}
