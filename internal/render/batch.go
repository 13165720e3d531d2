// Package render turns simulation state into ordered draw calls. Shapes are
// staged in a reusable Batch and flushed through a core.Drawer, so a frame
// costs no allocations once the batch has grown to the largest frame.
package render

import "github.com/vovakirdan/superhex/internal/core"

// cmdKind distinguishes the two primitives a Drawer supports.
type cmdKind uint8

const (
	cmdTriangle cmdKind = iota
	cmdRect
)

// command is one staged primitive.
type command struct {
	kind  cmdKind
	color core.Color
	tri   core.Triangle
	pos   core.Point // Rect top-left
	size  core.Point // Rect size
}

// Batch is a growable list of draw commands that keeps its memory between
// frames. The zero value is ready to use.
type Batch struct {
	cmds []command
}

// Triangle stages a filled triangle.
func (b *Batch) Triangle(c core.Color, t core.Triangle) {
	b.cmds = append(b.cmds, command{kind: cmdTriangle, color: c, tri: t})
}

// Triangles stages several triangles of one color.
func (b *Batch) Triangles(c core.Color, ts []core.Triangle) {
	for _, t := range ts {
		b.Triangle(c, t)
	}
}

// Rect stages a filled rectangle.
func (b *Batch) Rect(c core.Color, pos, size core.Point) {
	b.cmds = append(b.cmds, command{kind: cmdRect, color: c, pos: pos, size: size})
}

// Len returns the number of staged commands.
func (b *Batch) Len() int {
	return len(b.cmds)
}

// Cap returns the number of commands the batch can hold without growing.
func (b *Batch) Cap() int {
	return cap(b.cmds)
}

// Reset empties the batch without releasing its memory.
func (b *Batch) Reset() {
	b.cmds = b.cmds[:0]
}

// Flush sends every staged command to d in order and resets the batch.
func (b *Batch) Flush(d core.Drawer) {
	for i := range b.cmds {
		c := &b.cmds[i]
		switch c.kind {
		case cmdTriangle:
			d.DrawTriangle(c.color, c.tri)
		case cmdRect:
			d.DrawRect(c.color, c.pos, c.size)
		}
	}
	b.Reset()
}
