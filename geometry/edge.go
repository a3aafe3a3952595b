package geometry

import "fmt"

// Alignment tells whether the cylinder's dominant lateral motion and the
// outward normal towards the sphere point the same way.
type Alignment int

const (
	// AlignmentOpposite: the sphere centre has passed over to the trailing
	// side of the cylinder (or the product is exactly zero).
	AlignmentOpposite Alignment = iota
	// AlignmentSame: the sphere has not crossed the outward normal of the
	// cylinder's leading edge yet.
	AlignmentSame
)

// Motion is the sign of the cylinder's motion along the dominant lateral axis.
type Motion int

const (
	// MotionNegative also covers a zero component.
	MotionNegative Motion = iota
	MotionPositive
)

// Branch is one cell of the edge-selection table.
type Branch struct {
	Alignment Alignment
	Motion    Motion
}

func (b Branch) String() string {
	alignment, motion := "opposite", "negative"
	if b.Alignment == AlignmentSame {
		alignment = "same"
	}
	if b.Motion == MotionPositive {
		motion = "positive"
	}
	return fmt.Sprintf("{%s, %s}", alignment, motion)
}

// EdgeSigns are the offsets, in units of radius along the contact normal n,
// of the cylinder edge from the axis point Q and of the sphere edge from the
// sphere centre.
type EdgeSigns struct {
	Cylinder float64
	Sphere   float64
}

// edgeTable holds the contact side of each geometry for every branch. The
// contact follows the side facing the oncoming relative motion, not the line
// between centres.
var edgeTable = [2][2]EdgeSigns{
	AlignmentSame: {
		MotionPositive: {Cylinder: -1, Sphere: +1},
		MotionNegative: {Cylinder: +1, Sphere: -1},
	},
	AlignmentOpposite: {
		MotionPositive: {Cylinder: +1, Sphere: -1},
		MotionNegative: {Cylinder: -1, Sphere: +1},
	},
}

// Classify returns the table cell for the first components of the motion
// direction and of the contact normal.
func Classify(motionX, normalX float64) Branch {
	b := Branch{Alignment: AlignmentOpposite, Motion: MotionNegative}
	if motionX*normalX > 0 {
		b.Alignment = AlignmentSame
	}
	if motionX > 0 {
		b.Motion = MotionPositive
	}
	return b
}

// Signs looks the branch up in the edge-selection table.
func (b Branch) Signs() EdgeSigns {
	return edgeTable[b.Alignment][b.Motion]
}

// SelectEdges classifies the inputs and returns the branch with its signs.
func SelectEdges(motionX, normalX float64) (Branch, EdgeSigns) {
	b := Classify(motionX, normalX)
	return b, b.Signs()
}
