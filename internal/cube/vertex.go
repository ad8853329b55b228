package cube

// Vertex is a corner of the unit RGB cube
type Vertex struct {
	X bool
	Y bool
	Z bool
}

// VertexCount is the number of corners of the cube
const VertexCount = 8

// Vertices lists the corners of the cube. Bit 0 of the index is the red axis, bit 1 green, bit 2 blue,
// so vertex 0 is black and vertex 7 is white.
var Vertices = [VertexCount]Vertex{
	{false, false, false},
	{true, false, false},
	{false, true, false},
	{true, true, false},
	{false, false, true},
	{true, false, true},
	{false, true, true},
	{true, true, true},
}

// Neighbors returns the indices of the three vertices that differ from vertex index in exactly one axis
func Neighbors(index int) [3]int {
	return [3]int{index ^ 1, index ^ 2, index ^ 4}
}
