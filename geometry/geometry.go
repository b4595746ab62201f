// Package geometry is the static piece catalog: cell offsets for every
// variant and rotation, plus the per-column skirts and x extents derived
// from them.
//
// Offsets are relative to the piece origin in y-up board coordinates.
// Rotation r+1 is rotation r turned clockwise, (x, y) -> (y, -x).
package geometry

// Variant identifies one entry in the catalog.
type Variant uint8

const (
	I Variant = iota
	O
	T
	S
	Z
	J
	L
)

// VariantCount is the number of variants a random source selects among.
const VariantCount = 7

// Offset is a cell position relative to a piece origin.
type Offset struct {
	X, Y int
}

var shapes = [VariantCount][][4]Offset{
	I: {
		{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {0, 0}, {0, -1}, {0, -2}},
	},
	O: {
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	T: {
		{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
		{{0, 1}, {0, 0}, {0, -1}, {1, 0}},
		{{1, 0}, {0, 0}, {-1, 0}, {0, -1}},
		{{0, -1}, {0, 0}, {0, 1}, {-1, 0}},
	},
	S: {
		{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
		{{0, 1}, {0, 0}, {1, 0}, {1, -1}},
	},
	Z: {
		{{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
		{{1, 1}, {1, 0}, {0, 0}, {0, -1}},
	},
	J: {
		{{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		{{1, 1}, {0, 1}, {0, 0}, {0, -1}},
		{{1, -1}, {1, 0}, {0, 0}, {-1, 0}},
		{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
	},
	L: {
		{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
		{{0, 1}, {0, 0}, {0, -1}, {1, -1}},
		{{1, 0}, {0, 0}, {-1, 0}, {-1, -1}},
		{{0, -1}, {0, 0}, {0, 1}, {-1, 1}},
	},
}

type bounds struct {
	minX, maxX int
	minY, maxY int
	skirt      []int
}

var derived [VariantCount][]bounds

func init() {
	for v, rotations := range shapes {
		derived[v] = make([]bounds, len(rotations))
		for r, cells := range rotations {
			derived[v][r] = measure(cells)
		}
	}
}

func measure(cells [4]Offset) bounds {
	b := bounds{
		minX: cells[0].X, maxX: cells[0].X,
		minY: cells[0].Y, maxY: cells[0].Y,
	}
	for _, c := range cells[1:] {
		b.minX = min(b.minX, c.X)
		b.maxX = max(b.maxX, c.X)
		b.minY = min(b.minY, c.Y)
		b.maxY = max(b.maxY, c.Y)
	}

	// Columns without a cell keep maxY+1 so they never constrain a drop.
	b.skirt = make([]int, b.maxX-b.minX+1)
	for i := range b.skirt {
		b.skirt[i] = b.maxY + 1
	}
	for _, c := range cells {
		i := c.X - b.minX
		b.skirt[i] = min(b.skirt[i], c.Y)
	}
	return b
}

// Cells returns the four offsets occupied by v at rotation rot.
func Cells(v Variant, rot int) [4]Offset {
	return shapes[v][rot]
}

// RotationCount returns how many distinct rotations v has.
func RotationCount(v Variant) int {
	return len(shapes[v])
}

// Skirt returns the lowest occupied relative y for each column the piece
// spans. Index 0 is the column at the minimum relative x.
func Skirt(v Variant, rot int) []int {
	return derived[v][rot].skirt
}

// Extent returns the minimum and maximum relative x of v at rot.
func Extent(v Variant, rot int) (minX, maxX int) {
	b := derived[v][rot]
	return b.minX, b.maxX
}

// Height returns the minimum and maximum relative y of v at rot.
func Height(v Variant, rot int) (minY, maxY int) {
	b := derived[v][rot]
	return b.minY, b.maxY
}

func (v Variant) String() string {
	if int(v) >= VariantCount {
		return "Variant(?)"
	}
	return "IOTSZJL"[v : v+1]
}
