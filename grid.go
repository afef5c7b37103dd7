package spook3d

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"spook3d/body"
)

// UniformGrid is an alternate Broadphase: a uniform hash grid over body
// AABBs, approximated from each body's bounding-sphere radius since the
// shape catalogue carries no per-shape AABB. It's the cheap alternative
// the naive all-pairs cull eventually needs once body counts grow past a
// few hundred. Planes are infinite and are never inserted into the grid;
// they're paired against every other body directly instead.
type UniformGrid struct {
	CellSize float32

	cells    []gridCell
	cellMask int
}

type gridCell struct {
	indices []int
}

// NewUniformGrid returns a grid with numCells buckets (rounded up to a
// power of two) of the given world-space size.
func NewUniformGrid(cellSize float32, numCells int) *UniformGrid {
	numCells = nextPowerOfTwo(numCells)
	cells := make([]gridCell, numCells)
	for i := range cells {
		cells[i].indices = make([]int, 0, 8)
	}
	return &UniformGrid{CellSize: cellSize, cells: cells, cellMask: numCells - 1}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

type cellKey struct{ x, y, z int }

func (g *UniformGrid) worldToCell(p mgl32.Vec3) cellKey {
	return cellKey{
		x: int(floorf(p.X() / g.CellSize)),
		y: int(floorf(p.Y() / g.CellSize)),
		z: int(floorf(p.Z() / g.CellSize)),
	}
}

func floorf(f float32) float32 {
	i := float32(int(f))
	if f < 0 && i != f {
		return i - 1
	}
	return i
}

func (g *UniformGrid) hash(k cellKey) int {
	h := (k.x * 73856093) ^ (k.y * 19349663) ^ (k.z * 83492791)
	return h & g.cellMask
}

func (g *UniformGrid) clear() {
	for i := range g.cells {
		g.cells[i].indices = g.cells[i].indices[:0]
	}
}

func (g *UniformGrid) insert(i int, min, max mgl32.Vec3) {
	lo, hi := g.worldToCell(min), g.worldToCell(max)
	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			for z := lo.z; z <= hi.z; z++ {
				idx := g.hash(cellKey{x, y, z})
				g.cells[idx].indices = append(g.cells[idx].indices, i)
			}
		}
	}
}

func aabb(w *World, i int) (min, max mgl32.Vec3) {
	r := w.shape[i].BoundingSphereRadius()
	rv := mgl32.Vec3{r, r, r}
	return w.position[i].Sub(rv), w.position[i].Add(rv)
}

// CollisionPairs implements Broadphase.
func (g *UniformGrid) CollisionPairs(w *World) ([]int, []int, error) {
	n := w.Len()
	if g.cells == nil {
		*g = *NewUniformGrid(g.CellSize, 1024)
	}
	g.clear()

	var planes []int
	for i := 0; i < n; i++ {
		if w.shape[i].Kind() == body.KindPlane {
			planes = append(planes, i)
			continue
		}
		min, max := aabb(w, i)
		g.insert(i, min, max)
	}

	type pair struct{ a, b int }
	seen := make(map[pair]bool)
	var outer, inner []int
	emit := func(a, b int) {
		if a == b {
			return
		}
		hi, lo := a, b
		if lo > hi {
			hi, lo = lo, hi
		}
		p := pair{hi, lo}
		if seen[p] {
			return
		}
		if !w.broadCull(hi, lo) {
			return
		}
		seen[p] = true
		outer = append(outer, hi)
		inner = append(inner, lo)
	}

	for cellIdx := range g.cells {
		bucket := g.cells[cellIdx].indices
		for a := 0; a < len(bucket); a++ {
			for b := a + 1; b < len(bucket); b++ {
				emit(bucket[a], bucket[b])
			}
		}
	}
	for _, p := range planes {
		for i := 0; i < n; i++ {
			if i == p || w.shape[i].Kind() == body.KindPlane {
				continue
			}
			emit(p, i)
		}
	}

	sort.Sort(pairSlice{outer, inner})
	return outer, inner, nil
}

type pairSlice struct{ outer, inner []int }

func (s pairSlice) Len() int { return len(s.outer) }
func (s pairSlice) Less(i, j int) bool {
	if s.outer[i] != s.outer[j] {
		return s.outer[i] < s.outer[j]
	}
	return s.inner[i] < s.inner[j]
}
func (s pairSlice) Swap(i, j int) {
	s.outer[i], s.outer[j] = s.outer[j], s.outer[i]
	s.inner[i], s.inner[j] = s.inner[j], s.inner[i]
}
