package geometry

import (
	"slices"

	"github.com/akmonengine/geokernel"
	"github.com/akmonengine/geokernel/device"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// Graph is a set of points joined by undirected edges. Node i of the edge
// graph is point i and every edge weight is the euclidean length of the edge,
// kept up to date as the points move.
type Graph struct {
	vertexSet

	Points *device.Buffer[mgl32.Vec3]
	edges  *simple.WeightedUndirectedGraph
}

// NewGraph copies points onto dev. The graph starts without edges.
func NewGraph(dev *device.Device, points []mgl32.Vec3) (*Graph, error) {
	p, err := newVec3Buffer(dev, points)
	if err != nil {
		return nil, err
	}
	g := &Graph{Points: p}
	g.resetEdges()
	return g, nil
}

func (g *Graph) resetEdges() {
	g.edges = simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < g.Points.Len(); i++ {
		g.edges.AddNode(simple.Node(i))
	}
}

// AddEdge joins points i and j. Adding an existing edge refreshes its weight.
func (g *Graph) AddEdge(i, j int) error {
	return g.AddEdges([][2]int{{i, j}})
}

// AddEdges adds every edge, or none of them if one is invalid. Pending point
// operations must be synchronized first.
func (g *Graph) AddEdges(edges [][2]int) error {
	n := g.Points.Len()
	for _, e := range edges {
		i, j := e[0], e[1]
		if i < 0 || j < 0 || i >= n || j >= n || i == j {
			return errors.Wrapf(geokernel.ErrInvalidArgument, "edge (%d, %d) on %d points", i, j, n)
		}
	}
	points := g.Points.CopyToHost()
	for _, e := range edges {
		g.setEdge(e[0], e[1], points)
	}
	return nil
}

func (g *Graph) setEdge(i, j int, points []mgl32.Vec3) {
	w := float64(points[i].Sub(points[j]).Len())
	g.edges.SetWeightedEdge(g.edges.NewWeightedEdge(simple.Node(i), simple.Node(j), w))
}

// RemoveEdge deletes the edge between i and j if it exists.
func (g *Graph) RemoveEdge(i, j int) {
	g.edges.RemoveEdge(int64(i), int64(j))
}

// EdgeWeight returns the length of the edge between i and j.
func (g *Graph) EdgeWeight(i, j int) (float64, bool) {
	if !g.edges.HasEdgeBetween(int64(i), int64(j)) {
		return 0, false
	}
	return g.edges.Weight(int64(i), int64(j))
}

// Edges returns every edge once as (low, high) point indices, sorted.
func (g *Graph) Edges() [][2]int32 {
	edges := make([][2]int32, 0, g.edges.Edges().Len())
	for it := g.edges.Edges(); it.Next(); {
		e := it.Edge()
		from, to := int32(e.From().ID()), int32(e.To().ID())
		edges = append(edges, [2]int32{min(from, to), max(from, to)})
	}
	slices.SortFunc(edges, func(a, b [2]int32) int {
		if a[0] != b[0] {
			return int(a[0] - b[0])
		}
		return int(a[1] - b[1])
	})
	return edges
}

// Neighbors returns the indices of the points joined to i.
func (g *Graph) Neighbors(i int) []int {
	var out []int
	if g.edges.Node(int64(i)) == nil {
		return out
	}
	for it := g.edges.From(int64(i)); it.Next(); {
		out = append(out, int(it.Node().ID()))
	}
	slices.Sort(out)
	return out
}

// EdgeGraph exposes the edges for gonum graph algorithms.
func (g *Graph) EdgeGraph() graph.WeightedUndirected {
	return g.edges
}

// refreshWeights recomputes every edge length once the pending point
// operations of the context have run.
func (g *Graph) refreshWeights() {
	if g.err != nil {
		return
	}
	device.HostFunc(g.context(), func() {
		points := g.Points.CopyToHost()
		edges := g.Edges()
		for _, e := range edges {
			g.setEdge(int(e[0]), int(e[1]), points)
		}
	})
}

func (g *Graph) Type() GeometryType {
	return GeometryTypeGraph
}

func (g *Graph) Clear() Geometry3D {
	g.Points.Clear()
	g.resetEdges()
	return g
}

func (g *Graph) IsEmpty() bool {
	return g.Points.IsEmpty()
}

func (g *Graph) GetMinBound() mgl32.Vec3 {
	return geokernel.ComputeMinBoundOn(g.context(), g.Points).Wait()
}

func (g *Graph) GetMaxBound() mgl32.Vec3 {
	return geokernel.ComputeMaxBoundOn(g.context(), g.Points).Wait()
}

// GetCenter returns the mean of the points.
func (g *Graph) GetCenter() mgl32.Vec3 {
	return geokernel.ComputeCenterOn(g.context(), g.Points).Wait()
}

func (g *Graph) GetAxisAlignedBoundingBox() AxisAlignedBoundingBox {
	b := g.bounds(g.Points)
	return AxisAlignedBoundingBox{Min: b.Min, Max: b.Max}
}

func (g *Graph) Transform(m mgl32.Mat4) Geometry3D {
	g.transform(m, g.Points)
	g.refreshWeights()
	return g
}

// Translate keeps edge lengths, so weights are left alone.
func (g *Graph) Translate(t mgl32.Vec3, relative bool) Geometry3D {
	g.translate(t, g.Points, relative)
	return g
}

func (g *Graph) Scale(s float32, center bool) Geometry3D {
	g.scale(s, g.Points, center)
	g.refreshWeights()
	return g
}

// Rotate keeps edge lengths, so weights are left alone.
func (g *Graph) Rotate(r mgl32.Mat3, center bool) Geometry3D {
	g.rotate(r, g.Points, center)
	return g
}
