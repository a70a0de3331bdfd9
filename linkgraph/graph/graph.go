package graph

// Edge describes a directed graph edge that originates from Src and
// terminates at Dst.
type Edge struct {
	// The title of the origin page.
	Src string

	// The title of the destination page.
	Dst string
}

// Iterator is implemented by graph objects that can be iterated.
type Iterator interface {
	// Next advances the iterator. If no more items are available or an
	// error occurs, calls to Next() return false.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources associated with an iterator.
	Close() error
}

// VertexIterator is implemented by objects that can iterate the graph
// vertices.
type VertexIterator interface {
	Iterator

	// Vertex returns the currently fetched vertex title.
	Vertex() string
}

// EdgeIterator is implemented by objects that can iterate the graph edges.
type EdgeIterator interface {
	Iterator

	// Edge returns the currently fetched edge object.
	Edge() *Edge
}

// Graph is a directed graph whose vertices are page titles and whose edges
// represent outbound links between pages. It is built fresh for a single
// validation pass and owned exclusively by its creator; it performs no
// internal locking.
type Graph struct {
	vertices map[string]struct{}
	outEdges map[string]map[string]struct{}
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		vertices: make(map[string]struct{}),
		outEdges: make(map[string]map[string]struct{}),
	}
}

// UpsertVertex inserts the vertex with the specified title. Inserting an
// existing vertex is a no-op.
func (g *Graph) UpsertVertex(title string) {
	g.vertices[title] = struct{}{}
}

// HasVertex returns true if the specified title has been inserted as a
// vertex.
func (g *Graph) HasVertex(title string) bool {
	_, exists := g.vertices[title]
	return exists
}

// UpsertEdge inserts a directed edge from src to dst. The source vertex must
// already be present in the graph; the destination vertex is inserted if
// missing. Self-loops are permitted.
func (g *Graph) UpsertEdge(src, dst string) error {
	if !g.HasVertex(src) {
		return ErrUnknownEdgeVertices
	}

	g.UpsertVertex(dst)
	edgeSet := g.outEdges[src]
	if edgeSet == nil {
		edgeSet = make(map[string]struct{})
		g.outEdges[src] = edgeSet
	}
	edgeSet[dst] = struct{}{}
	return nil
}

// HasEdge returns true if the graph contains a directed edge from src to dst.
func (g *Graph) HasEdge(src, dst string) bool {
	_, exists := g.outEdges[src][dst]
	return exists
}

// Len returns the number of vertices in the graph.
func (g *Graph) Len() int {
	return len(g.vertices)
}

// Vertices returns an iterator for the set of graph vertices.
func (g *Graph) Vertices() VertexIterator {
	vertices := make([]string, 0, len(g.vertices))
	for title := range g.vertices {
		vertices = append(vertices, title)
	}

	return &vertexIterator{vertices: vertices}
}

// Edges returns an iterator for the set of graph edges.
func (g *Graph) Edges() EdgeIterator {
	var edges []*Edge
	for src, edgeSet := range g.outEdges {
		for dst := range edgeSet {
			edges = append(edges, &Edge{Src: src, Dst: dst})
		}
	}

	return &edgeIterator{edges: edges}
}
