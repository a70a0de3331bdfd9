package graph

// vertexIterator iterates a snapshot of the graph vertices.
type vertexIterator struct {
	vertices []string
	curIndex int
}

func (i *vertexIterator) Next() bool {
	if i.curIndex >= len(i.vertices) {
		return false
	}
	i.curIndex++
	return true
}

func (i *vertexIterator) Error() error { return nil }

func (i *vertexIterator) Close() error { return nil }

// Vertex returns the currently fetched vertex title.
func (i *vertexIterator) Vertex() string {
	return i.vertices[i.curIndex-1]
}

// edgeIterator iterates a snapshot of the graph edges.
type edgeIterator struct {
	edges    []*Edge
	curIndex int
}

func (i *edgeIterator) Next() bool {
	if i.curIndex >= len(i.edges) {
		return false
	}
	i.curIndex++
	return true
}

func (i *edgeIterator) Error() error { return nil }

func (i *edgeIterator) Close() error { return nil }

// Edge returns the currently fetched edge object.
func (i *edgeIterator) Edge() *Edge {
	return i.edges[i.curIndex-1]
}
