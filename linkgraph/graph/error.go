package graph

import "errors"

var (
	// ErrUnknownEdgeVertices is returned when attempting to create an edge
	// whose source vertex has not been inserted into the graph.
	ErrUnknownEdgeVertices = errors.New("unknown source vertex for edge")
)
