package graph_test

import (
	"fmt"

	"github.com/matzehuels/sparsestress/pkg/graph"
)

func ExampleBuilder() {
	b := graph.NewBuilder(4, false)
	for i := 0; i < 4; i++ {
		_ = b.AddEdge(i, (i+1)%4, 1)
	}
	g := b.Build()

	fmt.Println("nodes:", g.NodeCount())
	fmt.Println("edges:", g.EdgeCount())
	fmt.Println("neighbors of 0:", g.Neighbors(0))
	// Output:
	// nodes: 4
	// edges: 4
	// neighbors of 0: [1 3]
}

func ExampleLayout() {
	l := graph.NewLayout(2)
	l[2], l[3] = 3, 4

	fmt.Println(l.Dist(0, 1))
	// Output: 5
}
