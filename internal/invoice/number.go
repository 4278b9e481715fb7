// Package invoice produces the invoice artifacts issued at approval time:
// a globally-unique invoice number and a rendered PDF document.
package invoice

import (
	"github.com/bwmarrin/snowflake"
)

// NumberGenerator issues unique invoice numbers. Numbers are snowflake IDs:
// time-ordered, unique per node, and collision-free in practice, so they can
// double as the document storage key.
type NumberGenerator struct {
	node *snowflake.Node
}

// NewNumberGenerator constructs a generator for the given node ID (0..1023).
// Deployments running a single instance can use node 0.
func NewNumberGenerator(nodeID int64) (*NumberGenerator, error) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &NumberGenerator{node: n}, nil
}

// Next returns the next invoice number, e.g. "INV-1948372611347456000".
func (g *NumberGenerator) Next() string {
	return "INV-" + g.node.Generate().String()
}
