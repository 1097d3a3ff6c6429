// Package canvas stores the infrastructure canvas a user composes in the
// browser: abstract nodes with passthrough screen coordinates, saved as
// versioned graphs per project, and turned into Terraform/Kubernetes text
// previews. Pan/zoom/drag stay client-side.
package canvas

import (
	"fmt"
	"strings"
)

type NodeType string

const (
	NodeAPIServer    NodeType = "api_server"
	NodeDatabase     NodeType = "database"
	NodeLoadBalancer NodeType = "load_balancer"
	NodeCache        NodeType = "cache"
	NodeQueue        NodeType = "queue"
	NodeStorage      NodeType = "storage"
	NodeCDN          NodeType = "cdn"
)

func (t NodeType) Valid() bool {
	switch t {
	case NodeAPIServer, NodeDatabase, NodeLoadBalancer, NodeCache, NodeQueue, NodeStorage, NodeCDN:
		return true
	}
	return false
}

type Node struct {
	ID    string   `json:"id" yaml:"id"`
	Type  NodeType `json:"type" yaml:"type"`
	Label string   `json:"label" yaml:"label"`
	X     float64  `json:"x" yaml:"x"`
	Y     float64  `json:"y" yaml:"y"`
}

type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

const maxNodes = 50

// Validate checks node ids, the closed type enum, and edge endpoints.
// Coordinates are passthrough and deliberately unconstrained.
func (g *Graph) Validate() error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("Validation error: graph has no nodes")
	}
	if len(g.Nodes) > maxNodes {
		return fmt.Errorf("Validation error: graph exceeds %d nodes", maxNodes)
	}

	ids := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if strings.TrimSpace(n.ID) == "" {
			return fmt.Errorf("Validation error: node %d has no id", i)
		}
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("Validation error: duplicate node id %q", n.ID)
		}
		if !n.Type.Valid() {
			return fmt.Errorf("Validation error: unknown node type %q", n.Type)
		}
		ids[n.ID] = struct{}{}
	}

	for _, e := range g.Edges {
		if _, ok := ids[e.From]; !ok {
			return fmt.Errorf("Validation error: edge references unknown node %q", e.From)
		}
		if _, ok := ids[e.To]; !ok {
			return fmt.Errorf("Validation error: edge references unknown node %q", e.To)
		}
	}
	return nil
}
