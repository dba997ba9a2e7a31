package dialogue

import "sort"

// Catalog is the read-only mapping from node ID to node.
type Catalog struct {
	nodes map[string]*Node
}

// NewCatalog indexes nodes by ID. The first node wins on duplicate IDs.
func NewCatalog(nodes []Node) *Catalog {
	c := &Catalog{nodes: make(map[string]*Node, len(nodes))}
	for i := range nodes {
		n := nodes[i]
		if _, dup := c.nodes[n.ID]; dup {
			continue
		}
		c.nodes[n.ID] = &n
	}
	return c
}

// Node looks up a node. The returned pointer is shared and must not be mutated.
func (c *Catalog) Node(id string) (*Node, bool) {
	if id == "" {
		return nil, false
	}
	n, ok := c.nodes[id]
	return n, ok
}

// IDs returns every node ID in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.nodes))
	for id := range c.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of nodes.
func (c *Catalog) Len() int {
	return len(c.nodes)
}
