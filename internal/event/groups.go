package event

// ConnectedGroups partitions events into groups connected through a shared
// rigid or articulated super-body. Event order within a group, and group
// order, follow first appearance in the input, so grouping is deterministic
// for a given sorted event sequence.
func ConnectedGroups(events []*Event) [][]*Event {
	uf := newUnionFind()
	for _, e := range events {
		keys := e.superBodyKeys()
		for i := 1; i < len(keys); i++ {
			uf.union(keys[0], keys[i])
		}
	}

	var order []string
	grouped := make(map[string][]*Event)
	for _, e := range events {
		keys := e.superBodyKeys()
		if len(keys) == 0 {
			continue
		}
		root := uf.find(keys[0])
		if _, seen := grouped[root]; !seen {
			order = append(order, root)
		}
		grouped[root] = append(grouped[root], e)
	}

	out := make([][]*Event, 0, len(order))
	for _, root := range order {
		out = append(out, grouped[root])
	}
	return out
}

// RemoveNonimpacting drops groups containing no impacting event; those
// groups need no impulse resolution.
func RemoveNonimpacting(groups [][]*Event) [][]*Event {
	out := groups[:0]
	for _, g := range groups {
		for _, e := range g {
			if e.IsImpacting() {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(x string) string {
	p, ok := u.parent[x]
	if !ok {
		u.parent[x] = x
		return x
	}
	if p == x {
		return x
	}
	root := u.find(p)
	u.parent[x] = root
	return root
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}
