package stress

// Term attracts a node towards Distance from Target with the given Weight.
type Term struct {
	Target   int
	Distance float64
	Weight   float64
}

// Data holds the term list of every node.
// After NormalizeWeights it is read-only.
type Data struct {
	Terms [][]Term
}

// NewData returns empty term lists for n nodes.
func NewData(n int) *Data {
	return &Data{Terms: make([][]Term, n)}
}

// Reserve sets the capacity of node i's term list.
func (d *Data) Reserve(i, capacity int) {
	if cap(d.Terms[i]) < capacity {
		terms := make([]Term, len(d.Terms[i]), capacity)
		copy(terms, d.Terms[i])
		d.Terms[i] = terms
	}
}

// Add appends t to node i's term list.
func (d *Data) Add(i int, t Term) {
	d.Terms[i] = append(d.Terms[i], t)
}

// Len returns the total number of terms.
func (d *Data) Len() int {
	total := 0
	for _, ts := range d.Terms {
		total += len(ts)
	}
	return total
}

// NormalizeWeights rescales every node's weights to sum to 1.
// Nodes whose weights sum to 0 are left unchanged.
func (d *Data) NormalizeWeights() {
	for _, ts := range d.Terms {
		var total float64
		for _, t := range ts {
			total += t.Weight
		}
		if total == 0 {
			continue
		}
		for k := range ts {
			ts[k].Weight /= total
		}
	}
}
