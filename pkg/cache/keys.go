package cache

// Key prefixes, one per kind of cached value.
const (
	KindLayout   = "layout"
	KindArtifact = "artifact"
)

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	Pivots         int    `json:"pivots"`
	MDSPivots      int    `json:"mds_pivots"`
	Iterations     int    `json:"iterations"`
	BreakCondition bool   `json:"break_condition"`
	Sampler        string `json:"sampler"`
	Features       int    `json:"features,omitempty"`
	Seed           uint64 `json:"seed"`
	OverlapSeed    uint64 `json:"overlap_seed"`
	EigenSeed      uint64 `json:"eigen_seed"`
	Weighted       bool   `json:"weighted"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Factor float64 `json:"factor"`
	Labels bool    `json:"labels,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of the graph with the given
	// content hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the layout
	// with the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form kind:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(KindLayout, graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KindArtifact, layoutHash, opts)
}
