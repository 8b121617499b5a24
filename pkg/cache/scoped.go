package cache

// scopedKeyer prepends a fixed namespace to every key of another Keyer.
type scopedKeyer struct {
	Keyer
	scope string
}

// NewScopedKeyer namespaces the keys of inner (the default keyer when nil)
// under scope. The CLI scopes by release so a renderer change never serves
// artifacts drawn by an older binary:
//
//	keyer := NewScopedKeyer(nil, buildinfo.CacheScope())
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return scopedKeyer{Keyer: inner, scope: scope}
}

func (k scopedKeyer) LayoutKey(instHash string, step int, opts LayoutKeyOpts) string {
	return k.scope + k.Keyer.LayoutKey(instHash, step, opts)
}

func (k scopedKeyer) ArtifactKey(instHash string, step int, opts ArtifactKeyOpts) string {
	return k.scope + k.Keyer.ArtifactKey(instHash, step, opts)
}

func (k scopedKeyer) TransitionKey(instHash string, opts TransitionKeyOpts) string {
	return k.scope + k.Keyer.TransitionKey(instHash, opts)
}
