package recipe

// DefaultOrder is the canonical fallback sequence. The mock generator is last.
var DefaultOrder = []ProviderType{
	ProviderGemini,
	ProviderOpenAI,
	ProviderHuggingFace,
	ProviderCohere,
	ProviderMock,
}

// ProviderInfo is static metadata shown alongside provider status.
type ProviderInfo struct {
	DisplayName    string
	CostPerRequest float64
	PremiumOnly    bool
}

var catalog = map[ProviderType]ProviderInfo{
	ProviderOpenAI:      {DisplayName: "OpenAI", CostPerRequest: 0.05},
	ProviderGemini:      {DisplayName: "Gemini", CostPerRequest: 0.02},
	ProviderHuggingFace: {DisplayName: "HuggingFace", CostPerRequest: 0.01},
	ProviderCohere:      {DisplayName: "Cohere", CostPerRequest: 0.03, PremiumOnly: true},
	ProviderMock:        {DisplayName: "Mock", CostPerRequest: 0.00},
}

// Info returns the static metadata for a provider.
func Info(t ProviderType) ProviderInfo {
	return catalog[t]
}

// Registry maps provider identity to its implementation.
type Registry struct {
	providers map[ProviderType]Provider
}

// NewRegistry registers the given providers. The mock generator is added
// when absent so every chain can terminate.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[ProviderType]Provider, len(DefaultOrder))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	if _, ok := r.providers[ProviderMock]; !ok {
		r.providers[ProviderMock] = NewMockProvider()
	}
	return r
}

// Get returns the provider registered for t.
func (r *Registry) Get(t ProviderType) (Provider, bool) {
	p, ok := r.providers[t]
	return p, ok
}

// Available lists registered providers whose credential is present,
// in canonical order. The mock generator is always last.
func (r *Registry) Available() []ProviderType {
	var out []ProviderType
	for _, t := range DefaultOrder {
		if t == ProviderMock {
			continue
		}
		p, ok := r.providers[t]
		if !ok {
			continue
		}
		if c, ok := p.(credentialed); ok && !c.HasCredential() {
			continue
		}
		out = append(out, t)
	}
	return append(out, ProviderMock)
}
