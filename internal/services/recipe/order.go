package recipe

// ResolveOrder returns the providers to try for a request.
// A known preferred provider goes first, else a known default provider,
// followed by the rest of DefaultOrder. With neither, DefaultOrder is used as is.
func ResolveOrder(preferred, defaultProvider string) []ProviderType {
	first, ok := ParseProviderType(preferred)
	if !ok {
		first, ok = ParseProviderType(defaultProvider)
	}
	if !ok {
		return append([]ProviderType(nil), DefaultOrder...)
	}

	order := make([]ProviderType, 0, len(DefaultOrder))
	order = append(order, first)
	for _, t := range DefaultOrder {
		if t != first {
			order = append(order, t)
		}
	}
	return order
}
