package event

// FilterPayload creates a filter that passes payloads of type T, or *T,
// for which predicate returns true. Payloads of any other type are rejected.
func FilterPayload[T any](predicate func(payload T) bool) FilterFunc {
	return func(payload any) bool {
		switch p := payload.(type) {
		case T:
			return predicate(p)
		case *T:
			return p != nil && predicate(*p)
		}
		return false
	}
}

// FilterAnd combines filters; all must pass.
func FilterAnd(filters ...FilterFunc) FilterFunc {
	return func(payload any) bool {
		for _, f := range filters {
			if !f(payload) {
				return false
			}
		}
		return true
	}
}

// FilterOr combines filters; at least one must pass.
func FilterOr(filters ...FilterFunc) FilterFunc {
	return func(payload any) bool {
		for _, f := range filters {
			if f(payload) {
				return true
			}
		}
		return false
	}
}

// FilterNot negates a filter.
func FilterNot(filter FilterFunc) FilterFunc {
	return func(payload any) bool {
		return !filter(payload)
	}
}
