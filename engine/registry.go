package engine

// DefaultRules returns the full rule catalogue in the order the façade
// schedules them. Order is chosen for fast convergence only; en-passant
// runs before parity per the design notes' open question, so a forced
// double-push is visible to parity in the same pass it is derived; but the
// scheduler's fixed point does not depend on it.
func DefaultRules() []Rule {
	return []Rule{
		materialRule{},
		castlingRightsRule{},
		steadyRule{},
		originExclusivityRule{},
		originsRule{},
		destiniesRule{},
		enPassantRule{},
		capturesBoundRule{},
		mobilityRule{},
		consistencyRule{},
		parityRule{},
	}
}
