package domain

// ThreadVisible is the trust-gating predicate shared by listing and search:
// a thread is visible unless it is trust-gated and the viewing context lacks
// trusted access. Both paths must apply it, neither may bypass it.
func ThreadVisible(t *ThreadMetadata, trustedAccess bool) bool {
	return trustedAccess || !t.Trusted
}
