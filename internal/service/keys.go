package service

// Record store key layout.
const (
	prefixUser        = "user:"
	prefixCredential  = "credential:"
	prefixEmail       = "user-email:"
	prefixSession     = "session:"
	prefixCart        = "cart:"
	prefixOrder       = "order:"
	prefixProduct     = "product:"
	prefixServingIdea = "serving_idea:"

	keyContent  = "cms-content"
	keySettings = "site_settings"
	keyGateways = "payment-gateways"
)
