package repository

// BookingCollection is the collection (or table, for MySQL) holding bookings.
const BookingCollection = "booking"

// maxStatusCollections caps the collection names reported by Status.
const maxStatusCollections = 10

// StoreStatus is a best-effort snapshot of store reachability used by the
// diagnostics endpoint.  It is not a stable contract.
type StoreStatus struct {
	Backend     string   `json:"backend"`
	Name        string   `json:"name,omitempty"`
	Configured  bool     `json:"configured"`
	Connected   bool     `json:"connected"`
	Collections []string `json:"collections"`
	Error       string   `json:"error,omitempty"`
}

func truncateNames(names []string) []string {
	if len(names) > maxStatusCollections {
		names = names[:maxStatusCollections]
	}
	if names == nil {
		names = []string{}
	}
	return names
}
