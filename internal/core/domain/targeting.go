package domain

// Targeting describes who should see a campaign. Empty lists match
// everything.
type Targeting struct {
	Categories     []string `json:"categories,omitempty"`
	Locations      []string `json:"locations,omitempty"`
	StoreTypes     []string `json:"storeTypes,omitempty"`
	MinStoreRating *float64 `json:"minStoreRating,omitempty"`
	// Expression is an optional CEL rule evaluated against the display
	// context, e.g. `store_rating >= 4.5 && device != "tablet"`.
	Expression string `json:"expression,omitempty"`
}
