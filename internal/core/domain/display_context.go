package domain

// DisplayContext describes the page an ad is requested for. The HTTP layer
// builds it from the request and passes it into the selector.
type DisplayContext struct {
	SlotID        string        `json:"slotId,omitempty"`
	PlacementType PlacementType `json:"placementType,omitempty"`
	Position      string        `json:"position,omitempty"`
	Device        string        `json:"device,omitempty"`
	Category      string        `json:"category,omitempty"`
	VendorID      string        `json:"vendorId,omitempty"`
	Location      Location      `json:"location"`
	StoreRating   float64       `json:"storeRating,omitempty"`
	StoreType     string        `json:"storeType,omitempty"`
	UserAgent     string        `json:"userAgent,omitempty"`
}

// Location is the viewer's geography.
type Location struct {
	State string `json:"state,omitempty"`
	City  string `json:"city,omitempty"`
}
