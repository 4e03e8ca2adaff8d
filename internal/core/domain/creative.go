package domain

// Creative is the visual part of a campaign shown to the viewer.
type Creative struct {
	Title          string `json:"title"`
	Headline       string `json:"headline,omitempty"`
	ImageURL       string `json:"imageUrl"`
	DestinationURL string `json:"destinationUrl"`
}
