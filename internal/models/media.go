package models

// MediaRef points at an asset held by the external media host. PublicID is
// the handle needed to delete the asset again; an empty PublicID means no
// attachment.
type MediaRef struct {
	URL          string `json:"url,omitempty"`
	PublicID     string `json:"public_id,omitempty"`
	ResourceType string `json:"resource_type,omitempty"` // "image" or "video"
}

func (m MediaRef) Empty() bool {
	return m.PublicID == ""
}
