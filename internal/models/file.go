package models

// FileRef points at an asset stored in the external object store. The pair
// is exactly what the upload service returns.
type FileRef struct {
	PublicID string `gorm:"size:255" json:"public_id"`
	URL      string `gorm:"size:512" json:"url"`
}

// IsZero reports whether no asset is referenced.
func (f FileRef) IsZero() bool {
	return f.PublicID == "" && f.URL == ""
}
