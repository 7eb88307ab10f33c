package domain

// Role is reference data seeded outside this service; the core only reads
// roles by name and never creates or deletes them.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
