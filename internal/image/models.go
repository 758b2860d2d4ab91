package image

// Image is the metadata row describing an uploaded object. The row is
// created after the client finishes its direct upload to object storage.
type Image struct {
	ID        string `json:"id"`
	OwnerID   string `json:"ownerId"`
	Key       string `json:"key"`
	Filename  string `json:"filename"`
	CreatedAt string `json:"createdAt"`
}

// CreateInput carries the fields for a new metadata row.
type CreateInput struct {
	Key      string
	Filename string
}

// UploadTicket is a presigned upload grant. The client must PUT the
// object bytes to URL before it expires.
type UploadTicket struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expires_at"`
}
