package share

// Status is the lifecycle state of a share. Only StatusActive is used
// today; other values are reserved.
type Status string

const StatusActive Status = "active"

// Share is the in-memory domain record for a quick share, distinct from
// both its storage encoding and its client-facing response shape.
type Share struct {
	ID          string
	CreatorID   string
	Title       string
	Description string
	ImageKey    string
	Status      Status
	CreatedAt   string
}

// CreateInput carries the client-supplied fields for a new share.
type CreateInput struct {
	Title       string
	Description string
	ImageKey    string
}

// Response is the client-facing shape of a share. The image URL is
// derived from the stored object key; secrets never appear here.
type Response struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	CreatedAt   string `json:"createdAt"`
	Status      string `json:"status"`
}

// Page is one window of the paginated feed. NextCursor is empty when
// the window reaches the end of the data set.
type Page struct {
	Items      []Response
	NextCursor string
}
