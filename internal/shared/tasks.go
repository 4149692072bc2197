package shared

// Task type names for the asynq queue. Shared between the API (producer)
// and the worker (consumer).
const (
	TypeImageDelete  = "image:delete"
	TypeImageProcess = "image:process"
)

// ImageDeletePayload asks the worker to remove a stored object. Used for
// best-effort cleanup of replaced or orphaned cover images.
type ImageDeletePayload struct {
	Key string `json:"key"`
}

// ImageProcessPayload asks the worker to generate the thumbnail variant
// for a freshly uploaded cover.
type ImageProcessPayload struct {
	BookID string `json:"book_id"`
	Key    string `json:"key"`
}
