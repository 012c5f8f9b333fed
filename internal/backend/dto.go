package backend

// SyncResponse is the hosted backend's library payload. The backend is
// schemaless, so records arrive as loose maps and every field is validated
// at this boundary before anything reaches the engine.
type SyncResponse struct {
	Items     []map[string]any `json:"deadlines"`
	Snapshots []map[string]any `json:"progressSnapshots"`
}
