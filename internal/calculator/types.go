package calculator

// KeysRequest is the JSON body for POST /api/calculator/keys. State is the
// session to continue from; a fresh session is used when it is omitted.
type KeysRequest struct {
	State *State   `json:"state,omitempty"`
	Keys  []string `json:"keys"`
}

// KeysResponse is the JSON response for POST /api/calculator/keys.
type KeysResponse struct {
	State State  `json:"state"`
	Steps []Step `json:"steps"`
}
