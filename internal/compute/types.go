package compute

import "math/big"

// HelloResponse is the JSON response for GET /api/hello.
type HelloResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the JSON response for GET /api/status.
type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// CalculateResponse is the JSON response for a successful POST /api/calculate.
// *big.Int encodes as a bare JSON number of any length.
type CalculateResponse struct {
	Result *big.Int `json:"result"`
}

// ValidationResponse is the 400 body for POST /api/calculate.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}
