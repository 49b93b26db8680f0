package dto

// CommonResp is the envelope every endpoint answers with. Code carries
// the errs code, 0 on success.
type CommonResp struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
