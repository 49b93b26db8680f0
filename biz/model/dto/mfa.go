package dto

// Face images travel as base64 in JSON bodies.

type EnrollFaceReq struct {
	FaceImage []byte `json:"face_image" validate:"required"`
}

type EnrollFaceResp struct{}

type VerifyFaceReq struct {
	FaceImage []byte `json:"face_image" validate:"required"`
}

type VerifyFaceResp struct {
	IsMatch           bool    `json:"is_match"`
	Distance          int     `json:"distance"`
	SimilarityPercent float64 `json:"similarity_percent"`
}

type SetupTotpReq struct{}

type SetupTotpResp struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
	QRCodePNG       []byte `json:"qr_code_png,omitempty"`
}

type VerifyTotpReq struct {
	Code string `json:"code" validate:"required,len=6"`
}

type VerifyTotpResp struct {
	TotpEnabled bool `json:"totp_enabled"`
}
