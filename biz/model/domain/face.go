package domain

// FaceMatch is the outcome of comparing a candidate capture against the
// enrolled fingerprint. Distance is in hash bits; SimilarityPercent is
// (bits - distance) / bits * 100.
type FaceMatch struct {
	IsMatch           bool
	Distance          int
	SimilarityPercent float64
}

// TotpProvisioning is returned by TOTP setup: the shared secret plus
// everything an authenticator app needs to enroll it.
type TotpProvisioning struct {
	Secret          string
	ProvisioningURI string
	QRCodePNG       []byte
}
