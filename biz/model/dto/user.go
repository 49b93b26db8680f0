package dto

type RegisterReq struct {
	Account  string `json:"account" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=128"`
	Name     string `json:"name" validate:"required,max=64"`
	Phone    string `json:"phone" validate:"max=32"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type RegisterResp struct {
	UserID string `json:"user_id"`
}

type LoginReq struct {
	Account  string `json:"account" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

type LoginResp struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`

	UserID       string `json:"user_id"`
	Account      string `json:"account"`
	Name         string `json:"name"`
	FaceEnrolled bool   `json:"face_enrolled"`
	TotpEnabled  bool   `json:"totp_enabled"`
}

type RefreshTokenReq struct {
}

type RefreshTokenResp struct {
	AccessToken      string `json:"access_token"`
	ExpiresAt        int64  `json:"expires_at"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresAt int64  `json:"refresh_expires_at"`
}

type LogoutReq struct{}

type LogoutResp struct{}

type GetUserInfoReq struct{}

type GetUserInfoResp struct {
	UserID       string `json:"user_id"`
	Account      string `json:"account"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	IsAdmin      bool   `json:"is_admin"`
	FaceEnrolled bool   `json:"face_enrolled"`
	TotpEnabled  bool   `json:"totp_enabled"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

type UpdateInfoReq struct {
	Name  string `json:"name" validate:"max=64"`
	Phone string `json:"phone" validate:"max=32"`
}

type UpdateInfoResp struct{}

type UpdatePasswordReq struct {
	OldPassword string `json:"old_password" validate:"required,max=128"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type UpdatePasswordResp struct{}
