package admin

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse covers both login outcomes: tokens are only present when
// no second factor is required, the temp token only when it is.
type LoginResponse struct {
	Requires2FA  bool       `json:"requires_2fa"`
	Message      string     `json:"message"`
	TempToken    string     `json:"temp_token,omitempty"`
	AccessToken  string     `json:"access_token,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	Admin        *AdminInfo `json:"admin,omitempty"`
}

// Verify2FARequest carries the temp token issued at login and the OTP code.
type Verify2FARequest struct {
	TempToken string `json:"temp_token" binding:"required"`
	OTPCode   string `json:"otp_code" binding:"required,len=6,numeric"`
}

// TokenPair is returned on successful 2FA verification.
type TokenPair struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	Admin        *AdminInfo `json:"admin,omitempty"`
}

// CreateAdminRequest represents the request for creating a new admin
type CreateAdminRequest struct {
	Username   string  `json:"username" binding:"required,min=3,max=50"`
	Password   string  `json:"password" binding:"required,min=8"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	TelegramID *string `json:"telegram_id"`
}

// SessionInfo is the payload of the check-session endpoint.
type SessionInfo struct {
	Authenticated bool       `json:"authenticated"`
	Admin         *AdminInfo `json:"admin"`
}
