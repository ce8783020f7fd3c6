package payload

type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"min=8"`
}

func (r *RegisterRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"fullName": "Provide a valid Name",
		"email":    "Provide a valid Email",
		"password": "Provide a valid password with more than 8 characters",
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email":    "Please include a valid email",
		"password": "Password is required",
	}
}

type TokenResponse struct {
	JWTToken string `json:"jwtToken"`
}
