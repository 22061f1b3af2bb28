package authapi

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// statusResponse is the envelope every auth endpoint answers with. Tokens
// never appear in the body; they travel as cookies.
type statusResponse struct {
	IsSuccessful bool   `json:"is_successful"`
	Message      string `json:"message"`
}
