package httperrors

type HTTPError struct {
	Error string `json:"error" example:"there is no account named \"Checking\""`
}
