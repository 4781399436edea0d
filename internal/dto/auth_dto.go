package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type APIKeyInfoResponse struct {
	APIKey  string `json:"api_key"`
	Message string `json:"message"`
}

type MeResponse struct {
	Subject   string `json:"subject"`
	ExpiresAt string `json:"expires_at"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}
