package model

// Keys under which the token pair is persisted
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// TokenPair is the access/refresh token pair held by the client.
// An empty string means the token is absent.
type TokenPair struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// HasAccess reports whether a session exists (an access token is stored)
func (p TokenPair) HasAccess() bool {
	return p.AccessToken != ""
}

// HasRefresh reports whether a refresh token is stored
func (p TokenPair) HasRefresh() bool {
	return p.RefreshToken != ""
}
