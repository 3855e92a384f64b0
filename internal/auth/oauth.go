package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// ProviderIdentity is the identity returned by an OAuth provider
// after a successful code exchange.
type ProviderIdentity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Exchanger trades an authorization code for a provider identity.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*ProviderIdentity, error)
}

// GoogleExchanger implements Exchanger against Google OAuth.
type GoogleExchanger struct {
	config *oauth2.Config
}

// NewGoogleExchanger creates a Google OAuth code exchanger.
func NewGoogleExchanger(clientID, clientSecret, redirectURL string) *GoogleExchanger {
	return &GoogleExchanger{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Exchange trades the authorization code for a token and fetches the
// user's email and display name.
func (g *GoogleExchanger) Exchange(ctx context.Context, code string) (*ProviderIdentity, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	client := g.config.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status: %d", resp.StatusCode)
	}

	var identity ProviderIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("userinfo missing email")
	}
	return &identity, nil
}
