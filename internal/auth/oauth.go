package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	maxProfileName    = 24
)

// Profile is the account data a sign-in provider vouches for.
type Profile struct {
	ProviderID  string
	DisplayName string
	AvatarURL   string
}

// googleUserInfo is the body of Google's userinfo endpoint.
type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (g googleUserInfo) profile() Profile {
	name := strings.TrimSpace(g.Name)
	if name == "" {
		name, _, _ = strings.Cut(g.Email, "@")
	}
	if utf8.RuneCountInString(name) > maxProfileName {
		name = string([]rune(name)[:maxProfileName])
	}
	if name == "" {
		name = "Player"
	}
	return Profile{ProviderID: g.ID, DisplayName: name, AvatarURL: g.Picture}
}

// OAuthProvider runs the authorization code flow against one provider.
type OAuthProvider struct {
	config      *oauth2.Config
	name        string
	userInfoURL string
}

// NewGoogleOAuth creates an OAuth provider for Google sign-in.
func NewGoogleOAuth(clientID, clientSecret, redirectURL string) *OAuthProvider {
	return &OAuthProvider{
		name:        "google",
		userInfoURL: googleUserInfoURL,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// NewState returns a random value for the OAuth state parameter.
func NewState() string {
	return uuid.NewString()
}

// LoginURL returns the consent page URL carrying state. Sign-in only needs
// the profile once, so no offline access is requested.
func (p *OAuthProvider) LoginURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the signed-in user's profile.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth exchange: %w", err)
	}

	resp, err := p.config.Client(ctx, token).Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("oauth userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("oauth userinfo status %d: %s", resp.StatusCode, body)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("oauth userinfo decode: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("oauth userinfo: missing account id")
	}
	profile := info.profile()
	return &profile, nil
}

// Name returns the provider name stored with each account.
func (p *OAuthProvider) Name() string {
	return p.name
}
