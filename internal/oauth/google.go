package oauth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/medimatch/medimatch-backend/internal/config"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// Identity is the verified external identity handed to the reconciliation
// service: Google's stable subject id plus the profile basics.
type Identity struct {
	SubjectID string
	Email     string
	Name      string
}

var ErrBadState = errors.New("oauth state parameter is invalid")

// GoogleClient wraps the x/oauth2 flow and the userinfo lookup. Constructed
// once at startup; without credentials it reports itself disabled.
type GoogleClient struct {
	conf        *oauth2.Config
	httpClient  *http.Client
	stateSecret []byte
}

func NewGoogleClient(cfg *config.Config) *GoogleClient {
	return &GoogleClient{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		stateSecret: []byte(cfg.SessionSecret),
	}
}

func (g *GoogleClient) Enabled() bool {
	return g.conf.ClientID != "" && g.conf.ClientSecret != ""
}

// AuthURL builds the consent URL. The declared user type rides inside the
// HMAC-signed state so the callback knows which pipeline to reconcile into.
func (g *GoogleClient) AuthURL(userType string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate state nonce: %w", err)
	}
	state := g.signState(userType, hex.EncodeToString(nonce))
	return g.conf.AuthCodeURL(state), nil
}

// DecodeState verifies the state signature and returns the user type.
func (g *GoogleClient) DecodeState(state string) (string, error) {
	parts := strings.Split(state, ".")
	if len(parts) != 3 {
		return "", ErrBadState
	}
	expected := g.signState(parts[0], parts[1])
	if !hmac.Equal([]byte(expected), []byte(state)) {
		return "", ErrBadState
	}
	return parts[0], nil
}

func (g *GoogleClient) signState(userType, nonce string) string {
	mac := hmac.New(sha256.New, g.stateSecret)
	mac.Write([]byte(userType + "." + nonce))
	return userType + "." + nonce + "." + hex.EncodeToString(mac.Sum(nil))
}

// Exchange trades the callback code for a token and fetches the identity.
func (g *GoogleClient) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	return g.fetchIdentity(ctx, token.AccessToken)
}

// IdentityFromAccessToken serves the non-redirect verify route, where the
// client already holds a Google access token.
func (g *GoogleClient) IdentityFromAccessToken(ctx context.Context, accessToken string) (*Identity, error) {
	return g.fetchIdentity(ctx, accessToken)
}

func (g *GoogleClient) fetchIdentity(ctx context.Context, accessToken string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.New("userinfo response is missing id or email")
	}

	return &Identity{SubjectID: info.ID, Email: info.Email, Name: info.Name}, nil
}
