package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

const (
	stateTTL    = 5 * time.Minute
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// AccountLinker persists a federated identity and issues the session token for it.
type AccountLinker interface {
	UpsertFromOAuth(ctx context.Context, user users.User) (users.User, error)
	IssueToken(user users.User) (string, error)
}

// StateIssuer mints and checks the OAuth state parameter. Signed state survives
// across replicas, so the callback may land on a different instance than start.
type StateIssuer interface {
	SignState(ttl time.Duration) (string, error)
	VerifyState(raw string) error
}

// GoogleService handles the Google sign-in redirect and callback.
type GoogleService struct {
	oauthConfig *oauth2.Config
	uiRedirect  string
	accounts    AccountLinker
	states      StateIssuer
	userInfo    func(ctx context.Context, token *oauth2.Token) (googleProfile, error)
}

func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, accounts AccountLinker, states StateIssuer) *GoogleService {
	svc := &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect: uiRedirect,
		accounts:   accounts,
		states:     states,
	}
	svc.userInfo = svc.fetchProfile
	return svc
}

func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != "" && s.oauthConfig.RedirectURL != ""
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusNotFound, "not_found", "Google sign-in is not configured", nil)
		return
	}
	state, err := s.states.SignState(stateTTL)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start sign-in", nil)
		return
	}
	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state))
}

func (s *GoogleService) callback(c *gin.Context) {
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		respond.Invalid(c, "missing state or code", nil)
		return
	}
	if err := s.states.VerifyState(state); err != nil {
		respond.Invalid(c, "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		telemetry.Warn("auth.google.exchange_failed", map[string]any{"error": err.Error()})
		respond.Invalid(c, "failed to exchange code", nil)
		return
	}

	profile, err := s.userInfo(ctx, token)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "failed to fetch user profile", nil)
		return
	}
	if profile.Sub == "" || profile.Email == "" {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "invalid user profile", nil)
		return
	}

	user, err := s.accounts.UpsertFromOAuth(ctx, users.User{
		Email:      profile.Email,
		FullName:   profile.Name,
		PictureURL: profile.Picture,
	})
	if err != nil {
		telemetry.Error("auth.google.upsert_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store user", nil)
		return
	}

	session, err := s.accounts.IssueToken(user)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	target, err := withToken(s.uiRedirect, session)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	telemetry.Info("auth.google.signed_in", map[string]any{"user_id": user.ID})
	c.Redirect(http.StatusFound, target)
}

type googleProfile struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) fetchProfile(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	resp, err := s.oauthConfig.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return googleProfile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var p googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return googleProfile{}, err
	}
	// v2 userinfo reports the account id as "id".
	if p.Sub == "" {
		p.Sub = p.ID
	}
	return p, nil
}

func withToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
