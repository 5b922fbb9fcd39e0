package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// LoginConfig holds what the interactive OAuth2 login needs.
type LoginConfig struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
	ListenAddr   string // defaults to localhost:8080
	Timeout      time.Duration
	// OpenURL shows the consent URL to the user.
	OpenURL func(url string)
}

func oauthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

// Login runs the browser consent flow and returns a token carrying a
// refresh token. The token is saved when TokenFile is set.
func Login(ctx context.Context, cfg LoginConfig) (*oauth2.Token, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("client id and client secret are required for login")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	conf := oauthConfig(cfg.ClientID, cfg.ClientSecret, "http://"+listener.Addr().String()+"/callback")
	state := uuid.NewString()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "no authorization code received", http.StatusBadRequest)
			errCh <- errors.New("no authorization code received")
			return
		}
		_, _ = fmt.Fprint(w, "Signed in. You can close this window and return to the terminal.")
		codeCh <- code
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("callback server failed: %w", err)
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	url := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	if cfg.OpenURL != nil {
		cfg.OpenURL(url)
	} else {
		slog.Info("Visit this URL to authorize Google Sheets access", "url", url)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("authentication not completed: %w", ctx.Err())
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if cfg.TokenFile != "" {
		if err := SaveToken(cfg.TokenFile, token); err != nil {
			slog.Warn("Failed to save token", "error", err, "file", cfg.TokenFile)
		}
	}
	return token, nil
}

// LoadToken loads a token from file.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return token, nil
}

// SaveToken writes a token to path with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}
