package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// TokenCache keeps the Graph token in a JSON file under the data directory.
type TokenCache struct {
	Path string
}

// NewTokenCache returns the cache inside baseDir.
func NewTokenCache(baseDir string) TokenCache {
	return TokenCache{Path: filepath.Join(baseDir, "auth", "msgraph_tokens.json")}
}

// OAuth2Config returns the oauth2.Config for Microsoft Graph using the
// provided tenant and client IDs.
func OAuth2Config(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// Load returns the cached token, or nil when nothing is cached yet.
func (c TokenCache) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token cache: %w", err)
	}
	tok := new(oauth2.Token)
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("token cache %s is unreadable, delete it to sign in again: %w", c.Path, err)
	}
	return tok, nil
}

// Save replaces the cached token through a temp file and a rename.
func (c TokenCache) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return fmt.Errorf("creating token cache directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	tmp := c.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token cache: %w", err)
	}
	if err := os.Rename(tmp, c.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing token cache: %w", err)
	}
	return nil
}

// Authenticate returns a usable Graph token: the cached one while it is
// valid, a refreshed one, or a new one from the device code flow. Sign-in
// instructions go to out.
func Authenticate(ctx context.Context, cfg *oauth2.Config, cache TokenCache, out io.Writer, log zerolog.Logger) (*oauth2.Token, error) {
	tok, err := cache.Load()
	if err != nil {
		log.Warn().Err(err).Msg("ignoring cached Graph token")
		tok = nil
	}
	if tok.Valid() {
		return tok, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			keep(cache, refreshed, log)
			return refreshed, nil
		}
		log.Info().Err(err).Msg("token refresh failed, signing in again")
	}

	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("requesting device code: %w", err)
	}
	fmt.Fprintf(out, "\nTo sign in, open %s and enter the code %s\n\n", resp.VerificationURI, resp.UserCode)

	tok, err = cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device sign-in failed: %w", err)
	}
	keep(cache, tok, log)
	return tok, nil
}

// keep caches tok; a failure only costs a sign-in next time.
func keep(cache TokenCache, tok *oauth2.Token, log zerolog.Logger) {
	if err := cache.Save(tok); err != nil {
		log.Warn().Err(err).Str("path", cache.Path).Msg("could not cache Graph token")
	}
}
