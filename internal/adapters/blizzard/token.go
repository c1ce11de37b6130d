package blizzard

// token.go — adquisición y cache del bearer token OAuth2.
//
// Client credentials grant sobre basic auth. El token se cachea sin tracking
// de TTL: cuando expire en remoto, los endpoints de datos empezarán a devolver
// 401/403 y eso sale como domain.AuthError de la operación en curso. El caller
// puede entonces llamar InvalidateToken y reintentar.

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alejandrodnm/ahbot/internal/domain"
)

// token devuelve el access token cacheado, pidiéndolo al endpoint OAuth2 la
// primera vez. La adquisición entera va bajo lock: N primeras llamadas
// concurrentes producen una sola autenticación.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("blizzard.token: build request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &domain.AuthError{Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &domain.AuthError{Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &domain.AuthError{Status: resp.StatusCode, Body: "malformed token response: " + err.Error()}
	}
	if tr.AccessToken == "" {
		return "", &domain.AuthError{Status: resp.StatusCode, Body: "access token missing in response"}
	}

	c.accessToken = tr.AccessToken
	slog.Debug("access token acquired", "expires_in", tr.ExpiresIn)
	return c.accessToken, nil
}

// InvalidateToken descarta el token cacheado; la próxima operación vuelve a
// autenticarse. Evita depender de un reinicio del proceso tras la expiración
// remota.
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
}
