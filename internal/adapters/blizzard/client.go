package blizzard

// client.go — Blizzard Game Data API client.
//
// Sin retries ni backoff: cada operación pública hace exactamente un request
// saliente y el caller decide la política de reintentos (ver watcher). El rate
// limiter (token bucket) protege el límite de requests por segundo de la API.
// Los fallos de red y los status HTTP no exitosos salen como el mismo
// domain.RemoteError — a este nivel no se distinguen.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/alejandrodnm/ahbot/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTokenURL = "https://oauth.battle.net/token"
	defaultRegion   = "eu"

	localeEnUS = "en_US"

	nsDynamic = "dynamic"
	nsStatic  = "static"

	searchConnectedRealmPath = "/data/wow/search/connected-realm"
	auctionsPathFmt          = "/data/wow/connected-realm/%d/auctions"
	itemPathFmt              = "/data/wow/item/%d"

	// Blizzard documenta 100 req/s por cliente; nos quedamos al 60%.
	requestsPerSec = 60
)

// Config son los parámetros del cliente. TokenURL y APIBase admiten override
// para tests; vacíos usan los endpoints de producción de la región.
type Config struct {
	TokenURL     string
	APIBase      string
	Region       string // "eu", "us", ...
	ClientID     string
	ClientSecret string
}

// Client es el cliente autenticado de la Game Data API. El único estado
// mutable entre llamadas es el token cacheado, protegido por mu.
type Client struct {
	http         *http.Client
	tokenURL     string
	apiBase      string
	region       string
	clientID     string
	clientSecret string
	limiter      *rate.Limiter

	mu          sync.Mutex
	accessToken string
}

// NewClient crea un Client con la configuración dada, aplicando defaults de
// producción para los campos vacíos.
func NewClient(cfg Config) *Client {
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.APIBase == "" {
		cfg.APIBase = fmt.Sprintf("https://%s.api.blizzard.com", cfg.Region)
	}
	return &Client{
		http:         &http.Client{Timeout: 30 * time.Second},
		tokenURL:     cfg.TokenURL,
		apiBase:      cfg.APIBase,
		region:       cfg.Region,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		limiter:      rate.NewLimiter(requestsPerSec, 10),
	}
}

// namespace construye el namespace regional ("dynamic-eu", "static-eu").
func (c *Client) namespace(kind string) string {
	return kind + "-" + c.region
}

// get hace un GET autenticado y decodifica el body JSON en out.
// notFoundOK indica si un 404 del endpoint significa "no existe" y debe
// mapearse a domain.ErrNotFound en vez de a RemoteError.
func (c *Client) get(ctx context.Context, url string, notFoundOK bool, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &domain.RemoteError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Token remoto expirado o revocado — el caller puede invalidar y
		// reintentar una vez (ver watcher).
		return &domain.AuthError{Status: resp.StatusCode, Body: readBody(resp.Body)}
	case resp.StatusCode == http.StatusNotFound && notFoundOK:
		io.Copy(io.Discard, resp.Body)
		return domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return &domain.RemoteError{Status: resp.StatusCode, Body: readBody(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RemoteError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readBody lee el body para diagnóstico, truncado para no inflar los logs.
func readBody(r io.Reader) string {
	const maxBody = 2048
	b, _ := io.ReadAll(io.LimitReader(r, maxBody))
	return string(b)
}
