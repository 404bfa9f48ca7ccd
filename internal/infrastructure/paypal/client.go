// Package paypal implementa el puerto payment.Gateway contra la API REST v2
// de PayPal. El adaptador consulta la captura directamente al proveedor; los
// datos que reporte el cliente nunca entran aquí.
package paypal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/payment"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/pkg/config"
)

var _ payment.Gateway = (*Client)(nil)

// tokenMargin se resta al expires_in del token para renovarlo antes de que
// caduque en pleno request.
const tokenMargin = 60 * time.Second

// Client cliente de la API REST de PayPal (OAuth2 client_credentials +
// GET /v2/payments/captures/{id}).
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string

	mu          sync.Mutex
	accessToken string
	tokenExp    time.Time
}

// NewClient construye el cliente con las credenciales de la configuración.
func NewClient(cfg config.PayPalConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		clientID:   cfg.ClientID,
		secret:     cfg.Secret,
	}
}

// ── Estructuras de respuesta ──────────────────────────────────────────────────

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type captureResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount struct {
		CurrencyCode string `json:"currency_code"`
		Value        string `json:"value"`
	} `json:"amount"`
	UpdateTime string `json:"update_time"`
	Payee      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payee"`
}

// ── GetCaptureDetails ─────────────────────────────────────────────────────────

// GetCaptureDetails consulta una captura por ID. Devuelve domain.ErrNotFound
// si el proveedor no la conoce (404).
func (c *Client) GetCaptureDetails(ctx context.Context, captureID string) (*payment.CaptureDetails, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/v2/payments/captures/" + url.PathEscape(captureID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("paypal: crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal: consultar captura: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		// Token revocado entre medio; invalidarlo para el próximo intento.
		c.mu.Lock()
		c.accessToken = ""
		c.mu.Unlock()
		return nil, fmt.Errorf("paypal: token rechazado (HTTP 401)")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("paypal: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var capResp captureResponse
	if err := json.NewDecoder(resp.Body).Decode(&capResp); err != nil {
		return nil, fmt.Errorf("paypal: decodificar captura: %w", err)
	}

	amount, err := decimal.NewFromString(capResp.Amount.Value)
	if err != nil {
		return nil, fmt.Errorf("paypal: monto %q inválido: %w", capResp.Amount.Value, err)
	}

	return &payment.CaptureDetails{
		CaptureID:  capResp.ID,
		Amount:     amount,
		Currency:   capResp.Amount.CurrencyCode,
		Status:     capResp.Status,
		PayerEmail: capResp.Payee.EmailAddress,
		UpdateTime: capResp.UpdateTime,
	}, nil
}

// ── OAuth ─────────────────────────────────────────────────────────────────────

// token devuelve un access token vigente, renovándolo si caducó.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExp) {
		return c.accessToken, nil
	}

	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", form)
	if err != nil {
		return "", fmt.Errorf("paypal: crear request de token: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal: obtener token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("paypal: token HTTP %d: %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("paypal: decodificar token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("paypal: respuesta de token sin access_token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenMargin)
	return c.accessToken, nil
}
