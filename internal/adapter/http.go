package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/utils"
	"github.com/MKhiriev/go-vault-gate/models"
	"github.com/go-resty/resty/v2"
)

const (
	vaultPath    = "/vault"
	projectsPath = "/vault/projects"
	totpPath     = "/vault/totp"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	grant string

	logger *logger.Logger
}

// NewHTTPServerAdapter returns the HTTP implementation of [ServerAdapter].
// The API token, when configured, is sent as a bearer token on every request.
func NewHTTPServerAdapter(cfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.SetHeader("Content-Type", "application/json")
	if token := strings.TrimSpace(cfg.APIToken); token != "" {
		client.SetAuthToken(token)
	}

	return &httpServerAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) currentGrant() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.grant
}

func (h *httpServerAdapter) setGrant(grant string) {
	h.mu.Lock()
	h.grant = grant
	h.mu.Unlock()
}

// vaultRequest builds a request for a record route, attaching the TOTP grant
// when one is held.
func (h *httpServerAdapter) vaultRequest(ctx context.Context) *resty.Request {
	req := h.client.JSON(ctx)
	if grant := h.currentGrant(); grant != "" {
		req.SetHeader(models.TOTPGrantHeader, grant)
	}
	return req
}

// checkVaultResponse maps the response and forgets an expired grant.
func (h *httpServerAdapter) checkVaultResponse(resp *resty.Response) error {
	err := mapHTTPError(resp)
	if errors.Is(err, ErrTOTPRequired) {
		h.setGrant("")
	}
	return err
}

func (h *httpServerAdapter) ListSecrets(ctx context.Context) ([]models.Secret, error) {
	var result models.SecretsResponse

	resp, err := h.vaultRequest(ctx).SetResult(&result).Get(vaultPath)
	if err != nil {
		return nil, transportError("list secrets", err)
	}
	if err = h.checkVaultResponse(resp); err != nil {
		return nil, err
	}

	return result.Secrets, nil
}

func (h *httpServerAdapter) CreateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error) {
	var created models.Secret

	resp, err := h.vaultRequest(ctx).SetBody(payload).SetResult(&created).Post(vaultPath)
	if err != nil {
		return models.Secret{}, transportError("create secret", err)
	}
	if err = h.checkVaultResponse(resp); err != nil {
		return models.Secret{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) UpdateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error) {
	var updated models.Secret

	resp, err := h.vaultRequest(ctx).SetBody(payload).SetResult(&updated).Put(vaultPath)
	if err != nil {
		return models.Secret{}, transportError("update secret", err)
	}
	if err = h.checkVaultResponse(resp); err != nil {
		return models.Secret{}, err
	}

	return updated, nil
}

func (h *httpServerAdapter) DeleteSecret(ctx context.Context, id string) error {
	resp, err := h.vaultRequest(ctx).SetQueryParam("id", id).Delete(vaultPath)
	if err != nil {
		return transportError("delete secret", err)
	}
	return h.checkVaultResponse(resp)
}

func (h *httpServerAdapter) ListProjects(ctx context.Context) ([]models.Project, error) {
	var result models.ProjectsResponse

	resp, err := h.vaultRequest(ctx).SetResult(&result).Get(projectsPath)
	if err != nil {
		return nil, transportError("list projects", err)
	}
	if err = h.checkVaultResponse(resp); err != nil {
		return nil, err
	}

	return result.Projects, nil
}

func (h *httpServerAdapter) CreateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error) {
	var created models.Project

	resp, err := h.vaultRequest(ctx).SetBody(payload).SetResult(&created).Post(projectsPath)
	if err != nil {
		return models.Project{}, transportError("create project", err)
	}
	if err = h.checkVaultResponse(resp); err != nil {
		return models.Project{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) UpdateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error) {
	var updated models.Project

	resp, err := h.vaultRequest(ctx).SetBody(payload).SetResult(&updated).Put(projectsPath)
	if err != nil {
		return models.Project{}, transportError("update project", err)
	}
	if err = h.checkVaultResponse(resp); err != nil {
		return models.Project{}, err
	}

	return updated, nil
}

func (h *httpServerAdapter) DeleteProject(ctx context.Context, id string) error {
	resp, err := h.vaultRequest(ctx).SetQueryParam("id", id).Delete(projectsPath)
	if err != nil {
		return transportError("delete project", err)
	}
	return h.checkVaultResponse(resp)
}
