// Package api is the HTTP client for the panel service and its chat
// responder. One method per server route; no retries, no caching — the
// server is same-origin and trusted, failures surface to the caller once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"panel-cli/internal/model"
)

// Error carries the status and the server-provided message from an {error}
// or {message} body, so flows can surface the server's own wording.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fmt.Sprintf("Error del servidor: %d", e.Status)
}

// Client talks to the panel web service. Safe for concurrent use.
type Client struct {
	baseURL string
	chatURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// Options configures a Client. A zero Timeout means no timeout at all: an
// unresponsive server hangs the owning flow, matching the browser client
// this replaces.
type Options struct {
	BaseURL string
	ChatURL string
	APIKey  string
	Timeout time.Duration
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "http://localhost:5000"
	}
	return &Client{
		baseURL: base,
		chatURL: strings.TrimRight(opts.ChatURL, "/"),
		apiKey:  opts.APIKey,
		client:  &http.Client{Timeout: opts.Timeout},
		logger:  logger,
	}
}

// Messages fetches a project's full history. Order is not guaranteed by the
// server; callers re-sort before rendering.
func (c *Client) Messages(ctx context.Context, projectID int) ([]Message, error) {
	var msgs []Message
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/proyecto/%d/mensajes", projectID), nil, &msgs); err != nil {
		return nil, fmt.Errorf("cargar mensajes del proyecto %d: %w", projectID, err)
	}
	return msgs, nil
}

// SaveMessage persists one message record.
func (c *Client) SaveMessage(ctx context.Context, msg NewMessage) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/mensaje", msg, nil); err != nil {
		return fmt.Errorf("guardar mensaje: %w", err)
	}
	return nil
}

// SendMessage forwards text to the responder via the panel service. The
// reply is optional: a body without a message field means there is nothing
// to show, which is not an error.
func (c *Client) SendMessage(ctx context.Context, text string, projectID int) (reply string, ok bool, err error) {
	payload := struct {
		Message   string `json:"message"`
		ProjectID int    `json:"proyecto_id"`
	}{Message: text, ProjectID: projectID}

	var out struct {
		Message *string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/send-message", payload, &out); err != nil {
		return "", false, fmt.Errorf("respuesta del chatbot: %w", err)
	}
	if out.Message == nil || *out.Message == "" {
		return "", false, nil
	}
	return *out.Message, true, nil
}

func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var out struct {
		Projects []model.Project `json:"projects"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/proyectos", nil, &out); err != nil {
		return nil, fmt.Errorf("listar proyectos: %w", err)
	}
	return out.Projects, nil
}

func (c *Client) Project(ctx context.Context, id int) (model.Project, error) {
	var p model.Project
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/proyecto/%d", id), nil, &p); err != nil {
		return model.Project{}, fmt.Errorf("obtener proyecto %d: %w", id, err)
	}
	return p, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int, nombre, descripcion string) error {
	payload := struct {
		Name        string `json:"nombre"`
		Description string `json:"descripcion"`
	}{Name: nombre, Description: descripcion}
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/proyecto/editar/%d", id), payload, nil); err != nil {
		return fmt.Errorf("editar proyecto %d: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteProject(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/proyecto/eliminar/%d", id), nil, nil); err != nil {
		return fmt.Errorf("eliminar proyecto %d: %w", id, err)
	}
	return nil
}

// CreateProject goes through the panel's form route, the same one the HTML
// page submits to.
func (c *Client) CreateProject(ctx context.Context, nombre, descripcion string) error {
	form := url.Values{}
	form.Set("project_name", nombre)
	form.Set("project_description", descripcion)
	if err := c.doForm(ctx, "/proyecto/nuevo", form); err != nil {
		return fmt.Errorf("crear proyecto: %w", err)
	}
	return nil
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/usuarios", nil, &out); err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	return out.Users, nil
}

func (c *Client) User(ctx context.Context, id int) (model.User, error) {
	var u model.User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/usuario/%d", id), nil, &u); err != nil {
		return model.User{}, fmt.Errorf("obtener usuario %d: %w", id, err)
	}
	return u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int, edit UserEdit) error {
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/usuario/editar/%d", id), edit, nil); err != nil {
		return fmt.Errorf("editar usuario %d: %w", id, err)
	}
	return nil
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/usuario/eliminar/%d", id), nil, nil); err != nil {
		return fmt.Errorf("eliminar usuario %d: %w", id, err)
	}
	return nil
}

func (c *Client) CreateUser(ctx context.Context, u NewUser) error {
	form := url.Values{}
	form.Set("user", u.Username)
	form.Set("nombre", u.FirstName)
	form.Set("apellidos", u.LastName)
	form.Set("correo", u.Email)
	form.Set("contrasena", u.Password)
	if err := c.doForm(ctx, "/usuario/nuevo", form); err != nil {
		return fmt.Errorf("crear usuario: %w", err)
	}
	return nil
}

// Health pings the responder microservice directly.
func (c *Client) Health(ctx context.Context) error {
	if c.chatURL == "" {
		return fmt.Errorf("servicio de chat no configurado (PANEL_CHAT_URL)")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.chatURL+"/api/health", nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("servicio de chat: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return c.responseError(resp)
	}
	return nil
}

// doJSON builds a request against the panel service, checks the status and
// decodes the body into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		// The panel service distinguishes AJAX calls from page navigations.
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.responseError(resp)
		c.logger.Error("respuesta no exitosa del servidor",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(apiErr),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// doForm submits an HTML-form route. The panel answers these with a
// redirect back to the page, so any non-5xx status short of 400 counts as
// success.
func (c *Client) doForm(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := c.responseError(resp)
		c.logger.Error("fallo en formulario",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Error(apiErr),
		)
		return apiErr
	}
	return nil
}

// responseError decodes the server's {error}/{message} envelope; malformed
// bodies fall back to the bare status.
func (c *Client) responseError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	if body.Error != "" {
		apiErr.Message = body.Error
	} else if body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
