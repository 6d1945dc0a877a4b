// Package api implements the client for the remote salon booking service.
//
// All requests are plain HTTP: sign-in is form-encoded (the service's
// authentication convention), everything else is JSON. The stored access
// credential is attached as a bearer token when present. Non-success
// responses are normalized into a single *Error whose message comes from
// the response's "detail" field when the server provides one.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkalinina/salonbook/internal/client/models"
	"github.com/mkalinina/salonbook/internal/logging"
)

// HTTPClient is the production Client implementation.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        logging.Logger
}

// NewHTTPClient builds a client for the API at baseURL. The timeout applies
// per request; tokens supplies the bearer credential.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
	}
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
}

// SignIn posts form-encoded credentials to /signin. No bearer token is
// attached: this is how a session starts.
func (c *HTTPClient) SignIn(ctx context.Context, username, password string) (string, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/signin", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &Error{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Request-ID", uuid.NewString())

	var out signInResponse
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

type signUpResponse struct {
	Data string `json:"data"`
}

func (c *HTTPClient) SignUp(ctx context.Context, r models.SignUpRequest) error {
	var out signUpResponse
	return c.do(ctx, http.MethodPost, "/api/v1/users/signup", nil, r, &out)
}

func (c *HTTPClient) Salons(ctx context.Context) ([]models.Salon, error) {
	var out struct {
		Salons []models.Salon `json:"salons"`
	}
	if err := c.do(ctx, http.MethodGet, "/salons", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Salons, nil
}

func (c *HTTPClient) Services(ctx context.Context, salonID int64) ([]models.Service, error) {
	q := url.Values{}
	if salonID != 0 {
		q.Set("salon_id", strconv.FormatInt(salonID, 10))
	}
	var out struct {
		Services []models.Service `json:"services"`
	}
	if err := c.do(ctx, http.MethodGet, "/services", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (c *HTTPClient) Masters(ctx context.Context, salonID, serviceID int64) ([]models.Master, error) {
	q := url.Values{}
	if salonID != 0 {
		q.Set("salon_id", strconv.FormatInt(salonID, 10))
	}
	if serviceID != 0 {
		q.Set("service_id", strconv.FormatInt(serviceID, 10))
	}
	var out struct {
		Masters []models.Master `json:"masters"`
	}
	if err := c.do(ctx, http.MethodGet, "/masters", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Masters, nil
}

func (c *HTTPClient) FreeSlots(ctx context.Context, query SlotQuery) ([]models.MasterSlots, error) {
	q := url.Values{}
	q.Set("salon_id", strconv.FormatInt(query.SalonID, 10))
	q.Set("service_id", strconv.FormatInt(query.ServiceID, 10))
	q.Set("target_date", query.Date)
	if query.MasterID != nil {
		q.Set("master_id", strconv.FormatInt(*query.MasterID, 10))
	}
	var out struct {
		Slots []models.MasterSlots `json:"slots"`
	}
	if err := c.do(ctx, http.MethodGet, "/free_slots", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

func (c *HTTPClient) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var out struct {
		Appointments []models.Appointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/appointments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

func (c *HTTPClient) CreateAppointment(ctx context.Context, r models.AppointmentRequest) (models.Appointment, error) {
	var out struct {
		Appointment models.Appointment `json:"appointment"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/users/appointments", nil, r, &out); err != nil {
		return models.Appointment{}, err
	}
	return out.Appointment, nil
}

func (c *HTTPClient) CancelAppointment(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/users/appointments/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do builds and sends one JSON request, attaching the bearer credential
// when one is stored, and decodes the response into out (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &Error{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.tokens.Credential(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, out)
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error(req.Context(), "request failed",
			"method", req.Method, "url", req.URL.Path, "error", err)
		return &Error{Message: fmt.Sprintf("server unavailable: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	c.log.Debug(req.Context(), "request done",
		"method", req.Method, "url", req.URL.Path, "status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err)}
		}
	}
	return nil
}

// decodeError extracts the server's "detail" message when present; anything
// else gets a generic fallback carrying the status code.
func decodeError(status int, body []byte) *Error {
	var payload struct {
		Detail string `json:"detail"`
	}
	// detail can also be a structured validation list; that decodes to ""
	// here and falls through to the generic message.
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &Error{Status: status, Message: payload.Detail}
	}
	return &Error{Status: status, Message: fmt.Sprintf("request failed (status %d)", status)}
}
