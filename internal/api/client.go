// Package api is the client for the remote persistence service: settings
// and sounds CRUD, uploads with quota enforcement, storage usage, and the
// account-level destructive operations.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"soundeck/internal/logger"
	"soundeck/internal/session"
	"soundeck/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Sentinel errors for conditions callers branch on.
var (
	// ErrFileTooLarge is the per-file ceiling rejection (reference: 5MB).
	ErrFileTooLarge = errors.New("api: file too large")
	// ErrStorageLimit is the per-account total-storage rejection.
	ErrStorageLimit = errors.New("api: storage limit exceeded")
	// ErrSessionExpired is any 401; it additionally fires the global
	// expiry handler exactly once.
	ErrSessionExpired = errors.New("api: session expired")
	// ErrNoSession means a call was attempted while signed out.
	ErrNoSession = errors.New("api: no active session")
)

// MaxUploadBytes is the client-side pre-check mirror of the server's
// per-file ceiling.
const MaxUploadBytes = 5 * 1024 * 1024

// Client talks to the persistence service with a bearer credential from the
// session source. OnSessionExpired fires at most once, on the first 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   session.Source

	// expiredOnce latches the expiry handler; concurrent requests can all
	// see the same 401.
	onSessionExpired func()
	expiredOnce      sync.Once
}

func NewClient(baseURL string, sessions session.Source) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sessions:   sessions,
	}
}

// OnSessionExpired registers the global expiry handler: forced sign-out
// plus a single user notification.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// GetSettings loads the persisted settings, falling back to defaults when
// nothing is stored yet.
func (c *Client) GetSettings() (types.Settings, error) {
	var resp settingsResponse
	if err := c.do(http.MethodGet, "/settings", nil, &resp); err != nil {
		return types.Settings{}, err
	}
	if resp.Settings == nil {
		return types.DefaultSettings(), nil
	}
	return *resp.Settings, nil
}

// SaveSettings persists the settings.
func (c *Client) SaveSettings(s types.Settings) error {
	var resp successResponse
	return c.do(http.MethodPost, "/settings", s, &resp)
}

// GetSounds loads the clip sequence. Non-built-in source refs come freshly
// signed and are only valid short-term.
func (c *Client) GetSounds() ([]types.Clip, error) {
	var resp soundsResponse
	if err := c.do(http.MethodGet, "/sounds", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sounds, nil
}

// SaveSounds persists the clip sequence. Non-built-in clips are posted with
// their source ref stripped; the server regenerates it on the next load.
func (c *Client) SaveSounds(clips []types.Clip) error {
	stripped := make([]types.Clip, len(clips))
	copy(stripped, clips)
	for i := range stripped {
		if !stripped[i].IsBuiltIn {
			stripped[i].SourceRef = ""
		}
	}
	var resp successResponse
	return c.do(http.MethodPost, "/sounds/save", saveSoundsRequest{Sounds: stripped}, &resp)
}

// Upload stores an audio file, distinguishing the two quota rejections.
func (c *Client) Upload(fileName string, data []byte) (*UploadResult, error) {
	sess, ok := c.sessions.Current()
	if !ok {
		return nil, ErrNoSession
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("api: building upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("api: building upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("api: building upload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: upload: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("api: decoding upload response: %w", err)
	}
	return &result, nil
}

// DeleteSound removes a clip from the remote store, including its backing
// file for non-built-in clips.
func (c *Client) DeleteSound(id string) error {
	var resp successResponse
	return c.do(http.MethodDelete, "/sounds/"+id, nil, &resp)
}

// GetStorageUsage fetches quota accounting. Never computed locally.
func (c *Client) GetStorageUsage() (types.StorageUsage, error) {
	var usage types.StorageUsage
	err := c.do(http.MethodGet, "/storage-usage", nil, &usage)
	return usage, err
}

// ResetToDefaults deletes all uploaded files and stored state for the
// account.
func (c *Client) ResetToDefaults() error {
	var resp successResponse
	return c.do(http.MethodPost, "/reset-to-defaults", nil, &resp)
}

// DeleteAccount removes files, stored data, and the account itself.
func (c *Client) DeleteAccount() error {
	var resp successResponse
	return c.do(http.MethodDelete, "/delete-account", nil, &resp)
}

func (c *Client) do(method, path string, body, out interface{}) error {
	sess, ok := c.sessions.Current()
	if !ok {
		return ErrNoSession
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decoding %s %s: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.fireSessionExpired()
		return ErrSessionExpired
	}

	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	message := strings.ToLower(body.Error)

	if resp.StatusCode == http.StatusRequestEntityTooLarge || strings.Contains(message, "file too large") {
		return ErrFileTooLarge
	}
	if strings.Contains(message, "storage limit") {
		return ErrStorageLimit
	}
	if body.Error != "" {
		return fmt.Errorf("api: status %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("api: status %d", resp.StatusCode)
}

func (c *Client) fireSessionExpired() {
	c.expiredOnce.Do(func() {
		logger.Warn("session expired, signing out")
		c.sessions.SignOut()
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
	})
}
