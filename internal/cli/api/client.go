package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client wraps HTTP calls to the data-storage API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a Client from a base URL (e.g. http://localhost:8080) and
// bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/") + "/api/v0",
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 5 * time.Minute, // generous for large uploads
		},
	}
}

// Response is the standard { success, data, error } envelope.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// APIError is returned when the server sends a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server, meaning the
// stored credential is no longer valid.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// --- low-level helpers ---

func (c *Client) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return &APIError{Status: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{Status: resp.StatusCode, Message: string(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(path string, params url.Values, out interface{}) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	req, err := c.newRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) sendJSON(method, path string, body interface{}, out interface{}) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}
	req, err := c.newRequest(method, path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) delete(path string) error {
	req, err := c.newRequest(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.doJSON(req, nil)
}

// --- auth ---

func (c *Client) Login(email, password string) (*LoginResponse, error) {
	var resp Response[LoginResponse]
	body := map[string]string{"email": email, "password": password}
	if err := c.sendJSON(http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Register(email, password, firstName, lastName string) (*LoginResponse, error) {
	var resp Response[LoginResponse]
	body := map[string]string{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	}
	if err := c.sendJSON(http.MethodPost, "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) Me() (*User, error) {
	var resp Response[User]
	if err := c.get("/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// --- rooms ---

func (c *Client) ListRooms() ([]Room, error) {
	var resp Response[[]Room]
	if err := c.get("/rooms", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateRoom(name, description string) (*Room, error) {
	var resp Response[Room]
	body := map[string]string{"name": name, "description": description}
	if err := c.sendJSON(http.MethodPost, "/rooms", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetRoom(roomID string) (*RoomDetail, error) {
	var resp Response[RoomDetail]
	if err := c.get("/rooms/"+roomID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) UpdateRoom(roomID string, name, description *string) (*Room, error) {
	var resp Response[Room]
	body := map[string]*string{"name": name, "description": description}
	if err := c.sendJSON(http.MethodPut, "/rooms/"+roomID, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DeleteRoom(roomID string) error {
	return c.delete("/rooms/" + roomID)
}

// --- folders ---

func (c *Client) ListFolders(roomID string) ([]Folder, error) {
	var resp Response[[]Folder]
	params := url.Values{"room_id": {roomID}}
	if err := c.get("/folders", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateFolder(name, roomID string, parentID *string) (*Folder, error) {
	var resp Response[Folder]
	body := map[string]interface{}{"name": name, "roomID": roomID}
	if parentID != nil {
		body["parentID"] = *parentID
	}
	if err := c.sendJSON(http.MethodPost, "/folders", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetFolder(folderID string) (*FolderDetail, error) {
	var resp Response[FolderDetail]
	if err := c.get("/folders/"+folderID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) RenameFolder(folderID, name string) (*Folder, error) {
	var resp Response[Folder]
	body := map[string]string{"name": name}
	if err := c.sendJSON(http.MethodPatch, "/folders/"+folderID, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DeleteFolder(folderID string) error {
	return c.delete("/folders/" + folderID)
}

// --- files ---

func (c *Client) ListFiles(folderID string) ([]File, error) {
	var resp Response[[]File]
	params := url.Values{"folder_id": {folderID}}
	if err := c.get("/files", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UploadFile streams a local file as a multipart POST. The payload is piped
// straight from disk so large files never sit in memory.
func (c *Client) UploadFile(localPath, folderID, name string) (*File, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer writer.Close()

		_ = writer.WriteField("folderID", folderID)
		_ = writer.WriteField("name", name)

		part, err := writer.CreateFormFile("file", fi.Name())
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
	}()

	req, err := c.newRequest(http.MethodPost, "/files", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var resp Response[File]
	if err := c.doJSON(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetFile(fileID string) (*File, error) {
	var resp Response[File]
	if err := c.get("/files/"+fileID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) RenameFile(fileID, name string) (*File, error) {
	var resp Response[File]
	body := map[string]string{"name": name}
	if err := c.sendJSON(http.MethodPatch, "/files/"+fileID, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DeleteFile(fileID string) error {
	return c.delete("/files/" + fileID)
}

// --- shares ---

func (c *Client) CreateShare(fileID string, expiresAt *time.Time) (*Share, error) {
	var resp Response[Share]
	body := map[string]interface{}{}
	if expiresAt != nil {
		body["expiresAt"] = expiresAt.Format(time.RFC3339)
	}
	if err := c.sendJSON(http.MethodPost, "/files/"+fileID+"/share", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) ListShares(fileID string) ([]Share, error) {
	var resp Response[[]Share]
	if err := c.get("/files/"+fileID+"/shares", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) DeleteShare(shareID string) error {
	return c.delete("/shares/" + shareID)
}

// ShareDownloadURL derives the public download URL for a share token. Pure
// string construction; no request is made.
func (c *Client) ShareDownloadURL(token string) string {
	return c.BaseURL + "/files/share/" + token + "/download"
}

// DownloadToFile streams a GET response body directly to a file on disk.
func (c *Client) DownloadToFile(rawURL, dest string) error {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Message: string(body)}
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
