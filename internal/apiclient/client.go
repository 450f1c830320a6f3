// Package apiclient — типизированный HTTP-клиент к API Zhurnal.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"zhurnal/internal/models"
)

var (
	ErrUnauthenticated = errors.New("не авторизован")
	ErrForbidden       = errors.New("доступ запрещён")
	ErrNotFound        = errors.New("не найдено")
)

// APIError — ошибка уровня API с текстом из тела ответа.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken задаёт bearer-токен для последующих запросов. Пустая строка сбрасывает.
func (c *Client) SetToken(token string) {
	c.token = token
}

// List — страница списка, как её отдаёт сервер.
type List[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Register регистрирует пользователя и запоминает выданный токен.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login выполняет вход и запоминает выданный токен.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	body := models.LoginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, "/api/profile", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// MagazinesParams — параметры листинга журналов.
type MagazinesParams struct {
	Search   string
	Mine     bool
	Page     int
	PageSize int
}

func (c *Client) Magazines(ctx context.Context, p MagazinesParams) (*List[*models.Magazine], error) {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Mine {
		q.Set("mine", "true")
	}
	addPage(q, p.Page, p.PageSize)
	var out List[*models.Magazine]
	if err := c.get(ctx, "/api/magazines?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Magazine(ctx context.Context, id string) (*models.Magazine, error) {
	var m models.Magazine
	if err := c.get(ctx, "/api/magazines/"+url.PathEscape(id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) MagazineArticles(ctx context.Context, magazineID, status string, page, pageSize int) (*List[*models.Article], error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	addPage(q, page, pageSize)
	path := "/api/magazines/" + url.PathEscape(magazineID) + "/articles?" + q.Encode()
	var out List[*models.Article]
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Article возвращает статью вместе с уровнем доступа. При SUMMARY_ONLY
// содержимое отсутствует.
func (c *Client) Article(ctx context.Context, id string) (*models.ArticleWithAccess, error) {
	var out models.ArticleWithAccess
	if err := c.get(ctx, "/api/articles/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subscribe оформляет подписку на журнал. Повторный вызов при активной
// подписке возвращает её же с флагом alreadyActive.
func (c *Client) Subscribe(ctx context.Context, magazineID string) (*models.SubscribeResponse, error) {
	var out models.SubscribeResponse
	path := "/api/magazines/" + url.PathEscape(magazineID) + "/subscribe"
	if err := c.post(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MySubscriptions(ctx context.Context, page, pageSize int) (*List[*models.Subscription], error) {
	q := url.Values{}
	addPage(q, page, pageSize)
	var out List[*models.Subscription]
	if err := c.get(ctx, "/api/subscriptions/me?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Comments(ctx context.Context, articleID string, page, pageSize int) (*List[*models.Comment], error) {
	q := url.Values{}
	addPage(q, page, pageSize)
	path := "/api/articles/" + url.PathEscape(articleID) + "/comments?" + q.Encode()
	var out List[*models.Comment]
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateComment(ctx context.Context, articleID, body string) (*models.Comment, error) {
	var out models.Comment
	path := "/api/articles/" + url.PathEscape(articleID) + "/comments"
	if err := c.post(ctx, path, models.CreateCommentRequest{Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func addPage(q url.Values, page, pageSize int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
}
