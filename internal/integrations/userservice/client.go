package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Client клиент для работы с UserService.
// Одновременные запросы одного и того же пользователя (например, при
// заполнении диапазона дней) объединяются в один HTTP вызов.
type Client struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// GetUser получает пользователя по ID.
// Отсутствие пользователя возвращается как ErrUserNotFound.
func (c *Client) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	v, err, shared := c.group.Do(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		return c.fetchUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Info("UserService: lookup of user_id=%d shared between concurrent callers", userID)
	}

	// копия, чтобы вызывающие не делили один указатель
	user := *v.(*domain.User)
	return &user, nil
}

func (c *Client) fetchUser(ctx context.Context, userID int64) (*domain.User, error) {
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("UserService request failed for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, userID)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if !user.HasKnownType() {
		c.log.Warn("UserService returned unknown user_type=%q for user_id=%d", user.UserType, userID)
		return nil, fmt.Errorf("%w: unknown user_type %q", ErrInvalidResponse, user.UserType)
	}

	return user.ToDomain(), nil
}

func (c *Client) statusError(resp *http.Response, userID int64) error {
	if resp.StatusCode == http.StatusNotFound {
		return ErrUserNotFound
	}

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}

	c.log.Warn("UserService answered %d for user_id=%d: %s", resp.StatusCode, userID, body.Message)
	return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, body.Message)
}
