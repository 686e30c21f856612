package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrEmptyBody возвращается, когда у запроса нет тела
	ErrEmptyBody = errors.New("request body is empty")

	// ErrValidation возвращается, когда тело не прошло валидацию
	ErrValidation = errors.New("validation failed")
)

var validate = validator.New()

// DecodeJSON декодирует тело запроса; неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// DecodeAndValidate декодирует тело и проверяет теги `validate`
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// PathInt64 читает числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path parameter %q", name)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("path parameter %q: %w", name, err)
	}
	return value, nil
}

// QueryInt64 читает необязательный числовой query параметр; пустое значение дает nil
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q: %w", name, err)
	}
	return &value, nil
}

// DateResolver разбирает токены дат (today, now, 2024-01-10-08-00-00...)
type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

// ResolveQuery разбирает обязательный query параметр с датой
func ResolveQuery(r *http.Request, resolver DateResolver, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: missing query parameter %q", domain.ErrParse, name)
	}
	return resolver.Resolve(raw)
}

// ResolveOptionalQuery разбирает необязательный query параметр с датой; пустое значение дает nil
func ResolveOptionalQuery(r *http.Request, resolver DateResolver, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	ts, err := resolver.Resolve(raw)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// ResolvePath разбирает параметр пути с датой
func ResolvePath(r *http.Request, resolver DateResolver, name string) (time.Time, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return time.Time{}, fmt.Errorf("%w: missing path parameter %q", domain.ErrParse, name)
	}
	return resolver.Resolve(raw)
}
