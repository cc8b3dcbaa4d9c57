package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	headerKeyRequestID = "X-Request-Id"
	headerKeyAPIKey    = "X-API-Key"
)

var runOnce sync.Once
var restyClient *resty.Client

// Client shared resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// WithAPIKey resty request with api key, no header when key is empty
func WithAPIKey(ctx context.Context, key string) *resty.Request {
	r := Request(ctx)
	if key != "" {
		r.SetHeader(headerKeyAPIKey, key)
	}

	return r
}

// ParseResponse decode a json body, non 2xx responses become errors
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		var e struct {
			Code int    `json:"code"`
			Msg  string `json:"msg"`
		}
		if err := json.Unmarshal(r.Body(), &e); err == nil && e.Msg != "" {
			return fmt.Errorf("http %d: code %d: %s", r.StatusCode(), e.Code, e.Msg)
		}

		return fmt.Errorf("http %d: %s", r.StatusCode(), string(r.Body()))
	}

	if obj == nil {
		return nil
	}

	return json.Unmarshal(r.Body(), obj)
}
