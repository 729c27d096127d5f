package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	ctrlhttp "github.com/josoor-ai/capdesk/pkg/controller/http"
	"github.com/m-mizutani/gt"
)

func TestGetFrontendURL(t *testing.T) {
	testCases := []struct {
		name       string
		host       string
		headers    map[string]string
		configured string
		expected   string
	}{
		{
			name:       "configured URL wins",
			host:       "example.com",
			configured: "https://capdesk.example.com/",
			expected:   "https://capdesk.example.com",
		},
		{
			name:     "Host header",
			host:     "example.com",
			expected: "https://example.com",
		},
		{
			name:     "Host header with port",
			host:     "example.com:8080",
			expected: "https://example.com:8080",
		},
		{
			name:     "Alt-Used takes precedence over X-Forwarded-Host",
			host:     "internal.example.com",
			headers:  map[string]string{"Alt-Used": "capdesk-123.a.run.app", "X-Forwarded-Host": "public.example.com"},
			expected: "https://capdesk-123.a.run.app",
		},
		{
			name:     "first X-Forwarded-Host value",
			host:     "internal.example.com",
			headers:  map[string]string{"X-Forwarded-Host": "  public.example.com  , proxy.example.com"},
			expected: "https://public.example.com",
		},
		{
			name:     "empty Alt-Used is ignored",
			host:     "example.com",
			headers:  map[string]string{"Alt-Used": "", "X-Forwarded-Host": "forwarded.example.com"},
			expected: "https://forwarded.example.com",
		},
		{
			name:     "X-Forwarded-Proto http",
			host:     "example.com",
			headers:  map[string]string{"X-Forwarded-Proto": "http"},
			expected: "http://example.com",
		},
		{
			name:     "unknown X-Forwarded-Proto is ignored",
			host:     "example.com",
			headers:  map[string]string{"X-Forwarded-Proto": "gopher"},
			expected: "https://example.com",
		},
		{
			name:     "plain http on loopback",
			host:     "localhost:8080",
			expected: "http://localhost:8080",
		},
		{
			name:     "IPv6 loopback with port",
			host:     "[::1]:8080",
			expected: "http://[::1]:8080",
		},
		{
			name:     "IPv6 with port",
			host:     "[2001:db8::1]:8080",
			expected: "https://[2001:db8::1]:8080",
		},
		{
			name:     "no host",
			host:     "",
			expected: "https://localhost",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tc.host
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			gt.Equal(t, ctrlhttp.GetFrontendURL(req, tc.configured), tc.expected)
		})
	}
}
