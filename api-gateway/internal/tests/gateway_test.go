package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"food-storefront/api-gateway/internal/gateway"
	"food-storefront/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testConfig = gateway.Config{
	StorefrontSvcURL: "http://storefront-svc",
	StatusSvcURL:     "http://status-svc",
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_Targets(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		wantURL string
	}{
		{name: "order status", method: http.MethodGet, path: "/api/orders/ORD1/status", wantURL: "http://status-svc/api/orders/ORD1/status"},
		{name: "status update", method: http.MethodPost, path: "/api/orders/ORD1/status", wantURL: "http://status-svc/api/orders/ORD1/status"},
		{name: "order detail", method: http.MethodGet, path: "/api/orders/ORD1", wantURL: "http://storefront-svc/api/orders/ORD1"},
		{name: "qr code", method: http.MethodGet, path: "/api/orders/ORD1/qrcode", wantURL: "http://storefront-svc/api/orders/ORD1/qrcode"},
		{name: "restaurants with query", method: http.MethodGet, path: "/api/restaurants?search=pizza", wantURL: "http://storefront-svc/api/restaurants?search=pizza"},
		{name: "cart", method: http.MethodPost, path: "/api/cart", wantURL: "http://storefront-svc/api/cart"},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantURL: "http://storefront-svc/metrics"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.URL.String() == testCase.wantURL && req.Method == testCase.method
			})).Return(okResponse(`{}`), nil).Once()

			gw := gateway.NewGateway(testConfig, mockClient)
			rr := httptest.NewRecorder()
			gw.RouteHandler(rr, httptest.NewRequest(testCase.method, testCase.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestGateway_RouteHandler_CopiesResponse(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	resp := okResponse(`[{"id":"1","name":"Pizza Paradise"}]`)
	resp.StatusCode = http.StatusCreated
	mockClient.On("Do", mock.Anything).Return(resp, nil).Once()

	gw := gateway.NewGateway(testConfig, mockClient)
	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodGet, "/api/restaurants", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Pizza Paradise")
}

func TestGateway_RouteHandler_ForwardsClientAddress(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("X-Forwarded-For") == "192.0.2.1"
	})).Return(okResponse(`{}`), nil).Once()

	gw := gateway.NewGateway(testConfig, mockClient)
	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodPost, "/api/cart/abc/checkout", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGateway_RouteHandler_Unmatched(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil)

	for _, path := range []string{"/", "/index.html", "/static/app.js"} {
		rr := httptest.NewRecorder()
		gw.RouteHandler(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestIsStatusPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/api/orders/ORD1/status", want: true},
		{path: "/api/orders/ORD1/status/", want: true},
		{path: "/api/orders//status", want: false},
		{path: "/api/orders/status", want: false},
		{path: "/api/orders/ORD1/qrcode", want: false},
		{path: "/api/orders/ORD1/status/extra", want: false},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, gateway.IsStatusPath(testCase.path), testCase.path)
	}
}
