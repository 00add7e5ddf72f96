package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nestedRequest struct {
	Guest struct {
		Email string `json:"email" binding:"required,email"`
	} `json:"guest" binding:"required"`
	Count int `json:"count" binding:"required,min=1,max=3"`
}

// serve 用单个处理函数执行一次请求
func serve(handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, "/t/:id", handler)
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBindJSONFieldPaths(t *testing.T) {
	handler := func(c *gin.Context) {
		var req nestedRequest
		if !bindJSON(c, &req) {
			return
		}
		c.Status(http.StatusOK)
	}

	tests := []struct {
		name   string
		body   string
		status int
		code   int
		fields []string
	}{
		{"valid", `{"guest":{"email":"a@b.co"},"count":2}`, http.StatusOK, 0, nil},
		{"nested field", `{"guest":{"email":"nope"},"count":2}`, http.StatusBadRequest, code.ErrValidation, []string{"guest.email"}},
		{"several fields", `{"guest":{"email":""},"count":9}`, http.StatusBadRequest, code.ErrValidation, []string{"guest.email", "count"}},
		{"wrong type", `{"guest":{"email":"a@b.co"},"count":"two"}`, http.StatusBadRequest, code.ErrValidation, []string{"count"}},
		{"malformed", `{"guest":`, http.StatusBadRequest, code.ErrBind, nil},
		{"empty body", ``, http.StatusBadRequest, code.ErrBind, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler, http.MethodPost, "/t/1", tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.status, w.Body.String())
			}
			if tt.status == http.StatusOK {
				return
			}

			var resp struct {
				Code int `json:"code"`
				Data struct {
					Errors []response.FieldError `json:"errors"`
				} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.code {
				t.Fatalf("code = %d, want %d", resp.Code, tt.code)
			}
			got := map[string]bool{}
			for _, e := range resp.Data.Errors {
				got[e.Field] = true
				if e.Message == "" {
					t.Errorf("empty message for %s", e.Field)
				}
			}
			for _, f := range tt.fields {
				if !got[f] {
					t.Errorf("missing error for %s in %s", f, w.Body.String())
				}
			}
		})
	}
}

func TestParseID(t *testing.T) {
	handler := func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		c.String(http.StatusOK, "%d", id)
	}

	for path, want := range map[string]int{
		"/t/12":  http.StatusOK,
		"/t/0":   http.StatusBadRequest,
		"/t/-1":  http.StatusBadRequest,
		"/t/abc": http.StatusBadRequest,
	} {
		if w := serve(handler, http.MethodGet, path, ""); w.Code != want {
			t.Errorf("GET %s status = %d, want %d", path, w.Code, want)
		}
	}
}

func TestParseDay(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)

	day, err := parseDay("2030-06-01", loc)
	if err != nil {
		t.Fatalf("parseDay: %v", err)
	}
	if day.Location() != loc || day.Hour() != 0 || day.Day() != 1 {
		t.Fatalf("date parsed as %v", day)
	}

	ts, err := parseDay("2030-06-01T23:30:00Z", loc)
	if err != nil {
		t.Fatalf("parseDay RFC3339: %v", err)
	}
	if !ts.Equal(time.Date(2030, 6, 1, 23, 30, 0, 0, time.UTC)) {
		t.Fatalf("timestamp parsed as %v", ts)
	}

	for _, bad := range []string{"", "tomorrow", "2030-13-01", "01/06/2030"} {
		if _, err := parseDay(bad, loc); err == nil {
			t.Errorf("parseDay(%q) should fail", bad)
		}
	}
}

func TestHandleServiceErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   int
	}{
		{services.ErrRestaurantNotFound, http.StatusNotFound, code.ErrRestaurantNotFound},
		{fmt.Errorf("update: %w", services.ErrInvalidRestaurant), http.StatusBadRequest, code.ErrRestaurantInvalid},
		{services.ErrReservationCompleted, http.StatusConflict, code.ErrReservationCompleted},
		{services.ErrGiftCardInactive, http.StatusBadRequest, code.ErrGiftCardInactive},
		{services.ErrGiftCardExpired, http.StatusBadRequest, code.ErrGiftCardExpired},
		{services.ErrInsufficientBalance, http.StatusBadRequest, code.ErrInsufficientBalance},
		{services.ErrInvalidSort, http.StatusBadRequest, code.ErrReviewSortInvalid},
		{errors.New("disk on fire"), http.StatusInternalServerError, code.ErrUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := serve(func(c *gin.Context) { handleServiceError(c, tt.err) }, http.MethodGet, "/t/1", "")
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			var resp response.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.code {
				t.Fatalf("code = %d, want %d", resp.Code, tt.code)
			}
			if tt.code == code.ErrUnknown && resp.Message == "disk on fire" {
				t.Fatal("internal error leaked to the client")
			}
		})
	}
}
