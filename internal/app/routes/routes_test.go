package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/app/middleware"
	"github.com/aid4sure/VeganEcosystem/internal/app/routes"
	"github.com/aid4sure/VeganEcosystem/internal/domain/models"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t         *testing.T
	router    *gin.Engine
	container *container.ServiceContainer
}

// newTestServer 使用内存存储和默认管理员创建路由
func newTestServer(t *testing.T, opts routes.Options) *testServer {
	t.Helper()

	cfg := config.Default()
	c := container.NewServiceContainer(cfg, nil, nil, nil)
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(c.Close)

	if opts.Limiter == nil {
		opts.Limiter = middleware.IPRateLimiter(1000, 1000)
	}
	return &testServer{
		t:         t,
		router:    routes.SetupRouter(c, opts),
		container: c,
	}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// doFrom 携带 X-Forwarded-For 头发送请求
func (s *testServer) doFrom(method, path string, body interface{}, forwardedFor string) *httptest.ResponseRecorder {
	s.t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		s.t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login() string {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "admin123"}, "")
	if w.Code != http.StatusOK {
		s.t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	var result services.LoginResult
	decode(s.t, w, &result)
	if result.Token == "" || result.Username != "admin" {
		s.t.Fatalf("unexpected login result: %+v", result)
	}
	return result.Token
}

func (s *testServer) seed() {
	s.t.Helper()

	restaurantService := s.container.GetService("restaurant").(services.InterfaceRestaurantService)
	if _, err := restaurantService.SeedSamples(context.Background()); err != nil {
		s.t.Fatalf("seed: %v", err)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Errors []response.FieldError `json:"errors"`
	} `json:"data"`
}

// expectError 检查状态码和业务错误码
func expectError(t *testing.T, w *httptest.ResponseRecorder, status, errCode int) errorBody {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, status, w.Body.String())
	}
	var body errorBody
	decode(t, w, &body)
	if body.Code != errCode {
		t.Fatalf("code = %d, want %d, body = %s", body.Code, errCode, w.Body.String())
	}
	return body
}

func hasFieldError(body errorBody, field string) bool {
	for _, e := range body.Data.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

func validRestaurant() gin.H {
	return gin.H{
		"name":               "Sprout House",
		"description":        "Cozy neighbourhood spot for vegan comfort food.",
		"address":            "9 Fern Lane",
		"hours":              "Daily 11-22",
		"imageUrl":           "https://images.example.com/sprout.jpg",
		"latitude":           0,
		"longitude":          0,
		"sustainabilityInfo": "Compostable packaging",
		"menu":               "Tofu scramble, Lentil soup",
		"type":               "Cafe",
	}
}

func futureDate(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, routes.Options{})

	for _, path := range []string{"/api/ping", "/api/health", "/api/health/cache-stats"} {
		if w := s.do(http.MethodGet, path, nil, ""); w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d", path, w.Code)
		}
	}

	w := s.do(http.MethodGet, "/api/ping", nil, "")
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRestaurantLifecycle(t *testing.T) {
	s := newTestServer(t, routes.Options{})

	// 未登录不能创建
	w := s.do(http.MethodPost, "/api/restaurants", validRestaurant(), "")
	expectError(t, w, http.StatusUnauthorized, code.ErrTokenInvalid)

	token := s.login()

	w = s.do(http.MethodPost, "/api/restaurants", validRestaurant(), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created models.Restaurant
	decode(t, w, &created)
	if created.ID == 0 || created.MaxPartySize != 10 || created.TimeSlotInterval != 30 {
		t.Fatalf("defaults not applied: %+v", created)
	}
	if created.Latitude != 0 || created.Longitude != 0 {
		t.Fatalf("zero coordinates should be kept: %+v", created)
	}

	path := fmt.Sprintf("/api/restaurants/%d", created.ID)
	w = s.do(http.MethodGet, path, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// 部分更新保留其余字段
	w = s.do(http.MethodPatch, path, gin.H{"name": "Sprout House II", "maxPartySize": 6}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body = %s", w.Code, w.Body.String())
	}
	var updated models.Restaurant
	decode(t, w, &updated)
	if updated.ID != created.ID || updated.Name != "Sprout House II" || updated.MaxPartySize != 6 || updated.Menu != created.Menu {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	w = s.do(http.MethodDelete, path, nil, token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = s.do(http.MethodGet, path, nil, "")
	expectError(t, w, http.StatusNotFound, code.ErrRestaurantNotFound)

	w = s.do(http.MethodDelete, path, nil, token)
	expectError(t, w, http.StatusNotFound, code.ErrRestaurantNotFound)

	w = s.do(http.MethodPatch, "/api/restaurants/999", gin.H{"name": "Ghost"}, token)
	expectError(t, w, http.StatusNotFound, code.ErrRestaurantNotFound)
}

func TestRestaurantValidation(t *testing.T) {
	s := newTestServer(t, routes.Options{})
	token := s.login()

	tests := []struct {
		name  string
		edit  func(gin.H)
		field string
	}{
		{"missing name", func(b gin.H) { delete(b, "name") }, "name"},
		{"short description", func(b gin.H) { b["description"] = "short" }, "description"},
		{"missing latitude", func(b gin.H) { delete(b, "latitude") }, "latitude"},
		{"latitude out of range", func(b gin.H) { b["latitude"] = 91 }, "latitude"},
		{"longitude out of range", func(b gin.H) { b["longitude"] = -181 }, "longitude"},
		{"latitude wrong type", func(b gin.H) { b["latitude"] = "north" }, "latitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validRestaurant()
			tt.edit(body)
			w := s.do(http.MethodPost, "/api/restaurants", body, token)
			got := expectError(t, w, http.StatusBadRequest, code.ErrValidation)
			if !hasFieldError(got, tt.field) {
				t.Fatalf("missing field error for %s: %s", tt.field, w.Body.String())
			}
		})
	}

	w := s.do(http.MethodPost, "/api/restaurants", "{not json", token)
	expectError(t, w, http.StatusBadRequest, code.ErrBind)

	w = s.do(http.MethodGet, "/api/restaurants/abc", nil, "")
	got := expectError(t, w, http.StatusBadRequest, code.ErrInvalidID)
	if !hasFieldError(got, "id") {
		t.Fatalf("missing id field error: %s", w.Body.String())
	}
}

func TestRestaurantSearchAndSlots(t *testing.T) {
	s := newTestServer(t, routes.Options{})
	s.seed()

	var all, found []models.Restaurant
	decode(t, s.do(http.MethodGet, "/api/restaurants", nil, ""), &all)
	if len(all) != 2 {
		t.Fatalf("expected 2 seeded restaurants, got %d", len(all))
	}

	w := s.do(http.MethodGet, "/api/restaurants/search/STREET%20FOOD", nil, "")
	decode(t, w, &found)
	if len(found) != 1 || found[0].Name != "Plant Power Cart" {
		t.Fatalf("search result = %+v", found)
	}

	decode(t, s.do(http.MethodGet, "/api/restaurants?q=kitchen", nil, ""), &found)
	if len(found) != 1 || found[0].Name != "Green Earth Kitchen" {
		t.Fatalf("query search result = %+v", found)
	}

	decode(t, s.do(http.MethodGet, "/api/restaurants/search/no-such-place", nil, ""), &found)
	if len(found) != 0 {
		t.Fatalf("expected no match, got %+v", found)
	}

	var slots []string
	decode(t, s.do(http.MethodGet, "/api/restaurants/1/time-slots", nil, ""), &slots)
	if len(slots) != 23 || slots[0] != "11:00" || slots[22] != "22:00" {
		t.Fatalf("slots for 30 minute interval = %v", slots)
	}

	// Plant Power Cart 每15分钟一个时段
	decode(t, s.do(http.MethodGet, "/api/restaurants/2/time-slots", nil, ""), &slots)
	if len(slots) != 45 || slots[1] != "11:15" {
		t.Fatalf("slots for 15 minute interval = %v", slots)
	}

	w = s.do(http.MethodGet, "/api/restaurants/99/time-slots", nil, "")
	expectError(t, w, http.StatusNotFound, code.ErrRestaurantNotFound)
}

func TestReviews(t *testing.T) {
	s := newTestServer(t, routes.Options{})
	s.seed()

	for _, rating := range []int{5, 5, 4} {
		w := s.do(http.MethodPost, "/api/reviews", gin.H{
			"restaurantId": 1,
			"rating":       rating,
			"comment":      "Lovely food and a calm room.",
		}, "")
		if w.Code != http.StatusCreated {
			t.Fatalf("create review status = %d, body = %s", w.Code, w.Body.String())
		}
	}

	var summary models.ReviewSummary
	decode(t, s.do(http.MethodGet, "/api/restaurants/1/reviews/summary", nil, ""), &summary)
	if summary.Count != 3 || summary.AverageRating != 4.7 || summary.Distribution[5] != 2 || summary.Distribution[1] != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	var reviews []models.Review
	decode(t, s.do(http.MethodGet, "/api/restaurants/1/reviews?sort=lowest", nil, ""), &reviews)
	if len(reviews) != 3 || reviews[0].Rating != 4 {
		t.Fatalf("lowest first = %+v", reviews)
	}

	decode(t, s.do(http.MethodGet, "/api/restaurants/2/reviews", nil, ""), &reviews)
	if reviews == nil || len(reviews) != 0 {
		t.Fatalf("expected empty array, got %+v", reviews)
	}

	w := s.do(http.MethodGet, "/api/restaurants/1/reviews?sort=random", nil, "")
	expectError(t, w, http.StatusBadRequest, code.ErrReviewSortInvalid)

	tests := []struct {
		name  string
		body  gin.H
		field string
	}{
		{"rating too high", gin.H{"restaurantId": 1, "rating": 6, "comment": "Lovely food and a calm room."}, "rating"},
		{"rating missing", gin.H{"restaurantId": 1, "comment": "Lovely food and a calm room."}, "rating"},
		{"comment too short", gin.H{"restaurantId": 1, "rating": 3, "comment": "ok"}, "comment"},
		{"restaurant missing", gin.H{"rating": 3, "comment": "Lovely food and a calm room."}, "restaurantId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/reviews", tt.body, "")
			got := expectError(t, w, http.StatusBadRequest, code.ErrValidation)
			if !hasFieldError(got, tt.field) {
				t.Fatalf("missing field error for %s: %s", tt.field, w.Body.String())
			}
		})
	}
}

func TestCatalogCachePurgedOnWrite(t *testing.T) {
	cache := middleware.NewResponseCache()
	s := newTestServer(t, routes.Options{Cache: cache})
	s.seed()

	s.do(http.MethodGet, "/api/restaurants/1/reviews/summary", nil, "")
	w := s.do(http.MethodGet, "/api/restaurants/1/reviews/summary", nil, "")
	if w.Header().Get("X-Cache") != "HIT" {
		t.Fatal("second read should be served from cache")
	}

	w = s.do(http.MethodPost, "/api/reviews", gin.H{"restaurantId": 1, "rating": 2, "comment": "Portions were too small."}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create review status = %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/restaurants/1/reviews/summary", nil, "")
	if w.Header().Get("X-Cache") == "HIT" {
		t.Fatal("cache should be purged after a review is created")
	}
	var summary models.ReviewSummary
	decode(t, w, &summary)
	if summary.Count != 1 {
		t.Fatalf("stale summary: %+v", summary)
	}

	// 失败的请求不缓存
	s.do(http.MethodGet, "/api/restaurants/42", nil, "")
	w = s.do(http.MethodGet, "/api/restaurants/42", nil, "")
	if w.Header().Get("X-Cache") == "HIT" || w.Code != http.StatusNotFound {
		t.Fatalf("404 must not be cached, status = %d", w.Code)
	}
}

func TestReservations(t *testing.T) {
	s := newTestServer(t, routes.Options{})
	s.seed()

	date := futureDate(48 * time.Hour)
	body := gin.H{
		"restaurantId": 2,
		"date":         date,
		"partySize":    4,
		"name":         "Alex Green",
		"email":        "alex@example.com",
		"phone":        "5035550100",
	}

	w := s.do(http.MethodPost, "/api/reservations", body, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var reservation models.Reservation
	decode(t, w, &reservation)
	if reservation.Status != models.ReservationStatusConfirmed || reservation.ID == 0 {
		t.Fatalf("unexpected reservation: %+v", reservation)
	}

	// Plant Power Cart 最多4人
	body["partySize"] = 5
	w = s.do(http.MethodPost, "/api/reservations", body, "")
	got := expectError(t, w, http.StatusBadRequest, code.ErrPartySizeExceeded)
	if !hasFieldError(got, "partySize") {
		t.Fatalf("missing partySize error: %s", w.Body.String())
	}

	body["partySize"] = 2
	body["date"] = time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	w = s.do(http.MethodPost, "/api/reservations", body, "")
	expectError(t, w, http.StatusBadRequest, code.ErrReservationDateInvalid)

	body["date"] = date
	body["email"] = "not-an-email"
	body["phone"] = "123"
	w = s.do(http.MethodPost, "/api/reservations", body, "")
	got = expectError(t, w, http.StatusBadRequest, code.ErrValidation)
	if !hasFieldError(got, "email") || !hasFieldError(got, "phone") {
		t.Fatalf("expected email and phone errors: %s", w.Body.String())
	}

	body["email"] = "alex@example.com"
	body["phone"] = "5035550100"
	body["restaurantId"] = 77
	w = s.do(http.MethodPost, "/api/reservations", body, "")
	got = expectError(t, w, http.StatusBadRequest, code.ErrValidation)
	if !hasFieldError(got, "restaurantId") {
		t.Fatalf("expected restaurantId error: %s", w.Body.String())
	}

	// 按日查询需要管理员
	day := date[:10]
	listPath := "/api/restaurants/2/reservations/" + day
	w = s.do(http.MethodGet, listPath, nil, "")
	expectError(t, w, http.StatusUnauthorized, code.ErrTokenInvalid)

	token := s.login()
	var listed []models.Reservation
	decode(t, s.do(http.MethodGet, listPath, nil, token), &listed)
	if len(listed) != 1 || listed[0].ID != reservation.ID {
		t.Fatalf("listed = %+v", listed)
	}

	decode(t, s.do(http.MethodGet, "/api/restaurants/2/reservations/"+date, nil, token), &listed)
	if len(listed) != 1 {
		t.Fatalf("RFC3339 day listing = %+v", listed)
	}

	w = s.do(http.MethodGet, "/api/restaurants/2/reservations/someday", nil, token)
	expectError(t, w, http.StatusBadRequest, code.ErrReservationDateInvalid)

	// 重复取消都成功
	cancelPath := fmt.Sprintf("/api/reservations/%d/cancel", reservation.ID)
	for i := 0; i < 2; i++ {
		w = s.do(http.MethodPost, cancelPath, nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("cancel #%d status = %d", i+1, w.Code)
		}
		decode(t, w, &reservation)
		if reservation.Status != models.ReservationStatusCancelled {
			t.Fatalf("cancel #%d status = %s", i+1, reservation.Status)
		}
	}

	w = s.do(http.MethodPost, "/api/reservations/999/cancel", nil, "")
	expectError(t, w, http.StatusNotFound, code.ErrReservationNotFound)
}

func TestCancelCompletedReservation(t *testing.T) {
	s := newTestServer(t, routes.Options{})
	s.seed()

	w := s.do(http.MethodPost, "/api/reservations", gin.H{
		"restaurantId": 1,
		"date":         futureDate(2 * time.Hour),
		"partySize":    2,
		"name":         "Sam Leaf",
		"email":        "sam@example.com",
		"phone":        "5035550199",
	}, "")
	var reservation models.Reservation
	decode(t, w, &reservation)

	// 时钟前移后完成过期预订
	reservationService := s.container.GetService("reservation").(*services.ReservationService)
	reservationService.Now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	completed, err := reservationService.CompleteElapsed(context.Background())
	if err != nil || len(completed) != 1 {
		t.Fatalf("CompleteElapsed = %v, %v", completed, err)
	}

	w = s.do(http.MethodPost, fmt.Sprintf("/api/reservations/%d/cancel", reservation.ID), nil, "")
	expectError(t, w, http.StatusConflict, code.ErrReservationCompleted)
}

func TestGiftCardFlow(t *testing.T) {
	s := newTestServer(t, routes.Options{})

	for _, amount := range []int{5, 1001} {
		w := s.do(http.MethodPost, "/api/gift-cards", gin.H{"amount": amount}, "")
		got := expectError(t, w, http.StatusBadRequest, code.ErrValidation)
		if !hasFieldError(got, "amount") {
			t.Fatalf("missing amount error: %s", w.Body.String())
		}
	}

	w := s.do(http.MethodPost, "/api/gift-cards", gin.H{"amount": 100}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("issue status = %d, body = %s", w.Code, w.Body.String())
	}
	var card models.GiftCard
	decode(t, w, &card)
	if len(card.Code) != models.GiftCardCodeLength || card.Balance != 100 || card.IsActive != models.GiftCardActive {
		t.Fatalf("unexpected card: %+v", card)
	}

	redeem := func(code string, amount interface{}) *httptest.ResponseRecorder {
		return s.do(http.MethodPost, "/api/gift-cards/"+code+"/redeem", gin.H{"amount": amount}, "")
	}

	w = redeem(card.Code, 40)
	decode(t, w, &card)
	if w.Code != http.StatusOK || card.Balance != 60 || card.IsActive != models.GiftCardActive {
		t.Fatalf("after 40: status %d card %+v", w.Code, card)
	}

	// 兑换码不区分大小写
	var lookedUp models.GiftCard
	decode(t, s.do(http.MethodGet, "/api/gift-cards/"+strings.ToLower(card.Code), nil, ""), &lookedUp)
	if lookedUp.Balance != 60 {
		t.Fatalf("lookup = %+v", lookedUp)
	}

	w = redeem(card.Code, 61)
	expectError(t, w, http.StatusBadRequest, code.ErrInsufficientBalance)

	w = redeem(card.Code, 60)
	decode(t, w, &card)
	if card.Balance != 0 || card.IsActive != models.GiftCardInactive {
		t.Fatalf("after 60: %+v", card)
	}

	w = redeem(card.Code, 1)
	expectError(t, w, http.StatusBadRequest, code.ErrGiftCardInactive)

	// 兑换失败一律 400，业务码区分原因
	w = redeem("NOSUCHCODE", 1)
	expectError(t, w, http.StatusBadRequest, code.ErrGiftCardNotFound)

	w = s.do(http.MethodGet, "/api/gift-cards/NOSUCHCODE", nil, "")
	expectError(t, w, http.StatusNotFound, code.ErrGiftCardNotFound)

	w = redeem(card.Code, -5)
	got := expectError(t, w, http.StatusBadRequest, code.ErrValidation)
	if !hasFieldError(got, "amount") {
		t.Fatalf("missing amount error: %s", w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/gift-cards/"+card.Code+"/redeem", gin.H{}, "")
	expectError(t, w, http.StatusBadRequest, code.ErrValidation)
}

func TestGiftCardExpired(t *testing.T) {
	s := newTestServer(t, routes.Options{})

	var card models.GiftCard
	decode(t, s.do(http.MethodPost, "/api/gift-cards", gin.H{"amount": 50}, ""), &card)

	giftCardService := s.container.GetService("gift_card").(*services.GiftCardService)
	giftCardService.Now = func() time.Time { return time.Now().AddDate(1, 0, 1) }

	w := s.do(http.MethodPost, "/api/gift-cards/"+card.Code+"/redeem", gin.H{"amount": 10}, "")
	expectError(t, w, http.StatusBadRequest, code.ErrGiftCardExpired)
}

func TestGiftCardDrainedAndExpiredReportsInactive(t *testing.T) {
	s := newTestServer(t, routes.Options{})

	var card models.GiftCard
	decode(t, s.do(http.MethodPost, "/api/gift-cards", gin.H{"amount": 10}, ""), &card)

	w := s.do(http.MethodPost, "/api/gift-cards/"+card.Code+"/redeem", gin.H{"amount": 10}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("drain status = %d, body = %s", w.Code, w.Body.String())
	}

	giftCardService := s.container.GetService("gift_card").(*services.GiftCardService)
	giftCardService.Now = func() time.Time { return time.Now().Add(services.GiftCardValidity + time.Hour) }

	w = s.do(http.MethodPost, "/api/gift-cards/"+card.Code+"/redeem", gin.H{"amount": 0}, "")
	expectError(t, w, http.StatusBadRequest, code.ErrGiftCardInactive)
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestServer(t, routes.Options{})

	w := s.do(http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "wrong"}, "")
	expectError(t, w, http.StatusUnauthorized, code.ErrInvalidCredentials)

	w = s.do(http.MethodPost, "/api/auth/login", gin.H{"username": "admin"}, "")
	expectError(t, w, http.StatusBadRequest, code.ErrValidation)

	token := s.login()
	if w := s.do(http.MethodPost, "/api/auth/logout", nil, token); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w = s.do(http.MethodPost, "/api/restaurants", validRestaurant(), token)
	expectError(t, w, http.StatusUnauthorized, code.ErrTokenInvalid)

	w = s.do(http.MethodPost, "/api/auth/logout", nil, "garbage")
	expectError(t, w, http.StatusUnauthorized, code.ErrTokenInvalid)
}

func TestRateLimitOnPublicWrites(t *testing.T) {
	s := newTestServer(t, routes.Options{Limiter: middleware.IPRateLimiter(0.001, 2)})

	for i := 0; i < 2; i++ {
		if w := s.do(http.MethodPost, "/api/gift-cards", gin.H{"amount": 20}, ""); w.Code != http.StatusCreated {
			t.Fatalf("request %d status = %d", i+1, w.Code)
		}
	}
	w := s.do(http.MethodPost, "/api/gift-cards", gin.H{"amount": 20}, "")
	expectError(t, w, http.StatusTooManyRequests, code.ErrTooManyRequests)

	// 伪造 X-Forwarded-For 不能绕过限流
	for i := 0; i < 3; i++ {
		w := s.doFrom(http.MethodPost, "/api/gift-cards", gin.H{"amount": 20}, fmt.Sprintf("203.0.113.%d", i+1))
		expectError(t, w, http.StatusTooManyRequests, code.ErrTooManyRequests)
	}

	// 只读目录接口不限流
	if w := s.do(http.MethodGet, "/api/restaurants", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("catalog read status = %d", w.Code)
	}
}

