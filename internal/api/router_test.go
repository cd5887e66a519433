package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/api"
	"github.com/swiftkart/storefront/internal/api/middleware"
	"github.com/swiftkart/storefront/internal/config"
	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/internal/repository"
	"github.com/swiftkart/storefront/internal/repository/memory"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

const (
	sellerKey      = "test-seller-key"
	otherSellerKey = "test-other-seller-key"
	buyerKey       = "test-buyer-key"
)

type testServer struct {
	router      *gin.Engine
	repos       *repository.Repositories
	seller      *domain.User
	otherSeller *domain.User
	buyer       *domain.User
	product     *domain.Product
	address     *domain.Address
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())

	users := map[string]*domain.User{
		sellerKey:      {Name: "Seller", Email: "seller@test.local", Role: domain.RoleSeller},
		otherSellerKey: {Name: "Other", Email: "other@test.local", Role: domain.RoleSeller},
		buyerKey:       {Name: "Buyer", Email: "buyer@test.local", Role: domain.RoleBuyer},
	}
	for key, u := range users {
		u.APIKeyHash = middleware.HashAPIKey(key)
		u.APIKeyLookup = middleware.LookupDigest(key)
		if err := repos.User.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	seller := users[sellerKey]
	product := &domain.Product{
		SellerID:    seller.ID,
		Name:        "Wireless Earbuds",
		Description: "demo",
		Brand:       "Boat",
		Category:    "Earbuds",
		Price:       2999,
		OfferPrice:  1999,
		Stock:       10,
		Images:      []string{"https://cdn.test.local/earbuds.jpg"},
	}
	if err := repos.Product.Create(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}

	buyer := users[buyerKey]
	address := &domain.Address{
		UserID:      buyer.ID,
		FullName:    "Jordan Smith",
		PhoneNumber: "9876543210",
		Area:        "12 Market Road",
		City:        "Pune",
		State:       "Maharashtra",
		Pincode:     "411001",
	}
	if err := repos.Address.Create(ctx, address); err != nil {
		t.Fatalf("create address: %v", err)
	}

	cfg := &config.Config{Port: "0", Environment: "test"}
	return &testServer{
		router:      api.NewRouter(cfg, repos, zap.NewNop()),
		repos:       repos,
		seller:      seller,
		otherSeller: users[otherSellerKey],
		buyer:       buyer,
		product:     product,
		address:     address,
	}
}

func (ts *testServer) do(t *testing.T, method, path, apiKey string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func (ts *testServer) placeOrder(t *testing.T, qty int) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/orders", buyerKey, gin.H{
		"addressId": ts.address.ID.Hex(),
		"items": []gin.H{
			{"productId": ts.product.ID.Hex(), "quantity": qty},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout returned %d: %s", rec.Code, rec.Body.String())
	}
	order := decode(t, rec)["order"].(map[string]any)
	return order["id"].(string)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/orders", "/api/cart", "/api/addresses"} {
		rec := ts.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without key: %d, want 401", path, rec.Code)
		}
	}

	rec := ts.do(t, http.MethodGet, "/api/orders", "wrong-key", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad key: %d, want 401", rec.Code)
	}
}

func TestSellerRoutesRejectBuyers(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/seller/orders", buyerKey, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("buyer on seller route: %d, want 401", rec.Code)
	}
	if decode(t, rec)["message"] != "not authorized" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestPublicCatalogNoStore(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list products: %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store, max-age=0" {
		t.Errorf("Cache-Control = %q", cc)
	}
	body := decode(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	if products := body["products"].([]any); len(products) != 1 {
		t.Errorf("products = %d, want 1", len(products))
	}
}

func TestCheckoutAndBuyerOrderList(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.placeOrder(t, 2)

	rec := ts.do(t, http.MethodGet, "/api/orders", buyerKey, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list orders: %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store, max-age=0" {
		t.Errorf("Cache-Control = %q", cc)
	}

	orders := decode(t, rec)["orders"].([]any)
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	order := orders[0].(map[string]any)
	if order["id"] != orderID {
		t.Errorf("order id = %v", order["id"])
	}
	if order["amount"] != float64(2*1999) {
		t.Errorf("amount = %v, want %v", order["amount"], 2*1999)
	}
	if order["status"] != "placed" || order["paymentStatus"] != "pending" {
		t.Errorf("initial state = %v/%v", order["status"], order["paymentStatus"])
	}
	if _, present := order["customer"]; present {
		t.Error("buyer response must not expose a customer object")
	}
}

func TestBuyerOrdersEmptyList(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/orders", buyerKey, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list orders: %d", rec.Code)
	}
	// empty array, not null
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"orders":[]`)) {
		t.Errorf("expected empty orders array, got %s", rec.Body.String())
	}
}

func TestSellerOrderListAndUpdate(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.placeOrder(t, 1)

	rec := ts.do(t, http.MethodGet, "/api/seller/orders", sellerKey, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("seller orders: %d", rec.Code)
	}
	orders := decode(t, rec)["orders"].([]any)
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	customer := orders[0].(map[string]any)["customer"].(map[string]any)
	if customer["fullName"] != "Jordan Smith" {
		t.Errorf("customer fullName = %v", customer["fullName"])
	}

	rec = ts.do(t, http.MethodPut, "/api/seller/orders", sellerKey, gin.H{
		"orderId": orderID,
		"status":  "confirmed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update order: %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["message"] != "order updated successfully" {
		t.Errorf("message = %v", body["message"])
	}
	order := body["order"].(map[string]any)
	if order["status"] != "confirmed" {
		t.Errorf("status = %v", order["status"])
	}
	if order["paymentStatus"] != "pending" {
		t.Errorf("paymentStatus = %v, want untouched pending", order["paymentStatus"])
	}
}

func TestSellerOrderUpdateErrors(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.placeOrder(t, 1)

	// missing orderId
	rec := ts.do(t, http.MethodPut, "/api/seller/orders", sellerKey, gin.H{"status": "confirmed"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing orderId: %d, want 400", rec.Code)
	}
	if decode(t, rec)["message"] != "order ID is required" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	// unknown order
	rec = ts.do(t, http.MethodPut, "/api/seller/orders", sellerKey, gin.H{
		"orderId": "65f000000000000000000000",
		"status":  "confirmed",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown order: %d, want 404", rec.Code)
	}

	// a seller with no products in the order
	rec = ts.do(t, http.MethodPut, "/api/seller/orders", otherSellerKey, gin.H{
		"orderId": orderID,
		"status":  "confirmed",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-owning seller: %d, want 403", rec.Code)
	}

	// illegal transition
	rec = ts.do(t, http.MethodPut, "/api/seller/orders", sellerKey, gin.H{
		"orderId": orderID,
		"status":  "delivered",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("illegal transition: %d, want 400", rec.Code)
	}
}

func TestCartRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/api/cart", buyerKey, gin.H{
		"items": gin.H{ts.product.ID.Hex(): 3},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update cart: %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/cart", buyerKey, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get cart: %d", rec.Code)
	}
	cart := decode(t, rec)["cart"].(map[string]any)
	if cart[ts.product.ID.Hex()] != float64(3) {
		t.Errorf("cart = %v", cart)
	}

	// checkout clears the cart
	ts.placeOrder(t, 3)
	rec = ts.do(t, http.MethodGet, "/api/cart", buyerKey, nil)
	cart = decode(t, rec)["cart"].(map[string]any)
	if len(cart) != 0 {
		t.Errorf("cart not cleared after checkout: %v", cart)
	}
}

func TestProductOwnership(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPut, "/api/seller/products/"+ts.product.ID.Hex(), otherSellerKey, gin.H{
		"price": 1,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign product update: %d, want 403", rec.Code)
	}

	rec = ts.do(t, http.MethodDelete, "/api/seller/products/"+ts.product.ID.Hex(), otherSellerKey, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign product delete: %d, want 403", rec.Code)
	}

	rec = ts.do(t, http.MethodPut, "/api/seller/products/not-a-hex-id", sellerKey, gin.H{"price": 1.0})
	if rec.Code != http.StatusNotFound {
		t.Errorf("malformed product id: %d, want 404", rec.Code)
	}

	newPrice := 2499.0
	rec = ts.do(t, http.MethodPut, "/api/seller/products/"+ts.product.ID.Hex(), sellerKey, gin.H{
		"price": newPrice,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update: %d: %s", rec.Code, rec.Body.String())
	}
	product := decode(t, rec)["product"].(map[string]any)
	if product["price"] != newPrice {
		t.Errorf("price = %v, want %v", product["price"], newPrice)
	}
	if product["name"] != "Wireless Earbuds" {
		t.Errorf("name changed unexpectedly: %v", product["name"])
	}
}

func TestProductCreate(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/seller/products", sellerKey, gin.H{
		"name":        "Braided Cable",
		"description": "1.5m braided cable",
		"brand":       "Mi",
		"category":    "Cables and Chargers",
		"price":       499,
		"offerPrice":  299,
		"stock":       100,
		"image":       []string{"https://cdn.test.local/cable.jpg"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: %d: %s", rec.Code, rec.Body.String())
	}
	product := decode(t, rec)["product"].(map[string]any)
	if product["sellerId"] != ts.seller.ID.Hex() {
		t.Errorf("sellerId = %v", product["sellerId"])
	}

	rec = ts.do(t, http.MethodGet, "/api/products", "", nil)
	if products := decode(t, rec)["products"].([]any); len(products) != 2 {
		t.Errorf("catalog size = %d, want 2", len(products))
	}
}

func TestAddressLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/addresses", buyerKey, gin.H{
		"fullName":    "Sam Lee",
		"phoneNumber": "9123456780",
		"area":        "5 Hill Street",
		"city":        "Mumbai",
		"state":       "Maharashtra",
		"pincode":     "400001",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create address: %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/addresses", buyerKey, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list addresses: %d", rec.Code)
	}
	// seeded address plus the new one
	if addresses := decode(t, rec)["addresses"].([]any); len(addresses) != 2 {
		t.Errorf("addresses = %d, want 2", len(addresses))
	}
}

func TestSalesReportEndpoint(t *testing.T) {
	ts := newTestServer(t)
	orderID := ts.placeOrder(t, 1)

	rec := ts.do(t, http.MethodPut, "/api/seller/orders", sellerKey, gin.H{
		"orderId":       orderID,
		"paymentStatus": "paid",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("mark paid: %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/api/seller/reports/sales?range=today", sellerKey, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sales report: %d: %s", rec.Code, rec.Body.String())
	}
	report := decode(t, rec)["report"].(map[string]any)
	if report["totalRevenue"] != float64(1999) {
		t.Errorf("totalRevenue = %v, want 1999", report["totalRevenue"])
	}
	if report["paidOrders"] != float64(1) {
		t.Errorf("paidOrders = %v, want 1", report["paidOrders"])
	}
	if daily := report["daily"].([]any); len(daily) != 30 {
		t.Errorf("daily buckets = %d, want 30", len(daily))
	}

	rec = ts.do(t, http.MethodGet, "/api/seller/reports/sales?range=fortnight", sellerKey, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad range keyword: %d, want 400", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/seller/reports/sales", buyerKey, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("buyer on report route: %d, want 401", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec2 := httptest.NewRecorder()
	ts.router.ServeHTTP(rec2, req)
	if got := rec2.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want echo of caller's id", got)
	}
}

func TestMixedSellerCheckoutRejected(t *testing.T) {
	ts := newTestServer(t)

	foreign := &domain.Product{
		SellerID:   ts.otherSeller.ID,
		Name:       "Charger",
		Price:      1499,
		OfferPrice: 999,
		Stock:      5,
	}
	if err := ts.repos.Product.Create(context.Background(), foreign); err != nil {
		t.Fatal(err)
	}

	rec := ts.do(t, http.MethodPost, "/api/orders", buyerKey, gin.H{
		"addressId": ts.address.ID.Hex(),
		"items": []gin.H{
			{"productId": ts.product.ID.Hex(), "quantity": 1},
			{"productId": foreign.ID.Hex(), "quantity": 1},
		},
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("mixed-seller checkout: %d, want 400", rec.Code)
	}

	// no order was created
	orders, err := ts.repos.Order.ListByUserID(context.Background(), ts.buyer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 0 {
		t.Errorf("orders = %d, want 0", len(orders))
	}

	// checkout against someone else's address
	strangerAddr := &domain.Address{UserID: ts.otherSeller.ID, FullName: "X", Area: "Y", City: "Z", State: "S", Pincode: "1"}
	if err := ts.repos.Address.Create(context.Background(), strangerAddr); err != nil {
		t.Fatal(err)
	}
	rec = ts.do(t, http.MethodPost, "/api/orders", buyerKey, gin.H{
		"addressId": strangerAddr.ID.Hex(),
		"items":     []gin.H{{"productId": ts.product.ID.Hex(), "quantity": 1}},
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign address checkout: %d, want 403", rec.Code)
	}
}
