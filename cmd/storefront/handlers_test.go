package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/butchery-shop/internal/cache"
	"github.com/MikeMC777/butchery-shop/internal/cart"
	"github.com/MikeMC777/butchery-shop/internal/order"
	"github.com/MikeMC777/butchery-shop/internal/product"
	"github.com/MikeMC777/butchery-shop/internal/shopapi"
)

//
// ===== in-memory stubs =====
//

type stubProducts struct {
	items   map[int]product.Product
	listErr error
}

func newStubProducts(ps ...product.Product) *stubProducts {
	s := &stubProducts{items: map[int]product.Product{}}
	for _, p := range ps {
		s.items[p.ID] = p
	}
	return s
}

func (s *stubProducts) List(ctx context.Context) ([]product.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]product.Product, 0, len(s.items))
	for id := 1; len(out) < len(s.items); id++ {
		if p, ok := s.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProducts) GetByID(ctx context.Context, id int) (*product.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (s *stubProducts) Create(context.Context, product.Form) (*product.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubProducts) Update(context.Context, int, product.Form) (*product.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubProducts) Delete(context.Context, int) error { return fmt.Errorf("not implemented") }

type stubOrders struct {
	last *order.CreateOrderRequest
	err  error
}

func (s *stubOrders) Create(ctx context.Context, req order.CreateOrderRequest) (*order.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.last = &req
	return &order.Order{ID: 77, CustomerName: req.CustomerName, TotalPrice: req.TotalPrice}, nil
}

//
// ===== client with cookie jar =====
//

type visitor struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
}

func (v *visitor) do(method, path, body string) *httptest.ResponseRecorder {
	v.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range v.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	v.r.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		v.cookies = set
	}
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var got cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got), w.Body.String())
	return got
}

var (
	steak = product.Product{ID: 1, Name: "Steak", Price: "10.00", Quantity: 5}
	liver = product.Product{ID: 2, Name: "Liver", Price: "3.00", Quantity: 0}
)

func newTestVisitor(t *testing.T, products *stubProducts, orders *stubOrders) *visitor {
	t.Helper()
	r := newRouter(deps{
		Products: products,
		Orders:   orders,
		Carts:    cart.NewStore(cache.NewMemory(), time.Hour),
		Log:      zerolog.Nop(),
		CartTTL:  time.Hour,
	})
	return &visitor{t: t, r: r}
}

//
// ===== tests =====
//

func TestListProducts(t *testing.T) {
	v := newTestVisitor(t, newStubProducts(steak, liver), &stubOrders{})

	w := v.do(http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got product.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []product.Product{steak, liver}, got.Items)
}

func TestListProducts_APIDownLeavesListEmpty(t *testing.T) {
	products := newStubProducts(steak)
	products.listErr = fmt.Errorf("dial tcp: connection refused")
	v := newTestVisitor(t, products, &stubOrders{})

	w := v.do(http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestCart_SteakScenario(t *testing.T) {
	v := newTestVisitor(t, newStubProducts(steak), &stubOrders{})

	got := decodeCart(t, v.do(http.MethodGet, "/cart", ""))
	assert.Equal(t, "$0.00", got.Total)
	assert.False(t, got.CanCheckout)

	w := v.do(http.MethodPost, "/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decodeCart(t, w)
	assert.Equal(t, "$10.00", got.Total)
	assert.True(t, got.CanCheckout)

	got = decodeCart(t, v.do(http.MethodPost, "/cart/items", `{"product_id":1}`))
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Lines[0].Quantity)
	assert.Equal(t, "$20.00", got.Lines[0].LineTotal)
	assert.Equal(t, "$20.00", got.Total)

	// the cart survives between requests through the cookie
	got = decodeCart(t, v.do(http.MethodGet, "/cart", ""))
	assert.Equal(t, "$20.00", got.Total)

	got = decodeCart(t, v.do(http.MethodDelete, "/cart/items/1", ""))
	assert.Empty(t, got.Lines)
	assert.Equal(t, "$0.00", got.Total)
	assert.False(t, got.CanCheckout)
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	v := newTestVisitor(t, newStubProducts(steak), &stubOrders{})
	v.do(http.MethodPost, "/cart/items", `{"product_id":1}`)

	w := v.do(http.MethodDelete, "/cart/items/42", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeCart(t, w).Lines, 1)

	w = v.do(http.MethodDelete, "/cart/items/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCart_OutOfStockAndUnknown(t *testing.T) {
	v := newTestVisitor(t, newStubProducts(steak, liver), &stubOrders{})

	w := v.do(http.MethodPost, "/cart/items", `{"product_id":2}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = v.do(http.MethodPost, "/cart/items", `{"product_id":99}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = v.do(http.MethodPost, "/cart/items", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

const customerJSON = `{"name":"Jane","email":"jane@example.com","phone":"","address":"1 Market St","payment":"cash"}`

func TestCheckout_EmptyCartRejected(t *testing.T) {
	orders := &stubOrders{}
	v := newTestVisitor(t, newStubProducts(steak), orders)

	w := v.do(http.MethodPost, "/checkout", customerJSON)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"cart is empty"}`, w.Body.String())
	assert.Nil(t, orders.last)

	// emptied again after adding
	v.do(http.MethodPost, "/cart/items", `{"product_id":1}`)
	v.do(http.MethodDelete, "/cart/items/1", "")
	w = v.do(http.MethodPost, "/checkout", customerJSON)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckout_HappyPath(t *testing.T) {
	orders := &stubOrders{}
	v := newTestVisitor(t, newStubProducts(steak), orders)
	v.do(http.MethodPost, "/cart/items", `{"product_id":1}`)
	v.do(http.MethodPost, "/cart/items", `{"product_id":1}`)

	w := v.do(http.MethodPost, "/checkout", customerJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got checkoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 77, got.OrderID)
	assert.True(t, got.ResetForm)
	assert.Empty(t, got.Cart.Lines)
	require.NotNil(t, got.Notice)
	assert.Equal(t, "Order placed successfully!", got.Notice.Text)
	assert.Equal(t, int64(4000), got.Notice.DismissAfterMS)

	require.NotNil(t, orders.last)
	assert.Equal(t, []int{1}, orders.last.Products)
	assert.Equal(t, []order.Item{{ProductID: 1, Quantity: 2}}, orders.last.Items)
	assert.Equal(t, json.Number("20.00"), orders.last.TotalPrice)
	assert.Equal(t, "cash", orders.last.PaymentDetails)

	// cart cleared
	assert.Equal(t, "$0.00", decodeCart(t, v.do(http.MethodGet, "/cart", "")).Total)
}

func TestCheckout_MissingFields(t *testing.T) {
	v := newTestVisitor(t, newStubProducts(steak), &stubOrders{})
	v.do(http.MethodPost, "/cart/items", `{"product_id":1}`)

	w := v.do(http.MethodPost, "/checkout", `{"name":"Jane","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email must be a valid email address")
	assert.Contains(t, w.Body.String(), "address is required")
}

func TestCheckout_APIFailureKeepsCart(t *testing.T) {
	orders := &stubOrders{err: &shopapi.APIError{Status: http.StatusBadRequest, Body: []byte(`{"customer_email":["Enter a valid email address."]}`)}}
	v := newTestVisitor(t, newStubProducts(steak), orders)
	v.do(http.MethodPost, "/cart/items", `{"product_id":1}`)

	w := v.do(http.MethodPost, "/checkout", customerJSON)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Enter a valid email address.")

	assert.Equal(t, "$10.00", decodeCart(t, v.do(http.MethodGet, "/cart", "")).Total)
}

func TestCheckout_APIUnreachableIsBadGateway(t *testing.T) {
	orders := &stubOrders{err: fmt.Errorf("dial tcp: connection refused")}
	v := newTestVisitor(t, newStubProducts(steak), orders)
	v.do(http.MethodPost, "/cart/items", `{"product_id":1}`)

	w := v.do(http.MethodPost, "/checkout", customerJSON)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), orderFailedText)

	assert.Equal(t, "$10.00", decodeCart(t, v.do(http.MethodGet, "/cart", "")).Total)
}

func TestVisitorsHaveSeparateCarts(t *testing.T) {
	products := newStubProducts(steak)
	a := newTestVisitor(t, products, &stubOrders{})
	b := &visitor{t: t, r: a.r}

	a.do(http.MethodPost, "/cart/items", `{"product_id":1}`)
	assert.Equal(t, "$10.00", decodeCart(t, a.do(http.MethodGet, "/cart", "")).Total)
	assert.Equal(t, "$0.00", decodeCart(t, b.do(http.MethodGet, "/cart", "")).Total)
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}
