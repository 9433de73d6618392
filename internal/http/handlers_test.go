package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/cart"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/catalog"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/checkout"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/notifier"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/order"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/repository"
)

type checkoutServiceMock struct {
	confirmation *checkout.Confirmation
	err          error
	state        checkout.State
}

func (m *checkoutServiceMock) Submit(context.Context, string, checkout.Input) (*checkout.Confirmation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.confirmation, nil
}

func (m *checkoutServiceMock) State(string) checkout.State {
	if m.state == "" {
		return checkout.StateIdle
	}
	return m.state
}

type repoMock struct {
	order  *order.Order
	orders []order.Order
	err    error
}

func (m *repoMock) Insert(context.Context, *order.Order) (string, error) {
	return "", errors.New("not implemented")
}

func (m *repoMock) GetByID(_ context.Context, id string) (*order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *repoMock) FindByEmail(context.Context, string) ([]order.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

type notifierMock struct {
	err error
}

func (m *notifierMock) SendConfirmation(context.Context, notifier.Confirmation) error {
	return m.err
}

type testEnv struct {
	router http.Handler
	store  *cart.Store
}

func newTestEnv(t *testing.T, checkoutSvc CheckoutService, repo repository.OrderRepository, n notifier.Notifier) *testEnv {
	t.Helper()

	cat, err := catalog.New()
	require.NoError(t, err)

	store := cart.NewStore()
	t.Cleanup(func() { store.Close() })

	if checkoutSvc == nil {
		checkoutSvc = &checkoutServiceMock{}
	}
	if repo == nil {
		repo = &repoMock{}
	}
	if n == nil {
		n = &notifierMock{}
	}

	router := NewRouter(RouterDeps{
		Products:       NewProductHandler(cat),
		Cart:           NewCartHandler(store, cat),
		Checkout:       NewCheckoutHandler(checkoutSvc),
		Orders:         NewOrdersHandler(repo, time.Second),
		Confirmation:   NewConfirmationHandler(n, time.Second),
		RequestTimeout: 5 * time.Second,
	})

	return &testEnv{router: router, store: store}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "test-session"})

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	rec := env.do(http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ProductsResponse](t, rec)
	assert.Len(t, resp.Products, 6)
}

func TestListProductsByCategory(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	rec := env.do(http.MethodGet, "/api/v1/products?category=speakers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ProductsResponse](t, rec)
	require.Len(t, resp.Products, 2)
	for _, p := range resp.Products {
		assert.Equal(t, "speakers", p.Category)
	}
}

func TestGetProductBySlug(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	rec := env.do(http.MethodGet, "/api/v1/products/zx9-speaker", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[ProductDetailResponse](t, rec)
	assert.Equal(t, "zx9", resp.ID)
	assert.Len(t, resp.Related, 3)

	rec = env.do(http.MethodGet, "/api/v1/products/no-such-thing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddAndMerge(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	rec := env.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "xx99-mk2", Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "xx99-mk2", Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[CartResponseDTO](t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 2999.0, resp.Items[0].Price, "price snapshotted from catalog")
	assert.Equal(t, 5998.0, resp.Total)
}

func TestCartAddUnknownProduct(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	rec := env.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "walkman", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddInvalidQuantity(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	for _, q := range []int{0, -1, 100} {
		rec := env.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "yx1", Quantity: q})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "quantity %d", q)
	}
}

func TestCartUpdateQuantityClamps(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	env.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "yx1", Quantity: 3})

	rec := env.do(http.MethodPut, "/api/v1/cart/items/yx1", UpdateQuantityRequestDTO{Quantity: -5})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[CartResponseDTO](t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)
}

func TestCartRemoveAndClear(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	env.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "yx1", Quantity: 1})
	env.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "zx7", Quantity: 1})

	rec := env.do(http.MethodDelete, "/api/v1/cart/items/yx1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[CartResponseDTO](t, rec)
	assert.Len(t, resp.Items, 1)

	rec = env.do(http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[CartResponseDTO](t, rec)
	assert.Empty(t, resp.Items)

	rec = env.do(http.MethodDelete, "/api/v1/cart/items/yx1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutSuccess(t *testing.T) {
	svc := &checkoutServiceMock{
		confirmation: &checkout.Confirmation{
			OrderID: "689f1d2e3a4b5c6d7e8f9a0b",
			Receipt: checkout.Receipt{
				FirstItem:  order.LineItem{ProductID: "xx99-mk2", ShortName: "XX99 MK II", Price: 2999, Quantity: 1},
				OtherItems: 1,
				GrandTotal: 4247,
			},
			EmailSent:  true,
			GrandTotal: 4247,
		},
	}
	env := newTestEnv(t, svc, nil, nil)

	rec := env.do(http.MethodPost, "/api/v1/checkout", map[string]string{
		"name": "Alexei Ward", "email": "alexei@mail.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[checkout.Confirmation](t, rec)
	assert.Equal(t, "689f1d2e3a4b5c6d7e8f9a0b", resp.OrderID)
	assert.Equal(t, 1, resp.Receipt.OtherItems)
}

func TestCheckoutValidationErrorsAreFieldScoped(t *testing.T) {
	svc := &checkoutServiceMock{err: checkout.ValidationErrors{"eMoneyPin": "must be at least 4 characters"}}
	env := newTestEnv(t, svc, nil, nil)

	rec := env.do(http.MethodPost, "/api/v1/checkout", map[string]string{})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode[ErrorResponse](t, rec)
	assert.Contains(t, resp.Fields, "eMoneyPin")
}

func TestCheckoutErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest},
		{"in flight", checkout.ErrSubmissionInFlight, http.StatusConflict},
		{"storage", checkout.ErrStorage, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, &checkoutServiceMock{err: tc.err}, nil, nil)
			rec := env.do(http.MethodPost, "/api/v1/checkout", map[string]string{})
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestCheckoutState(t *testing.T) {
	env := newTestEnv(t, &checkoutServiceMock{state: checkout.StateSubmitting}, nil, nil)

	rec := env.do(http.MethodGet, "/api/v1/checkout/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[CheckoutStateResponseDTO](t, rec)
	assert.Equal(t, "submitting", resp.State)
}

func TestGetOrder(t *testing.T) {
	placed := &order.Order{CustomerName: "Alexei Ward", GrandTotal: 4247, Status: order.StatusPending}
	env := newTestEnv(t, nil, &repoMock{order: placed}, nil)

	rec := env.do(http.MethodGet, "/api/v1/orders/689f1d2e3a4b5c6d7e8f9a0b", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[order.Order](t, rec)
	assert.Equal(t, "Alexei Ward", resp.CustomerName)
}

func TestGetOrderErrors(t *testing.T) {
	env := newTestEnv(t, nil, &repoMock{err: repository.ErrInvalidOrderID}, nil)
	rec := env.do(http.MethodGet, "/api/v1/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env = newTestEnv(t, nil, &repoMock{err: repository.ErrOrderNotFound}, nil)
	rec = env.do(http.MethodGet, "/api/v1/orders/689f1d2e3a4b5c6d7e8f9a0b", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersByEmail(t *testing.T) {
	env := newTestEnv(t, nil, &repoMock{orders: []order.Order{{CustomerEmail: "a@b.com"}, {CustomerEmail: "a@b.com"}}}, nil)

	rec := env.do(http.MethodGet, "/api/v1/orders?email=a@b.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[OrdersResponseDTO](t, rec)
	assert.Len(t, resp.Orders, 2)

	rec = env.do(http.MethodGet, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendConfirmation(t *testing.T) {
	env := newTestEnv(t, nil, nil, &notifierMock{})

	rec := env.do(http.MethodPost, "/api/v1/send-confirmation", SendConfirmationRequestDTO{
		Email:      "alexei@mail.com",
		Name:       "Alexei Ward",
		OrderID:    "689f1d2e3a4b5c6d7e8f9a0b",
		Items:      []order.LineItem{{ProductID: "yx1", Price: 599, Quantity: 1}},
		GrandTotal: 649,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[SendConfirmationResponseDTO](t, rec)
	assert.True(t, resp.Success)
}

func TestSendConfirmationProviderRejection(t *testing.T) {
	env := newTestEnv(t, nil, nil, &notifierMock{err: errors.New("invalid recipient")})

	rec := env.do(http.MethodPost, "/api/v1/send-confirmation", SendConfirmationRequestDTO{
		Email:      "bad",
		OrderID:    "id",
		Items:      []order.LineItem{},
		GrandTotal: 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendConfirmationMalformedInput(t *testing.T) {
	env := newTestEnv(t, nil, nil, &notifierMock{})

	// Raw invalid JSON body.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/send-confirmation", bytes.NewBufferString("{not json"))
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "test-session"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Missing required fields.
	rec2 := env.do(http.MethodPost, "/api/v1/send-confirmation", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusInternalServerError, rec2.Code)
}

func TestSessionCookieAssigned(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "a new client must receive a session cookie")
}

func TestCartsScopedToSession(t *testing.T) {
	env := newTestEnv(t, nil, nil, nil)

	env.store.AddItem("other-session", cart.Item{ProductID: "zx9", Price: 4500, Quantity: 1})

	rec := env.do(http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[CartResponseDTO](t, rec)
	assert.Empty(t, resp.Items, "another session's cart must not leak")
}
