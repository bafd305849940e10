package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MikeMC777/butchery-shop/internal/cart"
	"github.com/MikeMC777/butchery-shop/internal/httpx"
	"github.com/MikeMC777/butchery-shop/internal/order"
	"github.com/MikeMC777/butchery-shop/internal/product"
	"github.com/MikeMC777/butchery-shop/internal/shopapi"
)

const (
	cartCookie = "cart_id"

	orderPlacedText  = "Order placed successfully!"
	orderFailedText  = "Error placing order. Please try again."
	orderNoticeDelay = 4 * time.Second
)

type deps struct {
	Products     product.Repository
	Orders       order.Repository
	Carts        *cart.Store
	Log          zerolog.Logger
	CartTTL      time.Duration
	SecureCookie bool
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(d.Log), httpx.Recovery(d.Log))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/products", listProductsHandler(d))
	r.GET("/cart", getCartHandler(d))
	r.POST("/cart/items", addItemHandler(d))
	r.DELETE("/cart/items/:id", removeItemHandler(d))
	r.POST("/checkout", checkoutHandler(d))
	return r
}

//
// ===== responses =====
//

type cartLine struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type cartResponse struct {
	Lines       []cartLine `json:"lines"`
	Total       string     `json:"total"`
	CanCheckout bool       `json:"can_checkout"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	lines := make([]cartLine, 0, c.Len())
	for _, l := range c.Lines {
		lines = append(lines, cartLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Image:     l.Product.Image,
			UnitPrice: l.Product.Price.String(),
			Quantity:  l.Quantity,
			LineTotal: cart.FormatMoney(cart.LineTotal(l)),
		})
	}
	return cartResponse{
		Lines:       lines,
		Total:       cart.FormatMoney(c.Total()),
		CanCheckout: !c.IsEmpty(),
	}
}

type addItemRequest struct {
	ProductID int `json:"product_id" binding:"required" example:"1"`
}

type checkoutResponse struct {
	OrderID   int           `json:"order_id"`
	Cart      cartResponse  `json:"cart"`
	Notice    *httpx.Notice `json:"notice"`
	ResetForm bool          `json:"reset_form"`
}

//
// ===== cookie =====
//

// visitorID returns the cart id from the cookie. With create set, a new id is
// issued when the cookie is missing or not a uuid.
func visitorID(c *gin.Context, d deps, create bool) (string, bool) {
	if v, err := c.Cookie(cartCookie); err == nil {
		if _, err := uuid.Parse(v); err == nil {
			return v, true
		}
	}
	if !create {
		return "", false
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cartCookie, id, int(d.CartTTL.Seconds()), "/", "", d.SecureCookie, true)
	return id, true
}

//
// ===== handlers =====
//

// listProductsHandler godoc
// @Summary List products
// @Tags    products
// @Produce json
// @Success 200 {object} product.ListResponse
// @Router  /products [get]
func listProductsHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := d.Products.List(c.Request.Context())
		if err != nil {
			// the page shows an empty catalog rather than an error
			d.Log.Error().Err(err).Str("rid", httpx.RID(c)).Msg("list products")
			items = []product.Product{}
		}
		c.JSON(http.StatusOK, product.ListResponse{Items: items})
	}
}

// getCartHandler godoc
// @Summary Show the visitor's cart
// @Tags    cart
// @Produce json
// @Success 200 {object} cartResponse
// @Router  /cart [get]
func getCartHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := visitorID(c, d, false)
		if !ok {
			c.JSON(http.StatusOK, toCartResponse(&cart.Cart{}))
			return
		}
		ct, err := d.Carts.Load(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not load cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(ct))
	}
}

// addItemHandler godoc
// @Summary Add one unit of a product
// @Tags    cart
// @Accept  json
// @Produce json
// @Param   body body addItemRequest true "product"
// @Success 200 {object} cartResponse
// @Failure 404 {object} httpx.HTTPError
// @Failure 409 {object} httpx.HTTPError
// @Router  /cart/items [post]
func addItemHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in addItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Error(c, http.StatusBadRequest, httpx.BindingMessage(err))
			return
		}
		ctx := c.Request.Context()

		p, err := d.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				httpx.Error(c, http.StatusNotFound, "product not found")
				return
			}
			_ = c.Error(err)
			httpx.Error(c, http.StatusBadGateway, shopapi.UserMessage(err, "could not load product"))
			return
		}

		id, _ := visitorID(c, d, true)
		ct, err := d.Carts.Load(ctx, id)
		if err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not load cart")
			return
		}
		if err := ct.Add(*p); err != nil {
			httpx.Error(c, http.StatusConflict, "product out of stock")
			return
		}
		if err := d.Carts.Save(ctx, id, ct); err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not save cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(ct))
	}
}

// removeItemHandler godoc
// @Summary Remove a product line
// @Tags    cart
// @Produce json
// @Param   id path int true "product id"
// @Success 200 {object} cartResponse
// @Router  /cart/items/{id} [delete]
func removeItemHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid product id")
			return
		}
		id, ok := visitorID(c, d, false)
		if !ok {
			c.JSON(http.StatusOK, toCartResponse(&cart.Cart{}))
			return
		}
		ctx := c.Request.Context()
		ct, err := d.Carts.Load(ctx, id)
		if err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not load cart")
			return
		}
		ct.Remove(pid)
		if err := d.Carts.Save(ctx, id, ct); err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not save cart")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(ct))
	}
}

// checkoutHandler godoc
// @Summary Place an order for the cart
// @Tags    checkout
// @Accept  json
// @Produce json
// @Param   body body order.Customer true "customer"
// @Success 201 {object} checkoutResponse
// @Failure 400 {object} httpx.HTTPError
// @Failure 409 {object} httpx.HTTPError
// @Failure 502 {object} httpx.HTTPError
// @Router  /checkout [post]
func checkoutHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := visitorID(c, d, false)
		if !ok {
			httpx.Error(c, http.StatusConflict, order.ErrEmptyCart.Error())
			return
		}
		ctx := c.Request.Context()
		ct, err := d.Carts.Load(ctx, id)
		if err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not load cart")
			return
		}
		if ct.IsEmpty() {
			httpx.Error(c, http.StatusConflict, order.ErrEmptyCart.Error())
			return
		}

		var cu order.Customer
		if err := c.ShouldBindJSON(&cu); err != nil {
			httpx.Error(c, http.StatusBadRequest, httpx.BindingMessage(err))
			return
		}

		o, err := d.Orders.Create(ctx, order.BuildRequest(cu, ct))
		if err != nil {
			// the cart stays so the visitor can try again
			_ = c.Error(err)
			httpx.ErrorNotice(c, shopapi.StatusOf(err), shopapi.UserMessage(err, orderFailedText), orderNoticeDelay)
			return
		}

		if err := d.Carts.Delete(ctx, id); err != nil {
			d.Log.Error().Err(err).Str("rid", httpx.RID(c)).Msg("clear cart after checkout")
		}
		d.Log.Info().Int("order_id", o.ID).Str("rid", httpx.RID(c)).Msg("order placed")

		c.JSON(http.StatusCreated, checkoutResponse{
			OrderID:   o.ID,
			Cart:      toCartResponse(&cart.Cart{}),
			Notice:    httpx.Success(orderPlacedText, orderNoticeDelay),
			ResetForm: true,
		})
	}
}
