package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MikeMC777/butchery-shop/internal/httpx"
	"github.com/MikeMC777/butchery-shop/internal/product"
	"github.com/MikeMC777/butchery-shop/internal/session"
	"github.com/MikeMC777/butchery-shop/internal/shopapi"
)

const (
	sessionCookie = "admin_session"
	sessionKey    = "admin"

	createdText  = "Product added successfully!"
	createFailed = "Error adding product. Please try again."
	updatedText  = "Product updated successfully!"
	updateFailed = "Error updating product. Please try again."
	deletedText  = "Product deleted."
	deleteFailed = "Error deleting product. Please try again."

	successDelay = 3 * time.Second
	deletedDelay = 2 * time.Second
	errorDelay   = 4 * time.Second
)

type deps struct {
	Products       product.Repository
	Sessions       *session.Manager
	Log            zerolog.Logger
	SecureCookie   bool
	MaxUploadBytes int64
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(d.Log), httpx.Recovery(d.Log))
	r.MaxMultipartMemory = d.MaxUploadBytes

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	a := r.Group("/admin")
	a.POST("/login", loginHandler(d))
	a.POST("/logout", logoutHandler(d))
	a.GET("/session", sessionHandler(d))

	p := a.Group("/products", requireAdmin(d))
	p.GET("", listProductsHandler(d))
	p.GET("/:id", editFormHandler(d))
	p.POST("", httpx.LimitBody(d.MaxUploadBytes), createProductHandler(d))
	p.PUT("/:id", httpx.LimitBody(d.MaxUploadBytes), updateProductHandler(d))
	p.DELETE("/:id", deleteProductHandler(d))
	return r
}

//
// ===== requests / responses =====
//

type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required" example:"admin"`
	Password string `json:"password" form:"password" binding:"required"`
}

type sessionResponse struct {
	LoggedIn bool              `json:"logged_in"`
	Username string            `json:"username,omitempty"`
	Items    []product.Product `json:"items,omitempty"`
}

type editResponse struct {
	Product product.Product `json:"product"`
	Form    product.Form    `json:"form"`
}

type productResponse struct {
	Product     *product.Product  `json:"product,omitempty"`
	Items       []product.Product `json:"items"`
	Notice      *httpx.Notice     `json:"notice"`
	ResetForm   bool              `json:"reset_form,omitempty"`
	ScrollToTop bool              `json:"scroll_to_top,omitempty"`
}

//
// ===== session plumbing =====
//

func setSessionCookie(c *gin.Context, d deps, s *session.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, s.ID, int(d.Sessions.TTL().Seconds()), "/", "", d.SecureCookie, true)
}

func clearSessionCookie(c *gin.Context, d deps) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", d.SecureCookie, true)
}

// currentSession resolves the cookie against the session store.
func currentSession(c *gin.Context, d deps) (*session.Session, error) {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		return nil, session.ErrNoSession
	}
	return d.Sessions.Restore(c.Request.Context(), id)
}

func requireAdmin(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := currentSession(c, d)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				httpx.Error(c, http.StatusUnauthorized, "login required")
				return
			}
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not load session")
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// refreshList fetches the catalog after a change or a login. A failed fetch
// yields an empty list so the page still renders.
func refreshList(c *gin.Context, d deps) []product.Product {
	items, err := d.Products.List(c.Request.Context())
	if err != nil {
		d.Log.Error().Err(err).Str("rid", httpx.RID(c)).Msg("list products")
		return []product.Product{}
	}
	return items
}

//
// ===== session handlers =====
//

// loginHandler godoc
// @Summary Log in and start an admin session
// @Tags    session
// @Accept  json
// @Produce json
// @Param   body body loginRequest true "credentials"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} httpx.HTTPError
// @Router  /admin/login [post]
func loginHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBind(&in); err != nil {
			httpx.Error(c, http.StatusBadRequest, httpx.BindingMessage(err))
			return
		}
		s, err := d.Sessions.Login(c.Request.Context(), in.Username, in.Password)
		if err != nil {
			if errors.Is(err, session.ErrInvalidCredentials) {
				d.Log.Warn().Str("rid", httpx.RID(c)).Str("username", in.Username).Msg("login rejected")
				httpx.Error(c, http.StatusUnauthorized, session.ErrInvalidCredentials.Error())
				return
			}
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not start session")
			return
		}
		setSessionCookie(c, d, s)
		c.JSON(http.StatusOK, sessionResponse{LoggedIn: true, Username: s.Username, Items: refreshList(c, d)})
	}
}

// logoutHandler godoc
// @Summary End the admin session
// @Tags    session
// @Produce json
// @Success 200 {object} sessionResponse
// @Router  /admin/logout [post]
func logoutHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(sessionCookie); err == nil {
			if err := d.Sessions.Logout(c.Request.Context(), id); err != nil {
				_ = c.Error(err)
			}
		}
		clearSessionCookie(c, d)
		c.JSON(http.StatusOK, sessionResponse{LoggedIn: false})
	}
}

// sessionHandler godoc
// @Summary Restore the admin session from its cookie
// @Tags    session
// @Produce json
// @Success 200 {object} sessionResponse
// @Router  /admin/session [get]
func sessionHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := currentSession(c, d)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				_ = c.Error(err)
			}
			if _, cerr := c.Cookie(sessionCookie); cerr == nil {
				clearSessionCookie(c, d)
			}
			c.JSON(http.StatusOK, sessionResponse{LoggedIn: false})
			return
		}
		c.JSON(http.StatusOK, sessionResponse{LoggedIn: true, Username: s.Username, Items: refreshList(c, d)})
	}
}

//
// ===== product handlers =====
//

// listProductsHandler godoc
// @Summary List products
// @Tags    products
// @Produce json
// @Success 200 {object} product.ListResponse
// @Failure 401 {object} httpx.HTTPError
// @Router  /admin/products [get]
func listProductsHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, product.ListResponse{Items: refreshList(c, d)})
	}
}

// editFormHandler godoc
// @Summary Fetch a product with its edit form pre-filled
// @Tags    products
// @Produce json
// @Param   id path int true "product id"
// @Success 200 {object} editResponse
// @Failure 404 {object} httpx.HTTPError
// @Failure 502 {object} httpx.HTTPError
// @Router  /admin/products/{id} [get]
func editFormHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		p, err := d.Products.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				httpx.Error(c, http.StatusNotFound, "product not found")
				return
			}
			_ = c.Error(err)
			httpx.Error(c, shopapi.StatusOf(err), shopapi.UserMessage(err, "could not load product"))
			return
		}
		c.JSON(http.StatusOK, editResponse{Product: *p, Form: product.FormFromProduct(*p)})
	}
}

func bindForm(c *gin.Context) (product.Form, error) {
	var in product.FormRequest
	if err := c.ShouldBind(&in); err != nil {
		return product.Form{}, err
	}
	f := product.Form{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    *in.Quantity,
	}
	return f, nil
}

func readImage(c *gin.Context) (*product.Image, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &product.Image{Filename: fh.Filename, Data: data}, nil
}

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httpx.Error(c, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

// createProductHandler godoc
// @Summary Create a product
// @Tags    products
// @Accept  multipart/form-data
// @Produce json
// @Param   name        formData string true  "name"
// @Param   description formData string false "description"
// @Param   price       formData string true  "price"
// @Param   quantity    formData int    true  "quantity"
// @Param   image       formData file   false "image"
// @Success 201 {object} productResponse
// @Failure 400 {object} httpx.HTTPError
// @Failure 502 {object} httpx.HTTPError
// @Router  /admin/products [post]
func createProductHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := bindForm(c)
		if err != nil {
			httpx.ErrorNotice(c, http.StatusBadRequest, httpx.BindingMessage(err), errorDelay)
			return
		}
		img, err := readImage(c)
		if err != nil {
			httpx.ErrorNotice(c, http.StatusBadRequest, "could not read image", errorDelay)
			return
		}
		f.Image = img
		if err := f.Validate(); err != nil {
			httpx.ErrorNotice(c, http.StatusBadRequest, err.Error(), errorDelay)
			return
		}

		p, err := d.Products.Create(c.Request.Context(), f)
		if err != nil {
			_ = c.Error(err)
			httpx.ErrorNotice(c, shopapi.StatusOf(err), shopapi.UserMessage(err, createFailed), errorDelay)
			return
		}
		c.JSON(http.StatusCreated, productResponse{
			Product:     p,
			Items:       refreshList(c, d),
			Notice:      httpx.Success(createdText, successDelay),
			ResetForm:   true,
			ScrollToTop: true,
		})
	}
}

// updateProductHandler godoc
// @Summary Replace a product's fields
// @Tags    products
// @Accept  multipart/form-data
// @Produce json
// @Param   id          path     int    true  "product id"
// @Param   name        formData string true  "name"
// @Param   description formData string false "description"
// @Param   price       formData string true  "price"
// @Param   quantity    formData int    true  "quantity"
// @Success 200 {object} productResponse
// @Failure 404 {object} httpx.HTTPError
// @Router  /admin/products/{id} [put]
func updateProductHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		f, err := bindForm(c)
		if err != nil {
			httpx.ErrorNotice(c, http.StatusBadRequest, httpx.BindingMessage(err), errorDelay)
			return
		}
		if err := f.Validate(); err != nil {
			httpx.ErrorNotice(c, http.StatusBadRequest, err.Error(), errorDelay)
			return
		}

		p, err := d.Products.Update(c.Request.Context(), id, f)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				httpx.ErrorNotice(c, http.StatusNotFound, "product not found", errorDelay)
				return
			}
			_ = c.Error(err)
			httpx.ErrorNotice(c, shopapi.StatusOf(err), shopapi.UserMessage(err, updateFailed), errorDelay)
			return
		}
		c.JSON(http.StatusOK, productResponse{
			Product: p,
			Items:   refreshList(c, d),
			Notice:  httpx.Success(updatedText, successDelay),
		})
	}
}

// deleteProductHandler godoc
// @Summary Delete a product
// @Tags    products
// @Produce json
// @Param   id      path  int  true "product id"
// @Param   confirm query bool true "must be true"
// @Success 200 {object} productResponse
// @Failure 404 {object} httpx.HTTPError
// @Failure 428 {object} httpx.HTTPError
// @Router  /admin/products/{id} [delete]
func deleteProductHandler(d deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		if confirmed, _ := strconv.ParseBool(c.Query("confirm")); !confirmed {
			httpx.Error(c, http.StatusPreconditionRequired, "confirmation required")
			return
		}

		if err := d.Products.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, product.ErrNotFound) {
				httpx.ErrorNotice(c, http.StatusNotFound, "product not found", errorDelay)
				return
			}
			_ = c.Error(err)
			httpx.ErrorNotice(c, shopapi.StatusOf(err), shopapi.UserMessage(err, deleteFailed), errorDelay)
			return
		}
		c.JSON(http.StatusOK, productResponse{
			Items:  refreshList(c, d),
			Notice: httpx.Success(deletedText, deletedDelay),
		})
	}
}
