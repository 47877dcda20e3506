package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/domain"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	cartCookie    = "cart_session"
	cartCookieAge = 30 * 24 * 60 * 60
	orderCacheTTL = 10 * time.Second
)

type Handler struct {
	catalog *services.CatalogService
	cart    *services.CartService
	orders  *services.OrderService
	users   *services.UserService
	rdb     *redis.Client
	log     *logrus.Logger
}

func NewHandler(
	catalog *services.CatalogService,
	cart *services.CartService,
	orders *services.OrderService,
	users *services.UserService,
	rdb *redis.Client,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		catalog: catalog,
		cart:    cart,
		orders:  orders,
		users:   users,
		rdb:     rdb,
		log:     logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/products", h.ListProducts)
	r.POST("/products", h.CreateProduct)
	r.GET("/products/:id", h.GetProduct)
	r.PATCH("/products/:id", h.UpdateProduct)
	r.DELETE("/products/:id", h.DeleteProduct)

	r.GET("/cart", h.ListCart)
	r.POST("/cart", h.AddToCart)
	r.PATCH("/cart/:id", h.UpdateCartItem)
	r.DELETE("/cart/:id", h.RemoveCartItem)
	r.DELETE("/cart", h.ClearCart)

	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	r.GET("/orders/user/:userId", h.ListOrdersByUser)
	r.DELETE("/orders/:id", h.DeleteOrder)

	r.POST("/users", h.RegisterUser)
	r.POST("/users/login", h.Login)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.PATCH("/users/:id", h.UpdateUser)
	r.DELETE("/users/:id", h.DeleteUser)
}

// --- products ---

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List()
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}
	if err := h.catalog.Create(c.Request.Context(), product); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalog.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.catalog.Update(c.Request.Context(), id, domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- cart ---

// cartKey reads the session cookie, minting one on first contact so
// every visitor gets their own cart.
func (h *Handler) cartKey(c *gin.Context) string {
	if key, err := c.Cookie(cartCookie); err == nil && key != "" {
		return key
	}
	key := uuid.NewString()
	c.SetCookie(cartCookie, key, cartCookieAge, "/", "", false, true)
	return key
}

func (h *Handler) ListCart(c *gin.Context) {
	items, err := h.cart.List(h.cartKey(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.cart.AddOrMerge(c.Request.Context(), h.cartKey(c), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.cart.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cart.Remove(id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.cart.Clear(h.cartKey(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- orders ---

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), h.cartKey(c), req.UserID, lines)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidateOrderCache(req.UserID)
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	if cached, ok := h.cachedOrders("orders:all"); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	orders, err := h.orders.ListOrders()
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.cacheOrders("orders:all", orders)
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.SetStatus(id, domain.OrderStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.invalidateOrderCache(order.UserID)
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListOrdersByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	cacheKey := "orders:user:" + strconv.FormatUint(userID, 10)
	if cached, ok := h.cachedOrders(cacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}
	orders, err := h.orders.ListOrdersForUser(userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.cacheOrders(cacheKey, orders)
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.orders.DeleteOrder(id); err != nil {
		h.writeError(c, err)
		return
	}
	h.invalidateOrderCache(order.UserID)
	c.Status(http.StatusNoContent)
}

func (h *Handler) cachedOrders(key string) ([]domain.Order, bool) {
	if h.rdb == nil {
		return nil, false
	}
	b, err := h.rdb.Get(context.Background(), key).Result()
	if err != nil {
		return nil, false
	}
	var orders []domain.Order
	if err := json.Unmarshal([]byte(b), &orders); err != nil {
		return nil, false
	}
	return orders, true
}

func (h *Handler) cacheOrders(key string, orders []domain.Order) {
	if h.rdb == nil {
		return
	}
	if data, err := json.Marshal(orders); err == nil {
		h.rdb.Set(context.Background(), key, data, orderCacheTTL)
	}
}

func (h *Handler) invalidateOrderCache(userID uint64) {
	if h.rdb == nil {
		return
	}
	keys := []string{"orders:all"}
	if userID != 0 {
		keys = append(keys, "orders:user:"+strconv.FormatUint(userID, 10))
	}
	h.rdb.Del(context.Background(), keys...)
}

// --- users ---

type userResponse struct {
	domain.User
	AccountComplete bool `json:"accountComplete"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{User: *u, AccountComplete: u.AccountComplete()}
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Register(&domain.User{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		City:          req.City,
		PostalCode:    req.PostalCode,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.users.Update(id, domain.UserPatch{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		City:          req.City,
		PostalCode:    req.PostalCode,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- helpers ---

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var invalidOrder *domain.InvalidOrderError
	var stockErr *domain.InsufficientStockError
	var transErr *domain.InvalidTransitionError

	switch {
	case errors.As(err, &invalidOrder),
		errors.As(err, &stockErr),
		errors.As(err, &transErr),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, domain.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		h.log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
