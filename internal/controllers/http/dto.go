package http

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Stock       int64   `json:"stock" binding:"min=0"`
	ImageURL    string  `json:"imageUrl"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int64   `json:"stock"`
	ImageURL    *string  `json:"imageUrl"`
}

type AddToCartRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

type OrderItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	UserID uint64             `json:"userId"`
	Items  []OrderItemRequest `json:"items" binding:"required,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RegisterUserRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
}

type UpdateUserRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Password      *string `json:"password"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contactNumber"`
	City          *string `json:"city"`
	PostalCode    *string `json:"postalCode"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
