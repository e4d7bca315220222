package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrForbidden            = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrAuthenticationFailed = NewDomainError("AUTHENTICATION_FAILED", "Invalid username or password")
	ErrUsernameTaken        = NewDomainError("USERNAME_TAKEN", "Username is already taken")
	ErrProductNotFound      = NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrOutOfStock           = NewDomainError("OUT_OF_STOCK", "Product is out of stock")
	ErrInsufficientStock    = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInvalidQuantity      = NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	ErrInvalidCategoryRef   = NewDomainError("INVALID_CATEGORY_REFERENCE", "Referenced category does not exist")
	ErrCategoryInUse        = NewDomainError("CATEGORY_IN_USE", "Category is still referenced by products")
	ErrDatabaseUnavailable  = NewDomainError("DATABASE_UNAVAILABLE", "Database is temporarily unavailable")
)
