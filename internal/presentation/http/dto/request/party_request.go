package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Document *string `json:"document" binding:"omitempty,max=30"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Document *string `json:"document" binding:"omitempty,max=30"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
}

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=255"`
	Document    *string `json:"document" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Address     *string `json:"address"`
	Type        string  `json:"type"`
}

// UpdateSupplierRequest represents a supplier update request
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=255"`
	Document    *string `json:"document" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Address     *string `json:"address"`
	Type        *string `json:"type"`
}

// ListRequest represents search and page parameters
type ListRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
