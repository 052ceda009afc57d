package http

type registerRequest struct {
	Username string `json:"username" validate:"required,notblank" message:"Username is required"`
	Name     string `json:"name" validate:"required,notblank" message:"Name is required"`
	Email    string `json:"email" validate:"required,email" message:"Invalid email;required=Email is required;type=Email is required"`
	Password string `json:"password" validate:"required" message:"Password is required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email" message:"Invalid email;required=Email is required;type=Email is required"`
	Password string `json:"password" validate:"required" message:"Password is required"`
}

type createTransactionRequest struct {
	Name        string  `json:"name" validate:"required" message:"Name is required"`
	Description string  `json:"description" default:""`
	CategoryID  int64   `json:"categoryId" validate:"required,min=1" message:"Category Id is required"`
	Amount      float64 `json:"amount" default:"0"`
	TransDate   *int64  `json:"transDate" validate:"required,min=0" message:"required=Trans Date is required;min=Trans Date is required;int=Cannot be a decimal"`
}

// updateTransactionRequest is the partial form of createTransactionRequest; absent keys stay
// unchanged and an explicit null is rejected like any other mismatched type.
type updateTransactionRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=1" message:"Name is required"`
	Description *string  `json:"description"`
	CategoryID  *int64   `json:"categoryId" validate:"omitnil,min=1" message:"Category Id is required"`
	Amount      *float64 `json:"amount"`
	TransDate   *int64   `json:"transDate" validate:"omitnil,min=0" message:"required=Trans Date is required;min=Trans Date is required;int=Cannot be a decimal"`
}
