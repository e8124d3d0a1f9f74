// dto/class_dto.go
package dto

/* ========== REQUEST DTOs ========== */

// CreateClassRequest: payload saat admin membuat kelas
type CreateClassRequest struct {
	ClassName        string `json:"class_name"         form:"class_name"         validate:"required,min=2,max=120"`
	ClassDate        string `json:"class_date"         form:"class_date"         validate:"required,len=10"`
	ClassTime        string `json:"class_time"         form:"class_time"         validate:"required,max=10"`
	ClassMaxCapacity int    `json:"class_max_capacity" form:"class_max_capacity" validate:"required,min=1"`
	ClassCreditCost  int    `json:"class_credit_cost"  form:"class_credit_cost"  validate:"min=0"`
}
