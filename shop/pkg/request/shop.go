package request

type SubmitInquiry struct {
	Name       string `json:"name"       validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"    validate:"required"`
	ProductSku string `json:"productSku"`
}

type AnswerInquiry struct {
	Answer string `json:"answer" validate:"required"`
}

type RecordVisit struct {
	Path string `json:"path" validate:"required"`
}
