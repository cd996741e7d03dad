package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldViolation is one per-field validation failure, keyed by the JSON
// field name the client sent.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldLabels maps struct field names to the labels shown on the form.
var fieldLabels = map[string]string{
	"Name":        "お名前",
	"Furigana":    "ふりがな",
	"Phone":       "電話番号",
	"Email":       "メールアドレス",
	"InquiryType": "お問い合わせ種別",
	"Message":     "メッセージ",
}

// jsonNames maps struct field names to their JSON counterparts.
var jsonNames = map[string]string{
	"Name":        "name",
	"Furigana":    "furigana",
	"Phone":       "phone",
	"Email":       "email",
	"InquiryType": "inquiryType",
	"Message":     "message",
}

// FormatValidationErrors converts a validator error into per-field
// violations with user-facing Japanese messages.
func FormatValidationErrors(err error) []FieldViolation {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldViolation{{Field: "body", Message: "リクエストの形式が正しくありません"}}
	}

	violations := make([]FieldViolation, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, FieldViolation{
			Field:   jsonFieldName(e.Field()),
			Message: formatSingleError(e),
		})
	}
	return violations
}

func formatSingleError(e validator.FieldError) string {
	label := fieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%sは必須です", label)
	case "min":
		return fmt.Sprintf("%sは%s文字以上で入力してください", label, e.Param())
	case "max":
		return fmt.Sprintf("%sは%s文字以内で入力してください", label, e.Param())
	case "email":
		return fmt.Sprintf("%sの形式が正しくありません", label)
	case "oneof":
		return fmt.Sprintf("%sの値が正しくありません", label)
	case "phone_chars":
		return fmt.Sprintf("%sに使用できない文字が含まれています", label)
	default:
		return fmt.Sprintf("%sの検証に失敗しました (%s)", label, e.Tag())
	}
}

func fieldLabel(fieldName string) string {
	if label, ok := fieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}

func jsonFieldName(fieldName string) string {
	if name, ok := jsonNames[fieldName]; ok {
		return name
	}
	return fieldName
}
