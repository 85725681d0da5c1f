package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrWrongOldPassword   ErrCode = "WRONG_OLD_PASSWORD"
	ErrWeakPassword       ErrCode = "WEAK_PASSWORD"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"

	// ─── Submission ────────────────────────────────────────────────────
	ErrDuplicateStudentID ErrCode = "DUPLICATE_STUDENT_ID"
	ErrDuplicateIDCard    ErrCode = "DUPLICATE_ID_CARD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the user-facing message for a given error code. The
// audience of the intake form is Chinese-speaking, so messages are localized.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "用户名或密码错误"
	case ErrTokenRequired:
		return "未提供令牌"
	case ErrTokenInvalid:
		return "令牌无效或已过期"
	case ErrWrongOldPassword:
		return "原密码错误"
	case ErrWeakPassword:
		return "新密码长度不能少于6位"
	case ErrValidation:
		return "表单信息不完整，请检查后重新提交"
	case ErrDuplicateStudentID:
		return "该学号已提交过信息，请勿重复提交"
	case ErrDuplicateIDCard:
		return "该身份证号已提交过信息，请勿重复提交"
	case ErrNotFound:
		return "未找到相关记录"
	case ErrInternal:
		return "服务器错误，请稍后重试"
	default:
		return "发生未知错误，请稍后重试"
	}
}
