package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок PathPilot.
Repositories возвращают свои sentinel-ошибки; сервисы преобразуют их
в AppError через эти фабрики.
*/

// UpgradeURL - куда отправляем пользователя при исчерпании лимита
const UpgradeURL = "/pricing"

// UpgradeMessage - единая подсказка апгрейда для PLAN_LIMIT / FEATURE_LOCKED
const UpgradeMessage = "Upgrade your plan to continue. Visit the Pricing page."

// PlanLimitDetails - структура details для тарифных отказов
type PlanLimitDetails struct {
	Feature    string `json:"feature"`
	UpgradeURL string `json:"upgrade_url"`
}

// =========================================================================
// Фабричные функции
// =========================================================================

// ErrNotFound - фабрика для "не найдено" (404); оборачивает ошибку репозитория
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrPlanLimit - метрируемый лимит тарифа исчерпан (403).
// Отказ детерминированный: никакая запись для действия еще не сделана.
func ErrPlanLimit(feature, message string) *AppError {
	return New(CodePlanLimit, "plan", message+" "+UpgradeMessage, http.StatusForbidden).
		WithDetails(PlanLimitDetails{Feature: feature, UpgradeURL: UpgradeURL})
}

// ErrFeatureLocked - фича закрыта тарифом, без числового лимита (403)
func ErrFeatureLocked(feature, message string) *AppError {
	return New(CodeFeatureLocked, "plan", message+" "+UpgradeMessage, http.StatusForbidden).
		WithDetails(PlanLimitDetails{Feature: feature, UpgradeURL: UpgradeURL})
}

// ErrExternalService - ошибка внешнего провайдера (LLM и т.п.), 503
func ErrExternalService(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusServiceUnavailable)
}

// =========================================================================
// Предопределенные переменные
// =========================================================================

// ErrInvalidCredentials - неверный email или пароль
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - невалидный или истекший refresh/access token
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrEmailTaken - email уже зарегистрирован
var ErrEmailTaken = New(
	CodeAlreadyExists,
	"auth",
	"Email is already registered",
	http.StatusConflict,
)

// ErrUnknownPlan - передан несуществующий тариф
var ErrUnknownPlan = New(
	CodeValidationFailed,
	"plan",
	"Unknown plan tier",
	http.StatusBadRequest,
)

// ErrJobNotFound - джоба нет ни в БД, ни в payload запроса
var ErrJobNotFound = New(
	CodeNotFound,
	"jobs",
	"Job not found",
	http.StatusNotFound,
)

// ErrInvalidJobAction - action вне множества viewed/shortlisted/redirected
var ErrInvalidJobAction = New(
	CodeValidationFailed,
	"jobs",
	"Invalid job action",
	http.StatusBadRequest,
)

// ErrResumeNotFound - у пользователя нет ни одного резюме
var ErrResumeNotFound = New(
	CodeNotFound,
	"resumes",
	"No resume on file",
	http.StatusNotFound,
)

// ErrConversationNotFound - диалог карьерного чата не найден
var ErrConversationNotFound = New(
	CodeNotFound,
	"chat",
	"Conversation not found",
	http.StatusNotFound,
)
