package services

import (
	"gorm.io/gorm"

	"pathpilot_backend/internal/jobsource"
	"pathpilot_backend/internal/llm"
	"pathpilot_backend/internal/repositories"
)

// ServiceContainer - центральный реестр сервисов приложения.
// Собирается один раз при старте и раздаётся хендлерам.
type ServiceContainer struct {
	Auth         AuthService
	Quota        QuotaService
	Search       SearchService
	Jobs         JobService
	Resumes      ResumeService
	Chat         ChatService
	Subscription SubscriptionService
}

// NewServiceContainer строит репозитории поверх подключения и связывает
// сервисы в правильном порядке зависимостей.
func NewServiceContainer(db *gorm.DB, cascade *jobsource.Cascade, completer llm.Completer) *ServiceContainer {
	users := repositories.NewUserRepository(db)
	jobs := repositories.NewJobRepository(db)
	sessions := repositories.NewSearchSessionRepository(db)
	apps := repositories.NewApplicationRepository(db)
	resumes := repositories.NewResumeRepository(db)
	convs := repositories.NewConversationRepository(db)
	usage := repositories.NewUsageRepository(db)

	quota := NewQuotaService(users, usage, apps)

	return &ServiceContainer{
		Auth:         NewAuthService(users),
		Quota:        quota,
		Search:       NewSearchService(cascade, jobs, sessions, resumes),
		Jobs:         NewJobService(jobs, apps, quota, completer),
		Resumes:      NewResumeService(resumes, quota, completer),
		Chat:         NewChatService(convs, resumes, quota, completer),
		Subscription: NewSubscriptionService(users, apps, resumes, quota),
	}
}
