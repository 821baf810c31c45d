package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	JobHandler          *JobHandler
	ResumeHandler       *ResumeHandler
	ChatHandler         *ChatHandler
	SubscriptionHandler *SubscriptionHandler
}

func NewAppHandlers(base *BaseHandler) *AppHandlers {
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base),
		JobHandler:          NewJobHandler(base),
		ResumeHandler:       NewResumeHandler(base),
		ChatHandler:         NewChatHandler(base),
		SubscriptionHandler: NewSubscriptionHandler(base),
	}
}
