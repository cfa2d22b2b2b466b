package handlers

import (
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/validator"
)

// AppHandlers holds every handler the router mounts.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	JobHandler          *JobHandler
	ProposalHandler     *ProposalHandler
	InvitationHandler   *InvitationHandler
	ContractHandler     *ContractHandler
	RatingHandler       *RatingHandler
	MatchingHandler     *MatchingHandler
	NotificationHandler *NotificationHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.UserService),
		UserHandler:         NewUserHandler(base, sc.UserService),
		JobHandler:          NewJobHandler(base, sc.JobService),
		ProposalHandler:     NewProposalHandler(base, sc.ProposalService),
		InvitationHandler:   NewInvitationHandler(base, sc.InvitationService),
		ContractHandler:     NewContractHandler(base, sc.ContractService),
		RatingHandler:       NewRatingHandler(base, sc.RatingService),
		MatchingHandler:     NewMatchingHandler(base, sc.MatchingService),
		NotificationHandler: NewNotificationHandler(base, sc.NotificationService),
	}
}
