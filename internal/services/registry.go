package services

import (
	"ustahub_backend/internal/email"
	"ustahub_backend/internal/repositories"
)

// ServiceContainer holds every service the application exposes.
type ServiceContainer struct {
	UserService         UserService
	JobService          JobService
	ProposalService     ProposalService
	InvitationService   InvitationService
	ContractService     ContractService
	RatingService       RatingService
	MatchingService     MatchingService
	NotificationService NotificationService
}

// NewServiceContainer wires repositories into services. Repositories are
// stateless; every call gets its *gorm.DB from the caller.
func NewServiceContainer(emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	proposalRepo := repositories.NewProposalRepository()
	contractRepo := repositories.NewContractRepository()
	invitationRepo := repositories.NewInvitationRepository()
	ratingRepo := repositories.NewRatingRepository()
	locationRepo := repositories.NewLocationRepository()
	notificationRepo := repositories.NewNotificationRepository()

	return &ServiceContainer{
		UserService:         NewUserService(userRepo, locationRepo, emailProvider),
		JobService:          NewJobService(jobRepo, userRepo, locationRepo),
		ProposalService:     NewProposalService(proposalRepo, jobRepo, userRepo),
		InvitationService:   NewInvitationService(invitationRepo, userRepo, jobRepo, notificationRepo, emailProvider),
		ContractService:     NewContractService(contractRepo, jobRepo, proposalRepo, userRepo, notificationRepo, emailProvider),
		RatingService:       NewRatingService(ratingRepo, userRepo, jobRepo, notificationRepo),
		MatchingService:     NewMatchingService(userRepo, jobRepo, locationRepo),
		NotificationService: NewNotificationService(notificationRepo),
	}
}
