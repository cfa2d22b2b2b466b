package models

type UserRole string
type UserStatus string
type JobStatus string
type ProposalStatus string
type ProposalType string
type ContractStatus string
type InvitationStatus string
type InvitationType string
type LocationOwner string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleUsta     UserRole = "usta"

	UserStatusActive     UserStatus = "active"
	UserStatusInProgress UserStatus = "inprogress"
	UserStatusInactive   UserStatus = "inactive"
	UserStatusBlocked    UserStatus = "blocked"

	JobStatusPending   JobStatus = "pending"
	JobStatusActive    JobStatus = "active"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"

	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"

	ProposalTypeFixed     ProposalType = "fixed"
	ProposalTypeMilestone ProposalType = "milestone"

	ContractStatusPending  ContractStatus = "pending"
	ContractStatusAccepted ContractStatus = "accepted"
	ContractStatusRejected ContractStatus = "rejected"

	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
	InvitationStatusExpired  InvitationStatus = "expired"
	InvitationStatusCanceled InvitationStatus = "canceled"

	InvitationTypeDirect   InvitationType = "direct"
	InvitationTypeJobBased InvitationType = "job-based"
	InvitationTypeFollowUp InvitationType = "follow-up"

	LocationOwnerCustomer LocationOwner = "customer"
	LocationOwnerUsta     LocationOwner = "usta"
	LocationOwnerJob      LocationOwner = "job"
)

// Terminal reports whether an invitation status accepts no further
// transitions.
func (s InvitationStatus) Terminal() bool {
	return s != InvitationStatusPending
}

// Terminal reports whether a contract status accepts no further transitions.
func (s ContractStatus) Terminal() bool {
	return s != ContractStatusPending
}
