package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"ustahub_backend/internal/models"
)

// registerCustomRules wires the status enums into validation tags so DTOs
// can say `validate:"is-invitation-status"` instead of repeating oneof lists.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-invitation-status", validateInvitationStatus)
	mustRegister("is-contract-status", validateContractStatus)
	mustRegister("is-job-status", validateJobStatus)
}

// Empty values pass; 'required' is responsible for rejecting them.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleCustomer, models.UserRoleUsta:
		return true
	default:
		return false
	}
}

func validateInvitationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.InvitationStatus(value) {
	case models.InvitationStatusPending, models.InvitationStatusAccepted,
		models.InvitationStatusRejected, models.InvitationStatusExpired,
		models.InvitationStatusCanceled:
		return true
	default:
		return false
	}
}

func validateContractStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ContractStatus(value) {
	case models.ContractStatusPending, models.ContractStatusAccepted, models.ContractStatusRejected:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobStatus(value) {
	case models.JobStatusPending, models.JobStatusActive, models.JobStatusCompleted, models.JobStatusCancelled:
		return true
	default:
		return false
	}
}
