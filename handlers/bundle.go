package handlers

import (
	patientRepoPkg "praxis/database/repository/patient"
	providerRepoPkg "praxis/database/repository/provider"
)

// HandlerBundle groups all endpoint handlers plus the repositories the auth
// middleware needs.
type HandlerBundle struct {
	ProviderRepo providerRepoPkg.ProviderRepository
	PatientRepo  patientRepoPkg.PatientRepository

	Provider     *ProviderHandler
	Availability *AvailabilityHandler
	Schedule     *ScheduleHandler
	Appointment  *AppointmentHandler
	Patient      *PatientHandler
	Portal       *PortalHandler
	Record       *RecordHandler
	Billing      *BillingHandler
	Messaging    *MessagingHandler
	Document     *DocumentHandler
	Admin        *AdminHandler
}
