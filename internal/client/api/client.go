package api

import (
	"context"

	"github.com/mkalinina/salonbook/internal/client/models"
)

// TokenSource yields the current access credential. An empty string means
// no session; no Authorization header is sent then.
type TokenSource interface {
	Credential() string
}

// SlotQuery identifies one free-slot lookup. MasterID nil means "any
// master": the server then returns slots for every suitable master.
type SlotQuery struct {
	SalonID   int64
	ServiceID int64
	Date      string
	MasterID  *int64
}

// Client is the surface of the remote salon booking API as this
// application uses it. Fakes of this interface back the wizard and view
// tests.
type Client interface {
	// SignIn exchanges credentials for an access token.
	SignIn(ctx context.Context, username, password string) (string, error)

	// SignUp registers a new user account.
	SignUp(ctx context.Context, req models.SignUpRequest) error

	// Salons lists all salons.
	Salons(ctx context.Context) ([]models.Salon, error)

	// Services lists services, filtered by salon when salonID is non-zero.
	Services(ctx context.Context, salonID int64) ([]models.Service, error)

	// Masters lists masters, filtered by salon and/or service when non-zero.
	Masters(ctx context.Context, salonID, serviceID int64) ([]models.Master, error)

	// FreeSlots returns the free slots for a date, grouped per master.
	FreeSlots(ctx context.Context, q SlotQuery) ([]models.MasterSlots, error)

	// Appointments lists the authenticated user's appointments.
	Appointments(ctx context.Context) ([]models.Appointment, error)

	// CreateAppointment books an appointment and returns the created record.
	CreateAppointment(ctx context.Context, req models.AppointmentRequest) (models.Appointment, error)

	// CancelAppointment cancels the appointment with the given id.
	CancelAppointment(ctx context.Context, id int64) error
}
