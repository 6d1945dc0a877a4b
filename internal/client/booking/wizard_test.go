package booking

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkalinina/salonbook/internal/client/api"
	"github.com/mkalinina/salonbook/internal/client/models"
	"github.com/mkalinina/salonbook/internal/logging"
)

// fakeAPI implements api.Client with canned data and records the requests
// the wizard makes.
type fakeAPI struct {
	salons   []models.Salon
	services []models.Service
	masters  []models.Master
	slots    []models.MasterSlots

	createdReq  *models.AppointmentRequest
	createdResp models.Appointment
	createErr   error

	lastServicesSalonID int64
	lastMastersSalonID  int64
	lastMastersService  int64
	lastSlotQuery       api.SlotQuery
}

func (f *fakeAPI) SignIn(ctx context.Context, username, password string) (string, error) {
	return "", nil
}

func (f *fakeAPI) SignUp(ctx context.Context, req models.SignUpRequest) error { return nil }

func (f *fakeAPI) Salons(ctx context.Context) ([]models.Salon, error) { return f.salons, nil }

func (f *fakeAPI) Services(ctx context.Context, salonID int64) ([]models.Service, error) {
	f.lastServicesSalonID = salonID
	return f.services, nil
}

func (f *fakeAPI) Masters(ctx context.Context, salonID, serviceID int64) ([]models.Master, error) {
	f.lastMastersSalonID = salonID
	f.lastMastersService = serviceID
	return f.masters, nil
}

func (f *fakeAPI) FreeSlots(ctx context.Context, q api.SlotQuery) ([]models.MasterSlots, error) {
	f.lastSlotQuery = q
	return f.slots, nil
}

func (f *fakeAPI) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAPI) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (models.Appointment, error) {
	f.createdReq = &req
	if f.createErr != nil {
		return models.Appointment{}, f.createErr
	}
	return f.createdResp, nil
}

func (f *fakeAPI) CancelAppointment(ctx context.Context, id int64) error { return nil }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newWizard returns a wizard whose clock is pinned to 2025-01-05 12:00.
func newWizard(f *fakeAPI) *Wizard {
	w := New(f, testLogger())
	w.now = func() time.Time { return time.Date(2025, 1, 5, 12, 0, 0, 0, time.Local) }
	return w
}

func TestResetClearsEverything(t *testing.T) {
	f := &fakeAPI{slots: []models.MasterSlots{{MasterID: 7, Slots: []models.Slot{{Start: "2025-01-10T09:00", End: "2025-01-10T09:30"}}}}}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))
	_, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)
	require.NoError(t, w.SelectSlot(0))

	w.Reset()

	require.Equal(t, StepSalon, w.Step())
	require.Equal(t, Selection{}, w.Selection())
	require.Nil(t, w.Slots())
}

func TestSelectSalonAdvances(t *testing.T) {
	w := newWizard(&fakeAPI{})

	require.NoError(t, w.SelectSalon(1))
	require.Equal(t, StepService, w.Step())

	sel := w.Selection()
	require.Equal(t, int64(1), sel.SalonID)
	require.Equal(t, int64(0), sel.ServiceID)
	require.Nil(t, sel.MasterID)
	require.Empty(t, sel.Date)
	require.Empty(t, sel.Time)
}

func TestStepOrderEnforced(t *testing.T) {
	w := newWizard(&fakeAPI{})
	ctx := context.Background()

	// Still on step one: everything later is unreachable.
	require.ErrorIs(t, w.SelectService(2), ErrStepOrder)
	require.ErrorIs(t, w.SelectMaster(nil), ErrStepOrder)
	_, err := w.SetDate(ctx, "2025-01-10")
	require.ErrorIs(t, err, ErrStepOrder)
	require.ErrorIs(t, w.SelectSlot(0), ErrStepOrder)
	_, err = w.Summary(ctx)
	require.ErrorIs(t, err, ErrStepOrder)
	_, err = w.Submit(ctx, "")
	require.ErrorIs(t, err, ErrStepOrder)

	_, err = w.Services(ctx)
	require.ErrorIs(t, err, ErrStepOrder)
	_, err = w.Masters(ctx)
	require.ErrorIs(t, err, ErrStepOrder)

	require.NoError(t, w.SelectSalon(1))
	_, err = w.Salons(ctx)
	require.ErrorIs(t, err, ErrStepOrder)
}

func TestStepFetchesUseSelection(t *testing.T) {
	f := &fakeAPI{}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	_, err := w.Services(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), f.lastServicesSalonID)

	require.NoError(t, w.SelectService(2))
	_, err = w.Masters(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), f.lastMastersSalonID)
	require.Equal(t, int64(2), f.lastMastersService)
}

func TestSetDateRejectsTodayAndEarlier(t *testing.T) {
	w := newWizard(&fakeAPI{})
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))

	_, err := w.SetDate(ctx, "2025-01-05") // "today" for the pinned clock
	require.ErrorIs(t, err, ErrDateTooSoon)

	_, err = w.SetDate(ctx, "2024-12-31")
	require.ErrorIs(t, err, ErrDateTooSoon)

	_, err = w.SetDate(ctx, "not-a-date")
	require.Error(t, err)

	// Failed dates leave the selection untouched.
	require.Empty(t, w.Selection().Date)

	_, err = w.SetDate(ctx, "2025-01-06") // tomorrow is fine
	require.NoError(t, err)
	require.Equal(t, "2025-01-06", w.Selection().Date)
}

func TestSlotsFlattenedAndSorted(t *testing.T) {
	// Deliberately shuffled across masters and within a master.
	f := &fakeAPI{slots: []models.MasterSlots{
		{MasterID: 9, Slots: []models.Slot{
			{Start: "2025-01-10T11:00", End: "2025-01-10T11:30"},
			{Start: "2025-01-10T08:30", End: "2025-01-10T09:00"},
		}},
		{MasterID: 7, Slots: []models.Slot{
			{Start: "2025-01-10T09:00", End: "2025-01-10T09:30"},
		}},
	}}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))

	slots, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)

	require.Len(t, slots, 3)
	for i := 1; i < len(slots); i++ {
		prev, err := slots[i-1].StartTime()
		require.NoError(t, err)
		cur, err := slots[i].StartTime()
		require.NoError(t, err)
		require.False(t, cur.Before(prev), "slot %d starts before slot %d", i, i-1)
	}
	require.Equal(t, int64(9), slots[0].MasterID) // 08:30
	require.Equal(t, int64(7), slots[1].MasterID) // 09:00
}

func TestSelectSlotFillsMasterWhenAny(t *testing.T) {
	f := &fakeAPI{slots: []models.MasterSlots{
		{MasterID: 7, Slots: []models.Slot{{Start: "2025-01-10T09:00", End: "2025-01-10T09:30"}}},
	}}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))
	_, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)

	// "Any master" must not be sent to the slot query.
	require.Nil(t, f.lastSlotQuery.MasterID)

	require.NoError(t, w.SelectSlot(0))

	sel := w.Selection()
	require.NotNil(t, sel.MasterID)
	require.Equal(t, int64(7), *sel.MasterID)
	require.Equal(t, "2025-01-10T09:00", sel.Time)
	require.Equal(t, StepConfirm, w.Step())
}

func TestSelectSlotKeepsChosenMaster(t *testing.T) {
	f := &fakeAPI{slots: []models.MasterSlots{
		{MasterID: 5, Slots: []models.Slot{{Start: "2025-01-10T09:00", End: "2025-01-10T09:30"}}},
	}}
	w := newWizard(f)
	ctx := context.Background()

	chosen := int64(5)
	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(&chosen))
	_, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)

	require.NotNil(t, f.lastSlotQuery.MasterID)
	require.Equal(t, int64(5), *f.lastSlotQuery.MasterID)

	require.NoError(t, w.SelectSlot(0))
	require.Equal(t, int64(5), *w.Selection().MasterID)
}

func TestSelectSlotOutOfRange(t *testing.T) {
	f := &fakeAPI{}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))
	_, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)

	require.ErrorIs(t, w.SelectSlot(0), ErrNoSuchSlot)
	require.ErrorIs(t, w.SelectSlot(-1), ErrNoSuchSlot)
}

func TestBackPreservesDownstreamSelections(t *testing.T) {
	f := &fakeAPI{}
	w := newWizard(f)

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))

	w.Back()
	require.Equal(t, StepService, w.Step())
	// Intentionally unchanged: the original flow never invalidates
	// downstream picks on back-navigation.
	require.Equal(t, int64(2), w.Selection().ServiceID)

	w.Back()
	require.Equal(t, StepSalon, w.Step())
	w.Back()
	require.Equal(t, StepSalon, w.Step())
}

func TestSubmitPayload(t *testing.T) {
	// End-to-end wizard property: salon=1, service=2, master="any",
	// slot 09:00–09:30 owned by master 7.
	f := &fakeAPI{
		slots: []models.MasterSlots{
			{MasterID: 7, Slots: []models.Slot{{Start: "2025-01-10T09:00", End: "2025-01-10T09:30"}}},
		},
		createdResp: models.Appointment{ID: 42, Status: true},
	}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))
	_, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)
	require.NoError(t, w.SelectSlot(0))

	appt, err := w.Submit(ctx, "")
	require.NoError(t, err)
	require.Equal(t, int64(42), appt.ID)
	require.Equal(t, StepDone, w.Step())

	require.NotNil(t, f.createdReq)
	require.Equal(t, models.AppointmentRequest{
		SalonID:   1,
		MasterID:  7,
		ServiceID: 2,
		DateTime:  "2025-01-10T09:00",
		Comment:   nil,
	}, *f.createdReq)
}

func TestSubmitWithComment(t *testing.T) {
	f := &fakeAPI{
		slots:       []models.MasterSlots{{MasterID: 7, Slots: []models.Slot{{Start: "2025-01-10T09:00", End: "2025-01-10T09:30"}}}},
		createdResp: models.Appointment{ID: 1},
	}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))
	_, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)
	require.NoError(t, w.SelectSlot(0))

	_, err = w.Submit(ctx, "please a window seat")
	require.NoError(t, err)
	require.NotNil(t, f.createdReq.Comment)
	require.Equal(t, "please a window seat", *f.createdReq.Comment)
}

func TestSubmitFailureStaysOnConfirm(t *testing.T) {
	f := &fakeAPI{
		slots:     []models.MasterSlots{{MasterID: 7, Slots: []models.Slot{{Start: "2025-01-10T09:00", End: "2025-01-10T09:30"}}}},
		createErr: &api.Error{Status: 409, Message: "Slot is already taken"},
	}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))
	_, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)
	require.NoError(t, w.SelectSlot(0))

	_, err = w.Submit(ctx, "")
	require.Error(t, err)
	require.Equal(t, "Slot is already taken", err.Error())
	require.Equal(t, StepConfirm, w.Step())
}

func TestSummaryResolvesNames(t *testing.T) {
	about := "ten years of experience"
	f := &fakeAPI{
		salons:   []models.Salon{{ID: 1, Title: "Downtown", Address: "Main st. 1"}},
		services: []models.Service{{ID: 2, Description: "Haircut", DurationMinutes: 30, BasePrice: 1500}},
		masters:  []models.Master{{ID: 7, Specialization: "Stylist", About: &about}},
		slots:    []models.MasterSlots{{MasterID: 7, Slots: []models.Slot{{Start: "2025-01-10T09:00", End: "2025-01-10T09:30"}}}},
	}
	w := newWizard(f)
	ctx := context.Background()

	require.NoError(t, w.SelectSalon(1))
	require.NoError(t, w.SelectService(2))
	require.NoError(t, w.SelectMaster(nil))
	_, err := w.SetDate(ctx, "2025-01-10")
	require.NoError(t, err)
	require.NoError(t, w.SelectSlot(0))

	s, err := w.Summary(ctx)
	require.NoError(t, err)
	require.NotNil(t, s.Salon)
	require.Equal(t, "Downtown", s.Salon.Title)
	require.NotNil(t, s.Service)
	require.Equal(t, "Haircut", s.Service.Description)
	require.NotNil(t, s.Master)
	require.Equal(t, "Stylist", s.Master.Specialization)
	require.Equal(t, "2025-01-10", s.Date)
	require.Equal(t, "2025-01-10T09:00", s.Time)

	// The summary's service catalog is fetched unfiltered.
	require.Equal(t, int64(0), f.lastServicesSalonID)
}
