// Package booking implements the appointment booking flow: a linear
// five-step wizard (salon → service → master → date/time → confirmation)
// plus a terminal success state. The wizard owns the in-memory selection
// and fetches each step's option list from the API; rendering and input
// belong to the caller.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mkalinina/salonbook/internal/client/api"
	"github.com/mkalinina/salonbook/internal/client/models"
	"github.com/mkalinina/salonbook/internal/logging"
)

// Step is the wizard's position. Steps are strictly ordered: a step is
// reachable only after every earlier step's selection was made.
type Step int

const (
	StepSalon Step = iota + 1
	StepService
	StepMaster
	StepDateTime
	StepConfirm
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepSalon:
		return "salon"
	case StepService:
		return "service"
	case StepMaster:
		return "master"
	case StepDateTime:
		return "date/time"
	case StepConfirm:
		return "confirmation"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	// ErrStepOrder is returned when an operation belongs to a different
	// step than the wizard is on.
	ErrStepOrder = errors.New("operation not available at this step")

	// ErrDateTooSoon is returned for dates before tomorrow; same-day
	// booking is not offered.
	ErrDateTooSoon = errors.New("date must be tomorrow or later")

	// ErrNoSuchSlot is returned for a slot index outside the fetched list.
	ErrNoSuchSlot = errors.New("no such slot")
)

// Selection is the booking under construction. Zero values mean "not
// selected yet"; MasterID nil means "any available master" until a slot
// pick resolves it to the slot's owner.
type Selection struct {
	SalonID   int64
	ServiceID int64
	MasterID  *int64
	Date      string
	Time      string
}

// Summary carries the resolved display records for the confirmation step.
// A nil field means the id could not be resolved from the current catalog.
type Summary struct {
	Salon   *models.Salon
	Service *models.Service
	Master  *models.Master
	Date    string
	Time    string
}

// Wizard drives the booking flow against the API. It is not safe for
// concurrent use; the interactive flow is strictly sequential.
type Wizard struct {
	api api.Client
	log logging.Logger
	now func() time.Time

	step  Step
	sel   Selection
	slots []models.FlatSlot
}

func New(client api.Client, log logging.Logger) *Wizard {
	return &Wizard{api: client, log: log, now: time.Now, step: StepSalon}
}

// Reset returns the wizard to step one with an empty selection. Called on
// every wizard entry.
func (w *Wizard) Reset() {
	w.step = StepSalon
	w.sel = Selection{}
	w.slots = nil
}

func (w *Wizard) Step() Step           { return w.step }
func (w *Wizard) Selection() Selection { return w.sel }

// Slots returns the flattened, sorted slot list of the last SetDate call.
func (w *Wizard) Slots() []models.FlatSlot { return w.slots }

// Back moves one step back. Already-made selections are kept, including
// downstream ones: going back and changing the salon does not clear a
// previously chosen service. From the success screen there is nowhere to
// go back to.
func (w *Wizard) Back() {
	if w.step > StepSalon && w.step < StepDone {
		w.step--
	}
}

// Salons fetches the option list for step one.
func (w *Wizard) Salons(ctx context.Context) ([]models.Salon, error) {
	if w.step != StepSalon {
		return nil, ErrStepOrder
	}
	return w.api.Salons(ctx)
}

// SelectSalon records the chosen salon and advances to the service step.
func (w *Wizard) SelectSalon(id int64) error {
	if w.step != StepSalon {
		return ErrStepOrder
	}
	w.sel.SalonID = id
	w.step = StepService
	return nil
}

// Services fetches the option list for step two, filtered by the chosen
// salon.
func (w *Wizard) Services(ctx context.Context) ([]models.Service, error) {
	if w.step != StepService {
		return nil, ErrStepOrder
	}
	return w.api.Services(ctx, w.sel.SalonID)
}

// SelectService records the chosen service and advances to the master step.
func (w *Wizard) SelectService(id int64) error {
	if w.step != StepService {
		return ErrStepOrder
	}
	w.sel.ServiceID = id
	w.step = StepMaster
	return nil
}

// Masters fetches the option list for step three, filtered by salon and
// service.
func (w *Wizard) Masters(ctx context.Context) ([]models.Master, error) {
	if w.step != StepMaster {
		return nil, ErrStepOrder
	}
	return w.api.Masters(ctx, w.sel.SalonID, w.sel.ServiceID)
}

// SelectMaster records the chosen master and advances to the date step.
// A nil id means "any available master"; it stays nil until a concrete
// slot resolves it.
func (w *Wizard) SelectMaster(id *int64) error {
	if w.step != StepMaster {
		return ErrStepOrder
	}
	if id == nil {
		w.sel.MasterID = nil
	} else {
		v := *id
		w.sel.MasterID = &v
	}
	w.step = StepDateTime
	return nil
}

// SetDate validates the chosen date (tomorrow or later), fetches the free
// slots for it, and stores them flattened and sorted by start time. The
// wizard stays on the date step until a slot is picked, so the user can
// try another date.
func (w *Wizard) SetDate(ctx context.Context, date string) ([]models.FlatSlot, error) {
	if w.step != StepDateTime {
		return nil, ErrStepOrder
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	now := w.now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)
	if day.Before(tomorrow) {
		return nil, ErrDateTooSoon
	}

	groups, err := w.api.FreeSlots(ctx, api.SlotQuery{
		SalonID:   w.sel.SalonID,
		ServiceID: w.sel.ServiceID,
		Date:      date,
		MasterID:  w.sel.MasterID,
	})
	if err != nil {
		return nil, err
	}

	w.sel.Date = date
	w.slots = SortSlots(Flatten(groups))
	return w.slots, nil
}

// SelectSlot picks a slot by its index in the stored list. The selection's
// time becomes the slot's raw start string; if no concrete master was
// chosen, the slot's owner fills that in — "any master" must resolve to a
// real master before submission. Advances to the confirmation step.
func (w *Wizard) SelectSlot(i int) error {
	if w.step != StepDateTime {
		return ErrStepOrder
	}
	if i < 0 || i >= len(w.slots) {
		return ErrNoSuchSlot
	}

	slot := w.slots[i]
	w.sel.Time = slot.Start
	if w.sel.MasterID == nil {
		owner := slot.MasterID
		w.sel.MasterID = &owner
	}
	w.step = StepConfirm
	return nil
}

// Summary re-fetches the catalogs to resolve display names for the current
// selection. Nothing is cached across steps, so this is three fresh
// requests every time the confirmation step renders.
func (w *Wizard) Summary(ctx context.Context) (Summary, error) {
	if w.step != StepConfirm {
		return Summary{}, ErrStepOrder
	}

	salons, err := w.api.Salons(ctx)
	if err != nil {
		return Summary{}, err
	}
	services, err := w.api.Services(ctx, 0)
	if err != nil {
		return Summary{}, err
	}
	masters, err := w.api.Masters(ctx, w.sel.SalonID, 0)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Date: w.sel.Date, Time: w.sel.Time}
	for i := range salons {
		if salons[i].ID == w.sel.SalonID {
			s.Salon = &salons[i]
			break
		}
	}
	for i := range services {
		if services[i].ID == w.sel.ServiceID {
			s.Service = &services[i]
			break
		}
	}
	if w.sel.MasterID != nil {
		for i := range masters {
			if masters[i].ID == *w.sel.MasterID {
				s.Master = &masters[i]
				break
			}
		}
	}
	return s, nil
}

// Submit posts the assembled appointment. On success the wizard advances
// to the success state and returns the created record; on failure it stays
// on the confirmation step so the user can retry or go back.
func (w *Wizard) Submit(ctx context.Context, comment string) (models.Appointment, error) {
	if w.step != StepConfirm {
		return models.Appointment{}, ErrStepOrder
	}

	var masterID int64
	if w.sel.MasterID != nil {
		masterID = *w.sel.MasterID
	}
	var commentPtr *string
	if comment != "" {
		commentPtr = &comment
	}

	req := models.AppointmentRequest{
		SalonID:   w.sel.SalonID,
		MasterID:  masterID,
		ServiceID: w.sel.ServiceID,
		DateTime:  w.sel.Time,
		Comment:   commentPtr,
	}

	appt, err := w.api.CreateAppointment(ctx, req)
	if err != nil {
		return models.Appointment{}, err
	}

	w.log.Info(ctx, "appointment created", "id", appt.ID, "salon_id", req.SalonID, "master_id", req.MasterID)
	w.step = StepDone
	return appt, nil
}

// Flatten joins the per-master slot groups into one list of slots tagged
// with their owning master.
func Flatten(groups []models.MasterSlots) []models.FlatSlot {
	var out []models.FlatSlot
	for _, g := range groups {
		for _, slot := range g.Slots {
			out = append(out, models.FlatSlot{
				Start:    slot.Start,
				End:      slot.End,
				MasterID: g.MasterID,
			})
		}
	}
	return out
}

// SortSlots orders slots ascending by start time, for any order the server
// returned them in. Slots whose start does not parse sort by the raw
// string, after the parseable ones.
func SortSlots(slots []models.FlatSlot) []models.FlatSlot {
	sort.SliceStable(slots, func(i, j int) bool {
		ti, errI := slots[i].StartTime()
		tj, errJ := slots[j].StartTime()
		switch {
		case errI == nil && errJ == nil:
			return ti.Before(tj)
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return slots[i].Start < slots[j].Start
		}
	})
	return slots
}
