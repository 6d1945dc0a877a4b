package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mkalinina/salonbook/internal/client/booking"
	"github.com/mkalinina/salonbook/internal/client/models"
)

type choice int

const (
	choicePicked choice = iota
	choiceBack
	choiceAbort
)

// readChoice reads a numbered selection. "back" and "cancel" are always
// understood; 0 is accepted only when allowZero is set (the "any master"
// option). Invalid input re-prompts.
func (a *App) readChoice(prompt string, max int, allowZero bool) (int, choice) {
	low := 1
	if allowZero {
		low = 0
	}
	for {
		line, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return 0, choiceAbort
		}
		switch strings.ToLower(line) {
		case "cancel", "q":
			return 0, choiceAbort
		case "back", "b":
			return 0, choiceBack
		}
		if n, err := strconv.Atoi(line); err == nil && n >= low && n <= max {
			return n, choicePicked
		}
		fmt.Fprintf(a.out, "Enter a number between %d and %d, 'back', or 'cancel'.\n", low, max)
	}
}

// showBooking runs the five-step booking flow. The wizard owns the state;
// this loop renders whatever step the wizard is on, so "back" simply
// re-enters the switch one step earlier.
func (a *App) showBooking(ctx context.Context) {
	a.wizard.Reset()
	fmt.Fprintln(a.out, "New appointment. Answer with a number; 'back' returns a step, 'cancel' aborts.")

	for {
		var ok bool
		switch a.wizard.Step() {
		case booking.StepSalon:
			ok = a.stepSalon(ctx)
		case booking.StepService:
			ok = a.stepService(ctx)
		case booking.StepMaster:
			ok = a.stepMaster(ctx)
		case booking.StepDateTime:
			ok = a.stepDateTime(ctx)
		case booking.StepConfirm:
			ok = a.stepConfirm(ctx)
		case booking.StepDone:
			return
		}
		if !ok {
			fmt.Fprintln(a.out, "Booking aborted.")
			return
		}
	}
}

func (a *App) stepSalon(ctx context.Context) bool {
	salons, err := a.wizard.Salons(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load salons: %v\n", err)
		return false
	}
	if len(salons) == 0 {
		fmt.Fprintln(a.out, "No salons found.")
		return false
	}

	fmt.Fprintln(a.out, "Step 1 of 5: choose a salon")
	for i, s := range salons {
		fmt.Fprintf(a.out, "  %d. %s (%s)\n", i+1, s.Title, s.Address)
	}

	n, ch := a.readChoice("Salon number", len(salons), false)
	switch ch {
	case choiceAbort:
		return false
	case choiceBack:
		fmt.Fprintln(a.out, "Already at the first step.")
		return true
	}
	if err := a.wizard.SelectSalon(salons[n-1].ID); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
	}
	return true
}

func (a *App) stepService(ctx context.Context) bool {
	services, err := a.wizard.Services(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load services: %v\n", err)
		return false
	}
	if len(services) == 0 {
		fmt.Fprintln(a.out, "No services found for this salon.")
		a.wizard.Back()
		return true
	}

	fmt.Fprintln(a.out, "Step 2 of 5: choose a service")
	for i, s := range services {
		fmt.Fprintf(a.out, "  %d. %s (%d min, %.2f)\n", i+1, s.Description, s.DurationMinutes, s.BasePrice)
	}

	n, ch := a.readChoice("Service number", len(services), false)
	switch ch {
	case choiceAbort:
		return false
	case choiceBack:
		a.wizard.Back()
		return true
	}
	if err := a.wizard.SelectService(services[n-1].ID); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
	}
	return true
}

func (a *App) stepMaster(ctx context.Context) bool {
	masters, err := a.wizard.Masters(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load masters: %v\n", err)
		return false
	}

	fmt.Fprintln(a.out, "Step 3 of 5: choose a master")
	fmt.Fprintln(a.out, "  0. Any available master")
	for i, m := range masters {
		about := ""
		if m.About != nil {
			about = " — " + *m.About
		}
		fmt.Fprintf(a.out, "  %d. %s%s\n", i+1, m.Specialization, about)
	}

	n, ch := a.readChoice("Master number", len(masters), true)
	switch ch {
	case choiceAbort:
		return false
	case choiceBack:
		a.wizard.Back()
		return true
	}

	var err2 error
	if n == 0 {
		err2 = a.wizard.SelectMaster(nil)
	} else {
		err2 = a.wizard.SelectMaster(&masters[n-1].ID)
	}
	if err2 != nil {
		fmt.Fprintf(a.out, "%v\n", err2)
	}
	return true
}

func (a *App) stepDateTime(ctx context.Context) bool {
	line, err := GetSimpleText(a.reader, "Step 4 of 5: date (YYYY-MM-DD, tomorrow or later)", a.out)
	if err != nil {
		return false
	}
	switch strings.ToLower(line) {
	case "cancel", "q":
		return false
	case "back", "b":
		a.wizard.Back()
		return true
	}

	slots, err := a.wizard.SetDate(ctx, line)
	if errors.Is(err, booking.ErrDateTooSoon) {
		fmt.Fprintln(a.out, "Bookings start from tomorrow; pick a later date.")
		return true
	}
	if err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return true
	}
	if len(slots) == 0 {
		fmt.Fprintln(a.out, "No free time on that date.")
		return true
	}

	fmt.Fprintln(a.out, "Available time:")
	for i, s := range slots {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, s.Label())
	}

	n, ch := a.readChoice("Slot number", len(slots), false)
	switch ch {
	case choiceAbort:
		return false
	case choiceBack:
		a.wizard.Back()
		return true
	}
	if err := a.wizard.SelectSlot(n - 1); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
	}
	return true
}

func (a *App) stepConfirm(ctx context.Context) bool {
	s, err := a.wizard.Summary(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load booking summary: %v\n", err)
		return false
	}

	fmt.Fprintln(a.out, "Step 5 of 5: confirm your booking")
	if s.Salon != nil {
		fmt.Fprintf(a.out, "  Salon:   %s (%s)\n", s.Salon.Title, s.Salon.Address)
	}
	if s.Service != nil {
		fmt.Fprintf(a.out, "  Service: %s (%d min, %.2f)\n", s.Service.Description, s.Service.DurationMinutes, s.Service.BasePrice)
	}
	if s.Master != nil {
		fmt.Fprintf(a.out, "  Master:  %s\n", s.Master.Specialization)
	} else {
		fmt.Fprintln(a.out, "  Master:  Any available")
	}
	fmt.Fprintf(a.out, "  When:    %s\n", models.FormatDateTime(s.Time))

	comment, err := GetSimpleText(a.reader, "Comment (optional, Enter to skip)", a.out)
	if err != nil {
		return false
	}

	if !Confirm(a.reader, "Submit booking?", a.out) {
		a.wizard.Back()
		return true
	}

	appt, err := a.wizard.Submit(ctx, comment)
	if err != nil {
		fmt.Fprintf(a.out, "Booking failed: %v\n", err)
		fmt.Fprintln(a.out, "You can adjust the details ('back') or submit again.")
		return true
	}

	fmt.Fprintf(a.out, "Appointment #%d created for %s.\n", appt.ID, models.FormatDateTime(a.wizard.Selection().Time))
	fmt.Fprintln(a.out, "We look forward to seeing you!")
	return true
}
