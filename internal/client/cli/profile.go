package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mkalinina/salonbook/internal/client/models"
)

// showProfile renders the cached identity and the appointments list.
func (a *App) showProfile(ctx context.Context) {
	if u := a.store.Identity(); u != nil {
		fmt.Fprintf(a.out, "Email/phone: %s\n", u.Username)
		if u.Name != "" {
			fmt.Fprintf(a.out, "Name: %s\n", u.Name)
		}
	}
	a.renderAppointments(ctx)
}

// renderAppointments fetches and prints the user's appointments. Always a
// fresh fetch: the list mirrors the server, never local bookkeeping.
func (a *App) renderAppointments(ctx context.Context) {
	appts, err := a.api.Appointments(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load appointments: %v\n", err)
		return
	}
	if len(appts) == 0 {
		fmt.Fprintln(a.out, "You have no appointments yet.")
		return
	}

	now := time.Now()
	fmt.Fprintln(a.out, "Your appointments:")
	for _, appt := range appts {
		status := "cancelled"
		if appt.Status {
			status = "confirmed"
		}
		fmt.Fprintf(a.out, "  #%d  %s (until %s)  [%s]\n",
			appt.ID, models.FormatDateTime(appt.DateTime), models.FormatClock(appt.EndTime), status)
		fmt.Fprintf(a.out, "      salon %d, master %d, service %d\n", appt.SalonID, appt.MasterID, appt.ServiceID)
		if appt.Comment != nil && *appt.Comment != "" {
			fmt.Fprintf(a.out, "      comment: %s\n", *appt.Comment)
		}
		if appt.CanCancel(now) {
			fmt.Fprintf(a.out, "      cancel with: cancel %d\n", appt.ID)
		}
	}
}

// Cancel handles the "cancel <id>" command: confirm, delete, refetch. A
// failed delete surfaces the message and the list is refetched anyway, so
// what the user sees stays consistent with the server.
func (a *App) Cancel(ctx context.Context, arg string) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid appointment id: %s\n", arg)
		return
	}

	if !Confirm(a.reader, fmt.Sprintf("Cancel appointment #%d?", id), a.out) {
		return
	}

	if err := a.api.CancelAppointment(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Failed to cancel appointment: %v\n", err)
	} else {
		fmt.Fprintln(a.out, "Appointment cancelled.")
	}
	a.renderAppointments(ctx)
}
