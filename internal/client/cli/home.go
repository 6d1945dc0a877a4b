package cli

import (
	"context"
	"fmt"
)

// showHome renders the salon preview list.
func (a *App) showHome(ctx context.Context) {
	salons, err := a.api.Salons(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load salons: %v\n", err)
		return
	}
	if len(salons) == 0 {
		fmt.Fprintln(a.out, "Salon information is temporarily unavailable.")
		return
	}

	fmt.Fprintln(a.out, "Our salons:")
	for _, s := range salons {
		phone := "not specified"
		if s.Phone != nil {
			phone = *s.Phone
		}
		fmt.Fprintf(a.out, "  %s\n    address: %s\n    phone: %s\n", s.Title, s.Address, phone)
	}
}
