package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		authed   bool
		expected Resolution
	}{
		{name: "home always passes", page: PageHome, authed: false, expected: Resolution{Target: PageHome}},
		{name: "login always passes", page: PageLogin, authed: false, expected: Resolution{Target: PageLogin}},
		{name: "register always passes", page: PageRegister, authed: false, expected: Resolution{Target: PageRegister}},
		{name: "profile authed", page: PageProfile, authed: true, expected: Resolution{Target: PageProfile}},
		{name: "profile unauthed redirects", page: PageProfile, authed: false, expected: Resolution{Target: PageLogin}},
		{name: "booking authed", page: PageBooking, authed: true, expected: Resolution{Target: PageBooking}},
		{name: "booking unauthed asks first", page: PageBooking, authed: false, expected: Resolution{Target: PageLogin, Confirm: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Resolve(tc.page, tc.authed))
		})
	}
}
