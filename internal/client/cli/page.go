package cli

// Page is a top-level view of the application. Navigation is the only state
// machine here: states are pages, transitions are commands or programmatic
// redirects.
type Page string

const (
	PageHome     Page = "home"
	PageLogin    Page = "login"
	PageRegister Page = "register"
	PageProfile  Page = "profile"
	PageBooking  Page = "booking"
)

// Resolution is the outcome of resolving a navigation request: the page to
// actually show, and whether the redirect should be confirmed with the user
// first (declining falls back to home).
type Resolution struct {
	Target  Page
	Confirm bool
}

// Resolve applies the access rules to a navigation request. Protected pages
// redirect unauthenticated users to login; the booking page asks first.
// Pure function, so the redirect table is trivially testable.
func Resolve(p Page, authed bool) Resolution {
	switch p {
	case PageProfile:
		if !authed {
			return Resolution{Target: PageLogin}
		}
	case PageBooking:
		if !authed {
			return Resolution{Target: PageLogin, Confirm: true}
		}
	}
	return Resolution{Target: p}
}
