package popup

import "time"

type Trigger string

const (
	TriggerTimer      Trigger = "timer"
	TriggerExitIntent Trigger = "exit-intent"
)

const (
	CookieConsent ID = "cookie-consent"
	Newsletter    ID = "newsletter"
	LaunchBanner  ID = "launch-banner"
	ExitIntent    ID = "exit-intent"
)

// Producer describes a popup that competes for the slot. Timing and
// dismissal memory belong to the producer, not to the Manager.
type Producer struct {
	ID      ID
	Trigger Trigger
	// Delay is how long the page waits before asking for the slot (timer triggers only).
	Delay time.Duration
	// SuppressFor hides the producer after a remembered dismissal. Ignored when Permanent.
	SuppressFor time.Duration
	// Permanent hides the producer for good once dismissed with remember.
	Permanent bool
}

func (p Producer) remembers() bool {
	return p.Permanent || p.SuppressFor > 0
}

func (p Producer) suppressionTTL() time.Duration {
	if p.Permanent {
		return 0
	}
	return p.SuppressFor
}

// DefaultProducers is the site's popup catalogue, in display-priority order.
func DefaultProducers() []Producer {
	return []Producer{
		{ID: CookieConsent, Trigger: TriggerTimer, Delay: 1500 * time.Millisecond, Permanent: true},
		{ID: LaunchBanner, Trigger: TriggerTimer, Delay: 3 * time.Second, SuppressFor: 24 * time.Hour},
		{ID: Newsletter, Trigger: TriggerTimer, Delay: 10 * time.Second, SuppressFor: 24 * time.Hour},
		{ID: ExitIntent, Trigger: TriggerExitIntent, SuppressFor: 24 * time.Hour},
	}
}
