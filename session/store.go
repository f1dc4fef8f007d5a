package session

import (
	"context"
	"fmt"
	"registration/entity"
	"registration/event"
	"sync"
	"time"
)

// Snapshot is the widget state an operation works against. Operations take
// it explicitly instead of reading shared state.
type Snapshot struct {
	Settings       entity.Settings              `json:"settings"`
	Step           entity.PurchaseStep          `json:"step"`
	Loading        bool                         `json:"widget_loading"`
	Reservation    *entity.Reservation          `json:"reservation"`
	Checkout       *entity.Checkout             `json:"checkout"`
	Passwordless   entity.PasswordlessChallenge `json:"passwordless"`
	Invitation     *entity.Invitation           `json:"invitation"`
	Notice         *entity.Notice               `json:"notice"`
	LastError      string                       `json:"last_error,omitempty"`
	LoginRequested bool                         `json:"login_requested"`
	Now            time.Time                    `json:"now"`
}

func (s Snapshot) HasReservation() bool {
	return s.Reservation != nil
}

type Store struct {
	lock  sync.RWMutex
	state Snapshot
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Snapshot() Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state
}

// Apply folds a widget event into the state. Events the store does not
// track are ignored.
func (s *Store) Apply(_ context.Context, e any) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	switch e := e.(type) {
	case event.LoadingStarted:
		s.state.Loading = true
	case event.LoadingStopped:
		s.state.Loading = false
	case event.InitialSettingsLoaded:
		s.state.Settings.APIBaseURL = e.APIBaseURL
		s.state.Settings.MarketingData = e.MarketingData
		s.state.Settings.SummitID = e.Summit.ID
		s.state.Settings.TicketTypes = e.Summit.TicketTypes
		s.state.Settings.UserProfile = e.Profile
	case event.ProfileDataLoaded:
		s.state.Settings.UserProfile = e.Profile
	case event.WidgetStateCleared:
		s.state = Snapshot{Settings: s.state.Settings, Now: s.state.Now}
	case event.ClockUpdated:
		s.state.Now = e.Timestamp
	case event.LoginRequested:
		s.state.LoginRequested = true
	case event.StepChanged:
		if !e.Step.Valid() {
			return fmt.Errorf("%w: %d", entity.ErrInvalidStep, e.Step)
		}
		s.state.Step = e.Step
	case event.TicketTypesLoaded:
		s.state.Settings.TicketTypes = e.TicketTypes
	case event.TaxTypesLoaded:
		s.state.Settings.TaxTypes = e.TaxTypes
	case event.ReservationCreated:
		r := e.Reservation
		s.state.Reservation = &r
		s.state.LastError = ""
	case event.ReservationCreateFailed:
		s.state.LastError = e.Message
	case event.ReservationDeleted:
		s.state.Reservation = nil
	case event.ReservationDeleteFailed:
		s.state.LastError = e.Message
	case event.ReservationCleared:
		s.state.Reservation = nil
	case event.ReservationPaid:
		checkout := e.Checkout()
		s.state.Checkout = &checkout
		s.state.Reservation = nil
	case event.PasswordlessCodeRequested:
		s.state.Passwordless = entity.PasswordlessChallenge{Email: e.Email}
	case event.PasswordlessCodeLengthSet:
		s.state.Passwordless.CodeLength = e.Length
	case event.PasswordlessErrorSet:
		s.state.Passwordless.Error = true
	case event.InvitationCleared:
		s.state.Invitation = nil
	case event.InvitationLoaded:
		invitation := e.Invitation
		s.state.Invitation = &invitation
	case event.UserNotified:
		notice := e.Notice
		s.state.Notice = &notice
	}

	return nil
}
