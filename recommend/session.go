package recommend

import (
	"errors"
	"fmt"
)

type EventKind int

const (
	// InputChanged sets one control and re-renders; it never predicts.
	InputChanged EventKind = iota
	// Submit requests a prediction for the current controls.
	Submit
)

type Event struct {
	Kind  EventKind
	Field FieldID
	Value float64
}

func Input(id FieldID, v float64) Event {
	return Event{Kind: InputChanged, Field: id, Value: v}
}

func SubmitEvent() Event {
	return Event{Kind: Submit}
}

// Phase tracks one prediction interaction.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRequested
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseRequested:
		return "requested"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseIdle, PhaseRequested, PhaseSucceeded, PhaseFailed} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Outcome is the content of the success or error panel.
type Outcome struct {
	Succeeded bool   `json:"succeeded"`
	Label     string `json:"label,omitempty"`
	Message   string `json:"message"`
}

// Session is one user's interaction loop over a shared Service. A Session
// is not safe for concurrent use; each front-end connection owns one.
type Session struct {
	service  *Service
	controls Controls
	phase    Phase
	outcome  *Outcome
}

func NewSession(service *Service) *Session {
	return &Session{
		service:  service,
		controls: NewControls(),
	}
}

// Controls returns a copy of the current control state.
func (s *Session) Controls() Controls {
	return s.controls
}

// Handle applies ev and returns the view to render.
func (s *Session) Handle(ev Event) View {
	switch ev.Kind {
	case InputChanged:
		if ev.Field < 0 || ev.Field >= fieldCount {
			return s.View()
		}
		s.controls.Set(ev.Field, ev.Value)
		// a plain re-render carries no result panel
		s.outcome = nil
		return s.View()

	case Submit:
		if !s.service.Ready() {
			s.outcome = nil
			return s.View()
		}
		s.phase = PhaseRequested
		s.outcome = s.predict()
		view := s.View()
		s.phase = PhaseIdle
		return view
	}
	return s.View()
}

func (s *Session) predict() *Outcome {
	label, err := s.service.Predict(s.controls.Record())
	if err != nil {
		s.phase = PhaseFailed
		if errors.Is(err, ErrClassifierUnavailable) {
			return &Outcome{Message: NotLoadedWarning}
		}
		return &Outcome{Message: PredictionFailureMessage(err)}
	}
	s.phase = PhaseSucceeded
	return &Outcome{Succeeded: true, Label: label, Message: SuccessMessage(label)}
}

// View renders the current state without changing it.
func (s *Session) View() View {
	view := View{
		Title:         PageTitle,
		Subtitle:      PageSubtitle,
		SidebarHeader: SidebarHeader,
		EchoHeader:    EchoHeader,
		Ready:         s.service.Ready(),
		LoadError:     s.service.LoadMessage(),
		Phase:         s.phase,
		Disclaimer:    Disclaimer,
	}
	if view.Ready {
		view.ButtonLabel = ButtonLabel
	} else {
		view.Warning = NotLoadedWarning
	}
	if s.outcome != nil {
		outcome := *s.outcome
		view.Outcome = &outcome
	}

	for _, spec := range fieldSpecs {
		v := s.controls.Value(spec.ID)
		view.Inputs = append(view.Inputs, InputView{
			Key:   spec.Key,
			Label: spec.Label,
			Help:  spec.Help,
			Min:   spec.Format(spec.Min),
			Max:   spec.Format(spec.Max),
			Step:  spec.Format(spec.Step),
			Value: spec.Format(v),
		})
		view.Echo = append(view.Echo, EchoCell{Key: spec.Key, Value: spec.Format(v)})
	}
	return view
}
