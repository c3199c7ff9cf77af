package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "tui"

// Outcome is what an interactive session produces: the triggered action and
// the answers ready for submission.
type Outcome struct {
	Action      model.ActionKind `json:"action,omitempty"`
	Destination string           `json:"destination,omitempty"`
	Valid       bool             `json:"valid"`
	Answers     map[string]any   `json:"answers"`
}

// Renderer implements render.Renderer for terminal-driven sessions. Stages
// are walked in order: text and images are printed, text fields are
// prompted until valid, and the buttons are offered as a final choice.
type Renderer struct {
	driver            PromptDriver
	projector         *render.Projector
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	logger            *zap.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		maxAttempts:  DefaultMaxAttempts,
		logger:       zap.NewNop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}

	r.projector = render.NewProjector(render.WithLogger(r.logger))
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs an interactive session over page and serializes the Outcome.
func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	outcome, err := r.Run(ctx, page, opts.Answers)
	if err != nil {
		return nil, err
	}
	return r.serialize(outcome)
}

// Run walks the page and returns the outcome without serializing it.
func (r *Renderer) Run(ctx context.Context, page model.Page, seed model.Answers) (Outcome, error) {
	if ctx == nil {
		return Outcome{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if r.driver == nil {
		return Outcome{}, errors.New("tui: prompt driver is nil")
	}

	session, err := render.NewSession(r.projector, page, seed)
	if err != nil {
		return Outcome{}, fmt.Errorf("tui: %w", err)
	}

	var buttons []render.Descriptor
	for _, d := range session.Descriptors() {
		if !d.Drawable() {
			r.logger.Warn("skipping stage",
				zap.Int("stage", d.Index),
				zap.String("kind", string(d.Kind)),
				zap.String("status", string(d.Status)),
			)
			continue
		}
		switch {
		case d.Text != nil:
			err = r.info(ctx, d.Text.Text)
		case d.Image != nil:
			err = r.info(ctx, "[image] "+d.Image.URL)
		case d.Field != nil:
			err = r.promptField(ctx, session, d.Field)
		case d.Button != nil:
			buttons = append(buttons, d)
		}
		if err != nil {
			return Outcome{}, err
		}
	}

	outcome := Outcome{}
	if len(buttons) > 0 {
		action, err := r.chooseAction(ctx, session, buttons)
		if err != nil {
			return Outcome{}, err
		}
		outcome.Action = action.Kind()
		if nav, ok := action.(model.NavigateAction); ok {
			outcome.Destination = nav.Destination
		}
	}

	outcome.Valid = session.CanProceed()
	outcome.Answers = session.Answers().Payload(page)
	if r.submitTransformer != nil {
		outcome.Answers, err = r.submitTransformer(outcome.Answers)
		if err != nil {
			return Outcome{}, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return outcome, nil
}

// promptField asks for a value until it validates or the attempts run out.
// An exhausted field keeps its last value; gated actions stay blocked.
func (r *Renderer) promptField(ctx context.Context, session *render.Session, view *render.FieldView) error {
	for attempt := 1; ; attempt++ {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: r.theme.PromptPrefix + fieldLabel(view),
			Default: view.Value,
			Help:    view.HelperText,
		})
		if err != nil {
			return err
		}

		updated, err := session.Edit(view.ID, model.NewAnswer(value))
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		view = updated.Field
		if view.Valid {
			return nil
		}

		if err := r.fail(ctx, rejection(view)); err != nil {
			return err
		}
		if attempt >= r.maxAttempts {
			r.logger.Warn("field left invalid",
				zap.String("field", view.ID),
				zap.Int("attempts", attempt),
			)
			return nil
		}
	}
}

func (r *Renderer) chooseAction(ctx context.Context, session *render.Session, buttons []render.Descriptor) (model.Action, error) {
	for attempt := 1; ; attempt++ {
		options := make([]string, len(buttons))
		for i, b := range buttons {
			current := session.Descriptors()[b.Index].Button
			options[i] = current.Text
			if !current.Enabled {
				options[i] += " (complete the form first)"
			}
		}

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      r.theme.PromptPrefix + "Continue",
			Options:      options,
			DefaultIndex: 0,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(buttons) {
			return nil, ErrNoAction
		}

		action, err := session.Trigger(buttons[idx].Index)
		if err == nil {
			return action, nil
		}
		if !errors.Is(err, render.ErrActionBlocked) || attempt >= r.maxAttempts {
			return nil, fmt.Errorf("tui: %w", err)
		}

		if err := r.fail(ctx, "Some answers are not valid yet"); err != nil {
			return nil, err
		}
		for _, id := range session.Result().Invalid() {
			if err := r.revisit(ctx, session, id); err != nil {
				return nil, err
			}
		}
	}
}

func (r *Renderer) revisit(ctx context.Context, session *render.Session, id string) error {
	for _, d := range session.Descriptors() {
		if d.Field != nil && d.Field.ID == id {
			if !d.Drawable() {
				return nil
			}
			return r.promptField(ctx, session, d.Field)
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func fieldLabel(view *render.FieldView) string {
	label := view.Label
	if label == "" {
		label = view.ID
	}
	if view.Required {
		label += " *"
	}
	return label
}

func rejection(view *render.FieldView) string {
	switch {
	case view.ShowError:
		return view.Error
	case view.Value == "":
		return "A value is required"
	case view.HelperText != "":
		return view.HelperText
	default:
		return "This value is not accepted"
	}
}

func (r *Renderer) serialize(outcome Outcome) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(formEncode(outcome)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(outcome)), nil
	default:
		return json.Marshal(outcome)
	}
}

func formEncode(outcome Outcome) string {
	values := url.Values{}
	if outcome.Action != "" {
		values.Set("action", string(outcome.Action))
	}
	if outcome.Destination != "" {
		values.Set("destination", outcome.Destination)
	}
	for key, value := range outcome.Answers {
		if value == nil {
			continue
		}
		values.Set(key, fmt.Sprint(value))
	}
	return values.Encode()
}

func prettyPrint(outcome Outcome) string {
	var b strings.Builder
	if outcome.Action != "" {
		fmt.Fprintf(&b, "action=%s\n", outcome.Action)
	}
	if outcome.Destination != "" {
		fmt.Fprintf(&b, "destination=%s\n", outcome.Destination)
	}
	fmt.Fprintf(&b, "valid=%t\n", outcome.Valid)

	keys := make([]string, 0, len(outcome.Answers))
	for key := range outcome.Answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := outcome.Answers[key]
		if value == nil {
			value = ""
		}
		fmt.Fprintf(&b, "%s=%v\n", key, value)
	}
	return b.String()
}
