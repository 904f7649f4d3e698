// Package conversation drives the profile intake flow as an explicit
// state machine. A Session is a plain value: Advance never mutates its
// input and holds no hidden state, so the caller owns persistence and
// lifetime of every session.
package conversation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/scar796/nutrio/internal/models"
)

type State string

const (
	StateAwaitingName         State = "awaiting_name"
	StateAwaitingAge          State = "awaiting_age"
	StateAwaitingRegion       State = "awaiting_region"
	StateAwaitingDiet         State = "awaiting_diet"
	StateAwaitingMedical      State = "awaiting_medical"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateComplete             State = "complete"
	StateCancelled            State = "cancelled"
)

func (state State) Terminal() bool {
	return state == StateComplete || state == StateCancelled
}

type InputKind int

const (
	InputText InputKind = iota
	InputChoice
	InputConfirm
	InputRestart
	InputCancel
)

type Input struct {
	Kind  InputKind
	Value string
}

func Text(value string) Input   { return Input{Kind: InputText, Value: value} }
func Choice(value string) Input { return Input{Kind: InputChoice, Value: value} }

var (
	Confirm = Input{Kind: InputConfirm}
	Restart = Input{Kind: InputRestart}
	Cancel  = Input{Kind: InputCancel}
)

// Draft holds the partially collected profile fields.
type Draft struct {
	Name        string
	Age         int
	Region      models.Region
	Diet        models.DietType
	Medical     []models.MedicalTag
	MedicalNote string
}

type ChoiceOption struct {
	Label string
	Value string
}

// Reply is what the transport renders after a transition: a prompt,
// optional button choices, and the finalized profile once complete.
type Reply struct {
	Prompt    string
	Choices   []ChoiceOption
	Retry     bool
	Done      bool
	Cancelled bool
	Profile   *models.UserProfile
}

type Session struct {
	UserID     int64
	State      State
	Draft      Draft
	LastActive time.Time
}

func New(userID int64, now time.Time) (Session, Reply) {
	session := Session{UserID: userID, State: StateAwaitingName, LastActive: now}
	return session, Reply{Prompt: promptName}
}

const (
	promptName    = "Let's set up your profile. What's your full name?"
	promptAge     = "How old are you? Just type a number."
	promptRegion  = "Which region are you in?"
	promptDiet    = "What's your diet type?"
	promptMedical = "Any medical conditions I should know about? Pick one, type your own, or choose None."
)

// Advance applies one input to the session and returns the new session
// plus the reply to render. Invalid input re-enters the same state with a
// retry prompt and leaves previously collected fields untouched.
func Advance(session Session, input Input, now time.Time) (Session, Reply) {
	if session.State.Terminal() {
		return session, Reply{Prompt: "This conversation has ended. Send /start to begin again."}
	}

	session.LastActive = now

	if input.Kind == InputCancel {
		session.State = StateCancelled
		return session, Reply{Prompt: "Profile setup cancelled. Send /start whenever you're ready.", Cancelled: true}
	}

	switch session.State {
	case StateAwaitingName:
		return advanceName(session, input)
	case StateAwaitingAge:
		return advanceAge(session, input)
	case StateAwaitingRegion:
		return advanceRegion(session, input)
	case StateAwaitingDiet:
		return advanceDiet(session, input)
	case StateAwaitingMedical:
		return advanceMedical(session, input)
	case StateAwaitingConfirmation:
		return advanceConfirmation(session, input, now)
	}
	return session, Reply{Prompt: promptName}
}

func advanceName(session Session, input Input) (Session, Reply) {
	name := sanitizeName(input.Value)
	if len(name) < 2 || len(name) > 50 {
		return session, Reply{Prompt: "That name doesn't look right. Use 2-50 letters, numbers and spaces.", Retry: true}
	}
	session.Draft.Name = name
	session.State = StateAwaitingAge
	return session, Reply{Prompt: promptAge}
}

func advanceAge(session Session, input Input) (Session, Reply) {
	age, err := strconv.Atoi(strings.TrimSpace(input.Value))
	if err != nil || age < 1 || age > 120 {
		return session, Reply{Prompt: "Please type a realistic age between 1 and 120.", Retry: true}
	}
	session.Draft.Age = age
	session.State = StateAwaitingRegion
	return session, Reply{Prompt: promptRegion, Choices: regionChoices()}
}

func advanceRegion(session Session, input Input) (Session, Reply) {
	region, ok := models.ParseRegion(strings.ToLower(strings.TrimSpace(input.Value)))
	if !ok {
		return session, Reply{Prompt: "Please pick one of the supported regions.", Choices: regionChoices(), Retry: true}
	}
	session.Draft.Region = region
	session.State = StateAwaitingDiet
	return session, Reply{Prompt: promptDiet, Choices: dietChoices()}
}

func advanceDiet(session Session, input Input) (Session, Reply) {
	diet, ok := models.ParseDietType(strings.ToLower(strings.TrimSpace(input.Value)))
	if !ok {
		return session, Reply{Prompt: "Please pick one of the listed diet types.", Choices: dietChoices(), Retry: true}
	}
	session.Draft.Diet = diet
	session.State = StateAwaitingMedical
	return session, Reply{Prompt: promptMedical, Choices: medicalChoices()}
}

func advanceMedical(session Session, input Input) (Session, Reply) {
	note, tags, ok := ParseMedical(input.Value)
	if !ok {
		return session, Reply{
			Prompt:  "Please describe the condition in 3-200 characters, or choose None.",
			Choices: medicalChoices(),
			Retry:   true,
		}
	}
	session.Draft.MedicalNote = note
	session.Draft.Medical = tags
	session.State = StateAwaitingConfirmation
	return session, Reply{Prompt: summarize(session.Draft), Choices: confirmChoices()}
}

func advanceConfirmation(session Session, input Input, now time.Time) (Session, Reply) {
	value := strings.ToLower(strings.TrimSpace(input.Value))
	switch {
	case input.Kind == InputConfirm || value == "confirm":
		profile := finalize(session, now)
		session.State = StateComplete
		return session, Reply{
			Prompt:  fmt.Sprintf("All set, %s! Your profile is ready.", profile.Name),
			Done:    true,
			Profile: &profile,
		}
	case input.Kind == InputRestart || value == "restart":
		session.Draft = Draft{}
		session.State = StateAwaitingName
		return session, Reply{Prompt: "Starting over. " + promptName}
	}
	return session, Reply{Prompt: "Please confirm or restart.", Choices: confirmChoices(), Retry: true}
}

func finalize(session Session, now time.Time) models.UserProfile {
	return models.UserProfile{
		UserID:    session.UserID,
		Name:      session.Draft.Name,
		Age:       session.Draft.Age,
		Region:    session.Draft.Region,
		Diet:      session.Draft.Diet,
		Medical:   session.Draft.Medical,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func summarize(draft Draft) string {
	medical := draft.MedicalNote
	if medical == "" {
		medical = "none"
	}
	return fmt.Sprintf(
		"Here's what I have:\nName: %s\nAge: %d\nRegion: %s\nDiet: %s\nMedical: %s\n\nLook good?",
		draft.Name, draft.Age, draft.Region, draft.Diet, medical,
	)
}

// ParseMedical sanitizes a medical condition answer. "none" is an
// explicit sentinel for no conditions; anything else must sanitize to
// 3-200 characters and is mapped to the known exclusion tags where the
// text mentions them.
func ParseMedical(value string) (string, []models.MedicalTag, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "none" {
		return "", nil, true
	}

	sanitized := sanitizeMedical(value)
	if len(sanitized) < 3 || len(sanitized) > 200 {
		return "", nil, false
	}

	lowered := strings.ToLower(sanitized)
	var tags []models.MedicalTag
	for _, known := range []models.MedicalTag{models.MedicalDiabetes, models.MedicalThyroid} {
		if strings.Contains(lowered, string(known)) {
			tags = append(tags, known)
		}
	}
	if len(tags) == 0 {
		tags = append(tags, models.MedicalTag(lowered))
	}
	return sanitized, tags, true
}

func sanitizeName(value string) string {
	var builder strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			builder.WriteRune(r)
		}
	}
	return strings.TrimSpace(builder.String())
}

// sanitizeMedical strips control and markup characters, keeping plain
// description text.
func sanitizeMedical(value string) string {
	var builder strings.Builder
	for _, r := range value {
		switch {
		case unicode.IsControl(r):
		case strings.ContainsRune("<>*_`[]#~|\\", r):
		default:
			builder.WriteRune(r)
		}
	}
	return strings.TrimSpace(builder.String())
}

func regionChoices() []ChoiceOption {
	var choices []ChoiceOption
	for _, region := range models.Regions() {
		choices = append(choices, ChoiceOption{Label: title(string(region)), Value: string(region)})
	}
	return choices
}

func dietChoices() []ChoiceOption {
	var choices []ChoiceOption
	for _, diet := range models.DietTypes() {
		choices = append(choices, ChoiceOption{Label: title(string(diet)), Value: string(diet)})
	}
	return choices
}

func medicalChoices() []ChoiceOption {
	return []ChoiceOption{
		{Label: "Diabetes", Value: "diabetes"},
		{Label: "Thyroid", Value: "thyroid"},
		{Label: "None", Value: "none"},
	}
}

func confirmChoices() []ChoiceOption {
	return []ChoiceOption{
		{Label: "Confirm", Value: "confirm"},
		{Label: "Restart", Value: "restart"},
	}
}

func title(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
