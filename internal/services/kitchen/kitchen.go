// Package kitchen provides step-by-step cooking mode: sessions built from a
// recipe, per-step guidance, timers and voice command matching.
package kitchen

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Recipe is the subset of a recipe cooking mode needs.
type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Step is one instruction enriched with timing and technique hints.
type Step struct {
	Number        int      `json:"step_number"`
	Instruction   string   `json:"instruction"`
	EstimatedTime string   `json:"estimated_time"`
	Tip           string   `json:"tips"`
	Temperature   string   `json:"temperature"`
	Techniques    []string `json:"techniques"`
}

// Session is an active cooking session. Sessions are not persisted.
type Session struct {
	ID            string    `json:"session_id"`
	Recipe        Recipe    `json:"recipe"`
	StartedAt     time.Time `json:"started_at"`
	CurrentStep   int       `json:"current_step"`
	TotalSteps    int       `json:"total_steps"`
	Timers        []Timer   `json:"timers"`
	Status        string    `json:"status"`
	EnhancedSteps []Step    `json:"enhanced_steps"`
}

// Guidance describes the step after the current one.
type Guidance struct {
	StepNumber             int    `json:"step_number"`
	Guidance               string `json:"guidance"`
	Tip                    string `json:"tip"`
	EstimatedTimeRemaining int    `json:"estimated_time_remaining"`
	VoiceCommand           string `json:"voice_command"`
}

// Timer is a countdown started by the cook.
type Timer struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Duration  int       `json:"duration"`
	StartedAt time.Time `json:"started_at"`
	EndsAt    time.Time `json:"ends_at"`
	Status    string    `json:"status"`
}

// VoiceReply is the answer to a spoken command.
type VoiceReply struct {
	Response   string `json:"response"`
	Recognized bool   `json:"command_recognized"`
}

const (
	DefaultTimerMinutes = 5
	DefaultTimerLabel   = "Cooking Timer"
	statusActive        = "active"

	// MaxStep is the highest step index NextStep accepts.
	MaxStep = 1000
)

// Kitchen builds cooking sessions. The zero value is not usable; use New.
type Kitchen struct {
	now   func() time.Time
	newID func() string
}

func New() *Kitchen {
	return &Kitchen{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// StartSession begins cooking mode for a recipe.
func (k *Kitchen) StartSession(r Recipe) Session {
	steps := make([]Step, len(r.Instructions))
	for i, instruction := range r.Instructions {
		steps[i] = Step{
			Number:        i + 1,
			Instruction:   instruction,
			EstimatedTime: estimateStepTime(instruction),
			Tip:           stepTip(instruction),
			Temperature:   temperature(instruction),
			Techniques:    techniques(instruction),
		}
	}

	return Session{
		ID:            "cook_" + k.newID(),
		Recipe:        r,
		StartedAt:     k.now().UTC(),
		TotalSteps:    len(r.Instructions),
		Timers:        []Timer{},
		Status:        statusActive,
		EnhancedSteps: steps,
	}
}

var progressTips = []string{
	"🔥 Heat control is key - medium heat works best for most sautéing",
	"🧂 Taste as you go and adjust seasoning gradually",
	"⏰ Don't rush the process - good food takes time",
	"🥄 Stir gently to preserve ingredient texture",
	"🌡️ Use a thermometer for perfect doneness",
}

// NextStep returns guidance for the step after current (zero based).
// current is clamped to [0, MaxStep]. The remaining-time estimate assumes a
// ten step recipe of three minutes a step.
func (k *Kitchen) NextStep(current int) Guidance {
	current = min(max(current, 0), MaxStep)
	return Guidance{
		StepNumber:             current + 1,
		Guidance:               fmt.Sprintf("Step %d guidance ready", current+1),
		Tip:                    progressTips[current%len(progressTips)],
		EstimatedTimeRemaining: max(0, (10-current)*3),
		VoiceCommand:           fmt.Sprintf("Alexa, set timer for %d minutes", 3+current),
	}
}

// NewTimer starts a timer. Non-positive durations and empty labels take defaults.
func (k *Kitchen) NewTimer(minutes int, label string) Timer {
	if minutes <= 0 {
		minutes = DefaultTimerMinutes
	}
	if strings.TrimSpace(label) == "" {
		label = DefaultTimerLabel
	}
	started := k.now().UTC()
	return Timer{
		ID:        "timer_" + k.newID(),
		Label:     label,
		Duration:  minutes,
		StartedAt: started,
		EndsAt:    started.Add(time.Duration(minutes) * time.Minute),
		Status:    statusActive,
	}
}

type voiceResponse struct {
	keyword string
	reply   string
}

// Matched in order; the first keyword contained in the command wins.
var voiceResponses = []voiceResponse{
	{"next step", "Moving to the next cooking step. Check your screen for details."},
	{"set timer", "What duration would you like for the timer?"},
	{"how long left", "You have approximately 15 minutes remaining."},
	{"temperature", "The recommended temperature is 180°C or medium heat."},
	{"help", "I can help with timers, next steps, temperatures, and cooking tips."},
	{"ingredients", "Here are the ingredients you need for this step..."},
	{"tips", "Here's a pro tip: taste as you cook and adjust seasoning gradually."},
}

const unknownCommand = "I didn't understand that command. Try 'next step', 'set timer', or 'help'."

// InterpretVoiceCommand matches a spoken command against known keywords.
func InterpretVoiceCommand(command string) VoiceReply {
	command = strings.ToLower(command)
	for _, r := range voiceResponses {
		if strings.Contains(command, r.keyword) {
			return VoiceReply{Response: r.reply, Recognized: true}
		}
	}
	return VoiceReply{Response: unknownCommand}
}

func estimateStepTime(instruction string) string {
	s := strings.ToLower(instruction)
	switch {
	case strings.Contains(s, "boil"):
		return "10-15 minutes"
	case strings.Contains(s, "sauté"), strings.Contains(s, "fry"):
		return "5-8 minutes"
	case strings.Contains(s, "chop"), strings.Contains(s, "dice"):
		return "3-5 minutes"
	case strings.Contains(s, "simmer"):
		return "15-20 minutes"
	case strings.Contains(s, "bake"):
		return "25-30 minutes"
	default:
		return "5 minutes"
	}
}

var stepTips = []string{
	"Keep ingredients at room temperature for even cooking",
	"Use a sharp knife for clean cuts",
	"Don't overcrowd the pan",
	"Season in layers for better flavor",
	"Let meat rest after cooking",
}

func stepTip(instruction string) string {
	return stepTips[utf8.RuneCountInString(instruction)%len(stepTips)]
}

func temperature(instruction string) string {
	s := strings.ToLower(instruction)
	switch {
	case strings.Contains(s, "medium"):
		return "Medium heat (180°C)"
	case strings.Contains(s, "high"):
		return "High heat (220°C)"
	case strings.Contains(s, "low"):
		return "Low heat (120°C)"
	default:
		return "Medium heat (180°C)"
	}
}

func techniques(instruction string) []string {
	s := strings.ToLower(instruction)
	var out []string
	for _, t := range []struct{ keyword, name string }{
		{"sauté", "sautéing"},
		{"boil", "boiling"},
		{"simmer", "simmering"},
		{"chop", "knife skills"},
	} {
		if strings.Contains(s, t.keyword) {
			out = append(out, t.name)
		}
	}
	if len(out) == 0 {
		return []string{"basic cooking"}
	}
	return out
}
