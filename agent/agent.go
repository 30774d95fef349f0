// Package agent holds the conversational core: an ordered keyword intent
// classifier, a template renderer over the active company profile, and the
// disk-persisted pattern log.
package agent

import (
	"errors"
	"strings"
	"sync"

	"github.com/navin54005-stack/dynamic-ai-voice-agent/models"
)

type Intent string

const (
	IntentGreeting           Intent = "greeting"
	IntentAboutCompany       Intent = "about_company"
	IntentServicesInquiry    Intent = "services_inquiry"
	IntentContactRequest     Intent = "contact_request"
	IntentDeferral           Intent = "deferral"
	IntentGratitude          Intent = "gratitude"
	IntentAutomationInterest Intent = "automation_interest"
	IntentDefault            Intent = "default"
)

// IntentRule pairs an intent with its keyword set. Rules are evaluated in
// slice order and the first match wins, so the order is part of the contract:
// "thanks for your help" lands in services_inquiry because "help" is tested
// before the gratitude keywords.
type IntentRule struct {
	Intent   Intent
	Keywords []string
}

func DefaultIntentRules() []IntentRule {
	return []IntentRule{
		{IntentGreeting, []string{"hello", "hi", "hey"}},
		{IntentAboutCompany, []string{"company", "about", "who"}},
		{IntentServicesInquiry, []string{"service", "help", "offer", "course"}},
		{IntentContactRequest, []string{"contact", "phone", "email"}},
		{IntentDeferral, []string{"busy", "later"}},
		{IntentGratitude, []string{"thank", "thanks"}},
		{IntentAutomationInterest, []string{"ai", "robotic", "automation"}},
	}
}

// Classify buckets an utterance by substring containment against each rule's
// keywords in order. Total: anything unmatched is IntentDefault.
func Classify(input string, rules []IntentRule) Intent {
	in := strings.ToLower(strings.TrimSpace(input))
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(in, kw) {
				return r.Intent
			}
		}
	}
	return IntentDefault
}

// Render produces the fixed reply for an intent from the profile. Pure: the
// same (intent, profile) always yields the same string.
func Render(intent Intent, p models.CompanyProfile) string {
	switch intent {
	case IntentGreeting:
		return "Hello! This is " + p.ContactPerson + " from " + p.Name + ". How can I help you today?"
	case IntentAboutCompany:
		return p.Name + " specializes in " + p.Industry + " and " + p.Services + "."
	case IntentServicesInquiry:
		return "We offer " + p.Services + " for " + p.Industry + " companies. What interests you most?"
	case IntentContactRequest:
		return "You can reach " + p.Name + " directly. at the phone no. of company or at the email"
	case IntentDeferral:
		return "I understand, " + p.ContactPerson + " from " + p.Name + ". When would be better?"
	case IntentGratitude:
		return "You're welcome from " + p.Name + "! Anything else I can help with?"
	case IntentAutomationInterest:
		return "At " + p.Name + ", we specialize in " + p.Services + " for " + p.Industry + ". How can we help?"
	default:
		return "Thanks from " + p.ContactPerson + " at " + p.Name + ". How can we help with your " + p.Industry + " needs?"
	}
}

// ErrNoCompanyData is returned when a reply is requested before any dataset
// has been ingested for the session.
var ErrNoCompanyData = errors.New("no company data loaded")

// VoiceAgent is the per-session conversational state: the active profile plus
// the dataset it came from. The pattern log is shared across sessions.
type VoiceAgent struct {
	mu       sync.Mutex
	loaded   bool
	profile  models.CompanyProfile
	columns  []string
	mapping  map[string]string
	rules    []IntentRule
	patterns *PatternLog
}

func New(patterns *PatternLog) *VoiceAgent {
	return &VoiceAgent{
		profile:  models.DefaultProfile(),
		rules:    DefaultIntentRules(),
		patterns: patterns,
	}
}

// LoadCompanyData replaces the agent's dataset and derives a fresh profile
// from its first record.
func (a *VoiceAgent) LoadCompanyData(records []map[string]string, columns []string, mapping map[string]string, profile models.CompanyProfile) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.columns = columns
	a.mapping = mapping
	a.profile = profile
	a.loaded = true
}

func (a *VoiceAgent) HasCompanyData() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded
}

func (a *VoiceAgent) Profile() models.CompanyProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile
}

// Respond classifies the utterance, renders the reply from the active
// profile, and journals the pair. Fails only when no dataset is loaded; a
// pattern-log write problem never blocks the reply.
func (a *VoiceAgent) Respond(input string) (string, error) {
	a.mu.Lock()
	if !a.loaded {
		a.mu.Unlock()
		return "", ErrNoCompanyData
	}
	profile := a.profile
	rules := a.rules
	a.mu.Unlock()

	reply := Render(Classify(input, rules), profile)
	if a.patterns != nil {
		a.patterns.Append(input, reply)
	}
	return reply, nil
}
