package chat

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/haven-wellness/concierge/internal/domain"
	"github.com/haven-wellness/concierge/internal/patterns"
	"github.com/haven-wellness/concierge/internal/ports"
	"github.com/haven-wellness/concierge/internal/postprocess"
	"github.com/haven-wellness/concierge/internal/router"
	"github.com/haven-wellness/concierge/internal/safety"
)

// Fixed user-visible texts for the deterministic branches. Every failure mode
// is a complete, polite sentence with a suggested next step.
const (
	greetingText = "Hi there, I'm Haven 🌿 I can help you explore our upcoming events, " +
		"answer questions about our programs, or just point you in the right direction. " +
		"What would you like to know?"

	modelUnavailableText = "Our assistant is taking a short rest right now. " +
		"In the meantime, everything about our events and programs is on the website — " +
		"or just try me again in a few minutes."

	rateLimitedText = "We're getting a lot of love right now and I need a moment to catch up. " +
		"Please try again in a minute or two."

	genericApologyText = "I'm sorry, something went wrong on my end just now. " +
		"Please try asking again — or have a look at the website while I sort myself out."

	pickOneText = "Of course! Which one would you like to hear more about? " +
		"You can reply with its name or its number."

	navigateLostText = "I'd love to take you there, but I've lost track of which page we were " +
		"talking about. Could you tell me the event or program name again?"
)

const (
	defaultMaxTokens  = 700
	knowledgeTopK     = 5
	contextWindowSize = 10
)

// Service orchestrates one chat turn: guardrails, classification, retrieval,
// generation and post-processing. Stateless between turns; the caller supplies
// full history every time.
type Service struct {
	classifier *router.Classifier
	knowledge  ports.KnowledgeSearcher
	events     ports.EventService
	model      ports.ChatModel
	chain      *postprocess.Chain
	guardrail  *safety.Guardrail
	catalog    ports.Catalog
	sink       ports.ConversationSink
	log        *zap.Logger

	maxTokens int
}

func NewService(
	classifier *router.Classifier,
	knowledge ports.KnowledgeSearcher,
	events ports.EventService,
	model ports.ChatModel,
	chain *postprocess.Chain,
	guardrail *safety.Guardrail,
	catalog ports.Catalog,
	sink ports.ConversationSink,
	log *zap.Logger,
) *Service {
	return &Service{
		classifier: classifier,
		knowledge:  knowledge,
		events:     events,
		model:      model,
		chain:      chain,
		guardrail:  guardrail,
		catalog:    catalog,
		sink:       sink,
		log:        log,
		maxTokens:  defaultMaxTokens,
	}
}

// Respond processes one user message and returns the final response. It never
// returns an error to the transport: every failure mode maps to a fixed,
// user-appropriate message.
func (s *Service) Respond(ctx context.Context, sessionID, message string, history []domain.ChatMessage) domain.ChatResponse {
	return s.respond(ctx, sessionID, message, history, nil)
}

// RespondStream is Respond with incremental delivery. Deterministic branches
// emit their full text as a single chunk; the model-backed branch forwards raw
// model chunks as they arrive. The returned response carries the final
// post-processed text, which the transport must treat as authoritative.
func (s *Service) RespondStream(ctx context.Context, sessionID, message string, history []domain.ChatMessage, onChunk func(string)) domain.ChatResponse {
	return s.respond(ctx, sessionID, message, history, onChunk)
}

func (s *Service) respond(ctx context.Context, sessionID, message string, history []domain.ChatMessage, onChunk func(string)) domain.ChatResponse {
	// Input guardrail first: nothing downstream runs when it fires.
	if redirect, act := s.guardrail.CheckInput(message); redirect != "" {
		act.SessionID = sessionID
		s.sink.Activation(*act)
		resp := domain.ChatResponse{
			Text:       redirect,
			Intent:     domain.IntentOther,
			Confidence: 1.0,
			Flags:      []string{act.Rule},
		}
		s.emit(onChunk, resp.Text)
		s.logTurn(sessionID, message, resp)
		return resp
	}

	res := s.classifier.Classify(message, history)

	// Explicit enrollment wording relabels the turn; the response itself
	// still flows through the knowledge path and the chain injects the
	// authoritative enrollment block.
	if postprocess.IsEnrollmentQuery(message) &&
		(res.Intent == domain.IntentKnowledge || res.Intent == domain.IntentHybrid ||
			res.Intent == domain.IntentProgramDetailRequest) {
		res.Intent = domain.IntentProgramEnrollment
	}

	resp := s.dispatch(ctx, message, history, res, onChunk)
	resp.Intent = coalesceIntent(resp.Intent, res.Intent)
	if resp.Confidence == 0 {
		resp.Confidence = res.Confidence
	}

	s.logTurn(sessionID, message, resp)
	return resp
}

func coalesceIntent(set, classified domain.Intent) domain.Intent {
	if set != "" {
		return set
	}
	return classified
}

func (s *Service) dispatch(ctx context.Context, message string, history []domain.ChatMessage, res domain.IntentResult, onChunk func(string)) domain.ChatResponse {
	switch res.Intent {
	case domain.IntentGreeting:
		s.emit(onChunk, greetingText)
		return domain.ChatResponse{Text: greetingText}

	case domain.IntentClarification:
		s.emit(onChunk, res.ClarificationQuestion)
		return domain.ChatResponse{Text: res.ClarificationQuestion}

	case domain.IntentFollowupSelect:
		return s.handleFollowupSelect(ctx, message, history, res, onChunk)

	case domain.IntentFollowupConfirm:
		return s.handleFollowupConfirm(ctx, message, history, res, onChunk)

	case domain.IntentEventDetailRequest:
		return s.handleEventSummary(ctx, res.Slot(domain.SlotEventName), onChunk)

	case domain.IntentProgramDetailRequest:
		return s.handleProgramSummary(ctx, message, history, res.Slot(domain.SlotProgramName), onChunk)

	case domain.IntentEventNavigate, domain.IntentProgramNavigate:
		return s.handleNavigate(ctx, res, onChunk)

	default:
		// EVENT, KNOWLEDGE, HYBRID, PROGRAM_ENROLLMENT, OTHER.
		return s.handleGenerated(ctx, message, history, res, onChunk)
	}
}

// handleFollowupSelect resolves "the second one" against the previous listing.
func (s *Service) handleFollowupSelect(ctx context.Context, message string, history []domain.ChatMessage, res domain.IntentResult, onChunk func(string)) domain.ChatResponse {
	lastBot := res.Slot(domain.SlotLastBotMessage)
	name := router.NumberedItemAt(lastBot, res.SlotInt(domain.SlotSelectionIndex))
	if name == "" {
		s.emit(onChunk, pickOneText)
		return domain.ChatResponse{Text: pickOneText}
	}

	if res.Slot(domain.SlotContextType) == "program" {
		if p, ok := s.catalog.ProgramByName(name); ok {
			text := s.programBlurb(ctx, message, history, p)
			s.emit(onChunk, text)
			return domain.ChatResponse{Text: text}
		}
		// The listing item wasn't a known program; fall back to knowledge.
		return s.handleGenerated(ctx, name, history, domain.IntentResult{Intent: domain.IntentKnowledge}, onChunk)
	}
	return s.handleEventSummary(ctx, name, onChunk)
}

// handleFollowupConfirm advances a follow-up flow one disclosure stage.
func (s *Service) handleFollowupConfirm(ctx context.Context, message string, history []domain.ChatMessage, res domain.IntentResult, onChunk func(string)) domain.ChatResponse {
	lastBot := res.Slot(domain.SlotLastBotMessage)
	contextType := res.Slot(domain.SlotContextType)
	stage := res.Slot(domain.SlotStage)

	if contextType == "event" {
		switch domain.EventStage(stage) {
		case domain.EventStageListingShown:
			if name := res.Slot(domain.SlotEventName); name != "" {
				return s.handleEventSummary(ctx, name, onChunk)
			}
			s.emit(onChunk, pickOneText)
			return domain.ChatResponse{Text: pickOneText}

		case domain.EventStageSummaryShown:
			if name := firstBoldSpan(lastBot); name != "" {
				return s.handleEventDetails(ctx, name, onChunk)
			}
		}
		// No resolvable subject; let the model continue the conversation.
		return s.handleGenerated(ctx, message, history, domain.IntentResult{Intent: domain.IntentEvent}, onChunk)
	}

	// Program flow: the response is model-generated but the chain enforces
	// the canonical CTA for the stage being advanced from.
	in := domain.IntentResult{Intent: domain.IntentKnowledge, Slots: map[string]any{}}
	if name := res.Slot(domain.SlotProgramName); name != "" {
		in.Slots[domain.SlotProgramName] = name
	} else if name := firstBoldSpan(lastBot); name != "" {
		in.Slots[domain.SlotProgramName] = name
	}
	return s.handleGeneratedStaged(ctx, message, history, in, domain.ProgramStage(stage), onChunk)
}

// handleEventSummary renders the deterministic Stage-1 event summary.
func (s *Service) handleEventSummary(ctx context.Context, name string, onChunk func(string)) domain.ChatResponse {
	event, err := s.events.GetByTitle(ctx, name)
	if err != nil || event == nil {
		return s.eventLookupFailure(name, err, onChunk)
	}
	text := renderEventSummary(event)
	s.emit(onChunk, text)
	return domain.ChatResponse{Text: text, Intent: domain.IntentEventDetailRequest}
}

// handleEventDetails renders the full verbatim event record.
func (s *Service) handleEventDetails(ctx context.Context, name string, onChunk func(string)) domain.ChatResponse {
	event, err := s.events.GetByTitle(ctx, name)
	if err != nil || event == nil {
		return s.eventLookupFailure(name, err, onChunk)
	}
	text := renderEventDetails(event)
	s.emit(onChunk, text)
	return domain.ChatResponse{Text: text, Intent: domain.IntentFollowupConfirm}
}

func (s *Service) eventLookupFailure(name string, err error, onChunk func(string)) domain.ChatResponse {
	var text string
	if errors.Is(err, domain.ErrCalendarUnavailable) {
		text = "Our calendar is taking a moment to respond — the events page on the website " +
			"has the live schedule, or try me again shortly."
	} else {
		text = fmt.Sprintf("I couldn't find \"%s\" on our upcoming calendar. "+
			"Would you like to see what's coming up instead?", name)
	}
	if err != nil {
		s.log.Warn("event lookup failed", zap.String("title", name), zap.Error(err))
	}
	s.emit(onChunk, text)
	return domain.ChatResponse{Text: text}
}

// handleProgramSummary answers a verbatim program-name query with a summary
// ending in the canonical more-details CTA.
func (s *Service) handleProgramSummary(ctx context.Context, message string, history []domain.ChatMessage, name string, onChunk func(string)) domain.ChatResponse {
	in := domain.IntentResult{
		Intent: domain.IntentProgramDetailRequest,
		Slots:  map[string]any{domain.SlotProgramName: name},
	}
	return s.handleGeneratedStaged(ctx, message, history, in, domain.ProgramStageListingShown, onChunk)
}

// programBlurb is the deterministic selection response for a program picked
// from a listing: a short intro plus the navigate CTA with the real page URL.
func (s *Service) programBlurb(ctx context.Context, message string, history []domain.ChatMessage, p *domain.Program) string {
	intro := fmt.Sprintf("**%s** is one of our programs", p.Name)
	if chunks := s.knowledge.Search(ctx, p.Name, 1); len(chunks) > 0 {
		if summary := firstSentences(chunks[0].Content, 2); summary != "" {
			intro = summary
		}
	}
	return intro + "\n\n" + router.FormatCTA(router.CTAProgramNavigate, p.InfoURL)
}

// handleNavigate resolves the authoritative URL for a confirmed navigation.
// The record wins over whatever link text appeared in the conversation.
func (s *Service) handleNavigate(ctx context.Context, res domain.IntentResult, onChunk func(string)) domain.ChatResponse {
	url := res.Slot(domain.SlotNavigateURL)
	lastBot := res.Slot(domain.SlotLastBotMessage)

	if res.Intent == domain.IntentEventNavigate {
		if name := firstBoldSpan(lastBot); name != "" {
			if event, err := s.events.GetByTitle(ctx, name); err == nil && event != nil && event.PageURL != "" {
				url = event.PageURL
			}
		}
	} else {
		if name := firstBoldSpan(lastBot); name != "" {
			if p, ok := s.catalog.ProgramByName(name); ok && p.InfoURL != "" {
				url = p.InfoURL
			}
		}
	}

	if url == "" {
		s.emit(onChunk, navigateLostText)
		return domain.ChatResponse{Text: navigateLostText}
	}
	text := "Wonderful — taking you there now! " + domain.NavigateMarker(url)
	s.emit(onChunk, text)
	return domain.ChatResponse{Text: text}
}

// handleGenerated is the retrieval-augmented model path with no CTA stage.
func (s *Service) handleGenerated(ctx context.Context, message string, history []domain.ChatMessage, res domain.IntentResult, onChunk func(string)) domain.ChatResponse {
	return s.generate(ctx, message, history, res, domain.ProgramStageNone, false, onChunk)
}

// handleGeneratedStaged is the same path with canonical CTA enforcement for a
// program follow-up stage.
func (s *Service) handleGeneratedStaged(ctx context.Context, message string, history []domain.ChatMessage, res domain.IntentResult, stage domain.ProgramStage, onChunk func(string)) domain.ChatResponse {
	return s.generate(ctx, message, history, res, stage, true, onChunk)
}

func (s *Service) generate(ctx context.Context, message string, history []domain.ChatMessage, res domain.IntentResult, stage domain.ProgramStage, stageSet bool, onChunk func(string)) domain.ChatResponse {
	wantsEvents := res.Intent == domain.IntentEvent || res.Intent == domain.IntentHybrid
	wantsKnowledge := res.Intent != domain.IntentEvent

	var eventContext string
	var lastEvent *domain.Event
	if wantsEvents {
		block, direct := s.buildEventContext(ctx, message, res.Slot(domain.SlotDateText))
		if direct {
			// A verbatim event record bypasses the model and the chain
			// entirely: nothing may paraphrase it.
			text := stripDirectMarkers(block)
			s.emit(onChunk, text)
			return domain.ChatResponse{Text: text, Intent: domain.IntentEventDetailRequest}
		}
		eventContext = block
		lastEvent = s.recentEvent(ctx, history)
	}

	var knowledgeContext string
	var sources []string
	if wantsKnowledge {
		query := message
		if name := res.Slot(domain.SlotProgramName); name != "" {
			query = name + " " + message
		}
		chunks := s.knowledge.Search(ctx, query, knowledgeTopK)
		knowledgeContext, sources = renderKnowledgeContext(chunks)
	}

	if !s.model.Configured() {
		s.emit(onChunk, modelUnavailableText)
		return domain.ChatResponse{Text: modelUnavailableText}
	}

	messages := buildModelMessages(eventContext, knowledgeContext, history, message)

	var raw string
	var err error
	if onChunk != nil {
		var b strings.Builder
		err = s.model.ChatCompletionStream(ctx, messages, s.maxTokens, func(chunk string) {
			b.WriteString(chunk)
			onChunk(chunk)
		})
		raw = b.String()
	} else {
		raw, err = s.model.ChatCompletion(ctx, messages, s.maxTokens)
	}
	if err != nil {
		text := modelFailureText(err)
		s.log.Error("model completion failed", zap.Error(err))
		s.emit(onChunk, text)
		return domain.ChatResponse{Text: text}
	}

	intent := res.Intent
	if strings.Contains(raw, domain.CalendarMarkerPrefix) {
		intent = domain.IntentBooking
	}

	final, activations := s.chain.Apply(ctx, postprocess.Input{
		Response:     raw,
		UserMessage:  message,
		History:      history,
		LastEvent:    lastEvent,
		ProgramStage: stage,
		StageSet:     stageSet,
	})

	flags := make([]string, 0, len(activations))
	for _, act := range activations {
		flags = append(flags, act.Rule)
		s.sink.Activation(act)
	}

	return domain.ChatResponse{
		Text:    final,
		Intent:  intent,
		Flags:   flags,
		Sources: sources,
	}
}

func modelFailureText(err error) string {
	if errors.Is(err, domain.ErrRateLimited) {
		return rateLimitedText
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "429") || strings.Contains(msg, "quota") {
		return rateLimitedText
	}
	if errors.Is(err, domain.ErrModelUnavailable) {
		return modelUnavailableText
	}
	return genericApologyText
}

// recentEvent finds the event most recently shown in history, for
// navigation-URL correction and calendar booking.
func (s *Service) recentEvent(ctx context.Context, history []domain.ChatMessage) *domain.Event {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != "assistant" {
			continue
		}
		name := firstBoldSpan(history[i].Content)
		if name == "" {
			continue
		}
		if _, score := patterns.BestMatch(name, s.catalog.EventTitles()); score < 0.5 {
			continue
		}
		if event, err := s.events.GetByTitle(ctx, name); err == nil && event != nil {
			return event
		}
		return nil
	}
	return nil
}

func renderKnowledgeContext(chunks []domain.KnowledgeChunk) (string, []string) {
	if len(chunks) == 0 {
		return "", nil
	}
	var b strings.Builder
	seen := map[string]bool{}
	var sources []string
	for _, ch := range chunks {
		b.WriteString(ch.Content)
		b.WriteString("\n---\n")
		if ch.Source != "" && !seen[ch.Source] {
			seen[ch.Source] = true
			sources = append(sources, ch.Source)
		}
	}
	return strings.TrimSuffix(b.String(), "\n---\n"), sources
}

// buildModelMessages assembles the system prompt plus a bounded history window
// and the current message.
func buildModelMessages(eventContext, knowledgeContext string, history []domain.ChatMessage, message string) []domain.ChatMessage {
	messages := []domain.ChatMessage{{Role: "system", Content: buildSystemPrompt(eventContext, knowledgeContext)}}
	start := len(history) - contextWindowSize
	if start < 0 {
		start = 0
	}
	messages = append(messages, history[start:]...)
	return append(messages, domain.ChatMessage{Role: "user", Content: message})
}

var boldSpan = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// firstBoldSpan extracts the first bold span of a message, which by rendering
// convention is the title of the item being discussed.
func firstBoldSpan(text string) string {
	if sub := boldSpan.FindStringSubmatch(text); sub != nil {
		return strings.TrimSpace(sub[1])
	}
	return ""
}

// stripDirectMarkers removes the direct-event wrapper, leaving the verbatim
// content untouched.
func stripDirectMarkers(text string) string {
	text = strings.ReplaceAll(text, domain.DirectEventOpen, "")
	return strings.ReplaceAll(text, domain.DirectEventClose, "")
}

func (s *Service) emit(onChunk func(string), text string) {
	if onChunk != nil {
		onChunk(text)
	}
}

func (s *Service) logTurn(sessionID, message string, resp domain.ChatResponse) {
	s.sink.Log(sessionID, message, resp.Text, resp.Intent, resp.Flags, resp.Sources)
}
