package safety

import (
	"regexp"
	"strings"
)

// Keyword and pattern tables for the guardrail engine. All checks are plain
// keyword/regex tests; there is no ML classification anywhere in this layer.

var crisisKeywords = []string{
	"suicide", "suicidal", "kill myself", "end my life", "self-harm",
	"self harm", "hurt myself", "don't want to live", "dont want to live",
	"end it all", "no reason to live",
}

var abuseKeywords = []string{
	"abuse", "abusing", "abusive", "violence", "violent", "assault",
	"being hit", "hits me", "hurting me",
}

var distressKeywords = []string{
	"hopeless", "worthless", "unbearable", "can't go on", "cant go on",
	"desperate", "falling apart", "breaking down", "can't cope", "cant cope",
}

var mentalHealthKeywords = []string{
	"depression", "depressed", "anxiety", "anxious", "panic attack",
	"trauma", "ptsd", "bipolar", "ocd", "eating disorder", "insomnia",
	"burnout", "grief",
}

var medicalKeywords = []string{
	"medication", "prescription", "diagnosis", "diagnose", "symptom",
	"chronic pain", "blood pressure", "thyroid", "hormone", "migraine",
	"antidepressant", "dosage", "illness", "disease", "treatment",
}

var liveSessionKeywords = []string{
	"energy healing", "chakra", "past life regression", "regression",
	"reiki", "aura", "breathwork session", "sound healing",
}

// adviceSeeking marks phrasing that asks the bot for direct guidance.
var adviceSeeking = regexp.MustCompile(
	`(?i)\b(should i|what should|can you (help|tell) me|how (do|can) i (treat|cure|fix|manage|deal with)|` +
		`what (can|do) i (take|do)|is it (safe|ok|okay)|recommend|advice|advise)\b`)

// safeRedirect matches a sentence that points the user at a professional.
// Such sentences are allowed to keep crisis/medical vocabulary.
var safeRedirect = regexp.MustCompile(
	`(?i)\b(speak|talk|reach out) (to|with) (a|your|an) |` +
		`\b(consult|see|contact) (a|your|an) (doctor|physician|therapist|counsellor|counselor|professional|gp|specialist)|` +
		`\bseek (professional|medical|qualified) (help|support|advice|care)|` +
		`\b(licensed|qualified|medical|mental health) (professional|practitioner|provider)|` +
		`\bcrisis (line|hotline|service)|\bemergency services\b|\b988\b|\bsamaritans\b`)

// unsafeAdvice matches a sentence that states or implies direct medical or
// therapeutic guidance. One hit poisons the entire response.
var unsafeAdvice = regexp.MustCompile(
	`(?i)\b(you should (take|stop|start|increase|reduce|quit)|try taking|` +
		`stop taking|start taking|i (recommend|suggest) (taking|stopping)|` +
		`this (will|can) (cure|heal|treat|fix)|(cures|heals|treats) your|` +
		`you (don'?t|do not) need (a|your) (doctor|therapist|medication)|` +
		`instead of (seeing|visiting) (a|your) (doctor|therapist)|` +
		`(increase|decrease|adjust) your (dose|dosage|medication))\b`)

// piiRequest matches any request for personal information in bot output.
var piiRequest = regexp.MustCompile(
	`(?i)\b((what is|what'?s|share|send|give me|tell me|provide) your ` +
		`(full name|phone|phone number|email|email address|home address|address|date of birth|card|credit card|bank)|` +
		`your (phone number|email address|home address) (is|please))\b`)

// judgmentalTime matches "N years is a long time" style phrasing, full
// sentence scope, capturing the grammatical subject so the rewrite keeps it.
var judgmentalTime = regexp.MustCompile(
	`(?i)\b((?:[a-z]+[- ])?(?:years?|months?|weeks?|decades?)|that)('?s| is| has been) (?:a )?(?:really |very |such a )?long time\b`)

// judgmentalTimeReplacement preserves the captured subject and verb.
const judgmentalTimeReplacement = `$1$2 a meaningful amount of time`

// sentenceBoundary splits a response into sentences for sentence-scoped
// output filtering.
var sentenceBoundary = regexp.MustCompile(`(?m)([^.!?\n]+[.!?]+|[^.!?\n]+$)`)

func containsAnyKeyword(lower string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return k, true
		}
	}
	return "", false
}

func countKeywords(lower string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			n++
		}
	}
	return n
}
