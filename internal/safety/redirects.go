package safety

// Fixed redirect texts. User-visible failures and redirects are always
// complete, polite sentences with a suggested next action.
const (
	CrisisRedirect = "I'm really glad you reached out, and I want you to know that what you're feeling matters. " +
		"I'm not able to support you with this, but trained people are available right now. " +
		"Please contact your local crisis line — in the US you can call or text 988 — or reach out to someone you trust. " +
		"You don't have to carry this alone."

	TherapyRedirect = "Thank you for sharing that with me. What you're describing deserves real, personal support, " +
		"and a licensed therapist or counsellor is the right person to walk through it with you. " +
		"I'd warmly encourage you to reach out to a mental health professional. " +
		"In the meantime, I'm happy to share what our wellness programs offer around gentle daily practices."

	MedicalRedirect = "I appreciate you asking, but health questions like this really belong with your doctor or " +
		"another qualified medical professional — they can look at your whole picture in a way I can't. " +
		"Please do check in with them. If you'd like, I can tell you about our general wellness offerings instead."

	LiveSessionRedirect = "That's a beautiful area to explore, and it's best experienced live with one of our practitioners " +
		"rather than over chat. I'd recommend joining one of our upcoming live sessions — would you like to see " +
		"what's on the calendar?"

	PIIRedirect = "I don't ask for personal details like phone numbers or addresses here. " +
		"If you'd like to get in touch with the team directly, the contact page on our website is the safest way. " +
		"Is there anything else I can help you with?"

	SafetyRedirect = "I care about getting this right for you, and the safest answer is a personal one: please speak " +
		"with a qualified professional about this. If you'd like, I can share what our programs and live sessions " +
		"offer for general wellbeing."
)
