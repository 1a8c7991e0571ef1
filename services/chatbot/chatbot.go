package chatbot

import (
	"math/rand/v2"
	"strings"

	"mindwell/models"
)

type topic struct {
	name     string
	keywords []string
	replies  []string
}

const crisisReply = "It sounds like you are going through something really painful. You don't have to face it alone. " +
	"If you are in immediate danger, call your local emergency number now, or contact a crisis line such as 988 (US) or 116 123 (UK & Ireland)."

var crisisKeywords = []string{
	"suicide", "suicidal", "kill myself", "end my life", "want to die",
	"self harm", "self-harm", "hurt myself", "no reason to live",
}

// topics are checked in order; the first with a matching keyword answers.
var topics = []topic{
	{
		name:     "greeting",
		keywords: []string{"hello", "hi ", "hey", "good morning", "good evening"},
		replies: []string{
			"Hi there! How are you feeling today?",
			"Hello! I'm here to listen. What's on your mind?",
		},
	},
	{
		name:     "anxiety",
		keywords: []string{"anxious", "anxiety", "panic", "nervous", "worried", "worry"},
		replies: []string{
			"Anxiety can feel overwhelming. Try breathing in for 4 seconds, holding for 4 and breathing out for 6.",
			"When worry builds up, naming five things you can see around you can help ground you.",
			"It's okay to feel anxious. Would it help to talk to one of our therapists?",
		},
	},
	{
		name:     "depression",
		keywords: []string{"depressed", "depression", "sad", "hopeless", "empty", "down"},
		replies: []string{
			"I'm sorry you're feeling this way. Taking the PHQ-9 check can help you understand your mood.",
			"Feeling low is hard. Small steps like a short walk or messaging a friend can make a difference.",
			"You matter. Talking to a professional can really help; you can book a session from the booking page.",
		},
	},
	{
		name:     "sleep",
		keywords: []string{"sleep", "insomnia", "tired", "awake at night", "can't sleep"},
		replies: []string{
			"A regular bedtime and no screens for an hour before bed can improve sleep.",
			"If your thoughts keep you awake, try writing them down before bed.",
		},
	},
	{
		name:     "stress",
		keywords: []string{"stress", "stressed", "overwhelmed", "burnout", "pressure"},
		replies: []string{
			"Stress is your body's way of responding to demands. Try breaking tasks into smaller steps.",
			"Taking short breaks during the day can help you reset. What's been stressing you lately?",
		},
	},
	{
		name:     "postnatal",
		keywords: []string{"baby", "postnatal", "postpartum", "pregnan", "new mum", "new mom"},
		replies: []string{
			"Becoming a parent brings big changes. The EPDS check can help you reflect on how you've been feeling.",
			"Many new parents struggle and it's not your fault. Our perinatal specialists are here to help.",
		},
	},
	{
		name:     "booking",
		keywords: []string{"book", "therapist", "appointment", "session", "counsel"},
		replies: []string{
			"You can book a video, phone or chat session with one of our therapists from the booking page.",
			"Our therapists have morning and afternoon slots. Head to the booking page to pick one.",
		},
	},
	{
		name:     "thanks",
		keywords: []string{"thank", "thanks", "appreciate"},
		replies: []string{
			"You're welcome. I'm here whenever you need to talk.",
			"Anytime. Take care of yourself.",
		},
	},
}

var fallbackReplies = []string{
	"I'm here to listen. Could you tell me a bit more?",
	"Thank you for sharing. How long have you been feeling this way?",
	"I'm not sure I understood. You can ask me about anxiety, sleep, stress or booking a therapist.",
}

// Bot answers messages with canned replies chosen by keyword.
type Bot struct {
	// Intn picks a random index in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
}

func New() *Bot {
	return &Bot{Intn: rand.IntN}
}

// Reply picks a response for message. Crisis language always gets the crisis reply.
func (b *Bot) Reply(message string) models.ChatReply {
	text := " " + strings.ToLower(strings.TrimSpace(message)) + " "

	if containsAny(text, crisisKeywords) {
		return models.ChatReply{Reply: crisisReply, Topic: "crisis", IsCrisis: true}
	}
	for _, t := range topics {
		if containsAny(text, t.keywords) {
			return models.ChatReply{Reply: t.replies[b.pick(len(t.replies))], Topic: t.name}
		}
	}
	return models.ChatReply{Reply: fallbackReplies[b.pick(len(fallbackReplies))], Topic: "fallback"}
}

func (b *Bot) pick(n int) int {
	if b.Intn == nil {
		return 0
	}
	return b.Intn(n)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
