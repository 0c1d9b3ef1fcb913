package suggest

// MaxWordCount is the largest candidate set size supported. Each mode's
// curated vocabulary holds more distinct words than this, so a full set can
// always be built without repeating an equivalent word.
const MaxWordCount = 48

// DefaultWordCount fills a 4x4 grid with one slot left for the refresh key.
const DefaultWordCount = 15

var sentenceStarters = []string{
	"I", "The", "It", "You", "We",
	"This", "That", "My", "What", "How",
	"Can", "Do", "Is", "Are", "Would",
	"Please", "Yes", "No", "When", "Where",
	"Why", "Who", "Help", "Thank", "Sorry",
}

var continuationWords = []string{
	"want", "need", "have", "feel", "think",
	"am", "is", "are", "was", "will",
	"can", "could", "would", "should", "might",
	"go", "come", "see", "know", "like",
	"good", "more", "help", "please", "now",
}

var extendedStarters = []string{
	"Actually", "Maybe", "Perhaps", "Well", "So",
	"Now", "Then", "First", "Also", "But",
	"However", "Although", "Because", "Since", "If",
	"After", "Before", "While", "Until", "Unless",
	"Could", "Should", "Must", "Might", "May",
	"Let's", "Hello", "Hi", "Okay", "Thanks",
	"Good", "Today", "Tomorrow", "Tonight", "There",
	"They", "He", "She", "Our", "Your",
	"Does", "Did", "Will", "Have", "Let",
	"Just", "Not", "Everyone", "Someone", "Nothing",
	"Everything", "All", "Here", "Oh", "Wait",
	"Stop", "Hey", "Which", "Whose",
}

var extendedContinuation = []string{
	"to", "the", "a", "it", "you",
	"me", "and", "not", "some", "get",
	"make", "eat", "drink", "sleep", "rest",
	"water", "food", "home", "today", "tomorrow",
	"later", "here", "there", "very", "really",
	"so", "too", "with", "for", "about",
	"out", "up", "down", "again", "something",
	"anything", "this", "that", "my", "your",
	"tired", "hungry", "thirsty", "happy", "sad",
	"okay", "sure", "thanks", "done", "ready",
	"better", "bad", "hurt", "pain", "bathroom",
	"outside", "inside", "family", "friend", "doctor",
	"nurse", "music", "TV", "talk", "wait",
	"stop", "yes", "no",
}

var punctuationPhrases = []string{
	"yes.", "no.", "okay.", "thanks!", "please.",
	"help!", "stop!", "more?", "why?", "what?",
	"now!", "done.", "sure.", "maybe.", "later.",
	"again?",
}

var emergencyBase = []string{
	"yes", "no", "okay", "help", "please",
	"more", "stop", "wait", "done", "thanks",
}

var emergencySuffixes = []string{"", ".", "!", "?"}

// vocabulary is the fixed word material of the fallback cascade.
type vocabulary struct {
	primary     map[Mode][]string
	extended    map[Mode][]string
	punctuation []string
	emergency   []string
}

var defaultVocabulary = vocabulary{
	primary: map[Mode][]string{
		ModeSentenceStart: sentenceStarters,
		ModeContinuation:  continuationWords,
	},
	extended: map[Mode][]string{
		ModeSentenceStart: extendedStarters,
		ModeContinuation:  extendedContinuation,
	},
	punctuation: punctuationPhrases,
	emergency:   emergencyBase,
}
