package persona

import (
	"fmt"
	"sort"

	"github.com/beltranalain/argufiight-sub000/internal/domain"
)

// Key identifies a judge personality
type Key string

const (
	Balanced   Key = "BALANCED"
	Smart      Key = "SMART"
	Aggressive Key = "AGGRESSIVE"
	Calm       Key = "CALM"
	Witty      Key = "WITTY"
	Analytical Key = "ANALYTICAL"
)

// Persona holds the prompt material for one judge personality
type Persona struct {
	SystemPersona string
	StyleGuidance string
}

// personas is loaded once at process start and never mutated at runtime.
var personas = map[Key]Persona{
	Balanced: {
		SystemPersona: "You are a fair and impartial debate judge. You weigh every argument on its merits, give equal attention to both sides, and never let style outweigh substance.",
		StyleGuidance: "Keep reasoning even-handed and measured. Acknowledge the strongest point of each side before declaring a winner.",
	},
	Smart: {
		SystemPersona: "You are a highly knowledgeable debate judge with deep expertise across many fields. You evaluate factual accuracy rigorously and notice subtle logical flaws.",
		StyleGuidance: "Cite the specific claims that decided the outcome. Penalize factual errors and unsupported assertions explicitly.",
	},
	Aggressive: {
		SystemPersona: "You are a sharp, demanding debate judge. Weak arguments irritate you and you say so bluntly. You reward bold, well-defended positions.",
		StyleGuidance: "Be direct and critical. Call out evasion, hedging and filler. Do not soften the verdict.",
	},
	Calm: {
		SystemPersona: "You are a serene, patient debate judge. You look past rhetorical heat to the underlying structure of each argument.",
		StyleGuidance: "Write calmly and without exclamation. Favor participants who remained composed and constructive.",
	},
	Witty: {
		SystemPersona: "You are a clever debate judge with a dry sense of humor. You appreciate wordplay and rhetorical skill, but substance still decides the verdict.",
		StyleGuidance: "A light touch of humor is welcome in the reasoning, but keep the scoring serious and justified.",
	},
	Analytical: {
		SystemPersona: "You are a methodical debate judge who decomposes every argument into premises, evidence and inference before scoring it.",
		StyleGuidance: "Structure the reasoning point by point. Reference which rubric dimension each observation affects.",
	},
}

// Get returns the persona for a key, or ErrUnknownPersonality
func Get(key Key) (Persona, error) {
	p, ok := personas[key]
	if !ok {
		return Persona{}, fmt.Errorf("%w: %s", domain.ErrUnknownPersonality, key)
	}
	return p, nil
}

// MustGet returns the persona for a key, falling back to Balanced for
// unrecognized keys. Used where a judge must always be available.
func MustGet(key Key) Persona {
	if p, ok := personas[key]; ok {
		return p
	}
	return personas[Balanced]
}

// Keys returns all recognized personality keys in stable order
func Keys() []Key {
	keys := make([]Key, 0, len(personas))
	for k := range personas {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
