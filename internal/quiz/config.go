package quiz

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question. A question that
	// fails any of them is dropped from the set.
	Validators []Validator

	// MaxTokens is the token budget for one quiz response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
			&AnswerMatchValidator{},
		},
		MaxTokens:   4096,
		Temperature: 0.5,
	}
}
