package humanize

import "proofgate/internal/patterns"

var categorySuggestions = map[patterns.Category]string{
	patterns.CategoryContent:       "Replace claims of significance with the concrete fact, date or source behind them.",
	patterns.CategoryLanguage:      "Use plain words and direct verbs such as is, are and has instead of stock AI vocabulary.",
	patterns.CategoryStyle:         "Strip decorative formatting: fewer em dashes, bold phrases and emoji, and straight quotes.",
	patterns.CategoryCommunication: "Remove chat-style address to the reader and assistant disclaimers.",
	patterns.CategoryFiller:        "Delete filler phrases and hedges and state the point directly.",
}

const fallbackSuggestion = "Rewrite the passage in plain, specific language."

// SuggestionFor returns the fixed rewrite advice for a pattern category.
func SuggestionFor(category patterns.Category) string {
	if s, ok := categorySuggestions[category]; ok {
		return s
	}
	return fallbackSuggestion
}
