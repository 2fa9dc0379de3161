package vocab

// Keywords is the closed keyword set shared by every vocabulary, in canonical order.
var Keywords = []string{
	"var",
	"fun",
	"print",
	"if",
	"else",
	"while",
	"for",
	"return",
	"and",
	"class",
	"or",
	"super",
	"this",
}

var descriptions = map[string]string{
	"var":    "Variable declaration",
	"fun":    "Function declaration",
	"print":  "Print statement",
	"if":     "Conditional statement",
	"else":   "Alternative conditional branch",
	"while":  "Loop with condition",
	"for":    "Loop statement",
	"return": "Return from function",
	"and":    "Logical and",
	"class":  "Class declaration",
	"or":     "Logical or",
	"super":  "Reference to superclass",
	"this":   "Reference to current instance",
}

// IsKeyword reports whether word belongs to the keyword set.
// Keywords are case-sensitive: only the lowercase spelling is recognised.
func IsKeyword(word string) bool {
	_, ok := descriptions[word]
	return ok
}

// DefaultDescription returns the built-in description of a keyword.
func DefaultDescription(keyword string) string {
	return descriptions[keyword]
}
