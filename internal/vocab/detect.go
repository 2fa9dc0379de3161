package vocab

// KeywordNotation is the Classification name for plain keyword text.
const KeywordNotation = "keyword"

// Hint is one observed token suggesting a notation.
type Hint struct {
	Notation string
	Score    int
	Token    string
	Offset   int
}

// Evidence aggregates hints collected from a document.
type Evidence struct {
	hints []Hint
}

// NewEvidence creates an empty Evidence container.
func NewEvidence() *Evidence {
	return &Evidence{hints: make([]Hint, 0, 16)}
}

// Add appends a hint.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// Collect scans text for keywords and for glyphs of every vocabulary.
func Collect(text string, vocabs ...*Vocabulary) *Evidence {
	e := NewEvidence()
	if len(vocabs) == 0 {
		vocabs = Builtins()
	}
	for _, m := range vocabs[0].Scan(text, KeywordSide) {
		e.Add(Hint{Notation: KeywordNotation, Score: 1, Token: m.Text(), Offset: m.Start})
	}
	for _, v := range vocabs {
		for _, m := range v.Scan(text, GlyphSide) {
			e.Add(Hint{Notation: v.Name(), Score: 1, Token: m.Text(), Offset: m.Start})
		}
	}
	return e
}

// Classification is the result of scoring evidence for a document.
type Classification struct {
	Notation        string
	Vocabulary      *Vocabulary
	Score           int
	TotalScore      int
	Confidence      float64
	RunnerUp        string
	RunnerUpScore   int
	ObservedSignals int
}

// Glyphs reports whether the dominant notation is a glyph vocabulary.
func (c Classification) Glyphs() bool { return c.Vocabulary != nil }

// Classifier scores evidence and chooses a dominant notation. Callers apply
// their own thresholds.
type Classifier struct {
	Vocabularies []*Vocabulary
}

// Classify picks the notation with the highest score. Ties go to the notation
// seen first: keywords, then vocabularies in order.
func (c Classifier) Classify(e *Evidence) Classification {
	if e == nil || len(e.hints) == 0 {
		return Classification{}
	}
	vocabs := c.Vocabularies
	if len(vocabs) == 0 {
		vocabs = Builtins()
	}
	order := []string{KeywordNotation}
	byName := make(map[string]*Vocabulary, len(vocabs))
	for _, v := range vocabs {
		order = append(order, v.Name())
		byName[v.Name()] = v
	}

	scores := make(map[string]int, len(order))
	total, observed := 0, 0
	for _, h := range e.hints {
		observed++
		if h.Score <= 0 {
			continue
		}
		scores[h.Notation] += h.Score
		total += h.Score
	}

	best, bestScore := "", 0
	runner, runnerScore := "", 0
	for _, name := range order {
		score := scores[name]
		if score > bestScore {
			runner, runnerScore = best, bestScore
			best, bestScore = name, score
			continue
		}
		if score > runnerScore {
			runner, runnerScore = name, score
		}
	}

	conf := 0.0
	if total > 0 {
		conf = float64(bestScore) / float64(total)
	}
	return Classification{
		Notation:        best,
		Vocabulary:      byName[best],
		Score:           bestScore,
		TotalScore:      total,
		Confidence:      conf,
		RunnerUp:        runner,
		RunnerUpScore:   runnerScore,
		ObservedSignals: observed,
	}
}

// Detect classifies text against vocabs, or the built-ins when none are given.
func Detect(text string, vocabs ...*Vocabulary) Classification {
	if len(vocabs) == 0 {
		vocabs = Builtins()
	}
	return Classifier{Vocabularies: vocabs}.Classify(Collect(text, vocabs...))
}

// DetectGlyphs returns the glyph vocabulary that dominates text, if any glyph
// appears at all. Keyword hits are ignored.
func DetectGlyphs(text string, vocabs ...*Vocabulary) (*Vocabulary, bool) {
	if len(vocabs) == 0 {
		vocabs = Builtins()
	}
	e := NewEvidence()
	for _, h := range Collect(text, vocabs...).Hints() {
		if h.Notation != KeywordNotation {
			e.Add(h)
		}
	}
	c := Classifier{Vocabularies: vocabs}.Classify(e)
	return c.Vocabulary, c.Vocabulary != nil
}
