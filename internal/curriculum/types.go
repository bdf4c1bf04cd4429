package curriculum

import "strings"

// LegacyAnalogyTarget is the term credited by an analogy that does not name
// its own target term.
const LegacyAnalogyTarget = "Instruct"

// Week is one unit of curriculum (a "level" in learner-facing text).
type Week struct {
	Week       int        `yaml:"week" json:"week"`
	Title      string     `yaml:"title" json:"title"`
	Morphology Morphology `yaml:"morphology" json:"morphology"`
	Vocabulary []Term     `yaml:"vocabulary" json:"vocabulary"`
	Activities Activities `yaml:"activities" json:"activities"`
}

// WithoutL1 returns a copy of the week with every L1 translation removed.
func (w Week) WithoutL1() Week {
	vocab := make([]Term, len(w.Vocabulary))
	for i, t := range w.Vocabulary {
		t.L1Translation = ""
		vocab[i] = t
	}
	w.Vocabulary = vocab
	return w
}

// Term is a vocabulary entry taught in a week.
type Term struct {
	Term          string    `yaml:"term" json:"term"`
	Definition    string    `yaml:"definition" json:"definition"`
	L1Translation string    `yaml:"l1_translation" json:"l1_translation,omitempty"`
	Contexts      []Context `yaml:"contexts,omitempty" json:"contexts,omitempty"`
}

// Context is an example sentence for a term, tagged with a school subject.
type Context struct {
	Subject  string `yaml:"subject" json:"subject"`
	Sentence string `yaml:"sentence" json:"sentence"`
}

// Morphology describes the root studied in a week.
type Morphology struct {
	Root     Morpheme            `yaml:"root" json:"root"`
	Prefixes []Morpheme          `yaml:"prefixes,omitempty" json:"prefixes"`
	Suffixes []Suffix            `yaml:"suffixes,omitempty" json:"suffixes"`
	Examples []MorphologyExample `yaml:"examples,omitempty" json:"examples"`
}

// Morpheme is a root or prefix with its meaning.
type Morpheme struct {
	Text    string `yaml:"text" json:"text"`
	Meaning string `yaml:"meaning" json:"meaning"`
}

// Suffix is a word ending with the part of speech it produces.
type Suffix struct {
	Text         string `yaml:"text" json:"text"`
	PartOfSpeech string `yaml:"part_of_speech" json:"partOfSpeech"`
}

// MorphologyExample is a word built from the week's root.
type MorphologyExample struct {
	Word       string   `yaml:"word" json:"word"`
	Parts      []string `yaml:"parts" json:"parts"`
	Definition string   `yaml:"definition" json:"definition"`
}

// Activities holds at most one instance of each contextual activity kind.
// A nil field means the week has no activity of that kind.
type Activities struct {
	WordConstruction *WordConstruction `yaml:"word_construction,omitempty" json:"wordConstruction,omitempty"`
	OddOneOut        *OddOneOut        `yaml:"odd_one_out,omitempty" json:"oddOneOut,omitempty"`
	WordSort         *WordSort         `yaml:"word_sort,omitempty" json:"wordSort,omitempty"`
	Analogy          *Analogy          `yaml:"analogy,omitempty" json:"analogy,omitempty"`
}

// WordConstruction asks learners to assemble words from morphemes.
type WordConstruction struct {
	Targets  []ConstructionTarget `yaml:"targets" json:"targets"`
	AllParts []string             `yaml:"all_parts" json:"allParts"`
}

// ConstructionTarget is one word to build, described by its definition.
type ConstructionTarget struct {
	Definition string   `yaml:"definition" json:"definition"`
	Parts      []string `yaml:"parts" json:"parts"`
}

// Word returns the target word, i.e. its parts concatenated.
func (t ConstructionTarget) Word() string {
	return strings.Join(t.Parts, "")
}

// OddOneOut is a sequence of four-word puzzles.
type OddOneOut struct {
	Sets []OddOneOutSet `yaml:"sets" json:"sets"`
}

// OddOneOutSet is one puzzle: four words, one of which does not belong.
type OddOneOutSet struct {
	Words     []string `yaml:"words" json:"words"`
	OddOneOut string   `yaml:"odd_one_out" json:"oddOneOut"`
	Reason    string   `yaml:"reason" json:"reason"`
}

// WordSort asks learners to place words into categories.
type WordSort struct {
	Categories []string   `yaml:"categories" json:"categories"`
	Words      []SortWord `yaml:"words" json:"words"`
}

// SortWord is a word with its canonical category.
type SortWord struct {
	Text     string `yaml:"text" json:"text"`
	Category string `yaml:"category" json:"category"`
}

// Analogy is a single fill-in-the-blank analogy.
type Analogy struct {
	SentencePrefix string   `yaml:"sentence_prefix" json:"sentencePrefix"`
	SentenceSuffix string   `yaml:"sentence_suffix" json:"sentenceSuffix"`
	CorrectAnswer  string   `yaml:"correct_answer" json:"correctAnswer"`
	Distractors    []string `yaml:"distractors" json:"distractors"`
	// TargetTerm is the vocabulary term credited with the "test" flag when the
	// analogy is answered correctly.
	TargetTerm string `yaml:"target_term,omitempty" json:"targetTerm,omitempty"`
}

// CreditedTerm returns the term to credit on a correct answer.
func (a Analogy) CreditedTerm() string {
	if a.TargetTerm == "" {
		return LegacyAnalogyTarget
	}
	return a.TargetTerm
}
