package quiz

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/p-n-ai/word-forge/internal/curriculum"
)

// minSubjectTerms is the smallest subject group that can supply the three
// matching words of an odd-one-out question.
const minSubjectTerms = 3

// Generator builds questions from a vocabulary pool. Generation never fails:
// a small or incomplete pool yields fewer questions or fewer options.
type Generator struct {
	src Source
}

// NewGenerator creates a generator drawing from src. A nil src uses the
// process-wide random generator.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// Generate produces the requested questions, grouped by kind in the order
// MCQ, odd-one-out, missing word.
func (g *Generator) Generate(pool []curriculum.Term, counts Counts) []Question {
	var qs []Question
	qs = append(qs, g.MCQ(pool, counts.MCQ)...)
	qs = append(qs, g.OddOneOut(pool, counts.OddOneOut)...)
	qs = append(qs, g.MissingWord(pool, counts.MissingWord)...)
	return qs
}

// MCQ asks for the term matching each definition.
func (g *Generator) MCQ(pool []curriculum.Term, count int) []Question {
	permuted := Shuffle(g.src, pool)
	n := min(count, len(permuted))

	qs := make([]Question, 0, max(n, 0))
	for _, correct := range permuted[:max(n, 0)] {
		options, idx := g.pickWithDistractors(permuted, correct.Term, MaxOptions-1)
		qs = append(qs, Question{
			Kind:         KindMCQ,
			Prompt:       fmt.Sprintf("Which word means \"%s\"?", correct.Definition),
			PromptL1:     fmt.Sprintf("Perkataan mana yang bermaksud \"%s\"?", correct.Definition),
			Options:      options,
			CorrectIndex: idx,
			CorrectTerm:  correct.Term,
		})
	}
	return qs
}

// OddOneOut groups terms by context subject and, for question i, pairs
// subject i with subject i+1 (round robin over qualifying subjects).
func (g *Generator) OddOneOut(pool []curriculum.Term, count int) []Question {
	groups := subjectGroups(pool)
	if len(groups) < 2 {
		return nil
	}

	var qs []Question
	for i := 0; i < count; i++ {
		mainGroup := groups[i%len(groups)]
		oddGroup := groups[(i+1)%len(groups)]

		words := Shuffle(g.src, mainGroup.terms)[:minSubjectTerms]

		var oddWord string
		for _, t := range Shuffle(g.src, oddGroup.terms) {
			if !slices.Contains(mainGroup.terms, t) {
				oddWord = t
				break
			}
		}
		if oddWord == "" {
			// Every term of the odd subject also belongs to the main one.
			continue
		}

		options := Shuffle(g.src, append(words, oddWord))
		qs = append(qs, Question{
			Kind:         KindOddOneOut,
			Prompt:       "Which word does not belong with the others?",
			PromptL1:     "Perkataan mana yang tidak tergolong dengan yang lain?",
			Options:      options,
			CorrectIndex: slices.Index(options, oddWord),
			CorrectTerm:  oddWord,
			Explanation:  fmt.Sprintf("%s relates to %s, while the others relate to %s", oddWord, oddGroup.subject, mainGroup.subject),
		})
	}
	return qs
}

// MissingWord blanks the term out of its first context sentence. Terms
// without a usable context are skipped and not replaced, so fewer questions
// than requested may be returned.
func (g *Generator) MissingWord(pool []curriculum.Term, count int) []Question {
	permuted := Shuffle(g.src, pool)
	n := min(count, len(permuted))

	var qs []Question
	for _, correct := range permuted[:max(n, 0)] {
		if len(correct.Contexts) == 0 {
			continue
		}
		sentence := correct.Contexts[0].Sentence
		cloze, ok := Cloze(sentence, correct.Term)
		if !ok {
			continue
		}

		options, idx := g.pickWithDistractors(permuted, correct.Term, MaxOptions-1)
		qs = append(qs, Question{
			Kind:         KindMissingWord,
			Prompt:       fmt.Sprintf("Complete the sentence: \"%s\"", cloze),
			PromptL1:     fmt.Sprintf("Lengkapkan ayat: \"%s\"", cloze),
			Options:      options,
			CorrectIndex: idx,
			CorrectTerm:  correct.Term,
			Sentence:     sentence,
		})
	}
	return qs
}

// Cloze replaces every case-insensitive occurrence of term in sentence with
// Blank. It reports false when the term does not occur.
func Cloze(sentence, term string) (string, bool) {
	if term == "" {
		return sentence, false
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	if !re.MatchString(sentence) {
		return sentence, false
	}
	return re.ReplaceAllLiteralString(sentence, Blank), true
}

// pickWithDistractors returns the correct term plus up to k distinct
// distractors taken in order from permuted, shuffled, along with the index of
// the correct term.
func (g *Generator) pickWithDistractors(permuted []curriculum.Term, correct string, k int) ([]string, int) {
	options := []string{correct}
	for _, t := range permuted {
		if len(options) > k {
			break
		}
		if slices.Contains(options, t.Term) {
			continue
		}
		options = append(options, t.Term)
	}

	options = Shuffle(g.src, options)
	return options, slices.Index(options, correct)
}

type subjectGroup struct {
	subject string
	terms   []string
}

// subjectGroups maps each context subject to the distinct terms tagged with
// it, keeping only subjects with enough terms. Subjects keep first-seen order.
func subjectGroups(pool []curriculum.Term) []subjectGroup {
	var groups []subjectGroup
	index := make(map[string]int)

	for _, t := range pool {
		for _, ctx := range t.Contexts {
			i, ok := index[ctx.Subject]
			if !ok {
				i = len(groups)
				index[ctx.Subject] = i
				groups = append(groups, subjectGroup{subject: ctx.Subject})
			}
			if !slices.Contains(groups[i].terms, t.Term) {
				groups[i].terms = append(groups[i].terms, t.Term)
			}
		}
	}

	return slices.DeleteFunc(groups, func(g subjectGroup) bool {
		return len(g.terms) < minSubjectTerms
	})
}
