package activity_test

import (
	"errors"
	"testing"

	"github.com/p-n-ai/word-forge/internal/activity"
	"github.com/p-n-ai/word-forge/internal/curriculum"
	"github.com/p-n-ai/word-forge/internal/quiz"
	"github.com/p-n-ai/word-forge/internal/review"
)

var oddSets = curriculum.OddOneOut{Sets: []curriculum.OddOneOutSet{
	{Words: []string{"Infer", "Predict", "Guess", "Measure"}, OddOneOut: "Measure", Reason: "exact value"},
	{Words: []string{"Fact", "Evidence", "Data", "Feeling"}, OddOneOut: "Feeling", Reason: "subjective"},
}}

func TestOddOneOut_FirstSelectionLocks(t *testing.T) {
	o := activity.NewOddOneOut(oddSets)

	ok, err := o.Select("Guess")
	if err != nil || ok {
		t.Fatalf("Select(Guess) = %v, %v; want false, nil", ok, err)
	}
	if _, err := o.Select("Measure"); !errors.Is(err, activity.ErrInvalidTransition) {
		t.Errorf("second Select() error = %v, want ErrInvalidTransition", err)
	}

	st := o.State()
	if st.Chosen != "Guess" || st.Verdict != activity.VerdictIncorrect || st.Answer != "Measure" {
		t.Errorf("state = %+v", st)
	}
	if st.Reason == "" {
		t.Error("Reason not revealed")
	}
}

func TestOddOneOut_Lifecycle(t *testing.T) {
	o := activity.NewOddOneOut(oddSets)

	if st := o.State(); st.Answer != "" {
		t.Errorf("answer leaked before selection: %+v", st)
	}
	if err := o.Next(); !errors.Is(err, activity.ErrInvalidTransition) {
		t.Errorf("Next() before select error = %v", err)
	}

	if ok, _ := o.Select("Measure"); !ok {
		t.Error("Select(Measure) = false, want true")
	}
	if err := o.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if ok, _ := o.Select("Feeling"); !ok {
		t.Error("Select(Feeling) = false, want true")
	}
	if err := o.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if !o.Complete() {
		t.Error("Complete() = false after last set")
	}
	if got := o.State().Score; got != 2 {
		t.Errorf("Score = %d, want 2", got)
	}
}

func TestOddOneOut_UnknownWord(t *testing.T) {
	o := activity.NewOddOneOut(oddSets)
	if _, err := o.Select("Banana"); !errors.Is(err, activity.ErrUnknownWord) {
		t.Errorf("Select(Banana) error = %v, want ErrUnknownWord", err)
	}
	if st := o.State(); st.Phase != activity.PhasePresenting {
		t.Errorf("Phase = %q, want presenting", st.Phase)
	}
}

var sortData = curriculum.WordSort{
	Categories: []string{"Lab", "Rules"},
	Words: []curriculum.SortWord{
		{Text: "Observe", Category: "Lab"},
		{Text: "Test", Category: "Lab"},
		{Text: "Rule", Category: "Rules"},
	},
}

func TestWordSort_IncrementalRelate(t *testing.T) {
	tr := review.NewTracker(nil)
	s := activity.NewWordSort(sortData, tr)

	ok, err := s.Place("Observe", "Rules")
	if err != nil || ok {
		t.Fatalf("Place(Observe, Rules) = %v, %v; want false, nil", ok, err)
	}
	if _, found := tr.Get("Observe"); found {
		t.Error("wrong placement recorded a flag")
	}

	if ok, _ := s.Place("Observe", "Lab"); !ok {
		t.Error("re-placement Place(Observe, Lab) = false, want true")
	}
	if r, _ := tr.Get("observe"); !r.Relate {
		t.Error("relate flag not set on correct placement")
	}
	if st := s.State(); st.Placements["Observe"] != "Lab" {
		t.Errorf("placement = %q, want Lab", st.Placements["Observe"])
	}
}

func TestWordSort_CheckAndReset(t *testing.T) {
	tr := review.NewTracker(nil)
	s := activity.NewWordSort(sortData, tr)

	_, _ = s.Place("Observe", "Lab")
	if _, err := s.Check(); !errors.Is(err, activity.ErrInvalidTransition) {
		t.Errorf("Check() before all placed error = %v", err)
	}
	_, _ = s.Place("Test", "Rules")
	_, _ = s.Place("Rule", "Rules")
	if st := s.State(); st.Phase != activity.PhaseReady {
		t.Fatalf("Phase = %q, want ready", st.Phase)
	}

	v, err := s.Check()
	if err != nil || v != activity.VerdictIncorrect {
		t.Fatalf("Check() = %q, %v; want incorrect", v, err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if st := s.State(); st.Phase != activity.PhaseSorting || len(st.Placements) != 0 {
		t.Errorf("after Reset() state = %+v", st)
	}
	if r, _ := tr.Get("Observe"); !r.Relate {
		t.Error("Reset() cleared a mastery flag")
	}

	for _, w := range sortData.Words {
		_, _ = s.Place(w.Text, w.Category)
	}
	if v, _ := s.Check(); v != activity.VerdictCorrect {
		t.Errorf("Check() = %q, want correct", v)
	}
	if !s.Complete() {
		t.Error("Complete() = false")
	}
	if err := s.Reset(); !errors.Is(err, activity.ErrInvalidTransition) {
		t.Errorf("Reset() after correct error = %v", err)
	}
	if _, err := s.Place("Rule", "Lab"); !errors.Is(err, activity.ErrInvalidTransition) {
		t.Errorf("Place() after correct error = %v", err)
	}
}

func TestWordSort_UnknownInputs(t *testing.T) {
	s := activity.NewWordSort(sortData, nil)
	if _, err := s.Place("Banana", "Lab"); !errors.Is(err, activity.ErrUnknownWord) {
		t.Errorf("unknown word error = %v", err)
	}
	if _, err := s.Place("Test", "Kitchen"); !errors.Is(err, activity.ErrUnknownCategory) {
		t.Errorf("unknown category error = %v", err)
	}
}

var analogyData = curriculum.Analogy{
	SentencePrefix: "Instruction is to student as recipe is to",
	SentenceSuffix: ".",
	CorrectAnswer:  "Chef",
	Distractors:    []string{"Doctor", "Driver", "Pilot"},
	TargetTerm:     "Instruct",
}

func TestAnalogy_CorrectCreditsTargetTerm(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"configured", "Recipe", "Recipe"},
		{"legacy default", "", curriculum.LegacyAnalogyTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := analogyData
			data.TargetTerm = tt.target
			tr := review.NewTracker(nil)
			a := activity.NewAnalogy(data, tr, quiz.NewSeededSource(1))

			ok, err := a.Answer("Chef")
			if err != nil || !ok {
				t.Fatalf("Answer(Chef) = %v, %v", ok, err)
			}
			if r, _ := tr.Get(tt.want); !r.Test {
				t.Errorf("test flag not set on %q", tt.want)
			}
			if !a.Complete() {
				t.Error("Complete() = false")
			}
		})
	}
}

func TestAnalogy_SingleShot(t *testing.T) {
	tr := review.NewTracker(nil)
	a := activity.NewAnalogy(analogyData, tr, quiz.NewSeededSource(2))

	if got := len(a.State().Options); got != 4 {
		t.Fatalf("len(Options) = %d, want 4", got)
	}
	if ok, _ := a.Answer("Pilot"); ok {
		t.Error("Answer(Pilot) = true")
	}
	if _, err := a.Answer("Chef"); !errors.Is(err, activity.ErrInvalidTransition) {
		t.Errorf("second Answer() error = %v, want ErrInvalidTransition", err)
	}
	if a.Complete() {
		t.Error("Complete() = true after wrong answer")
	}
	if tr.Len() != 0 {
		t.Errorf("wrong answer recorded %v", tr.Records())
	}
	if st := a.State(); st.Answer != "Chef" || st.Verdict != activity.VerdictIncorrect {
		t.Errorf("state = %+v", st)
	}
}

func TestAnalogy_OptionsStable(t *testing.T) {
	a := activity.NewAnalogy(analogyData, nil, quiz.NewSeededSource(3))
	first := a.State().Options
	second := a.State().Options
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("options reshuffled: %v then %v", first, second)
		}
	}
}

func TestDailyRecall(t *testing.T) {
	questions := []quiz.Question{
		{Options: []string{"Identify", "Report"}, CorrectIndex: 0, CorrectTerm: "Identify"},
		{Options: []string{"Rule", "Test"}, CorrectIndex: 1, CorrectTerm: "Test"},
		{Options: []string{"Observe", "Relate"}, CorrectIndex: 0, CorrectTerm: "Observe"},
	}
	answers := []string{"Report", "Test", "Observe"}
	r := activity.NewDailyRecall(questions)

	for i, choice := range answers {
		st := r.State()
		if st.Phase != activity.PhaseAnswering || st.Index != i {
			t.Fatalf("state = %+v, want answering %d", st, i)
		}
		if st.Answer != "" {
			t.Errorf("answer leaked before answering: %+v", st)
		}
		if err := r.Next(); !errors.Is(err, activity.ErrInvalidTransition) {
			t.Errorf("Next() before answer error = %v", err)
		}

		ok, err := r.Answer(choice)
		if err != nil {
			t.Fatalf("Answer(%q) error = %v", choice, err)
		}
		if want := choice == questions[i].CorrectTerm; ok != want {
			t.Errorf("Answer(%q) = %v, want %v", choice, ok, want)
		}
		if _, err := r.Answer(choice); !errors.Is(err, activity.ErrInvalidTransition) {
			t.Errorf("second Answer() error = %v", err)
		}
		if err := r.Next(); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
	}

	if !r.Finished() {
		t.Error("Finished() = false")
	}
	if r.Score() != 2 {
		t.Errorf("Score() = %d, want 2", r.Score())
	}
}

func TestDailyRecall_FromGenerator(t *testing.T) {
	pool := []curriculum.Term{
		{Term: "Identify", Definition: "to recognise"},
		{Term: "Report", Definition: "to tell"},
		{Term: "Rule", Definition: "a principle"},
		{Term: "Test", Definition: "to check"},
	}
	r := activity.NewDailyRecall(quiz.NewGenerator(quiz.NewSeededSource(4)).MCQ(pool, 3))
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	if _, err := r.Answer("Banana"); !errors.Is(err, activity.ErrUnknownWord) {
		t.Errorf("Answer(Banana) error = %v, want ErrUnknownWord", err)
	}
}

func TestDailyRecall_Empty(t *testing.T) {
	r := activity.NewDailyRecall(nil)
	if !r.Finished() {
		t.Error("empty recall should be finished")
	}
	if _, err := r.Answer("x"); !errors.Is(err, activity.ErrInvalidTransition) {
		t.Errorf("Answer() on empty error = %v", err)
	}
}
