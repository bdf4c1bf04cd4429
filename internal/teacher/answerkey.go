package teacher

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/word-forge/internal/quiz"
)

const (
	answerSheet  = "Answer Key"
	markingSheet = "Marking"
)

// AnswerKey builds the answer key workbook of a test: one sheet with every
// question and its answer, one with the marking scheme. The caller closes
// the returned file.
func AnswerKey(t quiz.Test) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", answerSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := writeAnswers(f, t); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeMarking(f, t); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteAnswerKey streams the answer key workbook to w.
func WriteAnswerKey(w io.Writer, t quiz.Test) error {
	f, err := AnswerKey(t)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeAnswers(f *excelize.File, t quiz.Test) error {
	header := []any{"No", "Type", "Question", "A", "B", "C", "D", "Answer", "Correct Term", "Explanation"}
	if err := f.SetSheetRow(answerSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, q := range t.Questions {
		row := []any{i + 1, string(q.Kind), q.Prompt}
		for j := range quiz.MaxOptions {
			if j < len(q.Options) {
				row = append(row, q.Options[j])
			} else {
				row = append(row, "")
			}
		}
		row = append(row, q.CorrectLetter(), q.CorrectTerm, explanation(q))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(answerSheet, cell, &row); err != nil {
			return fmt.Errorf("writing question %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	if err := f.SetCellStyle(answerSheet, "A1", "J1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetColWidth(answerSheet, "C", "C", 60); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return f.SetColWidth(answerSheet, "J", "J", 60)
}

func writeMarking(f *excelize.File, t quiz.Test) error {
	if _, err := f.NewSheet(markingSheet); err != nil {
		return fmt.Errorf("creating marking sheet: %w", err)
	}

	rows := [][]any{
		{"Test", Heading(t)},
		{"Total Questions", len(t.Questions)},
		{"Pass Mark (60%)", t.PassMark()},
	}
	if t.Kind == quiz.TestFormal {
		rows = append(rows, []any{}, []any{"Grade", "Performance", "Min", "Max"})
		for _, b := range t.Bands() {
			rows = append(rows, []any{b.Grade, b.Label, b.Min, b.Max})
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(markingSheet, cell, &row); err != nil {
			return fmt.Errorf("writing marking row %d: %w", i+1, err)
		}
	}
	return nil
}

// explanation is the answer-key note for a question.
func explanation(q quiz.Question) string {
	switch {
	case q.Explanation != "":
		return q.Explanation
	case q.Sentence != "":
		return fmt.Sprintf("Full sentence: \"%s\"", q.Sentence)
	}
	return ""
}
