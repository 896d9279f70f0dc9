package bank

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"multiplayer-quiz/internal/domain"
)

const sampleFile = `What is the capital of France?
A - Paris
B - London
C - Berlin
Answer: A

What is 2 + 2?
A - 3
B - 4
C - 5
Answer: b
`

func TestParseReader(t *testing.T) {
	questions, err := ParseReader(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	q := questions[0]
	if q.Text != "What is the capital of France?" || q.OptionA != "Paris" || q.Answer != domain.ChoiceA {
		t.Fatalf("unexpected first question %+v", q)
	}
	// The answer letter is upper-cased during parsing.
	if questions[1].Answer != domain.ChoiceB {
		t.Fatalf("expected normalized answer B, got %v", questions[1].Answer)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	input := `Broken question with no options
Answer: A

Valid question
A - one
B - two
C - three
Answer: C

Another broken one
A - only option
Answer: D
`
	questions, err := ParseReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected only the valid block, got %d", len(questions))
	}
	if questions[0].Text != "Valid question" || questions[0].Answer != domain.ChoiceC {
		t.Fatalf("unexpected question %+v", questions[0])
	}
}

func TestParseEmptyIsError(t *testing.T) {
	if _, err := ParseReader(strings.NewReader("no answers here\n")); !errors.Is(err, domain.ErrEmptyBank) {
		t.Fatalf("expected empty bank error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	questions, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFileSourceLoadSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.txt")
	if err := os.WriteFile(path, []byte(sampleFile), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	src := NewFileSource(path)
	questions, err := src.LoadSet(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}
