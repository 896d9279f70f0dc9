// Package bank loads question banks. The canonical on-disk format is the
// plain text one the game has always used: a question line, three option
// lines ("A - ...", "B - ...", "C - ..."), then an "Answer: X" line
// closing the block.
package bank

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"multiplayer-quiz/internal/domain"
)

// Loader fetches a question set from a backing store (file, Postgres,
// cache). Implementations live under internal/infra.
type Loader interface {
	LoadSet(ctx context.Context, setID string) ([]domain.Question, error)
}

// ParseReader parses the text format. Blocks missing the question text,
// any option or a valid answer letter are skipped; a source yielding zero
// questions is an error.
func ParseReader(r io.Reader) ([]domain.Question, error) {
	var questions []domain.Question
	var block []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Answer:") {
			block = append(block, line)
			continue
		}

		answer := domain.Choice(strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(line, "Answer:"))))
		if q, ok := buildQuestion(block, answer); ok {
			questions = append(questions, q)
		}
		block = block[:0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrEmptyBank
	}
	return questions, nil
}

func buildQuestion(block []string, answer domain.Choice) (domain.Question, bool) {
	q := domain.Question{Answer: answer}
	for i, line := range block {
		switch {
		case i == 0:
			q.Text = line
		case strings.HasPrefix(line, "A -"):
			q.OptionA = strings.TrimSpace(line[3:])
		case strings.HasPrefix(line, "B -"):
			q.OptionB = strings.TrimSpace(line[3:])
		case strings.HasPrefix(line, "C -"):
			q.OptionC = strings.TrimSpace(line[3:])
		}
	}
	if q.Text == "" || q.OptionA == "" || q.OptionB == "" || q.OptionC == "" || !q.Answer.Valid() {
		return domain.Question{}, false
	}
	return q, true
}

// LoadFile parses a bank file from disk.
func LoadFile(path string) ([]domain.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank file: %w", err)
	}
	defer f.Close()
	return ParseReader(f)
}

// FileSource adapts a bank file to the Loader interface. The set ID is
// ignored; a file holds exactly one set.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) LoadSet(_ context.Context, _ string) ([]domain.Question, error) {
	return LoadFile(s.path)
}
