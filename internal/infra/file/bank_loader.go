package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"skill-evolve-service/internal/domain"
)

// tsvColumns is the minimum column count of a question row:
// no, round, format, text, A, B, C, D, answer, explanation.
const tsvColumns = 10

// BankLoader reads banks from dir. A bank id maps to <id>.tsv, <id>.yaml or <id>.yml.
type BankLoader struct {
	dir string
}

func NewBankLoader(dir string) *BankLoader {
	return &BankLoader{dir: dir}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) (domain.Bank, error) {
	if bankID == "" || strings.ContainsAny(bankID, `/\`) {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	for _, ext := range []string{".tsv", ".yaml", ".yml"} {
		path := filepath.Join(l.dir, bankID+ext)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.Bank{}, fmt.Errorf("open bank: %w", err)
		}
		defer f.Close()

		var bank domain.Bank
		if ext == ".tsv" {
			bank, err = ParseTSV(f)
		} else {
			bank, err = parseYAML(f)
		}
		if err != nil {
			return domain.Bank{}, fmt.Errorf("parse %s: %w", path, err)
		}
		bank.ID = bankID
		return bank, nil
	}
	return domain.Bank{}, domain.ErrBankNotFound
}

// ParseTSV reads a tab-separated bank with a header row. Rows with fewer than ten columns are skipped.
// Two optional trailing columns carry the skill category and the minimum level.
func ParseTSV(r io.Reader) (domain.Bank, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Bank{}, err
	}

	var bank domain.Bank
	for i, cols := range rows {
		if i == 0 || len(cols) < tsvColumns {
			continue
		}
		no, _ := strconv.Atoi(strings.TrimSpace(cols[0]))
		round, _ := strconv.Atoi(strings.TrimSpace(cols[1]))
		q := domain.QuestionSpec{
			ID:          fmt.Sprintf("r%d-q%d", round, no),
			No:          no,
			Round:       round,
			Kind:        domain.KindSingle,
			Format:      cols[2],
			Prompt:      cols[3],
			Answer:      cols[8],
			Explanation: cols[9],
		}
		q.Options, q.Choices = options(cols[2], cols[4:8])
		if len(cols) > 10 {
			q.Category = strings.TrimSpace(cols[10])
		}
		if len(cols) > 11 {
			q.MinLevel, _ = strconv.Atoi(strings.TrimSpace(cols[11]))
		}
		bank.Questions = append(bank.Questions, q)
	}
	return bank, nil
}

// options keeps the labels that have text. True/false questions only offer A and B.
func options(format string, texts []string) ([]string, map[string]string) {
	labels := []string{"A", "B", "C", "D"}
	if format == domain.FormatTrueFalse {
		labels = labels[:2]
	}
	var out []string
	choices := make(map[string]string, len(labels))
	for i, label := range labels {
		if texts[i] == "" {
			continue
		}
		out = append(out, label)
		choices[label] = texts[i]
	}
	return out, choices
}

func parseYAML(r io.Reader) (domain.Bank, error) {
	var bank domain.Bank
	if err := yaml.NewDecoder(r).Decode(&bank); err != nil {
		return domain.Bank{}, err
	}
	for i := range bank.Questions {
		q := &bank.Questions[i]
		if q.Kind == "" {
			q.Kind = domain.KindSingle
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("r%d-q%d", q.Round, q.No)
		}
	}
	return bank, nil
}
