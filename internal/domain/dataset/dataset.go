package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	ColumnEducation = "education"
	ColumnSkills    = "skills"
	ColumnInterests = "interests"
	ColumnCareer    = "recommended_career"
)

var (
	ErrMissingColumns = errors.New("dataset missing required columns")
	ErrEmptyDataset   = errors.New("dataset is empty")
	ErrEmptyLabel     = errors.New("dataset record has empty career label")
)

type Record struct {
	Education         string
	Skills            string
	Interests         string
	RecommendedCareer string
}

// CombinedText is the model input feature for a record.
func (r Record) CombinedText() string {
	return r.Education + " " + r.Skills + " " + r.Interests
}

// Parse reads a CSV dataset with a header row. Only the four required
// columns are read; identifier and name columns never reach a Record.
func Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0)
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlankRow(row) {
			continue
		}
		out = append(out, Record{
			Education:         field(row, idx[ColumnEducation]),
			Skills:            field(row, idx[ColumnSkills]),
			Interests:         field(row, idx[ColumnInterests]),
			RecommendedCareer: field(row, idx[ColumnCareer]),
		})
	}

	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

func Validate(records []Record) error {
	if len(records) == 0 {
		return ErrEmptyDataset
	}
	for i, r := range records {
		if strings.TrimSpace(r.RecommendedCareer) == "" {
			return fmt.Errorf("%w: record=%d", ErrEmptyLabel, i)
		}
	}
	return nil
}

func Labels(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.RecommendedCareer)
	}
	return out
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, 4)
	for i, h := range header {
		key := normalizeHeader(h)
		if _, seen := idx[key]; seen {
			continue
		}
		idx[key] = i
	}

	var missing []string
	for _, col := range []string{ColumnEducation, ColumnSkills, ColumnInterests, ColumnCareer} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
