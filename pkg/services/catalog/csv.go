package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

var (
	timekeeperColumns = []string{"TIMEKEEPER_NAME", "TIMEKEEPER_CLASSIFICATION", "TIMEKEEPER_ID", "RATE"}
	taskColumns       = []string{"TASK_CODE", "ACTIVITY_CODE", "DESCRIPTION"}
)

// LoadTimekeepers parses a timekeeper roster CSV. Columns may appear in
// any order; extra columns are ignored.
func LoadTimekeepers(r io.Reader) ([]domain.Timekeeper, error) {
	records, index, err := readTable(r, timekeeperColumns)
	if err != nil {
		return nil, fmt.Errorf("timekeeper CSV must contain: %s: %w",
			strings.Join(timekeeperColumns, ", "), err)
	}

	var timekeepers []domain.Timekeeper
	for i, rec := range records {
		rate, err := strconv.ParseFloat(strings.TrimSpace(rec[index["RATE"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("timekeeper CSV row %d: invalid RATE %q", i+1, rec[index["RATE"]])
		}
		timekeepers = append(timekeepers, domain.Timekeeper{
			Name:           rec[index["TIMEKEEPER_NAME"]],
			Classification: rec[index["TIMEKEEPER_CLASSIFICATION"]],
			ID:             rec[index["TIMEKEEPER_ID"]],
			Rate:           rate,
		})
	}
	return timekeepers, nil
}

// LoadTasks parses a custom task/activity catalog CSV. An empty catalog
// is an error; a caller wanting the defaults should not upload one.
func LoadTasks(r io.Reader) ([]domain.TaskActivity, error) {
	records, index, err := readTable(r, taskColumns)
	if err != nil {
		return nil, fmt.Errorf("custom task/activity CSV must contain: %s: %w",
			strings.Join(taskColumns, ", "), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("custom task/activity CSV is empty")
	}

	tasks := make([]domain.TaskActivity, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, domain.TaskActivity{
			TaskCode:     rec[index["TASK_CODE"]],
			ActivityCode: rec[index["ACTIVITY_CODE"]],
			Description:  rec[index["DESCRIPTION"]],
		})
	}
	return tasks, nil
}

// readTable reads a header-first CSV and resolves the position of each
// required column.
func readTable(r io.Reader, required []string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", col)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return records, index, nil
}
