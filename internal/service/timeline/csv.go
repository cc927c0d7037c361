// Package timeline 时间线的 CSV 导入导出边界。
// 导入对表头与日期格式尽量宽容：表头归一化匹配，日期解析失败回退为当天。
package timeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
)

const isoDate = "2006-01-02"

// 宽松识别的日期格式，按顺序尝试
var dateLayouts = []string{
	isoDate,
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"1/2/2006",
}

// ExportCSV 导出时间线
func ExportCSV(phases []model.Phase) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Name", "Description", "Start Date", "End Date", "Duration", "Status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, phase := range phases {
		record := []string{
			phase.Name,
			phase.Description,
			phase.StartDate,
			phase.EndDate,
			strconv.Itoa(phase.Duration),
			phase.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ImportCSV 解析时间线。表头大小写/空格/标点不敏感；
// 起止日期都解析成功时工期按天数重算，否则取工期列；
// 日期解析失败回退为当天。id 按行序重排。
func ImportCSV(r io.Reader) ([]model.Phase, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败: %w", err)
	}
	if len(records) == 0 {
		return []model.Phase{}, nil
	}

	columns := mapColumns(records[0])
	today := time.Now().UTC().Format(isoDate)

	phases := make([]model.Phase, 0, len(records)-1)
	for i, record := range records[1:] {
		phase := model.Phase{
			ID:          i + 1,
			Name:        field(record, columns, "name"),
			Description: field(record, columns, "description"),
			Status:      field(record, columns, "status"),
		}
		if phase.Name == "" {
			phase.Name = fmt.Sprintf("Phase %d", i+1)
		}

		start, startOK := parseDateLoose(field(record, columns, "startdate"))
		end, endOK := parseDateLoose(field(record, columns, "enddate"))
		if startOK {
			phase.StartDate = start.Format(isoDate)
		} else {
			phase.StartDate = today
		}
		if endOK {
			phase.EndDate = end.Format(isoDate)
		} else {
			phase.EndDate = today
		}

		if startOK && endOK {
			phase.Duration = int(end.Sub(start).Hours() / 24)
		} else if raw := field(record, columns, "duration"); raw != "" {
			if d, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				phase.Duration = d
			}
		}

		phases = append(phases, phase)
	}
	return phases, nil
}

// mapColumns 归一化表头并映射到列下标
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		switch normalizeHeader(name) {
		case "name", "phase", "phasename":
			columns["name"] = i
		case "description", "desc":
			columns["description"] = i
		case "startdate", "start":
			columns["startdate"] = i
		case "enddate", "end", "finishdate":
			columns["enddate"] = i
		case "duration", "durationdays", "days":
			columns["duration"] = i
		case "status", "state":
			columns["status"] = i
		}
	}
	return columns
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "", "(", "", ")", "")
	return replacer.Replace(name)
}

func field(record []string, columns map[string]int, key string) string {
	index, ok := columns[key]
	if !ok || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func parseDateLoose(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
