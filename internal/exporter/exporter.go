// Package exporter 业务案例 Excel 导出：每个项目一本工作簿，
// 包含概览、时间线、成本、商业模型与风险五个 sheet。
package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
	"github.com/SMEDTEC/2sanbusinesscase/internal/service/calculator"
)

const (
	sheetOverview   = "Overview"
	sheetTimeline   = "Timeline"
	sheetCosts      = "Costs"
	sheetCommercial = "Commercial Model"
	sheetRisks      = "Risks"
)

// 表头底色沿用前端主题色
const headerColor = "1976D2"

// BuildWorkbook 生成单个项目的工作簿
func BuildWorkbook(p *model.Project) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", sheetOverview); err != nil {
		return nil, err
	}
	for _, name := range []string{sheetTimeline, sheetCosts, sheetCommercial, sheetRisks} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	if err := fillOverview(f, p); err != nil {
		return nil, err
	}
	if err := fillTimeline(f, p.Phases, headerStyle); err != nil {
		return nil, err
	}
	if err := fillCosts(f, p, headerStyle); err != nil {
		return nil, err
	}
	if err := fillCommercial(f, p.CommercialModel, headerStyle); err != nil {
		return nil, err
	}
	if err := fillRisks(f, p, headerStyle); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// ExportFileName 导出文件名：项目名做安全化处理
func ExportFileName(p *model.Project) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = fmt.Sprintf("project-%d", p.ID)
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "")
	return replacer.Replace(name) + ".xlsx"
}

// SaveToDir 写入导出目录并返回完整路径
func SaveToDir(p *model.Project, dir string) (string, error) {
	f, err := BuildWorkbook(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, ExportFileName(p))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("保存导出文件失败: %w", err)
	}
	return path, nil
}

func fillOverview(f *excelize.File, p *model.Project) error {
	rows := [][]interface{}{
		{"Project", p.Name},
		{"Owner", p.Owner},
		{"Manufacturer", p.Manufacturer},
		{"Region", p.Region},
		{"Product Type", p.ProductType},
		{"Stage", p.Stage},
		{"Launch Date", p.LaunchDate},
		{"Description", p.Description},
		{"Objective", p.Objective},
		{"Target Market", p.TargetMarket},
		{"Key Features", p.KeyFeatures},
		{},
		{"Total Cost", p.TotalCost},
		{"Year 1 Revenue", p.Year1Revenue},
		{"Highest Risk Score", p.HighestRiskScore},
		{"Highest Risk", p.HighestRiskIdentification},
	}
	if err := writeRows(f, sheetOverview, 1, rows); err != nil {
		return err
	}
	return f.SetColWidth(sheetOverview, "A", "A", 20)
}

func fillTimeline(f *excelize.File, phases []model.Phase, headerStyle int) error {
	header := []interface{}{"Name", "Description", "Start Date", "End Date", "Duration (days)", "Status"}
	if err := writeHeader(f, sheetTimeline, header, headerStyle); err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(phases))
	for _, phase := range phases {
		rows = append(rows, []interface{}{
			phase.Name, phase.Description, phase.StartDate, phase.EndDate, phase.Duration, phase.Status,
		})
	}
	return writeRows(f, sheetTimeline, 2, rows)
}

func fillCosts(f *excelize.File, p *model.Project, headerStyle int) error {
	header := []interface{}{"Category", "Description", "Amount", "Year", "Phase", "Status"}
	if err := writeHeader(f, sheetCosts, header, headerStyle); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(p.Costs)+1)
	for _, cost := range p.Costs {
		if cost == nil {
			continue
		}
		rows = append(rows, []interface{}{
			cost.Category, cost.Description, cost.Amount, cost.Year, cost.Phase, cost.Status,
		})
	}
	rows = append(rows, []interface{}{"Total", "", p.TotalCost})
	return writeRows(f, sheetCosts, 2, rows)
}

func fillCommercial(f *excelize.File, m *model.CommercialModel, headerStyle int) error {
	if m == nil {
		return nil
	}

	row := 1
	for _, year := range m.Projections.Years {
		title := fmt.Sprintf("YEAR %d COMMERCIAL PROJECTIONS", year.Year)
		if err := f.SetCellValue(sheetCommercial, cell(1, row), title); err != nil {
			return err
		}
		row++

		header := []interface{}{"Description", "Q1", "Q2", "Q3", "Q4", "Total"}
		if err := writeRowAt(f, sheetCommercial, row, header, headerStyle); err != nil {
			return err
		}
		row++

		lines := [][]interface{}{
			quarterLine("Revenue", year.Quarters, func(q model.QuarterProjection) float64 { return q.Revenue }, year.TotalRevenue),
			quarterLine("COGS", year.Quarters, func(q model.QuarterProjection) float64 { return q.CostOfGoods }, year.TotalCostOfGoods),
			quarterLine("Gross Margin", year.Quarters, func(q model.QuarterProjection) float64 { return q.GrossMargin }, year.TotalGrossMargin),
			{"Unit Sales", "", "", "", "", year.UnitSales},
			{"Investment", "", "", "", "", year.Investment},
			{"Net Profit", "", "", "", "", year.NetProfit},
		}
		if err := writeRows(f, sheetCommercial, row, lines); err != nil {
			return err
		}
		row += len(lines) + 1
	}

	// 三年汇总
	if err := f.SetCellValue(sheetCommercial, cell(1, row), "3 YEAR COMMERCIAL SUMMARY"); err != nil {
		return err
	}
	row++
	summary := m.Projections.Summary
	summaryRows := [][]interface{}{
		{"Total Revenue", summary.TotalRevenue},
		{"Total COGS", summary.TotalCostOfGoods},
		{"Total Gross Margin", summary.TotalGrossMargin},
		{"Total Investment", summary.TotalInvestment},
		{"Total Net Profit", summary.TotalNetProfit},
		{"Revenue CAGR (%)", summary.RevenueCAGR},
	}
	if err := writeRows(f, sheetCommercial, row, summaryRows); err != nil {
		return err
	}
	row += len(summaryRows) + 1

	// 客户表（年 1，自下而上口径，与投影不对账）
	if err := f.SetCellValue(sheetCommercial, cell(1, row), "YEAR 1 ACCOUNT SUMMARY"); err != nil {
		return err
	}
	row++
	accountHeader := []interface{}{"Account", "Unit Sales", "Revenue", "COGS", "Gross Margin"}
	if err := writeRowAt(f, sheetCommercial, row, accountHeader, headerStyle); err != nil {
		return err
	}
	row++

	accountRows, total := calculator.AccountSummary(m)
	lines := make([][]interface{}, 0, len(accountRows)+1)
	for _, r := range accountRows {
		lines = append(lines, []interface{}{r.AccountName, r.UnitSales, r.Revenue, r.CostOfGoods, r.GrossMargin})
	}
	lines = append(lines, []interface{}{total.AccountName, total.UnitSales, total.Revenue, total.CostOfGoods, total.GrossMargin})
	if err := writeRows(f, sheetCommercial, row, lines); err != nil {
		return err
	}

	return f.SetColWidth(sheetCommercial, "A", "A", 24)
}

func fillRisks(f *excelize.File, p *model.Project, headerStyle int) error {
	header := []interface{}{"ID", "Category", "Description", "Score", "Band", "Mitigation", "Owner", "Status"}
	if err := writeHeader(f, sheetRisks, header, headerStyle); err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(p.Risks))
	for _, risk := range p.Risks {
		if risk == nil {
			continue
		}
		score := calculator.RiskScore(risk, p.RiskScoringScheme)
		rows = append(rows, []interface{}{
			risk.ID, risk.Category, risk.Description,
			score, string(calculator.RiskBandFor(score, p.RiskScoringScheme)),
			risk.Mitigation, risk.Owner, risk.Status,
		})
	}
	return writeRows(f, sheetRisks, 2, rows)
}

func quarterLine(label string, quarters []model.QuarterProjection, pick func(model.QuarterProjection) float64, total float64) []interface{} {
	line := make([]interface{}, 0, 6)
	line = append(line, label)
	for _, q := range quarters {
		line = append(line, pick(q))
	}
	for len(line) < 5 {
		line = append(line, "")
	}
	return append(line, total)
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, style int) error {
	return writeRowAt(f, sheet, 1, header, style)
}

func writeRowAt(f *excelize.File, sheet string, row int, values []interface{}, style int) error {
	for col, value := range values {
		c := cell(col+1, row)
		if err := f.SetCellValue(sheet, c, value); err != nil {
			return err
		}
	}
	if len(values) > 0 {
		if err := f.SetCellStyle(sheet, cell(1, row), cell(len(values), row), style); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, startRow int, rows [][]interface{}) error {
	for i, values := range rows {
		for col, value := range values {
			if value == nil {
				continue
			}
			if err := f.SetCellValue(sheet, cell(col+1, startRow+i), value); err != nil {
				return err
			}
		}
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
