// Package sanitizer 负责把持久化层可能出现的残缺/旧版数据
// 规整为结构完整的标准形态。所有函数都是全函数：不报错、
// 不修改入参，缺什么补什么。
package sanitizer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
)

// 默认项目模板中的占位值
const (
	defaultProjectName  = "New Project"
	defaultProjectOwner = "Unassigned"
)

// Sanitize 规整商业模型。输入可以为 nil、旧版扁平客户形态或完整形态，
// 输出保证：accounts 非 nil，所有按年映射齐全，季度分布每年恰好 4 条，
// 投影为 3 年 × 4 季度。返回与输入独立的深拷贝。
func Sanitize(raw *model.CommercialModel) *model.CommercialModel {
	m := raw.Clone()
	if m == nil {
		m = &model.CommercialModel{}
	}

	if m.CostPerUnit <= 0 {
		m.CostPerUnit = model.DefaultCostPerUnit
	}
	if m.SellPerUnit <= 0 {
		m.SellPerUnit = model.DefaultSellPerUnit
	}

	if m.Accounts == nil {
		m.Accounts = []model.Account{}
	}
	for i := range m.Accounts {
		sanitizeAccount(&m.Accounts[i])
	}

	if m.TotalInvestment == nil {
		m.TotalInvestment = make(map[string]float64, len(model.YearKeys))
	}
	if m.TotalDoors == nil {
		m.TotalDoors = make(map[string]float64, len(model.YearKeys))
	}
	if m.AvgUnitsPerDoor == nil {
		m.AvgUnitsPerDoor = make(map[string]float64, len(model.YearKeys))
	}
	for _, key := range model.YearKeys {
		if _, ok := m.TotalInvestment[key]; !ok {
			m.TotalInvestment[key] = 0
		}
		if _, ok := m.TotalDoors[key]; !ok {
			m.TotalDoors[key] = 0
		}
		if _, ok := m.AvgUnitsPerDoor[key]; !ok {
			m.AvgUnitsPerDoor[key] = 0
		}
	}

	defaults := model.DefaultQuarterlyDistribution()
	if m.QuarterlyDistribution == nil {
		m.QuarterlyDistribution = make(map[string][]model.QuarterShare, len(model.YearKeys))
	}
	for _, key := range model.YearKeys {
		shares := m.QuarterlyDistribution[key]
		if len(shares) != 4 {
			m.QuarterlyDistribution[key] = defaults[key]
			continue
		}
		// 季度编号缺失时按位置补齐；权重不做求和校验
		for i := range shares {
			if shares[i].Quarter < 1 || shares[i].Quarter > 4 {
				shares[i].Quarter = i + 1
			}
		}
		m.QuarterlyDistribution[key] = shares
	}

	m.Projections = sanitizeProjections(m.Projections)
	return m
}

// SanitizeProject 规整整个项目：套用默认项目模板、保证各列表非 nil、
// 规整内嵌商业模型，并迁移风险评分方案标记。
func SanitizeProject(p *model.Project) *model.Project {
	out := p.Clone()
	if out == nil {
		out = &model.Project{}
	}

	if strings.TrimSpace(out.Name) == "" {
		out.Name = defaultProjectName
	}
	if strings.TrimSpace(out.Owner) == "" {
		out.Owner = defaultProjectOwner
	}
	if strings.TrimSpace(out.Stage) == "" {
		out.Stage = model.DefaultStage
	}
	if strings.TrimSpace(out.LaunchDate) == "" {
		out.LaunchDate = time.Now().UTC().Format("2006-01-02")
	}

	if out.Approvals == nil {
		out.Approvals = []model.Approval{}
	}
	if out.Phases == nil {
		out.Phases = []model.Phase{}
	}
	if out.Costs == nil {
		out.Costs = []*model.CostItem{}
	}
	if out.Risks == nil {
		out.Risks = []*model.Risk{}
	}

	out.CommercialModel = Sanitize(out.CommercialModel)
	out.RiskScoringScheme = migrateRiskScheme(out)
	return out
}

func sanitizeAccount(a *model.Account) {
	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.New().String()
	}

	// 旧版扁平形态：门店数/动销直接挂在客户上，折叠进年 1
	if a.Year1.IsZero() && (a.NumberOfDoors != 0 || a.VelocityPerDoorPerWeek != 0) {
		a.Year1 = model.AccountYear{
			NumberOfDoors:          a.NumberOfDoors,
			VelocityPerDoorPerWeek: a.VelocityPerDoorPerWeek,
		}
	}
	a.NumberOfDoors = 0
	a.VelocityPerDoorPerWeek = 0

	clampAccountYear(&a.Year1)
	clampAccountYear(&a.Year2)
	clampAccountYear(&a.Year3)

	if a.CostPricePerUnit < 0 {
		a.CostPricePerUnit = 0
	}
	if a.SellPricePerUnit < 0 {
		a.SellPricePerUnit = 0
	}
}

func clampAccountYear(y *model.AccountYear) {
	if y.NumberOfDoors < 0 {
		y.NumberOfDoors = 0
	}
	if y.VelocityPerDoorPerWeek < 0 {
		y.VelocityPerDoorPerWeek = 0
	}
}

func sanitizeProjections(p model.Projections) model.Projections {
	if len(p.Years) != len(model.YearKeys) {
		return model.EmptyProjections()
	}
	for i := range p.Years {
		p.Years[i].Year = i + 1
		if len(p.Years[i].Quarters) != 4 {
			quarters := make([]model.QuarterProjection, 0, 4)
			for q := 1; q <= 4; q++ {
				quarters = append(quarters, model.QuarterProjection{Quarter: q})
			}
			p.Years[i].Quarters = quarters
		}
	}
	return p
}

// migrateRiskScheme 决定项目的风险评分方案：已打标的原样保留，
// 未打标的按风险条目携带的因子字段嗅探，两者皆无时默认三因子方案。
func migrateRiskScheme(p *model.Project) model.RiskScheme {
	switch p.RiskScoringScheme {
	case model.SchemeOccurrenceDetection, model.SchemeProbabilityImpact:
		return p.RiskScoringScheme
	}

	for _, r := range p.Risks {
		if r == nil {
			continue
		}
		if r.Occurrence > 0 || r.Detection > 0 || r.Severity > 0 {
			return model.SchemeOccurrenceDetection
		}
	}
	for _, r := range p.Risks {
		if r == nil {
			continue
		}
		if r.Probability > 0 || r.Impact > 0 {
			return model.SchemeProbabilityImpact
		}
	}
	return model.SchemeOccurrenceDetection
}
