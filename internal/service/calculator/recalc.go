package calculator

import "github.com/SMEDTEC/2sanbusinesscase/internal/model"

// Recalculate 重算项目级汇总字段：总成本、年 1 收入、最高风险。
// 只读 costs/commercialModel/risks，只写四个汇总字段，因此幂等。
// 返回新项目，不修改入参。
func Recalculate(p *model.Project) *model.Project {
	out := p.Clone()
	if out == nil {
		out = &model.Project{}
	}

	out.TotalCost = totalCost(out.Costs)
	out.Year1Revenue = year1Revenue(out.CommercialModel)
	out.HighestRiskScore, out.HighestRiskIdentification = highestRisk(out.Risks, out.RiskScoringScheme)
	return out
}

func totalCost(costs []*model.CostItem) float64 {
	sum := 0.0
	for _, cost := range costs {
		if cost == nil {
			continue
		}
		sum += cost.Amount
	}
	return sum
}

// year1Revenue 回退链：优先取已计算投影的年 1 收入（为正时），
// 否则退回客户表的自下而上口径，再不行取 0。
// 早期项目可能已有客户数据但还没算过投影，回退链不能省。
func year1Revenue(m *model.CommercialModel) float64 {
	if m == nil {
		return 0
	}
	if len(m.Projections.Years) > 0 {
		if revenue := m.Projections.Years[0].TotalRevenue; revenue > 0 {
			return revenue
		}
	}
	if bottomUp := BottomUpYear1Revenue(m); bottomUp > 0 {
		return bottomUp
	}
	return 0
}

// highestRisk 取所有非空风险的最高评分及其描述（并列取先出现者）。
// 风险列表为空或全为 null 时返回 0 与占位标识。
func highestRisk(risks []*model.Risk, scheme model.RiskScheme) (float64, string) {
	maxScore := 0.0
	identification := model.NotApplicable
	found := false

	for _, r := range risks {
		if r == nil {
			continue
		}
		score := RiskScore(r, scheme)
		if !found || score > maxScore {
			maxScore = score
			identification = r.Description
			found = true
		}
	}

	if !found {
		return 0, model.NotApplicable
	}
	return maxScore, identification
}
