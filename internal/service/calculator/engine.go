// Package calculator 商业模型投影与项目汇总重算。
// 所有函数均为纯函数：不做 I/O，不修改入参。
// 对坏输入一律通过守卫降级为 0，边界校验由 sanitizer 负责。
package calculator

import (
	"math"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
)

// Project 根据门店数/动销/单位经济性推导三年投影。
// 返回新模型：totalDoors、avgUnitsPerDoor、projections 被覆盖，
// 其余字段原样透传。
func Project(m *model.CommercialModel) *model.CommercialModel {
	out := m.Clone()
	if out == nil {
		out = &model.CommercialModel{}
	}

	out.TotalDoors = make(map[string]float64, len(model.YearKeys))
	out.AvgUnitsPerDoor = make(map[string]float64, len(model.YearKeys))

	years := make([]model.YearProjection, 0, len(model.YearKeys))
	for i, key := range model.YearKeys {
		doorsSum := 0.0
		weightedVelocity := 0.0
		for ai := range out.Accounts {
			y := out.Accounts[ai].Year(key)
			doorsSum += y.NumberOfDoors
			weightedVelocity += y.NumberOfDoors * y.VelocityPerDoorPerWeek
		}

		// 门店加权平均动销：门店多的客户对有效动销影响更大
		effectiveVelocity := 0.0
		if doorsSum > 0 {
			effectiveVelocity = weightedVelocity / doorsSum
		}

		unitSales := doorsSum * effectiveVelocity * model.WeeksPerYear
		revenue := unitSales * out.SellPerUnit
		costOfGoods := unitSales * out.CostPerUnit
		grossMargin := revenue - costOfGoods
		investment := out.TotalInvestment[key]

		year := model.YearProjection{
			Year:             i + 1,
			UnitSales:        unitSales,
			TotalRevenue:     revenue,
			TotalCostOfGoods: costOfGoods,
			TotalGrossMargin: grossMargin,
			Investment:       investment,
			NetProfit:        grossMargin - investment,
			Quarters:         splitQuarters(revenue, costOfGoods, out.QuarterlyDistribution[key]),
		}
		years = append(years, year)

		out.TotalDoors[key] = doorsSum
		out.AvgUnitsPerDoor[key] = effectiveVelocity * model.WeeksPerYear
	}

	out.Projections = model.Projections{
		Years:   years,
		Summary: summarize(years),
	}
	return out
}

// splitQuarters 按季度权重拆分年度数值。
// 权重之和不等于 100 时照比例传播，不做归一化。
func splitQuarters(revenue, costOfGoods float64, shares []model.QuarterShare) []model.QuarterProjection {
	quarters := make([]model.QuarterProjection, 0, 4)
	for i, share := range shares {
		quarter := share.Quarter
		if quarter < 1 || quarter > 4 {
			quarter = i + 1
		}
		qRevenue := revenue * share.Percent / 100
		qCost := costOfGoods * share.Percent / 100
		quarters = append(quarters, model.QuarterProjection{
			Quarter:     quarter,
			Revenue:     qRevenue,
			CostOfGoods: qCost,
			GrossMargin: qRevenue - qCost,
		})
	}
	// 分布缺失时补齐零值季度，保证形状稳定
	for q := len(quarters) + 1; q <= 4; q++ {
		quarters = append(quarters, model.QuarterProjection{Quarter: q})
	}
	return quarters
}

func summarize(years []model.YearProjection) model.ProjectionSummary {
	var s model.ProjectionSummary
	for _, y := range years {
		s.TotalRevenue += y.TotalRevenue
		s.TotalCostOfGoods += y.TotalCostOfGoods
		s.TotalInvestment += y.Investment
	}
	s.TotalGrossMargin = s.TotalRevenue - s.TotalCostOfGoods
	s.TotalNetProfit = s.TotalGrossMargin - s.TotalInvestment

	if len(years) == len(model.YearKeys) {
		s.RevenueCAGR = revenueCAGR(years[0].TotalRevenue, years[2].TotalRevenue)
	}
	return s
}

// revenueCAGR 年 1→年 3 按两期复合的增长率（百分数）。
// 任一年收入非正时返回 0，避免除零与负底数开方。
func revenueCAGR(year1, year3 float64) float64 {
	if year1 <= 0 || year3 <= 0 {
		return 0
	}
	return (math.Pow(year3/year1, 0.5) - 1) * 100
}
