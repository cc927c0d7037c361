package calculator

import (
	"math"
	"testing"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// 构造测试用商业模型：两个客户，门店加权动销场景
func createTestModel() *model.CommercialModel {
	return &model.CommercialModel{
		CostPerUnit: 2,
		SellPerUnit: 5,
		Accounts: []model.Account{
			{
				ID:          "a1",
				AccountName: "Pharmacy A",
				Year1:       model.AccountYear{NumberOfDoors: 10, VelocityPerDoorPerWeek: 2},
			},
			{
				ID:          "a2",
				AccountName: "Pharmacy B",
				Year1:       model.AccountYear{NumberOfDoors: 90, VelocityPerDoorPerWeek: 1},
			},
		},
		TotalInvestment: map[string]float64{"year1": 1000},
		QuarterlyDistribution: map[string][]model.QuarterShare{
			"year1": {
				{Quarter: 1, Percent: 10},
				{Quarter: 2, Percent: 15},
				{Quarter: 3, Percent: 35},
				{Quarter: 4, Percent: 40},
			},
		},
	}
}

func TestProjectDoorWeightedVelocity(t *testing.T) {
	out := Project(createTestModel())

	// 有效动销 = (10*2 + 90*1) / (10+90) = 1.1
	year1 := out.Projections.Years[0]
	wantUnits := 100 * 1.1 * 52 // 5720
	if !almostEqual(year1.UnitSales, wantUnits) {
		t.Fatalf("unit sales = %v, want %v", year1.UnitSales, wantUnits)
	}
	if !almostEqual(year1.TotalRevenue, wantUnits*5) {
		t.Fatalf("revenue = %v, want %v", year1.TotalRevenue, wantUnits*5)
	}
	if !almostEqual(year1.TotalCostOfGoods, wantUnits*2) {
		t.Fatalf("cogs = %v, want %v", year1.TotalCostOfGoods, wantUnits*2)
	}
	if !almostEqual(year1.TotalGrossMargin, wantUnits*3) {
		t.Fatalf("gross margin = %v, want %v", year1.TotalGrossMargin, wantUnits*3)
	}
	if !almostEqual(year1.NetProfit, wantUnits*3-1000) {
		t.Fatalf("net profit = %v, want %v", year1.NetProfit, wantUnits*3-1000)
	}

	if !almostEqual(out.TotalDoors["year1"], 100) {
		t.Fatalf("total doors = %v, want 100", out.TotalDoors["year1"])
	}
	if !almostEqual(out.AvgUnitsPerDoor["year1"], 1.1*52) {
		t.Fatalf("avg units per door = %v, want %v", out.AvgUnitsPerDoor["year1"], 1.1*52)
	}
}

func TestProjectZeroDoorsNoDivisionFault(t *testing.T) {
	m := createTestModel()
	for i := range m.Accounts {
		m.Accounts[i].Year1 = model.AccountYear{}
		m.Accounts[i].Year2 = model.AccountYear{}
		m.Accounts[i].Year3 = model.AccountYear{}
	}

	out := Project(m)
	for _, year := range out.Projections.Years {
		if year.UnitSales != 0 {
			t.Fatalf("year %d unit sales = %v, want 0", year.Year, year.UnitSales)
		}
		if year.TotalRevenue != 0 {
			t.Fatalf("year %d revenue = %v, want 0", year.Year, year.TotalRevenue)
		}
	}
	if out.Projections.Summary.RevenueCAGR != 0 {
		t.Fatalf("CAGR = %v, want 0", out.Projections.Summary.RevenueCAGR)
	}
}

func TestProjectQuarterlySplitPropagation(t *testing.T) {
	// 季度权重按比例传播：年收入 1000 × [10,15,35,40] → [100,150,350,400]
	m := &model.CommercialModel{
		CostPerUnit: 0,
		SellPerUnit: 1000.0 / 5720.0, // 使年 1 收入恰好为 1000
		Accounts: []model.Account{
			{ID: "a1", Year1: model.AccountYear{NumberOfDoors: 10, VelocityPerDoorPerWeek: 2}},
			{ID: "a2", Year1: model.AccountYear{NumberOfDoors: 90, VelocityPerDoorPerWeek: 1}},
		},
		QuarterlyDistribution: map[string][]model.QuarterShare{
			"year1": {
				{Quarter: 1, Percent: 10},
				{Quarter: 2, Percent: 15},
				{Quarter: 3, Percent: 35},
				{Quarter: 4, Percent: 40},
			},
		},
	}

	out := Project(m)
	year1 := out.Projections.Years[0]
	want := []float64{100, 150, 350, 400}

	sum := 0.0
	for i, quarter := range year1.Quarters {
		if !almostEqual(quarter.Revenue, want[i]) {
			t.Fatalf("quarter %d revenue = %v, want %v", quarter.Quarter, quarter.Revenue, want[i])
		}
		sum += quarter.Revenue
	}
	if !almostEqual(sum, 1000) {
		t.Fatalf("quarter revenues sum = %v, want 1000", sum)
	}
}

func TestProjectNoRenormalizationWhenPercentsDontSum(t *testing.T) {
	m := createTestModel()
	m.QuarterlyDistribution["year1"] = []model.QuarterShare{
		{Quarter: 1, Percent: 10},
		{Quarter: 2, Percent: 10},
		{Quarter: 3, Percent: 10},
		{Quarter: 4, Percent: 10},
	}

	out := Project(m)
	year1 := out.Projections.Years[0]

	sum := 0.0
	for _, quarter := range year1.Quarters {
		sum += quarter.Revenue
	}
	// 权重和为 40%，季度合计只覆盖四成年收入，不做归一化
	if !almostEqual(sum, year1.TotalRevenue*0.4) {
		t.Fatalf("quarter sum = %v, want %v", sum, year1.TotalRevenue*0.4)
	}
}

func TestRevenueCAGR(t *testing.T) {
	tests := []struct {
		name  string
		year1 float64
		year3 float64
		want  float64
	}{
		{"double compounded", 100, 400, 100},
		{"flat", 100, 100, 0},
		{"zero year1 guarded", 0, 400, 0},
		{"zero year3 guarded", 100, 0, 0},
		{"negative guarded", -100, 400, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := revenueCAGR(tt.year1, tt.year3)
			if !almostEqual(got, tt.want) {
				t.Fatalf("revenueCAGR(%v, %v) = %v, want %v", tt.year1, tt.year3, got, tt.want)
			}
		})
	}
}

func TestProjectSummaryAggregates(t *testing.T) {
	m := createTestModel()
	m.Accounts[0].Year2 = model.AccountYear{NumberOfDoors: 20, VelocityPerDoorPerWeek: 2}
	m.Accounts[0].Year3 = model.AccountYear{NumberOfDoors: 40, VelocityPerDoorPerWeek: 2}
	m.TotalInvestment["year2"] = 2000
	m.TotalInvestment["year3"] = 3000

	out := Project(m)
	summary := out.Projections.Summary

	var wantRevenue, wantCogs float64
	for _, y := range out.Projections.Years {
		wantRevenue += y.TotalRevenue
		wantCogs += y.TotalCostOfGoods
	}
	if !almostEqual(summary.TotalRevenue, wantRevenue) {
		t.Fatalf("summary revenue = %v, want %v", summary.TotalRevenue, wantRevenue)
	}
	if !almostEqual(summary.TotalGrossMargin, wantRevenue-wantCogs) {
		t.Fatalf("summary gross margin = %v, want %v", summary.TotalGrossMargin, wantRevenue-wantCogs)
	}
	if !almostEqual(summary.TotalInvestment, 6000) {
		t.Fatalf("summary investment = %v, want 6000", summary.TotalInvestment)
	}
	if !almostEqual(summary.TotalNetProfit, summary.TotalGrossMargin-6000) {
		t.Fatalf("summary net profit = %v, want %v", summary.TotalNetProfit, summary.TotalGrossMargin-6000)
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	m := createTestModel()
	_ = Project(m)

	if m.TotalDoors != nil {
		t.Fatalf("input totalDoors mutated")
	}
	if len(m.Projections.Years) != 0 {
		t.Fatalf("input projections mutated")
	}
}

func TestAccountSummaryBottomUp(t *testing.T) {
	m := &model.CommercialModel{
		CostPerUnit: 2,
		SellPerUnit: 5,
		Accounts: []model.Account{
			{
				ID:               "a1",
				AccountName:      "Pharmacy A",
				Year1:            model.AccountYear{NumberOfDoors: 10, VelocityPerDoorPerWeek: 1},
				SellPricePerUnit: 3,
				CostPricePerUnit: 1,
			},
			{
				ID:          "a2",
				AccountName: "No prices",
				Year1:       model.AccountYear{NumberOfDoors: 5, VelocityPerDoorPerWeek: 2},
			},
		},
	}

	rows, total := AccountSummary(m)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// 客户表用各自进销价：520 units × 3 = 1560
	if !almostEqual(rows[0].Revenue, 520*3) {
		t.Fatalf("row revenue = %v, want %v", rows[0].Revenue, 520*3)
	}
	// 未填价格的客户收入为 0，不取全局单价
	if rows[1].Revenue != 0 {
		t.Fatalf("priceless account revenue = %v, want 0", rows[1].Revenue)
	}
	if !almostEqual(total.Revenue, 1560) {
		t.Fatalf("total revenue = %v, want 1560", total.Revenue)
	}
	if !almostEqual(total.GrossMargin, 1560-520) {
		t.Fatalf("total margin = %v, want %v", total.GrossMargin, 1560-520)
	}
}

func TestAccountSummaryLegacyFlatAccounts(t *testing.T) {
	// 未经 Sanitize 的旧版扁平客户也能给出自下而上口径
	m := &model.CommercialModel{
		Accounts: []model.Account{
			{
				ID:                     "legacy",
				NumberOfDoors:          10,
				VelocityPerDoorPerWeek: 1,
				SellPricePerUnit:       1,
			},
		},
	}

	_, total := AccountSummary(m)
	if !almostEqual(total.Revenue, 520) {
		t.Fatalf("legacy revenue = %v, want 520", total.Revenue)
	}
}
