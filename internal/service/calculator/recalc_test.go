package calculator

import (
	"reflect"
	"testing"

	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
)

func TestRecalculateTotalCostSkipsNilEntries(t *testing.T) {
	p := &model.Project{
		ID: 1,
		Costs: []*model.CostItem{
			{Amount: 100},
			nil,
			{Amount: 50},
		},
	}

	out := Recalculate(p)
	if out.TotalCost != 150 {
		t.Fatalf("total cost = %v, want 150", out.TotalCost)
	}
}

func TestRecalculateYear1RevenueFallbackChain(t *testing.T) {
	// 只有客户数据、没有投影：走自下而上口径 10×1×52×... = 500
	p := &model.Project{
		ID: 1,
		CommercialModel: &model.CommercialModel{
			Accounts: []model.Account{
				{
					ID:               "a1",
					Year1:            model.AccountYear{NumberOfDoors: 10, VelocityPerDoorPerWeek: 1},
					SellPricePerUnit: 500.0 / 520.0,
				},
			},
		},
	}

	out := Recalculate(p)
	if !almostEqual(out.Year1Revenue, 500) {
		t.Fatalf("bottom-up year1Revenue = %v, want 500", out.Year1Revenue)
	}

	// 投影算出来之后切换到自上而下口径
	p.CommercialModel.Projections = model.Projections{
		Years: []model.YearProjection{{Year: 1, TotalRevenue: 800}},
	}
	out = Recalculate(p)
	if !almostEqual(out.Year1Revenue, 800) {
		t.Fatalf("top-down year1Revenue = %v, want 800", out.Year1Revenue)
	}

	// 投影为 0 时仍回退
	p.CommercialModel.Projections.Years[0].TotalRevenue = 0
	out = Recalculate(p)
	if !almostEqual(out.Year1Revenue, 500) {
		t.Fatalf("fallback year1Revenue = %v, want 500", out.Year1Revenue)
	}
}

func TestRecalculateYear1RevenueNoModel(t *testing.T) {
	out := Recalculate(&model.Project{ID: 1})
	if out.Year1Revenue != 0 {
		t.Fatalf("year1Revenue = %v, want 0", out.Year1Revenue)
	}
}

func TestRecalculateHighestRisk(t *testing.T) {
	p := &model.Project{
		ID:                1,
		RiskScoringScheme: model.SchemeOccurrenceDetection,
		Risks: []*model.Risk{
			{ID: "R-001", Description: "Delay", Occurrence: 2, Detection: 3, Severity: 2},  // 12
			nil,
			{ID: "R-002", Description: "Recall", Occurrence: 3, Detection: 3, Severity: 4}, // 36
			{ID: "R-003", Description: "Tie", Occurrence: 4, Detection: 3, Severity: 3},    // 36，并列取先出现者
		},
	}

	out := Recalculate(p)
	if out.HighestRiskScore != 36 {
		t.Fatalf("highest score = %v, want 36", out.HighestRiskScore)
	}
	if out.HighestRiskIdentification != "Recall" {
		t.Fatalf("identification = %q, want Recall", out.HighestRiskIdentification)
	}
}

func TestRecalculateEmptyRisks(t *testing.T) {
	tests := []struct {
		name  string
		risks []*model.Risk
	}{
		{"empty list", []*model.Risk{}},
		{"all nil", []*model.Risk{nil, nil}},
		{"nil list", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Recalculate(&model.Project{ID: 1, Risks: tt.risks})
			if out.HighestRiskScore != 0 {
				t.Fatalf("score = %v, want 0", out.HighestRiskScore)
			}
			if out.HighestRiskIdentification != model.NotApplicable {
				t.Fatalf("identification = %q, want %q", out.HighestRiskIdentification, model.NotApplicable)
			}
		})
	}
}

func TestRecalculateIdempotent(t *testing.T) {
	p := &model.Project{
		ID:                1,
		RiskScoringScheme: model.SchemeProbabilityImpact,
		Costs:             []*model.CostItem{{Amount: 100}, nil, {Amount: 50}},
		Risks: []*model.Risk{
			{ID: "R-001", Description: "FDA data request", Probability: 4, Impact: 5},
		},
		CommercialModel: &model.CommercialModel{
			Accounts: []model.Account{
				{ID: "a1", Year1: model.AccountYear{NumberOfDoors: 10, VelocityPerDoorPerWeek: 2}, SellPricePerUnit: 3},
			},
		},
	}

	once := Recalculate(p)
	twice := Recalculate(once)

	got := [4]interface{}{twice.TotalCost, twice.Year1Revenue, twice.HighestRiskScore, twice.HighestRiskIdentification}
	want := [4]interface{}{once.TotalCost, once.Year1Revenue, once.HighestRiskScore, once.HighestRiskIdentification}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("recalculate not idempotent: %v != %v", got, want)
	}
}

func TestRecalculateDoesNotMutateInput(t *testing.T) {
	p := &model.Project{
		ID:    1,
		Costs: []*model.CostItem{{Amount: 100}},
	}
	_ = Recalculate(p)
	if p.TotalCost != 0 {
		t.Fatalf("input mutated: totalCost = %v", p.TotalCost)
	}
}
