package model

// SeedProjects 示例项目：存储为空或损坏时用于初始化。
// 返回全新切片，调用方可以随意改写。
func SeedProjects() []*Project {
	return []*Project{
		{
			ID:           1,
			Name:         "COVID/Flu OTC Pen Test 510(k) Submission",
			Owner:        "Sherif Elkadem",
			Manufacturer: "Hangzhou Assure Tech",
			Region:       "USA",
			ProductType:  "Medical Device",
			Description:  "Dual detection self-test for COVID-19 and influenza A/B",
			Objective:    "Obtain FDA clearance and launch OTC",
			TargetMarket: "U.S. consumers / retailers",
			KeyFeatures:  "Dual-analyte detection, at-home usability, rapid results",
			Stage:        "Idea",
			Approvals:    []Approval{},
			LaunchDate:   "2025-10-15",
			Phases: []Phase{
				{ID: 1, Name: "Phase 1", Description: "Initial Planning & Contracting", StartDate: "2025-06-14", EndDate: "2025-08-05", Duration: 52, Status: "Not Started"},
				{ID: 2, Name: "Phase 2", Description: "Technical File Transfer & LOA", StartDate: "2025-08-06", EndDate: "2025-08-22", Duration: 16, Status: "Not Started"},
				{ID: 3, Name: "Phase 3", Description: "CRO Engagement & Regulatory Strategy", StartDate: "2025-08-23", EndDate: "2025-09-20", Duration: 28, Status: "Not Started"},
				{ID: 4, Name: "Phase 4", Description: "Pre-Sub Prep & FDA Meeting", StartDate: "2025-09-21", EndDate: "2025-11-05", Duration: 45, Status: "Not Started"},
				{ID: 5, Name: "Phase 5", Description: "Final Protocol Design & IRB Submission", StartDate: "2025-11-06", EndDate: "2025-11-25", Duration: 19, Status: "Not Started"},
			},
			Costs: []*CostItem{
				{Category: "Regulatory Strategy", Description: "Regulatory Strategy & FDA Pre-Sub", Amount: 60000, Year: 2025, Phase: 3, Status: "Not Started"},
				{Category: "Clinical Start-Up", Description: "Study Start-Up & Site Initiation", Amount: 200000, Year: 2025, Phase: 6, Status: "Not Started"},
				{Category: "Clinical Execution", Description: "Clinical Study Execution", Amount: 700000, Year: 2025, Phase: 7, Status: "Not Started"},
				{Category: "Data Management", Description: "Data Analysis & Final Report", Amount: 240000, Year: 2026, Phase: 8, Status: "Not Started"},
				{Category: "Regulatory Submission", Description: "510(k) eSTAR Preparation & Submission", Amount: 150000, Year: 2026, Phase: 9, Status: "Not Started"},
			},
			Risks: []*Risk{
				{
					ID:          "R-001",
					Category:    "Regulatory",
					Description: "FDA may request additional clinical data",
					Probability: 4,
					Impact:      5,
					Mitigation:  "Pre-submission meeting",
					Owner:       "Regulatory Affairs",
					Status:      "Open",
				},
			},
			RiskScoringScheme: SchemeProbabilityImpact,
			CommercialModel: &CommercialModel{
				CostPerUnit: 2.0,
				SellPerUnit: 5.0,
				Accounts: []Account{
					{
						ID:               "a-cvs-walgreens",
						AccountName:      "National Pharmacy Chains",
						Year1:            AccountYear{NumberOfDoors: 2400, VelocityPerDoorPerWeek: 3.5},
						Year2:            AccountYear{NumberOfDoors: 5200, VelocityPerDoorPerWeek: 4.0},
						Year3:            AccountYear{NumberOfDoors: 7800, VelocityPerDoorPerWeek: 4.2},
						CostPricePerUnit: 2.0,
						SellPricePerUnit: 5.0,
						Notes:            "CVS + Walgreens rollout, H2 heavy",
					},
					{
						ID:               "a-grocery",
						AccountName:      "Grocery & Mass Retail",
						Year1:            AccountYear{NumberOfDoors: 1800, VelocityPerDoorPerWeek: 2.0},
						Year2:            AccountYear{NumberOfDoors: 4100, VelocityPerDoorPerWeek: 2.4},
						Year3:            AccountYear{NumberOfDoors: 6500, VelocityPerDoorPerWeek: 2.6},
						CostPricePerUnit: 2.0,
						SellPricePerUnit: 4.6,
						Notes:            "Lower shelf price via distributor",
					},
					{
						ID:               "a-online",
						AccountName:      "Online Marketplace",
						Year1:            AccountYear{NumberOfDoors: 150, VelocityPerDoorPerWeek: 10},
						Year2:            AccountYear{NumberOfDoors: 220, VelocityPerDoorPerWeek: 14},
						Year3:            AccountYear{NumberOfDoors: 300, VelocityPerDoorPerWeek: 16},
						CostPricePerUnit: 2.0,
						SellPricePerUnit: 5.4,
					},
				},
				TotalInvestment: map[string]float64{
					"year1": 1225275,
					"year2": 1500000,
					"year3": 1800000,
				},
				QuarterlyDistribution: DefaultQuarterlyDistribution(),
				MarketAnalysis:        "OTC respiratory self-test demand remains seasonal with strong Q3/Q4 peaks.",
				DistributionStrategy:  "Pharmacy first, then grocery and online expansion through year 2.",
			},
		},
		{
			ID:           2,
			Name:         "Rapid Strep A Home Test",
			Owner:        "Maria Johnson",
			Manufacturer: "SMEDTEC Labs",
			Region:       "Europe",
			ProductType:  "Diagnostic",
			Description:  "Quick and reliable Strep A test for home use.",
			Objective:    "CE Mark and EU market launch.",
			TargetMarket: "EU consumers, pharmacies",
			KeyFeatures:  "Rapid results, high accuracy, user-friendly.",
			Stage:        "Proof of Concept",
			Approvals: []Approval{
				{Stage: "Idea", Approver: "Management", Date: "2025-01-10", Notes: "Approved for PoC."},
			},
			LaunchDate: "2026-03-30",
			Phases:     []Phase{},
			Costs:      []*CostItem{},
			Risks:      []*Risk{},
			CommercialModel: &CommercialModel{
				CostPerUnit: 1.8,
				SellPerUnit: 4.2,
				Accounts: []Account{
					{
						ID:               "a-eu-pharma",
						AccountName:      "EU Pharmacy Distributors",
						Year1:            AccountYear{NumberOfDoors: 3200, VelocityPerDoorPerWeek: 4.0},
						Year2:            AccountYear{NumberOfDoors: 5600, VelocityPerDoorPerWeek: 4.5},
						Year3:            AccountYear{NumberOfDoors: 7400, VelocityPerDoorPerWeek: 4.8},
						CostPricePerUnit: 1.8,
						SellPricePerUnit: 4.2,
					},
				},
				TotalInvestment: map[string]float64{
					"year1": 900000,
					"year2": 1100000,
					"year3": 1250000,
				},
				QuarterlyDistribution: DefaultQuarterlyDistribution(),
			},
		},
	}
}
