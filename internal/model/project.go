package model

// Stages 项目阶段（按推进顺序，外加两个终止态）
var Stages = []string{
	"Idea",
	"Proof of Concept",
	"Approved",
	"Execution",
	"Complete",
	"On Hold",
	"Cancelled",
}

// DefaultStage 新项目的默认阶段
const DefaultStage = "Idea"

// NotApplicable 无最高风险时的占位标识
const NotApplicable = "N/A"

// RiskScheme 风险评分方案（按项目打标）
type RiskScheme string

const (
	// SchemeOccurrenceDetection 三因子：发生度×探测度×严重度，原值 1..125，阈值 16/27
	SchemeOccurrenceDetection RiskScheme = "occurrence_detection"
	// SchemeProbabilityImpact 两因子：概率×影响/25，归一化 0..1，阈值 0.3/0.5
	SchemeProbabilityImpact RiskScheme = "probability_impact"
)

// Approval 阶段审批记录
type Approval struct {
	Stage    string `json:"stage"`
	Approver string `json:"approver"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

// Phase 项目时间线条目
type Phase struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"` // ISO 日期字符串
	EndDate     string `json:"endDate"`
	Duration    int    `json:"duration"` // 天数
	Status      string `json:"status"`
}

// CostItem 成本/付款计划条目
type CostItem struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Year        int     `json:"year"`
	Phase       int     `json:"phase"`
	Status      string  `json:"status"`
}

// Risk 风险/假设条目
//
// 两套因子并存：三因子方案读 Occurrence/Detection/Severity，
// 两因子方案读 Probability/Impact。缺失因子按 1 处理。
type Risk struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Occurrence  int    `json:"occurrence"`
	Detection   int    `json:"detection"`
	Severity    int    `json:"severity"`
	Probability int    `json:"probability"`
	Impact      int    `json:"impact"`
	Mitigation  string `json:"mitigation"`
	Owner       string `json:"owner"`
	Status      string `json:"status"`
}

// Project 业务案例项目
//
// costs/risks 使用指针切片：持久化数据里可能存在 null 条目，
// 汇总时按零贡献处理而不是报错。
type Project struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Owner        string `json:"owner"`
	Manufacturer string `json:"manufacturer"`
	Region       string `json:"region"`
	ProductType  string `json:"productType"`
	Description  string `json:"description"`
	Objective    string `json:"objective"`
	TargetMarket string `json:"targetMarket"`
	KeyFeatures  string `json:"keyFeatures"`

	Stage      string     `json:"stage"`
	Approvals  []Approval `json:"approvals"`
	LaunchDate string     `json:"launchDate"`

	Phases []Phase     `json:"phases"`
	Costs  []*CostItem `json:"costs"`
	Risks  []*Risk     `json:"risks"`

	CommercialModel   *CommercialModel `json:"commercialModel"`
	RiskScoringScheme RiskScheme       `json:"riskScoringScheme"`

	// 项目级汇总：保存时由重算器覆盖
	TotalCost                 float64 `json:"totalCost"`
	Year1Revenue              float64 `json:"year1Revenue"`
	HighestRiskScore          float64 `json:"highestRiskScore"`
	HighestRiskIdentification string  `json:"highestRiskIdentification"`
}

// Clone 深拷贝
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := *p

	out.Approvals = make([]Approval, len(p.Approvals))
	copy(out.Approvals, p.Approvals)

	out.Phases = make([]Phase, len(p.Phases))
	copy(out.Phases, p.Phases)

	out.Costs = make([]*CostItem, len(p.Costs))
	for i, cost := range p.Costs {
		if cost == nil {
			continue
		}
		next := *cost
		out.Costs[i] = &next
	}

	out.Risks = make([]*Risk, len(p.Risks))
	for i, risk := range p.Risks {
		if risk == nil {
			continue
		}
		next := *risk
		out.Risks[i] = &next
	}

	out.CommercialModel = p.CommercialModel.Clone()
	return &out
}
