package model

// 商业模型按年映射统一使用 year1/year2/year3 作为键
var YearKeys = []string{"year1", "year2", "year3"}

// WeeksPerYear 年化周数（固定常量）
const WeeksPerYear = 52

// 默认单位经济性（未填写时的兜底值）
const (
	DefaultCostPerUnit = 2.0
	DefaultSellPerUnit = 5.0
)

// AccountYear 单个客户在某一年的铺货参数
type AccountYear struct {
	NumberOfDoors          float64 `json:"numberOfDoors"`          // 铺货门店数
	VelocityPerDoorPerWeek float64 `json:"velocityPerDoorPerWeek"` // 单店周动销
}

// IsZero 判断该年是否无铺货贡献
func (y AccountYear) IsZero() bool {
	return y.NumberOfDoors == 0 && y.VelocityPerDoorPerWeek == 0
}

// Account 客户（零售渠道）：自下而上的销售驱动
//
// 旧版数据没有按年拆分，门店数/动销直接挂在客户上；
// Sanitize 时会把扁平字段折叠进 Year1。
type Account struct {
	ID          string      `json:"id"`
	AccountName string      `json:"accountName"`
	Year1       AccountYear `json:"year1"`
	Year2       AccountYear `json:"year2"`
	Year3       AccountYear `json:"year3"`

	// 旧版扁平字段（仅迁移时使用）
	NumberOfDoors          float64 `json:"numberOfDoors,omitempty"`
	VelocityPerDoorPerWeek float64 `json:"velocityPerDoorPerWeek,omitempty"`

	CostPricePerUnit float64 `json:"costPricePerUnit"`
	SellPricePerUnit float64 `json:"sellPricePerUnit"`
	Notes            string  `json:"notes"`
}

// Year 按键取某一年的铺货参数，未知键视为零贡献
func (a *Account) Year(key string) AccountYear {
	switch key {
	case "year1":
		return a.Year1
	case "year2":
		return a.Year2
	case "year3":
		return a.Year3
	}
	return AccountYear{}
}

// QuarterShare 某年收入的季度分布权重
type QuarterShare struct {
	Quarter int     `json:"quarter"` // 1..4
	Percent float64 `json:"percent"` // 0..100，四季之和不做强制校验
}

// QuarterProjection 季度投影
type QuarterProjection struct {
	Quarter     int     `json:"quarter"`
	Revenue     float64 `json:"revenue"`
	CostOfGoods float64 `json:"costOfGoods"`
	GrossMargin float64 `json:"grossMargin"`
}

// YearProjection 年度投影
type YearProjection struct {
	Year             int                 `json:"year"` // 1..3
	UnitSales        float64             `json:"unitSales"`
	TotalRevenue     float64             `json:"totalRevenue"`
	TotalCostOfGoods float64             `json:"totalCostOfGoods"`
	TotalGrossMargin float64             `json:"totalGrossMargin"`
	Investment       float64             `json:"investment"`
	NetProfit        float64             `json:"netProfit"`
	Quarters         []QuarterProjection `json:"quarters"`
}

// ProjectionSummary 三年汇总
type ProjectionSummary struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalCostOfGoods float64 `json:"totalCostOfGoods"`
	TotalGrossMargin float64 `json:"totalGrossMargin"`
	TotalInvestment  float64 `json:"totalInvestment"`
	TotalNetProfit   float64 `json:"totalNetProfit"`
	RevenueCAGR      float64 `json:"revenueCAGR"` // 百分数，年1→年3 按两期复合
}

// Projections 计算输出：永远由其他字段推导，加载时不作为数据源
type Projections struct {
	Years   []YearProjection  `json:"years"`
	Summary ProjectionSummary `json:"summary"`
}

// CommercialModel 单个项目的商业模型配置
type CommercialModel struct {
	CostPerUnit float64   `json:"costPerUnit"`
	SellPerUnit float64   `json:"sellPerUnit"`
	Accounts    []Account `json:"accounts"`

	// 按年计划投入
	TotalInvestment map[string]float64 `json:"totalInvestment"`
	// 按年的季度收入分布
	QuarterlyDistribution map[string][]QuarterShare `json:"quarterlyDistribution"`

	// 派生展示字段：每次重算覆盖，不接受用户直接编辑
	TotalDoors      map[string]float64 `json:"totalDoors"`
	AvgUnitsPerDoor map[string]float64 `json:"avgUnitsPerDoor"`

	Projections Projections `json:"projections"`

	MarketAnalysis       string `json:"marketAnalysis"`
	DistributionStrategy string `json:"distributionStrategy"`
}

// DefaultQuarterlyDistribution 默认季度分布（偏向下半年）
func DefaultQuarterlyDistribution() map[string][]QuarterShare {
	return map[string][]QuarterShare{
		"year1": {
			{Quarter: 1, Percent: 10},
			{Quarter: 2, Percent: 15},
			{Quarter: 3, Percent: 35},
			{Quarter: 4, Percent: 40},
		},
		"year2": {
			{Quarter: 1, Percent: 21.5},
			{Quarter: 2, Percent: 24.7},
			{Quarter: 3, Percent: 25.9},
			{Quarter: 4, Percent: 27.9},
		},
		"year3": {
			{Quarter: 1, Percent: 22.5},
			{Quarter: 2, Percent: 24.75},
			{Quarter: 3, Percent: 26.25},
			{Quarter: 4, Percent: 26.5},
		},
	}
}

// EmptyProjections 结构完整的零值投影（3 年 × 4 季度）
func EmptyProjections() Projections {
	years := make([]YearProjection, 0, len(YearKeys))
	for i := range YearKeys {
		quarters := make([]QuarterProjection, 0, 4)
		for q := 1; q <= 4; q++ {
			quarters = append(quarters, QuarterProjection{Quarter: q})
		}
		years = append(years, YearProjection{Year: i + 1, Quarters: quarters})
	}
	return Projections{Years: years}
}

// Clone 深拷贝
func (m *CommercialModel) Clone() *CommercialModel {
	if m == nil {
		return nil
	}
	out := *m

	out.Accounts = make([]Account, len(m.Accounts))
	copy(out.Accounts, m.Accounts)

	out.TotalInvestment = cloneFloatMap(m.TotalInvestment)
	out.TotalDoors = cloneFloatMap(m.TotalDoors)
	out.AvgUnitsPerDoor = cloneFloatMap(m.AvgUnitsPerDoor)

	if m.QuarterlyDistribution != nil {
		out.QuarterlyDistribution = make(map[string][]QuarterShare, len(m.QuarterlyDistribution))
		for key, shares := range m.QuarterlyDistribution {
			next := make([]QuarterShare, len(shares))
			copy(next, shares)
			out.QuarterlyDistribution[key] = next
		}
	}

	out.Projections = m.Projections.Clone()
	return &out
}

// Clone 深拷贝
func (p Projections) Clone() Projections {
	out := p
	out.Years = make([]YearProjection, len(p.Years))
	for i, year := range p.Years {
		next := year
		next.Quarters = make([]QuarterProjection, len(year.Quarters))
		copy(next.Quarters, year.Quarters)
		out.Years[i] = next
	}
	return out
}

func cloneFloatMap(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
