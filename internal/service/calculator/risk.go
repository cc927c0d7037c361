package calculator

import "github.com/SMEDTEC/2sanbusinesscase/internal/model"

// RiskBand 风险所处的严重度区间（用于热力图着色与升级）
type RiskBand string

const (
	RiskBandLow    RiskBand = "low"
	RiskBandMedium RiskBand = "medium"
	RiskBandHigh   RiskBand = "high"
)

// 三因子方案的原值阈值
const (
	odsMediumThreshold = 16
	odsHighThreshold   = 27
)

// 两因子方案的归一化阈值
const (
	piMediumThreshold = 0.3
	piHighThreshold   = 0.5
)

// RiskScore 按指定方案计算单条风险的评分。
// 缺失因子按 1 处理；nil 风险评分为 0。
func RiskScore(r *model.Risk, scheme model.RiskScheme) float64 {
	if r == nil {
		return 0
	}
	switch scheme {
	case model.SchemeProbabilityImpact:
		return float64(factorOrOne(r.Probability)*factorOrOne(r.Impact)) / 25
	default:
		// occurrence_detection 为历史默认方案
		return float64(factorOrOne(r.Occurrence) * factorOrOne(r.Detection) * factorOrOne(r.Severity))
	}
}

// RiskBandFor 按方案阈值把评分映射到区间
func RiskBandFor(score float64, scheme model.RiskScheme) RiskBand {
	switch scheme {
	case model.SchemeProbabilityImpact:
		switch {
		case score > piHighThreshold:
			return RiskBandHigh
		case score >= piMediumThreshold:
			return RiskBandMedium
		}
	default:
		switch {
		case score >= odsHighThreshold:
			return RiskBandHigh
		case score >= odsMediumThreshold:
			return RiskBandMedium
		}
	}
	return RiskBandLow
}

func factorOrOne(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}
