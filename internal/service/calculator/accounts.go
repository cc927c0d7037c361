package calculator

import "github.com/SMEDTEC/2sanbusinesscase/internal/model"

// AccountRow 客户表汇总行（仅年 1，自下而上口径）
type AccountRow struct {
	AccountID   string  `json:"accountId"`
	AccountName string  `json:"accountName"`
	UnitSales   float64 `json:"unitSales"`
	Revenue     float64 `json:"revenue"`
	CostOfGoods float64 `json:"costOfGoods"`
	GrossMargin float64 `json:"grossMargin"`
}

// AccountSummary 计算年 1 的客户表汇总：每个客户用自己的进销价，
// 与投影引擎的全局单价口径相互独立，两者不做对账（允许背离）。
func AccountSummary(m *model.CommercialModel) ([]AccountRow, AccountRow) {
	var total AccountRow
	total.AccountName = "Total"

	if m == nil {
		return []AccountRow{}, total
	}

	rows := make([]AccountRow, 0, len(m.Accounts))
	for i := range m.Accounts {
		acc := &m.Accounts[i]
		y := acc.Year1
		// 旧版扁平数据可能尚未经过 Sanitize
		if y.IsZero() {
			y = model.AccountYear{
				NumberOfDoors:          acc.NumberOfDoors,
				VelocityPerDoorPerWeek: acc.VelocityPerDoorPerWeek,
			}
		}

		units := y.NumberOfDoors * y.VelocityPerDoorPerWeek * model.WeeksPerYear
		row := AccountRow{
			AccountID:   acc.ID,
			AccountName: acc.AccountName,
			UnitSales:   units,
			Revenue:     units * acc.SellPricePerUnit,
			CostOfGoods: units * acc.CostPricePerUnit,
		}
		row.GrossMargin = row.Revenue - row.CostOfGoods
		rows = append(rows, row)

		total.UnitSales += row.UnitSales
		total.Revenue += row.Revenue
		total.CostOfGoods += row.CostOfGoods
	}
	total.GrossMargin = total.Revenue - total.CostOfGoods
	return rows, total
}

// BottomUpYear1Revenue 自下而上的年 1 收入（客户表口径）
func BottomUpYear1Revenue(m *model.CommercialModel) float64 {
	_, total := AccountSummary(m)
	return total.Revenue
}
