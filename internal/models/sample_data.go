package models

func SampleRecords(kind ChartKind) []Record {
	switch kind {
	case ChartPie:
		return []Record{
			NewRecord("Card payments", Field{Key: "volume", Value: 145000}),
			NewRecord("Bank transfers", Field{Key: "volume", Value: 89000}),
			NewRecord("Digital wallets", Field{Key: "volume", Value: 67000}),
			NewRecord("Direct debit", Field{Key: "volume", Value: 34000}),
			NewRecord("Cash", Field{Key: "volume", Value: 12000}),
			NewRecord("Cheques", Field{Key: "volume", Value: 3000}),
		}
	case ChartLine:
		return []Record{
			NewRecord("Q1 2024", Field{Key: "volume", Value: 145000}, Field{Key: "value", Value: 32060}),
			NewRecord("Q2 2024", Field{Key: "volume", Value: 162000}, Field{Key: "value", Value: 42150}),
			NewRecord("Q3 2024", Field{Key: "volume", Value: 158000}, Field{Key: "value", Value: 43320}),
			NewRecord("Q4 2024", Field{Key: "volume", Value: 171000}, Field{Key: "value", Value: 46840}),
		}
	default:
		return []Record{
			NewRecord("Q1 2024", Field{Key: "volume", Value: 145000}, Field{Key: "value", Value: 32060}),
			NewRecord("Q2 2024", Field{Key: "volume", Value: 162000}, Field{Key: "value", Value: 42150}),
			NewRecord("Q3 2024", Field{Key: "volume", Value: 158000}, Field{Key: "value", Value: 43320}),
			NewRecord("Q4 2024", Field{Key: "volume", Value: 171000}, Field{Key: "value", Value: 46840}),
			NewRecord("Q1 2025", Field{Key: "volume", Value: 189000}, Field{Key: "value", Value: 51200}),
			NewRecord("Q2 2025", Field{Key: "volume", Value: 203000}, Field{Key: "value", Value: 56780}),
		}
	}
}
