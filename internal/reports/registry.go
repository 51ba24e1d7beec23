package reports

// Registry returns the full ordered set of report generators. The order
// only controls artifact logging; no generator depends on another's result.
func Registry() []Generator {
	return []Generator{
		{
			Name:     "monthly_by_category",
			FileName: "monthly_spending_by_category.csv",
			Generate: generateMonthlyByCategory,
		},
		{
			Name:     "ytd_by_category",
			FileName: "year_to_date_spending_by_category.csv",
			Generate: generateYearToDate,
		},
		{
			Name:     "cumulative_spending",
			FileName: "cumulative_spending.csv",
			Generate: generateCumulativeSpending,
		},
		{
			Name:     "rolling_avg_by_category",
			FileName: "3mo_rolling_avg_by_category.csv",
			Generate: generateRollingAverage,
		},
		{
			Name:     "top_spenders",
			FileName: "top_10_spenders.csv",
			Generate: generateTopSpenders,
		},
		{
			Name:     "monthly_total",
			FileName: "monthly_total_spending.csv",
			Generate: generateMonthlyTotal,
		},
		{
			Name:     "category_pct_change",
			FileName: "category_monthly_pct_change.csv",
			Generate: generatePercentChange,
		},
		{
			Name:     "largest_transactions",
			FileName: "largest_single_transactions.csv",
			Generate: generateLargestTransactions,
		},
		{
			Name:      "by_merchant",
			FileName:  "spending_by_merchant.csv",
			Condition: func(ds *Dataset) bool { return ds.HasMerchant },
			Generate:  generateByMerchant,
		},
		{
			Name:      "by_payment_method",
			FileName:  "spending_by_payment_method.csv",
			Condition: func(ds *Dataset) bool { return ds.HasPaymentMethod },
			Generate:  generateByPaymentMethod,
		},
		{
			Name:     "by_weekday",
			FileName: "spending_by_weekday.csv",
			Generate: generateByWeekday,
		},
		{
			Name:     "no_spend_days",
			FileName: "days_with_no_spending.csv",
			Generate: generateNoSpendDays,
		},
		{
			Name:     "recurring_payments",
			FileName: "recurring_payments.csv",
			Generate: generateRecurringPayments,
		},
		{
			Name:      "budget_comparison",
			FileName:  "budget_comparison.csv",
			Condition: func(ds *Dataset) bool { return ds.Budget != nil },
			Generate:  generateBudgetComparison,
		},
		{
			Name:     "stats_by_category",
			FileName: "transaction_stats_by_category.csv",
			Generate: generateStatsByCategory,
		},
		{
			Name:     "stats_overall",
			FileName: "transaction_stats_overall.csv",
			Generate: generateStatsOverall,
		},
		{
			Name:     "weekday_weekend",
			FileName: "spending_by_weekday_weekend.csv",
			Generate: generateWeekdayWeekend,
		},
		{
			Name:      "cash_flow",
			FileName:  "cash_flow_analysis.csv",
			Condition: func(ds *Dataset) bool { return ds.HasFlowType },
			Generate:  generateCashFlow,
		},
		{
			Name:     "distribution_histogram",
			FileName: "spending_distribution_histogram.png",
			Generate: generateDistributionHistogram,
		},
		{
			Name:     "monthly_spending_chart",
			FileName: "monthly_spending_by_category.png",
			Plot:     true,
			Generate: generateMonthlyChart,
		},
	}
}
