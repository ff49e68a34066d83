package internal

// TotalMonthly sums the monthly equivalent of every subscription
func TotalMonthly(subs []Subscription) float64 {
	var total float64
	for _, sub := range subs {
		total += sub.MonthlyEquivalent()
	}
	return total
}

// TotalYearly is TotalMonthly scaled to twelve months
func TotalYearly(subs []Subscription) float64 {
	return TotalMonthly(subs) * 12
}

// AveragePerService returns the mean monthly cost, 0 for an empty list
func AveragePerService(subs []Subscription) float64 {
	if len(subs) == 0 {
		return 0
	}
	return TotalMonthly(subs) / float64(len(subs))
}

// CategoryTotal is the monthly spend of one category
type CategoryTotal struct {
	Category Category
	Monthly  float64
	Count    int
}

// ByCategory groups subscriptions by classifier and sums monthly equivalents.
// Groups appear in order of first occurrence; empty categories are omitted.
func ByCategory(subs []Subscription, classifier Classifier) []CategoryTotal {
	var result []CategoryTotal
	index := make(map[Category]int)
	for _, sub := range subs {
		cat := classifier.Classify(sub.Name)
		i, ok := index[cat]
		if !ok {
			i = len(result)
			index[cat] = i
			result = append(result, CategoryTotal{Category: cat})
		}
		result[i].Monthly += sub.MonthlyEquivalent()
		result[i].Count++
	}
	return result
}

// Stats bundles the dashboard figures for a subscription list
type Stats struct {
	Count        int
	Monthly      float64
	Yearly       float64
	Average      float64
	MonthlyCount int
	YearlyCount  int
	// MostExpensive is nil for an empty list
	MostExpensive *Subscription
}

// ComputeStats derives the dashboard figures. The most expensive entry is
// chosen by monthly equivalent; the first one wins on ties.
func ComputeStats(subs []Subscription) Stats {
	stats := Stats{
		Count:   len(subs),
		Monthly: TotalMonthly(subs),
		Yearly:  TotalYearly(subs),
		Average: AveragePerService(subs),
	}
	for i := range subs {
		if subs[i].BillingCycle == CycleYearly {
			stats.YearlyCount++
		} else {
			stats.MonthlyCount++
		}
		if stats.MostExpensive == nil || subs[i].MonthlyEquivalent() > stats.MostExpensive.MonthlyEquivalent() {
			sub := subs[i]
			stats.MostExpensive = &sub
		}
	}
	return stats
}
