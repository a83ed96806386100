package domain

// MaxClinics caps the distinct clinic list offered as a filter.
const MaxClinics = 50

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status Status
	Count  int
}

// Summary aggregates the collection for the dashboard sidebar.
type Summary struct {
	Total    int
	ByStatus []StatusCount
}

// Summarize counts orders per canonical status. Orders whose status is not
// canonical only contribute to Total.
func Summarize(orders []Order) Summary {
	counts := make(map[Status]int, 5)
	for _, o := range orders {
		counts[o.Status]++
	}
	summary := Summary{Total: len(orders)}
	for _, s := range Statuses() {
		summary.ByStatus = append(summary.ByStatus, StatusCount{Status: s, Count: counts[s]})
	}
	return summary
}

// DistinctClinics returns non-empty clinic names in first-seen order, capped
// at MaxClinics.
func DistinctClinics(orders []Order) []string {
	seen := make(map[string]struct{})
	clinics := make([]string, 0)
	for _, o := range orders {
		if o.Clinic == "" {
			continue
		}
		if _, ok := seen[o.Clinic]; ok {
			continue
		}
		seen[o.Clinic] = struct{}{}
		clinics = append(clinics, o.Clinic)
		if len(clinics) == MaxClinics {
			break
		}
	}
	return clinics
}
