package application

import "github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"

// SampleOrders returns the demo data set. Ids are left empty so the store
// assigns fresh ones on every install.
func SampleOrders() []domain.Order {
	return []domain.Order{
		{Fields: domain.Fields{
			Clinic:       "Zahnklinik Berlin",
			Contact:      "dr.bauer@zahnklinik.de",
			Type:         "Crown (Zr)",
			ReceivedDate: "2025-10-10",
			DueDate:      "2025-10-20",
			Status:       domain.StatusInProgress,
			Notes:        "Shade A2",
		}},
		{Fields: domain.Fields{
			Clinic:       "SmileCare Munich",
			Contact:      "info@smilecare.de",
			Type:         "Bridge 3-unit",
			ReceivedDate: "2025-10-12",
			DueDate:      "2025-10-25",
			Status:       domain.StatusReceived,
			Notes:        "Rush possible",
		}},
	}
}
