package application

import (
	"encoding/json"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
)

// orderRecord is the persisted JSON shape of one order.
type orderRecord struct {
	ID           string `json:"id"`
	Clinic       string `json:"clinic"`
	Contact      string `json:"contact"`
	Type         string `json:"type"`
	ReceivedDate string `json:"receivedDate"`
	DueDate      string `json:"dueDate"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

func encodeBlob(orders []domain.Order) ([]byte, error) {
	records := make([]orderRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, toRecord(o))
	}
	return json.Marshal(records)
}

// decodeBlob accepts JSON null as an empty collection.
func decodeBlob(raw []byte) ([]domain.Order, error) {
	var records []orderRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for _, r := range records {
		orders = append(orders, r.toDomain())
	}
	return orders, nil
}

func toRecord(o domain.Order) orderRecord {
	return orderRecord{
		ID:           o.ID,
		Clinic:       o.Clinic,
		Contact:      o.Contact,
		Type:         o.Type,
		ReceivedDate: o.ReceivedDate,
		DueDate:      o.DueDate,
		Status:       string(o.Status),
		Notes:        o.Notes,
	}
}

func (r orderRecord) toDomain() domain.Order {
	return domain.Order{
		ID: r.ID,
		Fields: domain.Fields{
			Clinic:       r.Clinic,
			Contact:      r.Contact,
			Type:         r.Type,
			ReceivedDate: r.ReceivedDate,
			DueDate:      r.DueDate,
			Status:       domain.Status(r.Status),
			Notes:        r.Notes,
		},
	}
}
