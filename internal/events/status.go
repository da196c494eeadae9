package events

type EventStatus string

const (
	EventStatusDraft       EventStatus = "DRAFT"
	EventStatusPublished   EventStatus = "PUBLISHED"
	EventStatusSalesOpen   EventStatus = "SALES_OPEN"
	EventStatusSalesClosed EventStatus = "SALES_CLOSED"
	EventStatusCompleted   EventStatus = "COMPLETED"
	EventStatusCancelled   EventStatus = "CANCELLED"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusDraft, EventStatusPublished, EventStatusSalesOpen,
		EventStatusSalesClosed, EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}
