package domain

import (
	"sort"
	"time"
)

const (
	TimelineOrderPlaced        = "OrderPlaced"
	TimelineOrderStatusChanged = "OrderStatusChanged"
)

// TimelineEvent — запись в истории заказа, которую видит покупатель.
// Reason для смены статуса содержит новый статус.
type TimelineEvent struct {
	OrderID  string
	Type     string
	Reason   string
	Occurred time.Time
}

// PlacedTimelineEvent фиксирует оформление заказа на момент его создания.
func PlacedTimelineEvent(order Order) TimelineEvent {
	return TimelineEvent{
		OrderID:  order.ID,
		Type:     TimelineOrderPlaced,
		Reason:   "checkout",
		Occurred: order.CreatedAt,
	}
}

// StatusTimelineEvent фиксирует новую метку статуса заказа.
func StatusTimelineEvent(order Order) TimelineEvent {
	return TimelineEvent{
		OrderID:  order.ID,
		Type:     TimelineOrderStatusChanged,
		Reason:   string(order.Status),
		Occurred: order.UpdatedAt,
	}
}

// SortTimeline упорядочивает события по времени, сохраняя порядок одновременных.
func SortTimeline(events []TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Occurred.Before(events[j].Occurred)
	})
}
