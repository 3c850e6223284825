package constants

// Обменники
const (
	EventsExchange = "brokerage_events"
)

// Имена очередей
const (
	QueuePropertyViews = "property_view_events"
)

// Ключи маршрутизации
const (
	RoutingKeyDealEvents    = "brokerage.deal.events"
	RoutingKeyPropertyViews = "analytics.property.view"
)
