package kafka

import "go.uber.org/fx"

// Module provides Kafka producer dependencies
var Module = fx.Module(
	"kafka",
	fx.Provide(NewProducer),
)
