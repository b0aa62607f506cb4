// Package gateway provides the fx module grouping all outbound gateways.
package gateway

import (
	"go.uber.org/fx"
)

// Module provides all gateways used for outbound calls from this service.
var Module = fx.Options()
