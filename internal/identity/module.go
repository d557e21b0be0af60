package identity

import "go.uber.org/fx"

// Module provides the identity service and its Provider binding.
var Module = fx.Options(
	fx.Provide(NewService),
	fx.Provide(func(s *Service) Provider { return s }),
)
