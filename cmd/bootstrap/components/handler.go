package components

import (
	"slot-swapper/internal/handler"
	"slot-swapper/internal/handler/api"
	"slot-swapper/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewSlotHandler,
		api.NewSwapHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRequestStats,
		func(auth *api.AuthHandler, slot *api.SlotHandler, swap *api.SwapHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Slot: slot, Swap: swap}
		},
	),
	fx.Invoke(handler.NewRouter),
)
