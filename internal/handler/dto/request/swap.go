package request

import "github.com/google/uuid"

type CreateSwapRequest struct {
	MySlotID    uuid.UUID `json:"mySlotId" binding:"required"`
	TheirSlotID uuid.UUID `json:"theirSlotId" binding:"required"`
}

type SwapResponseRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}
