package domain

import "errors"

// Sentinel errors returned by ledger operations. Every operation either
// succeeds in full or fails with one of these; callers match them with
// errors.Is.
var (
	ErrInvalidGoal            = errors.New("goal must be positive")
	ErrInvalidDuration        = errors.New("duration below minimum")
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrCampaignNotStarted     = errors.New("campaign not started")
	ErrCampaignEnded          = errors.New("campaign ended")
	ErrCampaignNotEnded       = errors.New("campaign not ended")
	ErrZeroValue              = errors.New("amount must be positive")
	ErrInvalidAmount          = errors.New("amount is zero or exceeds balance")
	ErrUnauthorized           = errors.New("caller is not the creator")
	ErrGoalNotReached         = errors.New("goal not reached")
	ErrGoalReached            = errors.New("goal reached, refunds not permitted")
	ErrAlreadyClaimed         = errors.New("funds already claimed")
	ErrNoContribution         = errors.New("no contribution to refund")
	ErrTransferFailed         = errors.New("value transfer failed")
	ErrReentrantCall          = errors.New("reentrant call")
	ErrDirectTransferRejected = errors.New("direct transfers rejected, use pledge")
)
