package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Backend transport.
	BackendUnavailable failure.ErrorCode = "BackendUnavailable"
	BackendError       failure.ErrorCode = "BackendError"

	// Deals.
	DealNotFound          failure.ErrorCode = "DealNotFound"
	DealAlreadyBought     failure.ErrorCode = "DealAlreadyBought"
	InvalidDealID         failure.ErrorCode = "InvalidDealID"
	InvalidCondition      failure.ErrorCode = "InvalidCondition"
	InvalidMarketValue    failure.ErrorCode = "InvalidMarketValue"
	InvalidLocationFilter failure.ErrorCode = "InvalidLocationFilter"
	ProfitUndefined       failure.ErrorCode = "ProfitUndefined"
	NotPurchaseEligible   failure.ErrorCode = "NotPurchaseEligible"
	UnknownRepairOption   failure.ErrorCode = "UnknownRepairOption"

	// Flips.
	FlipNotFound    failure.ErrorCode = "FlipNotFound"
	FlipAlreadySold failure.ErrorCode = "FlipAlreadySold"
	InvalidFlipID   failure.ErrorCode = "InvalidFlipID"
	InvalidSellData failure.ErrorCode = "InvalidSellData"

	// Settings and integrations.
	InvalidSettings       failure.ErrorCode = "InvalidSettings"
	InvalidDeviceToken    failure.ErrorCode = "InvalidDeviceToken"
	EbayNotLinked         failure.ErrorCode = "EbayNotLinked"
	ManualListingRequired failure.ErrorCode = "ManualListingRequired"
	UnknownPlatform       failure.ErrorCode = "UnknownPlatform"
)
