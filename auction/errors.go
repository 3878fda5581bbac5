// auction/errors.go
package auction

// Reject codes. These classify client-correctable rejections; the
// human-readable message plus any remediation values travel in the
// RejectError itself.
const (
	RejectInvalidAmount     = "invalid_amount"
	RejectInvalidStatus     = "invalid_status"
	RejectNotLive           = "not_live"
	RejectBiddingLocked     = "bidding_locked"
	RejectNoActivePlayer    = "no_active_player"
	RejectTeamLocked        = "team_locked"
	RejectBelowMinimum      = "below_minimum"
	RejectAlreadyHighest    = "already_highest"
	RejectRosterFull        = "roster_full"
	RejectOverMaxBid        = "over_max_bid"
	RejectNoBids            = "no_bids"
	RejectNoTeam            = "no_team"
	RejectInsufficientFunds = "insufficient_funds"
	RejectPlayerNotSold     = "player_not_sold"
	RejectPlayerLive        = "player_live"
	RejectTeamHasAssets     = "team_has_assets"
	RejectOutOfRange        = "out_of_range"
)

// RejectError is a validation or state-precondition failure. Handlers
// map it to HTTP 400 with Message as the error string and Extra merged
// into the response body (e.g. minimumBid, maxBidAllowed).
type RejectError struct {
	Code    string
	Message string
	Extra   map[string]any
}

func (e *RejectError) Error() string {
	return e.Message
}

func reject(code, message string) *RejectError {
	return &RejectError{Code: code, Message: message}
}

func rejectWith(code, message string, extra map[string]any) *RejectError {
	return &RejectError{Code: code, Message: message, Extra: extra}
}
