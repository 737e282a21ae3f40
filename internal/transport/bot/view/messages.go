// Package view holds the canned bot reply texts.
package view

const StartMessage = `👋 <b>DealScout control bot</b>

Commands:
/status - scanner and session state
/deals - current profitable deals
/filter <code>all|pickup|shipping</code> - switch the location filter
/threshold <code>amount</code> - set the alert profit floor
/notify <code>on|off</code> - toggle alerts
/startscan - start the scanner
/stopscan - stop the scanner`

const (
	FilterMissingArgument = "❌ Usage: /filter <code>all|pickup|shipping</code>"
	FilterInvalid         = "❌ Filter must be all, pickup or shipping"
	FilterChanged         = "✅ Filter set to <b>%s</b>. The session reset; the next poll primes silently."

	ThresholdMissingArgument = "❌ Usage: /threshold <code>amount</code>, e.g. /threshold 30"
	ThresholdInvalidFormat   = "❌ Threshold must be a non-negative number"
	ThresholdChanged         = "✅ Alert threshold set to <b>%s</b>"

	NotifyMissingArgument = "❌ Usage: /notify <code>on|off</code>"
	NotifyEnabled         = "🔔 Alerts enabled"
	NotifyDisabled        = "🔕 Alerts disabled"

	ScannerAlreadyRunning = "Scanner is already running."
	ScannerNotRunning     = "Scanner is not running."
	ScannerStarted        = "Scanner started."
	ScannerStopped        = "Scanner stopped."

	DealsError = "❌ Could not fetch deals from the backend"
	DealsEmpty = "📋 No profitable deals right now."
)
