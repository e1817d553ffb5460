package models

// SessionKey is the local storage key holding the serialized Session.
const SessionKey = "user"

// CurrentReportKey is the local storage key holding the current report slot.
const CurrentReportKey = "current_report"
