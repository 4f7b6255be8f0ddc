package domain

import "time"

// Severity grades security events and alerts.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// SecurityEventType enumerates recognized threat categories.
type SecurityEventType string

const (
	SecurityEventLoginFailure       SecurityEventType = "LOGIN_FAILURE"
	SecurityEventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	SecurityEventMalware            SecurityEventType = "MALWARE"
	SecurityEventPhishing           SecurityEventType = "PHISHING"
	SecurityEventDDoS               SecurityEventType = "DDOS"
	SecurityEventDataBreach         SecurityEventType = "DATA_BREACH"
	SecurityEventPolicyViolation    SecurityEventType = "POLICY_VIOLATION"
	SecurityEventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	SecurityEventOther              SecurityEventType = "OTHER"
)

// SecurityEventStatus enumerates investigation states.
type SecurityEventStatus string

const (
	SecurityEventStatusNew           SecurityEventStatus = "NEW"
	SecurityEventStatusInvestigating SecurityEventStatus = "INVESTIGATING"
	SecurityEventStatusContained     SecurityEventStatus = "CONTAINED"
	SecurityEventStatusResolved      SecurityEventStatus = "RESOLVED"
	SecurityEventStatusFalsePositive SecurityEventStatus = "FALSE_POSITIVE"
)

// SecurityEvent records a cybersecurity event or threat.
type SecurityEvent struct {
	ID             string
	Type           SecurityEventType
	Severity       Severity
	Status         SecurityEventStatus
	SourceIP       *string
	TargetIP       *string
	BranchID       *string
	UserID         *string
	Description    string
	AffectedSystem *string
	ActionTaken    *string
	AssignedTo     *string
	ResolvedAt     *time.Time
	DetectedAt     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
