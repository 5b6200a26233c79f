package model

type ThreatType string

const (
	ThreatSpam         ThreatType = "spam"
	ThreatProfanity    ThreatType = "profanity"
	ThreatHateSpeech   ThreatType = "hate_speech"
	ThreatInjection    ThreatType = "injection"
	ThreatManipulation ThreatType = "manipulation"
)

// SecurityCheckResult is produced per query and never persisted.
type SecurityCheckResult struct {
	Safe       bool       `json:"safe"`
	Reason     string     `json:"reason,omitempty"`
	ThreatType ThreatType `json:"threat_type,omitempty"`
}
