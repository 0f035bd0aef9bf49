package entity

import "time"

// Project campaña de crowdfunding con dirección Bitcoin de recaudo.
// Los montos se manejan en satoshis (int64); el seguimiento on-chain
// vive en TrackedTransaction.
type Project struct {
	ID             string
	ActorID        string
	Slug           string
	Title          string
	Description    string
	GoalSats       int64
	RaisedSats     int64
	BitcoinAddress string // dirección de recaudo rastreada vía explorador
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
