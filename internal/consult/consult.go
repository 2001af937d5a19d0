// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

// Package consult is the gateway to the external consult-aggregation service.
//
// Consult records live upstream; this package forwards reads and keeps a
// short-lived Redis cache of the upstream responses so repeated views of a
// patient's consult list do not hammer the aggregation service.
package consult

import "time"

// Consult represents one consultation record as returned by the upstream
// aggregation service.
type Consult struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	Specialty   string    `json:"specialty"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}
