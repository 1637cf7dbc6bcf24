package topfiles

import "github.com/ctsrd-cheri/cheriloc/internal/usecase"

// Msg is the interface for all report browser messages.
// All message types implement this sealed interface.
//
//sumtype:decl
type Msg interface {
	sealed()
}

// MsgReportLoaded is sent when the diff report has been parsed.
//
//nolint:govet // Logical field order preferred
type MsgReportLoaded struct {
	Buckets []usecase.TopFilesBucket
	Err     error
}

func (MsgReportLoaded) sealed() {}
