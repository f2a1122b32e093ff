package siri

// StopPointsDiscoveryResponse is the root of a stop point discovery reply
type StopPointsDiscoveryResponse struct {
	StopPointsDelivery *StopPointsDelivery `json:"StopPointsDelivery,omitempty"`
}

// StopPointsDelivery carries the annotated stop points of an operator
type StopPointsDelivery struct {
	ResponseTimestamp     string                  `json:"ResponseTimestamp,omitempty"`
	AnnotatedStopPointRef []AnnotatedStopPointRef `json:"AnnotatedStopPointRef"`
}

// AnnotatedStopPointRef is one published stop
type AnnotatedStopPointRef struct {
	StopPointRef *string    `json:"StopPointRef,omitempty"`
	StopName     *string    `json:"StopName,omitempty"`
	Extension    *Extension `json:"Extension,omitempty"`
}

// Extension holds operator-specific stop attributes
type Extension struct {
	StopCode *string `json:"StopCode,omitempty"`
}

// Code returns the extension stop code, or nil
func (a AnnotatedStopPointRef) Code() *string {
	if a.Extension == nil {
		return nil
	}
	return a.Extension.StopCode
}
