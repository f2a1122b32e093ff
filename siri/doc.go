// Package siri defines the SIRI-lite stop point discovery payload.
//
// SIRI is a European standard (CEN/TS 15531) for real-time public transport
// information. SIRI-lite exposes it as JSON over plain HTTP. Only the
// StopPointsDiscovery response is modelled here:
//
//	{"StopPointsDelivery": {"AnnotatedStopPointRef": [
//	    {"StopName": "Gare", "Extension": {"StopCode": "G1"}}
//	]}}
//
// Every field is optional on the wire and is modelled as a pointer.
package siri
